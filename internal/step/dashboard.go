package step

import (
	"strings"

	"github.com/vinetool/vine/internal/fault"
)

// DashboardSteps provides the dashboard-specific step vocabulary.
type DashboardSteps struct {
	sc *Scenario
}

// NewDashboard creates the dashboard step handler.
func NewDashboard(sc *Scenario) *DashboardSteps {
	return &DashboardSteps{sc: sc}
}

// Steps returns the dashboard step definitions.
func (h *DashboardSteps) Steps() Category {
	return Category{
		Name:        "Dashboard",
		Description: "Steps for the dashboard screen",
		Steps: []Def{
			{
				Group:       "Dashboard",
				Pattern:     `^I load the dashboard data$`,
				Description: "Click Load Data and wait for the spinner to clear",
				Handler:     h.loadData,
			},
			{
				Group:       "Dashboard",
				Pattern:     `^the dashboard should be loaded$`,
				Description: "Assert the dashboard chrome is rendered",
				Handler:     h.dashboardLoaded,
			},
			{
				Group:       "Dashboard",
				Pattern:     `^the data table should contain "([^"]*)"$`,
				Description: "Assert the data table text contains a value",
				Example:     `the data table should contain "Order #1042"`,
				Handler:     h.tableContains,
			},
			{
				Group:       "Dashboard",
				Pattern:     `^I open my profile$`,
				Description: "Open the profile page through the user menu",
				Handler:     h.openProfile,
			},
			{
				Group:       "Dashboard",
				Pattern:     `^I log out$`,
				Description: "Sign out through the user menu",
				Handler:     h.logout,
			},
		},
	}
}

func (h *DashboardSteps) loadData() error {
	dp, err := h.sc.DashboardPage()
	if err != nil {
		return err
	}
	return dp.LoadData()
}

func (h *DashboardSteps) dashboardLoaded() error {
	dp, err := h.sc.DashboardPage()
	if err != nil {
		return err
	}
	loaded, err := dp.Loaded()
	if err != nil {
		return err
	}
	if !loaded {
		return &fault.AssertionError{
			Description: "dashboard",
			Expected:    "loaded",
			Actual:      "not loaded",
		}
	}
	return nil
}

func (h *DashboardSteps) tableContains(expected string) error {
	dp, err := h.sc.DashboardPage()
	if err != nil {
		return err
	}
	actual, err := dp.TableText()
	if err != nil {
		return err
	}
	if !strings.Contains(actual, expected) {
		return &fault.AssertionError{
			Description: "data table text",
			Expected:    expected,
			Actual:      actual,
		}
	}
	return nil
}

func (h *DashboardSteps) openProfile() error {
	dp, err := h.sc.DashboardPage()
	if err != nil {
		return err
	}
	return dp.OpenProfile()
}

func (h *DashboardSteps) logout() error {
	dp, err := h.sc.DashboardPage()
	if err != nil {
		return err
	}
	return dp.Logout()
}
