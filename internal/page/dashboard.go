package page

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/vinetool/vine/internal/config"
	"github.com/vinetool/vine/internal/fault"
)

// Dashboard page locators.
const (
	DashboardMainContent = "#main-content"
	DashboardUserMenu    = ".user-menu"
	DashboardNavbar      = ".navbar"
	DashboardLoadButton  = "button:has-text('Load Data')"
	DashboardSpinner     = ".loading-spinner"
	DashboardDataTable   = ".data-table"
	DashboardProfileLink = "a:has-text('Profile')"
	DashboardLogout      = "button:has-text('Logout')"
)

// Dashboard is the page object for the dashboard screen.
type Dashboard struct {
	*Page
}

// NewDashboard binds a dashboard page object to a driver.
func NewDashboard(d Driver) *Dashboard {
	return &Dashboard{Page: New(d)}
}

// Loaded reports whether the dashboard chrome is fully rendered.
func (d *Dashboard) Loaded() (bool, error) {
	main, err := d.Visible(DashboardMainContent)
	if err != nil || !main {
		return false, err
	}
	return d.Visible(DashboardNavbar)
}

// LoadData triggers the data load and waits for it to finish. The spinner may
// never render when the operation completes fast, so a missed appearance is
// tolerated; only the wait for it to disappear is binding.
func (d *Dashboard) LoadData() error {
	if err := d.Click(DashboardLoadButton); err != nil {
		return err
	}

	if err := d.WaitFor(DashboardSpinner, StateVisible, config.Timeouts["short"]); err != nil {
		var ie *fault.InteractionError
		if !errors.As(err, &ie) {
			return err
		}
		log.Debug().Str("selector", DashboardSpinner).
			Msg("spinner never appeared, assuming the load already completed")
	}

	return d.WaitFor(DashboardSpinner, StateHidden, config.Timeouts["long"])
}

// OpenProfile navigates to the profile page through the user menu.
func (d *Dashboard) OpenProfile() error {
	if err := d.Click(DashboardUserMenu); err != nil {
		return err
	}
	return d.Click(DashboardProfileLink)
}

// Logout signs the current user out through the user menu.
func (d *Dashboard) Logout() error {
	if err := d.Click(DashboardUserMenu); err != nil {
		return err
	}
	return d.Click(DashboardLogout)
}

// TableText returns the text content of the data table.
func (d *Dashboard) TableText() (string, error) {
	return d.Text(DashboardDataTable)
}
