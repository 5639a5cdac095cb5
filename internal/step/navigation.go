package step

import (
	"github.com/vinetool/vine/internal/fault"
	"github.com/vinetool/vine/internal/page"
)

// Navigation provides the steps that move between pages and wait for the
// page to settle.
type Navigation struct {
	sc *Scenario
}

// NewNavigation creates the navigation step handler.
func NewNavigation(sc *Scenario) *Navigation {
	return &Navigation{sc: sc}
}

// Steps returns the navigation step definitions.
func (h *Navigation) Steps() Category {
	return Category{
		Name:        "Navigation",
		Description: "Steps for moving between pages and waiting on page state",
		Steps: []Def{
			{
				Group:       "Navigation",
				Pattern:     `^I am on the "([^"]*)" page$`,
				Description: "Open a named page under the base URL and wait for network idle",
				Example:     `I am on the "login" page`,
				Handler:     h.onPage,
			},
			{
				Group:       "Navigation",
				Pattern:     `^I navigate to "([^"]*)"$`,
				Description: "Open an absolute or base-URL-relative URL",
				Example:     `I navigate to "/dashboard"`,
				Handler:     h.navigateTo,
			},
			{
				Group:       "Navigation",
				Pattern:     `^I go back in browser history$`,
				Description: "Navigate back",
				Handler:     h.goBack,
			},
			{
				Group:       "Navigation",
				Pattern:     `^I go forward in browser history$`,
				Description: "Navigate forward",
				Handler:     h.goForward,
			},
			{
				Group:       "Navigation",
				Pattern:     `^I refresh the page$`,
				Description: "Reload the current page",
				Handler:     h.refresh,
			},
			{
				Group:       "Waiting",
				Pattern:     `^I wait for (\d+) seconds?$`,
				Description: "Pause the scenario",
				Example:     `I wait for 2 seconds`,
				Handler:     h.waitSeconds,
			},
			{
				Group:       "Waiting",
				Pattern:     `^I wait for the element "([^"]*)" to appear$`,
				Description: "Wait until a selector is visible",
				Example:     `I wait for the element ".toast" to appear`,
				Handler:     h.waitForAppear,
			},
			{
				Group:       "Waiting",
				Pattern:     `^I wait for the element "([^"]*)" to disappear$`,
				Description: "Wait until a selector is hidden or detached",
				Example:     `I wait for the element ".loading-spinner" to disappear`,
				Handler:     h.waitForDisappear,
			},
		},
	}
}

func (h *Navigation) onPage(name string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	if err := p.Navigate(h.sc.PageURL(name)); err != nil {
		return err
	}
	return p.WaitForLoad()
}

func (h *Navigation) navigateTo(url string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	if err := p.Navigate(h.sc.ResolveURL(url)); err != nil {
		return err
	}
	return p.WaitForLoad()
}

func (h *Navigation) goBack() error {
	d, err := h.sc.Driver()
	if err != nil {
		return err
	}
	if _, err := d.GoBack(); err != nil {
		return &fault.NavigationError{URL: d.URL(), Err: err}
	}
	return nil
}

func (h *Navigation) goForward() error {
	d, err := h.sc.Driver()
	if err != nil {
		return err
	}
	if _, err := d.GoForward(); err != nil {
		return &fault.NavigationError{URL: d.URL(), Err: err}
	}
	return nil
}

func (h *Navigation) refresh() error {
	d, err := h.sc.Driver()
	if err != nil {
		return err
	}
	if _, err := d.Reload(); err != nil {
		return &fault.NavigationError{URL: d.URL(), Err: err}
	}
	return nil
}

func (h *Navigation) waitSeconds(seconds int) error {
	d, err := h.sc.Driver()
	if err != nil {
		return err
	}
	d.WaitForTimeout(float64(seconds) * 1000)
	return nil
}

func (h *Navigation) waitForAppear(selector string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	return p.WaitFor(selector, page.StateVisible, h.sc.Config.Timeout)
}

func (h *Navigation) waitForDisappear(selector string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	return p.WaitFor(selector, page.StateHidden, h.sc.Config.Timeout)
}
