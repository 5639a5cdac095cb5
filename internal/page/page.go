// Package page implements the page-object layer: a base capability set over
// a browser page plus concrete objects for the screens the step vocabulary
// talks about. Failures from the automation library are never swallowed;
// they surface as navigation or interaction errors.
package page

import (
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/vinetool/vine/internal/fault"
)

// Wait states for WaitFor.
const (
	StateVisible = "visible"
	StateHidden  = "hidden"
)

// Page is the base page object. Concrete page objects embed it and add named
// locators and composite operations; it is bound to one Driver for its
// lifetime.
type Page struct {
	d Driver
}

// New binds a base page object to a driver.
func New(d Driver) *Page {
	return &Page{d: d}
}

// Driver returns the underlying page handle.
func (p *Page) Driver() Driver { return p.d }

// Navigate opens the given URL.
func (p *Page) Navigate(url string) error {
	if _, err := p.d.Goto(url); err != nil {
		return &fault.NavigationError{URL: url, Err: err}
	}
	return nil
}

// WaitForLoad waits for the network-idle load state.
func (p *Page) WaitForLoad() error {
	err := p.d.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
	if err != nil {
		return &fault.NavigationError{URL: p.d.URL(), Err: err}
	}
	return nil
}

// Click clicks the element identified by the locator.
func (p *Page) Click(selector string) error {
	if err := p.d.Click(selector); err != nil {
		return &fault.InteractionError{Action: "click", Selector: selector, Err: err}
	}
	return nil
}

// Fill types the value into the element identified by the locator.
func (p *Page) Fill(selector, value string) error {
	if err := p.d.Fill(selector, value); err != nil {
		return &fault.InteractionError{Action: "fill", Selector: selector, Err: err}
	}
	return nil
}

// Hover moves the pointer over the element.
func (p *Page) Hover(selector string) error {
	if err := p.d.Hover(selector); err != nil {
		return &fault.InteractionError{Action: "hover", Selector: selector, Err: err}
	}
	return nil
}

// Text returns the text content of the element.
func (p *Page) Text(selector string) (string, error) {
	text, err := p.d.TextContent(selector)
	if err != nil {
		return "", &fault.InteractionError{Action: "read text of", Selector: selector, Err: err}
	}
	return text, nil
}

// Visible reports whether the locator matches a visible element. A locator
// matching zero elements is not visible, not an error.
func (p *Page) Visible(selector string) (bool, error) {
	visible, err := p.d.IsVisible(selector)
	if err != nil {
		return false, &fault.InteractionError{Action: "check visibility of", Selector: selector, Err: err}
	}
	return visible, nil
}

// WaitFor blocks until the locator reaches the given state or the timeout
// elapses. Exceeding the timeout is a failure, not a retry trigger.
func (p *Page) WaitFor(selector, state string, timeout time.Duration) error {
	opts := playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}
	switch state {
	case StateHidden:
		opts.State = playwright.WaitForSelectorStateHidden
	default:
		opts.State = playwright.WaitForSelectorStateVisible
	}

	if _, err := p.d.WaitForSelector(selector, opts); err != nil {
		return &fault.InteractionError{
			Action:   "wait for " + state,
			Selector: selector,
			Timeout:  timeout,
			Err:      err,
		}
	}
	return nil
}

// Screenshot writes a full-page screenshot to the given path.
func (p *Page) Screenshot(path string) error {
	_, err := p.d.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return &fault.InteractionError{Action: "screenshot to", Selector: path, Err: err}
	}
	return nil
}
