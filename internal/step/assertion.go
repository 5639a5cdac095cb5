package step

import (
	"fmt"
	"strings"

	"github.com/vinetool/vine/internal/fault"
)

// Assertion provides the steps that verify page state. Every failure message
// carries both the expected and the actual value.
type Assertion struct {
	sc *Scenario
}

// NewAssertion creates the assertion step handler.
func NewAssertion(sc *Scenario) *Assertion {
	return &Assertion{sc: sc}
}

// Steps returns the assertion step definitions.
func (h *Assertion) Steps() Category {
	return Category{
		Name:        "Assertions",
		Description: "Steps for verifying page content, URLs and titles",
		Steps: []Def{
			{
				Group:       "Content",
				Pattern:     `^I should see "([^"]*)" on the page$`,
				Description: "Assert text is visible anywhere on the page",
				Example:     `I should see "Welcome" on the page`,
				Handler:     h.shouldSeeText,
			},
			{
				Group:       "Content",
				Pattern:     `^the element "([^"]*)" should be visible$`,
				Description: "Assert a selector matches a visible element",
				Example:     `the element "#banner" should be visible`,
				Handler:     h.elementVisible,
			},
			{
				Group:       "Content",
				Pattern:     `^the element "([^"]*)" should not be visible$`,
				Description: "Assert a selector matches no visible element",
				Example:     `the element ".error-message" should not be visible`,
				Handler:     h.elementNotVisible,
			},
			{
				Group:       "Content",
				Pattern:     `^the element "([^"]*)" should contain text "([^"]*)"$`,
				Description: "Assert an element's text contains a substring",
				Example:     `the element ".data-table" should contain text "Row 1"`,
				Handler:     h.elementContains,
			},
			{
				Group:       "Content",
				Pattern:     `^I should see a link to "([^"]*)"$`,
				Description: "Assert a link with the given text is visible",
				Example:     `I should see a link to "Profile"`,
				Handler:     h.linkVisible,
			},
			{
				Group:       "Content",
				Pattern:     `^I should see a button labeled "([^"]*)"$`,
				Description: "Assert a button with the given text is visible",
				Example:     `I should see a button labeled "Load Data"`,
				Handler:     h.buttonVisible,
			},
			{
				Group:       "Location",
				Pattern:     `^I should be redirected to "([^"]*)"$`,
				Description: "Assert the current URL contains the expected URL",
				Example:     `I should be redirected to "/dashboard"`,
				Handler:     h.redirectedTo,
			},
			{
				Group:       "Location",
				Pattern:     `^I should be on the "([^"]*)" page$`,
				Description: "Assert the current URL matches a named page",
				Example:     `I should be on the "dashboard" page`,
				Handler:     h.onPage,
			},
			{
				Group:       "Location",
				Pattern:     `^the current URL should contain "([^"]*)"$`,
				Description: "Assert the current URL contains a fragment",
				Example:     `the current URL should contain "?tab=activity"`,
				Handler:     h.urlContains,
			},
			{
				Group:       "Location",
				Pattern:     `^the page title should be "([^"]*)"$`,
				Description: "Assert the page title contains the expected title",
				Example:     `the page title should be "Dashboard"`,
				Handler:     h.titleIs,
			},
		},
	}
}

func (h *Assertion) shouldSeeText(text string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	visible, err := p.Visible(fmt.Sprintf("text=%s", text))
	if err != nil {
		return err
	}
	if !visible {
		return &fault.AssertionError{
			Description: fmt.Sprintf("text %q on the page", text),
			Expected:    "visible",
			Actual:      "not found",
		}
	}
	return nil
}

func (h *Assertion) elementVisible(selector string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	visible, err := p.Visible(selector)
	if err != nil {
		return err
	}
	if !visible {
		return &fault.AssertionError{
			Description: fmt.Sprintf("element %q", selector),
			Expected:    "visible",
			Actual:      "not visible",
		}
	}
	return nil
}

func (h *Assertion) elementNotVisible(selector string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	visible, err := p.Visible(selector)
	if err != nil {
		return err
	}
	if visible {
		return &fault.AssertionError{
			Description: fmt.Sprintf("element %q", selector),
			Expected:    "not visible",
			Actual:      "visible",
		}
	}
	return nil
}

func (h *Assertion) elementContains(selector, expected string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	actual, err := p.Text(selector)
	if err != nil {
		return err
	}
	if !strings.Contains(actual, expected) {
		return &fault.AssertionError{
			Description: fmt.Sprintf("text of element %q", selector),
			Expected:    expected,
			Actual:      actual,
		}
	}
	return nil
}

func (h *Assertion) linkVisible(text string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	visible, err := p.Visible(fmt.Sprintf("a:has-text('%s')", text))
	if err != nil {
		return err
	}
	if !visible {
		return &fault.AssertionError{
			Description: fmt.Sprintf("link with text %q", text),
			Expected:    "visible",
			Actual:      "not found",
		}
	}
	return nil
}

func (h *Assertion) buttonVisible(text string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	visible, err := p.Visible(fmt.Sprintf("button:has-text('%s')", text))
	if err != nil {
		return err
	}
	if !visible {
		return &fault.AssertionError{
			Description: fmt.Sprintf("button labeled %q", text),
			Expected:    "visible",
			Actual:      "not found",
		}
	}
	return nil
}

func (h *Assertion) redirectedTo(expected string) error {
	return h.urlContains(expected)
}

func (h *Assertion) onPage(name string) error {
	d, err := h.sc.Driver()
	if err != nil {
		return err
	}
	expected := pagePath(strings.ToLower(name))
	actual := d.URL()
	if !strings.Contains(actual, expected) {
		return &fault.AssertionError{
			Description: fmt.Sprintf("on the %q page", name),
			Expected:    expected,
			Actual:      actual,
		}
	}
	return nil
}

func (h *Assertion) urlContains(fragment string) error {
	d, err := h.sc.Driver()
	if err != nil {
		return err
	}
	actual := d.URL()
	if !strings.Contains(actual, fragment) {
		return &fault.AssertionError{
			Description: "current URL",
			Expected:    fragment,
			Actual:      actual,
		}
	}
	return nil
}

func (h *Assertion) titleIs(expected string) error {
	d, err := h.sc.Driver()
	if err != nil {
		return err
	}
	actual, err := d.Title()
	if err != nil {
		return fmt.Errorf("reading page title: %w", err)
	}
	if !strings.Contains(actual, expected) {
		return &fault.AssertionError{
			Description: "page title",
			Expected:    expected,
			Actual:      actual,
		}
	}
	return nil
}
