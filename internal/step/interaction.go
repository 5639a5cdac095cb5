package step

import "fmt"

// Interaction provides the steps that act on page elements.
type Interaction struct {
	sc *Scenario
}

// NewInteraction creates the interaction step handler.
func NewInteraction(sc *Scenario) *Interaction {
	return &Interaction{sc: sc}
}

// Steps returns the interaction step definitions.
func (h *Interaction) Steps() Category {
	return Category{
		Name:        "Interaction",
		Description: "Steps for clicking, hovering and scrolling",
		Steps: []Def{
			{
				Group:       "Click",
				Pattern:     `^I click on "([^"]*)"$`,
				Description: "Click an element by its visible text",
				Example:     `I click on "Submit"`,
				Handler:     h.clickText,
			},
			{
				Group:       "Click",
				Pattern:     `^I click the link "([^"]*)"$`,
				Description: "Click a link by its text",
				Example:     `I click the link "Profile"`,
				Handler:     h.clickLink,
			},
			{
				Group:       "Click",
				Pattern:     `^I click the button "([^"]*)"$`,
				Description: "Click a button by its text",
				Example:     `I click the button "Load Data"`,
				Handler:     h.clickButton,
			},
			{
				Group:       "Click",
				Pattern:     `^I click the element with id "([^"]*)"$`,
				Description: "Click an element by id",
				Example:     `I click the element with id "login-button"`,
				Handler:     h.clickByID,
			},
			{
				Group:       "Click",
				Pattern:     `^I click the element with class "([^"]*)"$`,
				Description: "Click an element by class",
				Example:     `I click the element with class "user-menu"`,
				Handler:     h.clickByClass,
			},
			{
				Group:       "Pointer",
				Pattern:     `^I hover over "([^"]*)"$`,
				Description: "Hover over an element by its visible text",
				Example:     `I hover over "Settings"`,
				Handler:     h.hover,
			},
			{
				Group:       "Pointer",
				Pattern:     `^I scroll to "([^"]*)"$`,
				Description: "Scroll an element into view by its visible text (hovers it, which also moves the pointer)",
				Example:     `I scroll to "Footer"`,
				Handler:     h.scrollTo,
			},
		},
	}
}

func (h *Interaction) clickText(text string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	return p.Click(fmt.Sprintf("text=%s", text))
}

func (h *Interaction) clickLink(text string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	return p.Click(fmt.Sprintf("a:has-text('%s')", text))
}

func (h *Interaction) clickButton(text string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	return p.Click(fmt.Sprintf("button:has-text('%s')", text))
}

func (h *Interaction) clickByID(id string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	return p.Click("#" + id)
}

func (h *Interaction) clickByClass(class string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	return p.Click("." + class)
}

func (h *Interaction) hover(text string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	return p.Hover(fmt.Sprintf("text=%s", text))
}

// scrollTo relies on hover's actionability checks, which scroll the element
// into view before moving the pointer. The pointer move can trigger hover
// handlers on the target; the step description spells that out.
func (h *Interaction) scrollTo(text string) error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	return p.Hover(fmt.Sprintf("text=%s", text))
}
