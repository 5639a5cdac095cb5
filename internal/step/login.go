package step

import (
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/vinetool/vine/internal/fault"
)

// LoginSteps provides the login-specific step vocabulary.
type LoginSteps struct {
	sc *Scenario
}

// NewLogin creates the login step handler.
func NewLogin(sc *Scenario) *LoginSteps {
	return &LoginSteps{sc: sc}
}

// Steps returns the login step definitions.
func (h *LoginSteps) Steps() Category {
	return Category{
		Name:        "Login",
		Description: "Steps for authenticating through the login page",
		Steps: []Def{
			{
				Group:       "Login",
				Pattern:     `^I am on the login page$`,
				Description: "Open the login page",
				Handler:     h.onLoginPage,
			},
			{
				Group:       "Login",
				Pattern:     `^I enter username "([^"]*)" and password "([^"]*)"$`,
				Description: "Fill the credential fields without submitting",
				Example:     `I enter username "alice" and password "secret"`,
				Handler:     h.enterCredentials,
			},
			{
				Group:       "Login",
				Pattern:     `^I click the login button$`,
				Description: "Submit the login form",
				Handler:     h.clickLoginButton,
			},
			{
				Group:       "Login",
				Pattern:     `^I log in as the default user$`,
				Description: "Authenticate with the configured test credentials",
				Handler:     h.loginDefault,
			},
			{
				Group:       "Login",
				Pattern:     `^I log in as the admin user$`,
				Description: "Authenticate with the configured admin credentials",
				Handler:     h.loginAdmin,
			},
			{
				Group:       "Login",
				Pattern:     `^I log in as "([^"]*)"$`,
				Description: "Authenticate with a named credential set from test data",
				Example:     `I log in as "valid_user"`,
				Handler:     h.loginNamed,
			},
			{
				Group:       "Login assertions",
				Pattern:     `^I should see an error message "([^"]*)"$`,
				Description: "Assert the login error banner contains the message",
				Example:     `I should see an error message "Invalid credentials"`,
				Handler:     h.shouldSeeError,
			},
			{
				Group:       "Login assertions",
				Pattern:     `^I should be successfully logged in$`,
				Description: "Assert the browser lands on the dashboard",
				Handler:     h.loggedIn,
			},
		},
	}
}

func (h *LoginSteps) onLoginPage() error {
	p, err := h.sc.Page()
	if err != nil {
		return err
	}
	if err := p.Navigate(h.sc.PageURL("login")); err != nil {
		return err
	}
	return p.WaitForLoad()
}

// enterCredentials only fills the fields; the submit is its own step, so the
// pair must not click the login button twice.
func (h *LoginSteps) enterCredentials(username, password string) error {
	lp, err := h.sc.LoginPage()
	if err != nil {
		return err
	}
	return lp.EnterCredentials(username, password)
}

func (h *LoginSteps) clickLoginButton() error {
	lp, err := h.sc.LoginPage()
	if err != nil {
		return err
	}
	return lp.Submit()
}

func (h *LoginSteps) loginAs(username, password string) error {
	lp, err := h.sc.LoginPage()
	if err != nil {
		return err
	}
	return lp.Login(username, password)
}

func (h *LoginSteps) loginDefault() error {
	return h.loginAs(h.sc.Config.Username, h.sc.Config.Password)
}

func (h *LoginSteps) loginAdmin() error {
	return h.loginAs(h.sc.Config.AdminUsername, h.sc.Config.AdminPassword)
}

func (h *LoginSteps) loginNamed(name string) error {
	creds, err := h.sc.Data.User(name)
	if err != nil {
		return err
	}
	return h.loginAs(creds.Username, creds.Password)
}

func (h *LoginSteps) shouldSeeError(expected string) error {
	lp, err := h.sc.LoginPage()
	if err != nil {
		return err
	}
	actual, err := lp.ErrorMessage()
	if err != nil {
		return err
	}
	if !strings.Contains(actual, expected) {
		return &fault.AssertionError{
			Description: "login error message",
			Expected:    expected,
			Actual:      actual,
		}
	}
	return nil
}

func (h *LoginSteps) loggedIn() error {
	d, err := h.sc.Driver()
	if err != nil {
		return err
	}
	err = d.WaitForURL("**/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	})
	if err != nil {
		return &fault.AssertionError{
			Description: "logged-in redirect",
			Expected:    "/dashboard",
			Actual:      d.URL(),
		}
	}
	if !strings.Contains(d.URL(), "/dashboard") {
		return &fault.AssertionError{
			Description: "logged-in redirect",
			Expected:    "/dashboard",
			Actual:      d.URL(),
		}
	}
	return nil
}
