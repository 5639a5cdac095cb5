package step

import (
	"fmt"
	"strings"

	"github.com/vinetool/vine/internal/config"
	"github.com/vinetool/vine/internal/fixture"
	"github.com/vinetool/vine/internal/page"
)

// Scenario is the per-scenario context every handler works against: the run
// configuration, fixture data and the page objects bound to the scenario's
// page handle. The runner rebinds it at scenario start and clears it at
// teardown; nothing here outlives a scenario except the config and data
// references.
type Scenario struct {
	Config *config.Config
	Data   *fixture.Data
	Name   string

	driver    page.Driver
	base      *page.Page
	login     *page.Login
	dashboard *page.Dashboard
}

// NewScenario creates the context shell shared by all handlers for the run.
func NewScenario(cfg *config.Config, data *fixture.Data) *Scenario {
	return &Scenario{Config: cfg, Data: data}
}

// Bind attaches a fresh page handle at scenario start.
func (s *Scenario) Bind(name string, d page.Driver) {
	s.Name = name
	s.driver = d
	s.base = page.New(d)
	s.login = page.NewLogin(d)
	s.dashboard = page.NewDashboard(d)
}

// Clear detaches the page handle at scenario teardown.
func (s *Scenario) Clear() {
	s.Name = ""
	s.driver = nil
	s.base = nil
	s.login = nil
	s.dashboard = nil
}

// Driver returns the scenario's page handle.
func (s *Scenario) Driver() (page.Driver, error) {
	if s.driver == nil {
		return nil, fmt.Errorf("no page is open for this scenario")
	}
	return s.driver, nil
}

// Page returns the base page object.
func (s *Scenario) Page() (*page.Page, error) {
	if s.base == nil {
		return nil, fmt.Errorf("no page is open for this scenario")
	}
	return s.base, nil
}

// LoginPage returns the login page object.
func (s *Scenario) LoginPage() (*page.Login, error) {
	if s.login == nil {
		return nil, fmt.Errorf("no page is open for this scenario")
	}
	return s.login, nil
}

// DashboardPage returns the dashboard page object.
func (s *Scenario) DashboardPage() (*page.Dashboard, error) {
	if s.dashboard == nil {
		return nil, fmt.Errorf("no page is open for this scenario")
	}
	return s.dashboard, nil
}

// PageURL resolves a logical page name ("login", "dashboard", ...) to a full
// URL under the configured base URL. Fixture URLs take precedence.
func (s *Scenario) PageURL(name string) string {
	key := strings.ToLower(name)
	if s.Data != nil {
		if u, err := s.Data.URL(key); err == nil {
			return u
		}
	}
	return s.Config.BaseURL + pagePath(key)
}

// pagePath maps logical page names to URL paths. "home" is the site root;
// every other name maps to a top-level path of the same name.
func pagePath(name string) string {
	if name == "home" {
		return ""
	}
	return "/" + name
}

// ResolveURL turns a possibly-relative URL into an absolute one.
func (s *Scenario) ResolveURL(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return s.Config.BaseURL + url
}
