package runner

import (
	"github.com/cucumber/godog"

	"github.com/vinetool/vine/internal/page"
)

// SessionManager abstracts browser.Session for testing.
type SessionManager interface {
	OpenPage() (page.Driver, error)
	ClosePage(d page.Driver) error
	CloseAll() error
}

// ScenarioContext abstracts godog.ScenarioContext for testing.
type ScenarioContext interface {
	Before(h godog.BeforeScenarioHook)
	After(h godog.AfterScenarioHook)
	Step(expr interface{}, stepFunc interface{})
}
