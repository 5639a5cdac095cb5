package step

import (
	"github.com/vinetool/vine/internal/config"
	"github.com/vinetool/vine/internal/fixture"
)

// Bundle owns the resources shared by the whole run and stamps out the step
// wiring for each scenario. godog initializes scenarios concurrently when
// concurrency > 1, so everything mutable lives in per-scenario Units; only
// the config, fixture data and the database pool are shared.
type Bundle struct {
	cfg  *config.Config
	data *fixture.Data

	db *DB
}

// NewBundle prepares the step bundle for a run.
func NewBundle(cfg *config.Config, data *fixture.Data) *Bundle {
	b := &Bundle{cfg: cfg, data: data}
	if cfg.DatabaseURL != "" {
		b.db = NewDB(cfg)
	}
	return b
}

// Unit is one scenario's step wiring: its own Scenario state, handlers and
// registry, so a page handle bound to one scenario is never visible to
// another. API and database categories are registered only when their
// backing resource is configured.
type Unit struct {
	Scenario *Scenario
	Registry *Registry

	api *API
}

// NewUnit builds the step wiring for a single scenario.
func (b *Bundle) NewUnit() *Unit {
	sc := NewScenario(b.cfg, b.data)
	reg := NewRegistry()

	reg.AddCategory(NewNavigation(sc).Steps())
	reg.AddCategory(NewInteraction(sc).Steps())
	reg.AddCategory(NewAssertion(sc).Steps())
	reg.AddCategory(NewLogin(sc).Steps())
	reg.AddCategory(NewDashboard(sc).Steps())

	u := &Unit{Scenario: sc, Registry: reg}

	if b.cfg.APIBaseURL != "" {
		u.api = NewAPI(sc)
		reg.AddCategory(u.api.Steps())
	}
	if b.db != nil {
		reg.AddCategory(b.db.Steps())
	}
	return u
}

// Start opens backing resources that live for the whole suite.
func (b *Bundle) Start() error {
	if b.db != nil {
		return b.db.Open()
	}
	return nil
}

// Stop releases suite-wide resources.
func (b *Bundle) Stop() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
