// Package runner drives a godog suite against the browser: it owns the
// scenario lifecycle hooks that bind a fresh page to each scenario, capture
// screenshots and tear the session down when the run ends.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog/log"

	"github.com/vinetool/vine/internal/artifacts"
	"github.com/vinetool/vine/internal/browser"
	"github.com/vinetool/vine/internal/config"
	"github.com/vinetool/vine/internal/fixture"
	_ "github.com/vinetool/vine/internal/formatter" // register the vine format
	"github.com/vinetool/vine/internal/page"
	"github.com/vinetool/vine/internal/step"
)

// Options adjusts runner behavior beyond what the suite file carries.
type Options struct {
	Format string // override the suite's output format
	OutDir string // root for screenshots and run artifacts, defaults to "."
}

// Runner executes the feature suite.
type Runner struct {
	cfg           *config.Config
	suite         *config.Suite
	bundle        *step.Bundle
	session       SessionManager
	opts          Options
	scenarioRegex *regexp.Regexp
}

// New creates a runner backed by a real playwright session.
func New(cfg *config.Config, suite *config.Suite, data *fixture.Data, opts Options) (*Runner, error) {
	return newRunner(cfg, suite, step.NewBundle(cfg, data), browser.New(cfg), opts)
}

// newRunner is the internal constructor that allows dependency injection for
// testing.
func newRunner(cfg *config.Config, suite *config.Suite, bundle *step.Bundle, session SessionManager, opts Options) (*Runner, error) {
	if opts.OutDir == "" {
		opts.OutDir = "."
	}

	r := &Runner{
		cfg:     cfg,
		suite:   suite,
		bundle:  bundle,
		session: session,
		opts:    opts,
	}

	if suite.Scenario != "" {
		regex, err := regexp.Compile(suite.Scenario)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario filter regex: %w", err)
		}
		r.scenarioRegex = regex
		log.Info().Str("pattern", suite.Scenario).Msg("scenario filter active")
	}

	return r, nil
}

// Run executes all features and tears the browser session down afterwards.
// Formatter output is mirrored into the run directory so every stored run
// keeps its own suite log.
func (r *Runner) Run(ctx context.Context) error {
	if err := config.EnsureDirs(r.opts.OutDir); err != nil {
		return err
	}

	run, err := artifacts.NewRun(r.opts.OutDir)
	if err != nil {
		return err
	}
	suiteLog, err := run.CreateLogFile("suite")
	if err != nil {
		return fmt.Errorf("creating suite log: %w", err)
	}
	defer suiteLog.Close()

	if err := r.bundle.Start(); err != nil {
		return fmt.Errorf("starting step resources: %w", err)
	}
	defer func() {
		if err := r.bundle.Stop(); err != nil {
			log.Warn().Err(err).Msg("stopping step resources")
		}
	}()
	defer func() {
		if err := r.session.CloseAll(); err != nil {
			log.Warn().Err(err).Msg("closing browser session")
		}
	}()

	format := r.suite.Format
	if r.opts.Format != "" {
		format = r.opts.Format
	}

	// godog takes a shuffle seed; -1 asks it to pick one.
	var seed int64
	if r.suite.Randomize {
		seed = -1
	}

	opts := &godog.Options{
		Format:         format,
		Paths:          r.suite.Paths,
		Tags:           r.suite.Tags,
		StopOnFailure:  r.suite.FailFast,
		Randomize:      seed,
		Concurrency:    r.suite.Concurrency,
		Strict:         true,
		Output:         io.MultiWriter(os.Stdout, suiteLog),
		DefaultContext: ctx,
	}

	log.Debug().
		Strs("paths", r.suite.Paths).
		Str("format", format).
		Str("browser", r.cfg.Browser).
		Str("run_dir", run.Dir).
		Msg("starting suite")

	suite := godog.TestSuite{
		Name:                "vine",
		ScenarioInitializer: r.initializeScenario,
		Options:             opts,
	}

	status := suite.Run()
	if err := run.WriteLog("result", []byte(fmt.Sprintf("status: %d\n", status))); err != nil {
		log.Warn().Err(err).Msg("writing run result")
	}
	log.Info().Str("dir", run.Dir).Msg("run artifacts stored")

	if status != 0 {
		return fmt.Errorf("tests failed with status %d", status)
	}
	return nil
}

// initializeScenario is invoked by godog once per scenario, concurrently
// when concurrency > 1. Each scenario gets its own step unit so its page
// handle and handler state are never shared with another scenario.
func (r *Runner) initializeScenario(ctx *godog.ScenarioContext) {
	unit := r.bundle.NewUnit()
	r.setupScenarioHooks(ctx, unit)
	unit.Registry.RegisterToGodog(ctx)
}

// setupScenarioHooks installs the before/after hooks. A fresh page opens for
// every scenario so no cookies, storage or navigation state leaks between
// them; the browser process itself is shared across the run.
func (r *Runner) setupScenarioHooks(ctx ScenarioContext, unit *step.Unit) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if r.scenarioRegex != nil && !r.scenarioRegex.MatchString(sc.Name) {
			log.Info().Str("scenario", sc.Name).Msg("skipping scenario (does not match filter)")
			return ctx, godog.ErrSkip
		}

		d, err := r.session.OpenPage()
		if err != nil {
			return ctx, err
		}
		unit.Scenario.Bind(sc.Name, d)

		log.Debug().Str("scenario", sc.Name).Msg("scenario started")
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, scErr error) (context.Context, error) {
		d, err := unit.Scenario.Driver()
		if err != nil {
			// Scenario was skipped before a page was bound.
			return ctx, nil
		}

		if r.shouldScreenshot(scErr) {
			path := artifacts.ScreenshotPath(r.opts.OutDir, sc.Name)
			if shotErr := page.New(d).Screenshot(path); shotErr != nil {
				log.Warn().Err(shotErr).Str("scenario", sc.Name).Msg("capturing screenshot")
			} else {
				log.Info().Str("path", path).Msg("screenshot saved")
			}
		}

		if closeErr := r.session.ClosePage(d); closeErr != nil {
			log.Warn().Err(closeErr).Str("scenario", sc.Name).Msg("closing page")
		}

		// Recordings of passing scenarios are pruned in retain-on-failure
		// mode. The video is only finalized once the page is closed.
		if r.cfg.Video == config.VideoRetainOnFailure && scErr == nil {
			if v := d.Video(); v != nil {
				if delErr := v.Delete(); delErr != nil {
					log.Warn().Err(delErr).Str("scenario", sc.Name).Msg("pruning video")
				}
			}
		}

		unit.Scenario.Clear()
		return ctx, nil
	})
}

func (r *Runner) shouldScreenshot(scErr error) bool {
	switch r.cfg.Screenshot {
	case config.ScreenshotOn:
		return true
	case config.ScreenshotOnlyOnFailure:
		return scErr != nil
	default:
		return false
	}
}
