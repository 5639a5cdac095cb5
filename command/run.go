package command

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/vinetool/vine/internal/config"
	"github.com/vinetool/vine/internal/fixture"
	"github.com/vinetool/vine/internal/runner"
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Run feature files against the browser",
	ArgsUsage: "[feature paths]",
	Description: `Run executes the Gherkin features. Browser and application settings come
from the environment; vine.yml (if present) shapes the suite. Flags override
both. Paths given as arguments override the suite's paths.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "suite",
			Usage: "suite file path",
			Value: "vine.yml",
		},
		&cli.StringFlag{
			Name:  "data",
			Usage: "test data fixture path",
			Value: "config/test_data.json",
		},
		&cli.StringFlag{
			Name:    "tags",
			Aliases: []string{"t"},
			Usage:   "tag expression, e.g. \"@smoke && !@wip\"",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "output format (pretty, progress, vine, ...)",
		},
		&cli.StringFlag{
			Name:  "scenario",
			Usage: "regex filter on scenario names",
		},
		&cli.BoolFlag{
			Name:  "fail-fast",
			Usage: "stop on the first failure",
		},
		&cli.BoolFlag{
			Name:  "randomize",
			Usage: "run scenarios in a random order",
		},
		&cli.IntFlag{
			Name:  "concurrency",
			Usage: "number of scenarios to run in parallel",
		},
	},
	Action: runRun,
}

func runRun(ctx *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	suite, err := config.LoadSuite(ctx.String("suite"))
	if err != nil {
		return err
	}

	if ctx.Args().Len() > 0 {
		suite.Paths = ctx.Args().Slice()
	}
	if ctx.IsSet("tags") {
		suite.Tags = ctx.String("tags")
	}
	if ctx.IsSet("scenario") {
		suite.Scenario = ctx.String("scenario")
	}
	if ctx.IsSet("fail-fast") {
		suite.FailFast = ctx.Bool("fail-fast")
	}
	if ctx.IsSet("randomize") {
		suite.Randomize = ctx.Bool("randomize")
	}
	if ctx.IsSet("concurrency") {
		suite.Concurrency = ctx.Int("concurrency")
	}

	data, err := fixture.Load(ctx.String("data"))
	if err != nil {
		return fmt.Errorf("loading test data: %w", err)
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("base_url", cfg.BaseURL).
		Str("browser", cfg.Browser).
		Strs("paths", suite.Paths).
		Msg("starting run")

	r, err := runner.New(cfg, suite, data, runner.Options{
		Format: ctx.String("format"),
	})
	if err != nil {
		return err
	}

	return r.Run(ctx.Context)
}
