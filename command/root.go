// Package command holds the vine CLI: running feature suites, listing steps
// and bootstrapping new projects.
package command

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/vinetool/vine/internal/version"
)

func Run(args []string) error {
	app := &cli.App{
		Name:    "vine",
		Usage:   "Browser testing with Gherkin features",
		Version: version.Version,
		Description: `Vine runs Gherkin feature files against a real browser. It ships a
vocabulary of navigation, interaction and assertion steps, page objects for
the application under test, and screenshot capture on failure.

Configuration comes from the environment (or an env file); the optional
vine.yml shapes which features run and how.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Aliases: []string{"e"},
				Usage:   "environment variable file path",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (trace, debug, info, warn, error)",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			initCommand,
			runCommand,
			runsCommand,
			stepsCommand,
			versionCommand,
		},
	}

	return app.Run(args)
}

// setup loads the env file and configures logging before any command runs.
func setup(ctx *cli.Context) error {
	if envFile := ctx.String("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	level := ctx.String("log-level")
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		level = "info"
	}

	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	return nil
}
