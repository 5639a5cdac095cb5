package command

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/vinetool/vine/internal/artifacts"
)

var runsCommand = &cli.Command{
	Name:  "runs",
	Usage: "List stored test runs and their logs",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "dir",
			Usage: "root directory holding the reports",
			Value: ".",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output in JSON format",
		},
	},
	Action: runRuns,
}

func runRuns(ctx *cli.Context) error {
	runs, err := artifacts.ListRuns(ctx.String("dir"))
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if ctx.Bool("json") {
		output, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if len(runs) == 0 {
		fmt.Println(helpStyle.Render("No stored runs, `vine run` creates one."))
		return nil
	}

	for _, run := range runs {
		fmt.Println()
		fmt.Println(subtitleStyle.Render(run.Name))
		for _, l := range run.Logs {
			fmt.Printf("  %s  %s (%d bytes)\n", selectedStyle.Render(l.Name), l.Path, l.Size)
		}
	}
	fmt.Println()
	return nil
}
