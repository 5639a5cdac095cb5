package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/vinetool/vine/internal/config"
	"github.com/vinetool/vine/internal/step"
)

var stepsCommand = &cli.Command{
	Name:  "steps",
	Usage: "List available Gherkin steps",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "Filter steps by keyword",
		},
		&cli.StringFlag{
			Name:    "category",
			Aliases: []string{"c"},
			Usage:   "Filter by category (navigation, interaction, assertion, login, dashboard, api, database)",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output in JSON format",
		},
	},
	Action: runSteps,
}

func runSteps(ctx *cli.Context) error {
	filter := strings.ToLower(ctx.String("filter"))
	catFilter := strings.ToLower(ctx.String("category"))
	jsonOutput := ctx.Bool("json")

	// The listing covers every category, including the conditional ones, so
	// a synthetic config stands in for the environment.
	cfg := &config.Config{APIBaseURL: "-", DatabaseURL: "-"}
	unit := step.NewBundle(cfg, nil).NewUnit()

	var filtered []step.Category
	for _, cat := range unit.Registry.Categories() {
		if catFilter != "" && !strings.HasPrefix(strings.ToLower(cat.Name), catFilter) {
			continue
		}

		var matching []step.Def
		for _, def := range cat.Steps {
			if filter != "" {
				if !strings.Contains(strings.ToLower(def.Description), filter) &&
					!strings.Contains(strings.ToLower(def.Pattern), filter) {
					continue
				}
			}
			matching = append(matching, def)
		}
		if len(matching) == 0 {
			continue
		}

		filtered = append(filtered, step.Category{
			Name:        cat.Name,
			Description: cat.Description,
			Steps:       matching,
		})
	}

	if jsonOutput {
		output, err := json.MarshalIndent(filtered, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	for _, cat := range filtered {
		fmt.Println()
		fmt.Println(subtitleStyle.Render(cat.Name))
		fmt.Println(helpStyle.Render(cat.Description))
		fmt.Println()

		for _, def := range cat.Steps {
			fmt.Printf("  %s\n", selectedStyle.Render(def.Description))
			fmt.Printf("  %s\n", def.Pattern)
			if def.Example != "" {
				fmt.Printf("  %s\n", helpStyle.Render("Example: "+def.Example))
			}
			fmt.Println()
		}
	}

	return nil
}
