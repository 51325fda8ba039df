package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/tool"
	"github.com/m-mizutani/kakeibo/pkg/usecase/assistant"
	"github.com/urfave/cli/v3"
)

func budgetCommand(cfg *config) *cli.Command {
	return &cli.Command{
		Name:      "budget",
		Usage:     "Check spending against the configured budgets",
		ArgsUsage: "[category]",
		Action: func(ctx context.Context, c *cli.Command) error {
			budgets, err := cfg.loadBudgets()
			if err != nil {
				return err
			}
			if len(budgets) == 0 {
				return goerr.New("no budgets configured, pass --budgets with a YAML file")
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			registry, err := assistant.NewRegistry(assistant.NewInput{
				Repo:    repo,
				Budgets: budgets,
			})
			if err != nil {
				return err
			}
			def, err := registry.Resolve("check_budget")
			if err != nil {
				return err
			}

			var categories []model.Category
			if c.Args().Len() > 0 {
				categories = append(categories, model.NormalizeCategory(c.Args().First()))
			} else {
				for category := range budgets {
					categories = append(categories, category)
				}
				sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
			}

			for _, category := range categories {
				args, err := tool.Validate(def, map[string]any{"category": string(category)})
				if err != nil {
					return err
				}
				result, err := def.Handler(ctx, args)
				if err != nil {
					return err
				}
				fmt.Println(result.Message)
			}
			return nil
		},
	}
}
