package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/urfave/cli/v3"
)

func listCommand(cfg *config) *cli.Command {
	var offset, limit int64

	return &cli.Command{
		Name:  "list",
		Usage: "List stored expenses, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "offset",
				Usage:       "Skip count for pagination",
				Destination: &offset,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "Max records to show",
				Value:       20,
				Destination: &limit,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			expenses, err := repo.ListExpenses(ctx, int(offset), int(limit))
			if err != nil {
				return err
			}

			for _, x := range expenses {
				printExpense(x)
			}
			if len(expenses) == 0 {
				fmt.Println("no expenses recorded")
			}
			return nil
		},
	}
}

func showCommand(cfg *config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one expense by ID",
		ArgsUsage: "<expense-id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("expense-id is required")
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			x, err := repo.GetExpense(ctx, model.ExpenseID(c.Args().First()))
			if err != nil {
				return err
			}

			printExpense(x)
			return nil
		},
	}
}

func printExpense(x *model.Expense) {
	fmt.Printf("%s  %s  %10.2f  %-13s  %s\n", x.ID, x.Date, x.Amount, x.Category, x.Description)
}
