package cli

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func addCommand(cfg *config) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Record one expense from a natural language description",
		ArgsUsage: "<description>",
		Action: func(ctx context.Context, c *cli.Command) error {
			input := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(input) == "" {
				return goerr.New("description is required")
			}

			uc, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			uc.Start(ctx)
			defer uc.Close()

			resp, err := uc.HandleMessage(ctx, input)
			if err != nil {
				return err
			}

			for _, r := range resp.Results {
				if r.Result != nil && r.Result.Record != nil {
					printExpense(r.Result.Record)
					return nil
				}
			}
			return goerr.New("no expense was recorded, rephrase with an amount",
				goerr.V("input", input))
		},
	}
}
