package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/vector"
	"github.com/urfave/cli/v3"
)

func similarCommand(cfg *config) *cli.Command {
	var limit int64

	return &cli.Command{
		Name:      "similar",
		Usage:     "Find expenses semantically similar to a description",
		ArgsUsage: "<description>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "Max results",
				Value:       5,
				Destination: &limit,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return goerr.New("description is required")
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			index, err := cfg.newIndex(ctx)
			if err != nil {
				return err
			}
			defer index.Close()

			embedding, err := gemini.Embedding(ctx, query)
			if err != nil {
				return err
			}

			matches, err := index.Search(ctx, embedding, int(limit), nil)
			if err != nil {
				return err
			}

			printMatches(matches)
			return nil
		},
	}
}

func printMatches(matches []*vector.Match) {
	if len(matches) == 0 {
		fmt.Println("no similar expenses found")
		return
	}
	for _, m := range matches {
		fmt.Printf("%.3f  %s  %s  %10.2f  %-13s  %s\n",
			m.Score, m.Point.ID, m.Point.Payload.Date, m.Point.Payload.Amount,
			m.Point.Payload.Category, m.Point.Payload.Description)
	}
}
