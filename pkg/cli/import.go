package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/usecase/assistant"
	"github.com/m-mizutani/kakeibo/pkg/usecase/ingest"
	"github.com/urfave/cli/v3"
)

func importCommand(cfg *config) *cli.Command {
	var embed bool

	return &cli.Command{
		Name:      "import",
		Usage:     "Bulk import expenses from a CSV file (id,date,amount,category,description)",
		ArgsUsage: "<csv-file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "embed",
				Usage:       "Also embed each imported record into the vector index",
				Destination: &embed,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("csv-file is required")
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			var opts []ingest.Option
			var queue *assistant.UpsertQueue
			if embed {
				gemini, err := cfg.newGemini(ctx)
				if err != nil {
					return err
				}
				index, err := cfg.newIndex(ctx)
				if err != nil {
					return err
				}
				defer index.Close()

				queue = assistant.NewUpsertQueue(gemini, index)
				queue.Start(ctx)
				opts = append(opts, ingest.WithEnqueuer(queue))
			}

			f, err := os.Open(c.Args().First())
			if err != nil {
				return goerr.Wrap(err, "failed to open CSV file")
			}
			defer f.Close()

			summary, err := ingest.New(repo, opts...).ImportCSV(ctx, f)
			if err != nil {
				return err
			}

			if queue != nil {
				if err := queue.Close(); err != nil {
					return err
				}
			}

			fmt.Printf("imported: %d, skipped: %d, failed: %d\n",
				summary.Imported, summary.Skipped, summary.Failed)
			return nil
		},
	}
}
