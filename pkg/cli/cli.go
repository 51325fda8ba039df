package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/kakeibo/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	var cfg config

	cmd := &cli.Command{
		Name:  "kakeibo",
		Usage: "Natural language expense tracking assistant",
		Flags: append(globalFlags(&cfg), geminiFlags(&cfg)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger := logging.New(cfg.logLevel, os.Stderr)
			return logging.With(ctx, logger), nil
		},
		Commands: []*cli.Command{
			chatCommand(&cfg),
			askCommand(&cfg),
			addCommand(&cfg),
			listCommand(&cfg),
			showCommand(&cfg),
			similarCommand(&cfg),
			budgetCommand(&cfg),
			importCommand(&cfg),
			toolsCommand(&cfg),
			mcpCommand(&cfg),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		logging.From(ctx).Error("command failed", "error", err)
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
