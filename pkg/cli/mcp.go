package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/kakeibo/pkg/service/mcpserv"
	"github.com/m-mizutani/kakeibo/pkg/usecase/assistant"
	"github.com/urfave/cli/v3"
)

func mcpCommand(cfg *config) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the expense tools over MCP stdio",
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			uc.Start(ctx)
			defer uc.Close()

			return mcpserv.Serve(ctx, uc.Registry())
		},
	}
}

func toolsCommand(cfg *config) *cli.Command {
	return &cli.Command{
		Name:  "tools",
		Usage: "Print the capability manifest as JSON",
		Action: func(ctx context.Context, c *cli.Command) error {
			// The manifest is static; no classifier or store access is needed
			registry, err := assistant.NewRegistry(assistant.NewInput{})
			if err != nil {
				return err
			}

			body, err := json.MarshalIndent(registry.Manifest(), "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(body))
			return nil
		},
	}
}
