package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/usecase/assistant"
	"github.com/urfave/cli/v3"
)

func chatCommand(cfg *config) *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Interactive expense assistant",
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}
			uc.Start(ctx)
			defer uc.Close()

			rl, err := readline.New("kakeibo> ")
			if err != nil {
				return goerr.Wrap(err, "failed to initialize readline")
			}
			defer rl.Close()

			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt || err == io.EOF {
					return nil
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				input := strings.TrimSpace(line)
				if input == "" {
					continue
				}
				if input == "exit" || input == "quit" {
					return nil
				}

				sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				sp.Suffix = " thinking..."
				sp.Start()
				resp, err := uc.HandleMessage(ctx, input)
				sp.Stop()

				if err != nil {
					fmt.Printf("error: %v\n", err)
					continue
				}

				printResponse(resp)
			}
		},
	}
}

func askCommand(cfg *config) *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask a single question or record a single expense",
		ArgsUsage: "<message>",
		Action: func(ctx context.Context, c *cli.Command) error {
			input := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(input) == "" {
				return goerr.New("message is required")
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

			printResponse(resp)
			return nil
		},
	}
}

func printResponse(resp *assistant.Response) {
	if resp.Message != "" {
		fmt.Println(resp.Message)
	}

	for _, r := range resp.Results {
		if r.Result == nil || len(r.Result.Rows) == 0 {
			continue
		}
		body, err := json.MarshalIndent(r.Result.Rows, "", "  ")
		if err != nil {
			continue
		}
		fmt.Printf("[%s]\n%s\n", r.Tool, body)
	}
}
