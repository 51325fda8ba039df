// Package mcpserv exposes the tool registry over the Model Context Protocol
// so other agents can record and query expenses directly.
package mcpserv

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/tool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// New builds an MCP server carrying every registered tool. The MCP input
// schema is the same capability manifest the intent classifier consumes.
func New(registry *tool.Registry) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "kakeibo",
		Version: "0.1.0",
	}, nil)

	for _, entry := range registry.Manifest() {
		def, err := registry.Resolve(entry.Name)
		if err != nil {
			return nil, err
		}

		server.AddTool(&mcp.Tool{
			Name:        entry.Name,
			Description: entry.Description,
			InputSchema: entry.Schema,
		}, newHandler(def))
	}

	return server, nil
}

// Serve runs the server over stdio until the context is canceled
func Serve(ctx context.Context, registry *tool.Registry) error {
	server, err := New(registry)
	if err != nil {
		return err
	}

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return goerr.Wrap(err, "mcp server failed")
	}
	return nil
}

func newHandler(def *tool.Definition) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArguments(req)
		if err != nil {
			return nil, err
		}

		validated, err := tool.Validate(def, args)
		if err != nil {
			return errorResult(err), nil
		}

		result, err := def.Handler(ctx, validated)
		if err != nil {
			return errorResult(err), nil
		}

		body, err := json.Marshal(result)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode tool result")
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: string(body)},
			},
		}, nil
	}
}

func decodeArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	raw, err := json.Marshal(req.Params.Arguments)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode arguments")
	}

	args := map[string]any{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, goerr.Wrap(err, "failed to decode arguments")
		}
	}
	return args, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: err.Error()},
		},
	}
}
