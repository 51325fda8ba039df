package mcpserv_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kakeibo/pkg/repository"
	"github.com/m-mizutani/kakeibo/pkg/service/mcpserv"
	"github.com/m-mizutani/kakeibo/pkg/tool"
	"github.com/m-mizutani/kakeibo/pkg/usecase/assistant"
	"github.com/m-mizutani/kakeibo/pkg/vector"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/genai"
)

type stubGemini struct{}

func (stubGemini) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return &genai.GenerateContentResponse{}, nil
}

func (stubGemini) Embedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func setupRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := repository.NewSQLite(ctx, filepath.Join(dir, "expenses.db"))
	gt.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	idx, err := vector.NewSQLite(ctx, filepath.Join(dir, "vectors.db"), 3)
	gt.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	registry, err := assistant.NewRegistry(assistant.NewInput{
		Repo:   repo,
		Index:  idx,
		Gemini: stubGemini{},
	})
	gt.NoError(t, err)

	return registry
}

func connect(t *testing.T, registry *tool.Registry) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server, err := mcpserv.New(registry)
	gt.NoError(t, err)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	gt.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	gt.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	return session
}

func TestServerListsAllTools(t *testing.T) {
	registry := setupRegistry(t)
	session := connect(t, registry)

	result, err := session.ListTools(context.Background(), nil)
	gt.NoError(t, err)
	gt.Equal(t, len(result.Tools), len(registry.List()))
}

func TestServerCallTool(t *testing.T) {
	registry := setupRegistry(t)
	session := connect(t, registry)
	ctx := context.Background()

	created, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "create_expense",
		Arguments: map[string]any{
			"amount":      42.5,
			"category":    "food",
			"date":        "2025-06-15",
			"description": "lunch",
		},
	})
	gt.NoError(t, err)
	gt.False(t, created.IsError)
	gt.A(t, created.Content).Length(1)

	text, ok := created.Content[0].(*mcp.TextContent)
	gt.True(t, ok)

	var body tool.Result
	gt.NoError(t, json.Unmarshal([]byte(text.Text), &body))
	gt.Equal(t, body.Message, "Record added successfully")
	gt.True(t, body.Record != nil)

	found, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search_expenses",
		Arguments: map[string]any{"category": "food"},
	})
	gt.NoError(t, err)
	gt.False(t, found.IsError)
}

func TestServerCallToolInvalidArguments(t *testing.T) {
	registry := setupRegistry(t)
	session := connect(t, registry)

	// Handler failures surface as tool errors, not protocol errors
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "monthly_summary",
		Arguments: map[string]any{"year": 2025, "month": 13},
	})
	gt.NoError(t, err)
	gt.True(t, result.IsError)
}
