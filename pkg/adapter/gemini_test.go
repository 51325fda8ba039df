package adapter_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kakeibo/pkg/adapter"
	"google.golang.org/genai"
)

func setupGemini(t *testing.T, opts ...adapter.GeminiOption) *adapter.GeminiClient {
	projectID := os.Getenv("TEST_GEMINI_PROJECT")
	if projectID == "" {
		t.Skip("TEST_GEMINI_PROJECT is not set")
	}

	client, err := adapter.NewGemini(context.Background(), projectID, "us-central1", opts...)
	gt.NoError(t, err)

	return client
}

func TestGenerateContent(t *testing.T) {
	client := setupGemini(t)
	ctx := context.Background()

	contents := []*genai.Content{
		genai.NewContentFromText("I spent 42.50 on lunch today", genai.RoleUser),
	}

	resp, err := client.GenerateContent(ctx, contents, nil)
	gt.NoError(t, err)

	if resp == nil ||
		len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		t.Fatal("unexpected response")
	}
}

func TestEmbedding(t *testing.T) {
	client := setupGemini(t, adapter.WithEmbeddingDim(768))
	ctx := context.Background()

	embedding, err := client.Embedding(ctx, "lunch at the corner place (food)")
	gt.NoError(t, err)
	gt.A(t, embedding).Length(768)
}
