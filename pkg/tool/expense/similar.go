package expense

import (
	"context"

	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/tool"
	"github.com/m-mizutani/kakeibo/pkg/vector"
)

// minSimilarity is the relevance cutoff for semantic search. Scores are
// cosine similarity (higher is more similar); this is the caller-side policy
// the index itself does not enforce.
const minSimilarity = 0.35

// NewSimilar builds the similar_expenses tool for semantic search over
// expense descriptions.
func NewSimilar(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "similar_expenses",
		Description: "Find expenses semantically similar to a free-form description, e.g. \"eating out with friends\".",
		Params: map[string]tool.Param{
			"query": {
				Type:        tool.TypeString,
				Description: "Free-form description to match against.",
				Required:    true,
			},
			"limit": {
				Type:        tool.TypeInteger,
				Description: "Max results (default: 5).",
				Default:     5,
			},
			"category": {
				Type:        tool.TypeCategory,
				Description: "Restrict matches to one category.",
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			query, _ := args["query"].(string)

			embedding, err := c.Gemini.Embedding(ctx, query)
			if err != nil {
				return nil, err
			}

			limit := 5
			if v, ok := args["limit"].(int); ok && v > 0 {
				limit = v
			}

			var filter *vector.Filter
			if v, ok := args["category"].(string); ok {
				filter = &vector.Filter{Category: model.Category(v)}
			}

			matches, err := c.Index.Search(ctx, embedding, limit, filter)
			if err != nil {
				return nil, err
			}

			rows := make([]map[string]any, 0, len(matches))
			for _, m := range matches {
				if m.Score < minSimilarity {
					continue
				}
				rows = append(rows, map[string]any{
					"id":          string(m.Point.ID),
					"date":        m.Point.Payload.Date,
					"amount":      m.Point.Payload.Amount,
					"category":    string(m.Point.Payload.Category),
					"description": m.Point.Payload.Description,
					"score":       m.Score,
				})
			}

			result := &tool.Result{Tool: "similar_expenses", Rows: rows}
			if len(rows) == 0 {
				result.Message = "No similar expenses found."
			}
			return result, nil
		},
	}
}
