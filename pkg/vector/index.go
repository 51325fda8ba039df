package vector

import (
	"context"

	"github.com/m-mizutani/kakeibo/pkg/model"
)

// Payload is the subset of expense fields carried alongside an embedding.
// The index holds a weak back-reference by id; it never owns record lifetime.
type Payload struct {
	Date        string         `json:"date"`
	Amount      float64        `json:"amount"`
	Category    model.Category `json:"category"`
	Description string         `json:"description"`
}

// Point is one embedded record. Exactly one point exists per expense id:
// upsert replaces, never appends.
type Point struct {
	ID        model.ExpenseID `json:"id"`
	Embedding []float32       `json:"embedding"`
	Payload   Payload         `json:"payload"`
}

// Filter restricts a search to an exact match on one payload field
type Filter struct {
	Category model.Category
}

// Match is a search hit. Score is cosine similarity: higher means more
// similar. Relevance cutoffs are the caller's policy, not the index's.
type Match struct {
	Point *Point  `json:"point"`
	Score float64 `json:"score"`
}

// Index defines the vector similarity store
type Index interface {
	// Upsert stores a point, replacing any existing point with the same id
	Upsert(ctx context.Context, p *Point) error

	// Search returns up to limit matches ordered by descending similarity
	Search(ctx context.Context, embedding []float32, limit int, filter *Filter) ([]*Match, error)

	Close() error
}
