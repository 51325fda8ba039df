package vector_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/vector"
)

func setupIndex(t *testing.T, dim int) vector.Index {
	t.Helper()

	idx, err := vector.NewSQLite(context.Background(), filepath.Join(t.TempDir(), "vectors.db"), dim)
	gt.NoError(t, err)
	t.Cleanup(func() {
		gt.NoError(t, idx.Close())
	})

	return idx
}

func point(id string, embedding []float32, category model.Category, desc string) *vector.Point {
	return &vector.Point{
		ID:        model.ExpenseID(id),
		Embedding: embedding,
		Payload: vector.Payload{
			Date:        "2025-06-15",
			Amount:      10,
			Category:    category,
			Description: desc,
		},
	}
}

func TestUpsertAndSearch(t *testing.T) {
	idx := setupIndex(t, 3)
	ctx := context.Background()

	gt.NoError(t, idx.Upsert(ctx, point("a", []float32{1, 0, 0}, model.CategoryFood, "lunch")))
	gt.NoError(t, idx.Upsert(ctx, point("b", []float32{0, 1, 0}, model.CategoryTransport, "train")))
	gt.NoError(t, idx.Upsert(ctx, point("c", []float32{0.9, 0.1, 0}, model.CategoryFood, "dinner")))

	matches, err := idx.Search(ctx, []float32{1, 0, 0}, 10, nil)
	gt.NoError(t, err)
	gt.A(t, matches).Length(3)

	// Descending similarity: exact match first, orthogonal vector last
	gt.Equal(t, matches[0].Point.ID, model.ExpenseID("a"))
	gt.Equal(t, matches[1].Point.ID, model.ExpenseID("c"))
	gt.Equal(t, matches[2].Point.ID, model.ExpenseID("b"))
	gt.True(t, matches[0].Score > matches[1].Score)
	gt.True(t, matches[1].Score > matches[2].Score)
	gt.True(t, matches[0].Score > 0.999)
}

func TestUpsertReplaces(t *testing.T) {
	idx := setupIndex(t, 3)
	ctx := context.Background()

	gt.NoError(t, idx.Upsert(ctx, point("a", []float32{1, 0, 0}, model.CategoryFood, "first")))

	// Same id again: the point is replaced, not duplicated
	gt.NoError(t, idx.Upsert(ctx, point("a", []float32{0, 1, 0}, model.CategoryTravel, "second")))
	gt.NoError(t, idx.Upsert(ctx, point("a", []float32{0, 1, 0}, model.CategoryTravel, "second")))

	matches, err := idx.Search(ctx, []float32{0, 1, 0}, 10, nil)
	gt.NoError(t, err)
	gt.A(t, matches).Length(1)
	gt.Equal(t, matches[0].Point.Payload.Description, "second")
	gt.Equal(t, matches[0].Point.Payload.Category, model.CategoryTravel)
}

func TestSearchFilterAndLimit(t *testing.T) {
	idx := setupIndex(t, 3)
	ctx := context.Background()

	gt.NoError(t, idx.Upsert(ctx, point("a", []float32{1, 0, 0}, model.CategoryFood, "lunch")))
	gt.NoError(t, idx.Upsert(ctx, point("b", []float32{0.9, 0.1, 0}, model.CategoryFood, "dinner")))
	gt.NoError(t, idx.Upsert(ctx, point("c", []float32{1, 0, 0}, model.CategoryTransport, "train")))

	matches, err := idx.Search(ctx, []float32{1, 0, 0}, 10, &vector.Filter{Category: model.CategoryFood})
	gt.NoError(t, err)
	gt.A(t, matches).Length(2)
	for _, m := range matches {
		gt.Equal(t, m.Point.Payload.Category, model.CategoryFood)
	}

	limited, err := idx.Search(ctx, []float32{1, 0, 0}, 1, nil)
	gt.NoError(t, err)
	gt.A(t, limited).Length(1)
	gt.Equal(t, limited[0].Point.ID, model.ExpenseID("a"))
}

func TestDimensionMismatch(t *testing.T) {
	idx := setupIndex(t, 3)
	ctx := context.Background()

	gt.Error(t, idx.Upsert(ctx, point("a", []float32{1, 0}, model.CategoryFood, "")))

	_, err := idx.Search(ctx, []float32{1, 0, 0, 0}, 10, nil)
	gt.Error(t, err)
}

func TestSearchEmptyIndex(t *testing.T) {
	idx := setupIndex(t, 3)

	matches, err := idx.Search(context.Background(), []float32{1, 0, 0}, 5, nil)
	gt.NoError(t, err)
	gt.A(t, matches).Length(0)
}
