package repository

import (
	"context"

	"github.com/m-mizutani/kakeibo/pkg/model"
)

// SearchInput holds exact-match filters for expense search. Every non-nil
// field becomes a bound query parameter.
type SearchInput struct {
	Date     *string
	From     *string
	To       *string
	Amount   *float64
	Category *model.Category
	Limit    int
	Offset   int
}

// Repository defines the interface for expense record persistence
type Repository interface {
	// PutExpense persists an expense. The id is the natural key: an existing
	// record with the same id is never overwritten.
	PutExpense(ctx context.Context, x *model.Expense) error

	// GetExpense retrieves an expense by ID
	GetExpense(ctx context.Context, id model.ExpenseID) (*model.Expense, error)

	// ListExpenses retrieves expenses ordered by date, newest first
	ListExpenses(ctx context.Context, offset, limit int) ([]*model.Expense, error)

	// SearchExpenses retrieves expenses matching all given filters
	SearchExpenses(ctx context.Context, input *SearchInput) ([]*model.Expense, error)

	// QueryRows executes a read-only parameterized query and returns rows as
	// column name to value mappings. Used by the analytics engine only.
	QueryRows(ctx context.Context, query string, args ...any) ([]map[string]any, error)

	Close() error
}
