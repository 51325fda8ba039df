package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS expenses (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	amount REAL NOT NULL,
	category TEXT NOT NULL,
	description TEXT
);
CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses (date);
CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses (category);
`

// sqliteRepo implements Repository on a local SQLite database. WAL mode keeps
// analytic reads from blocking concurrent record creation.
type sqliteRepo struct {
	db *sql.DB
}

// NewSQLite opens (and initializes if needed) a SQLite backed repository
func NewSQLite(ctx context.Context, path string) (Repository, error) {
	// Pragmas go in the DSN so every pooled connection gets them
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to open database", goerr.V("path", path), goerr.V("cause", err.Error()))
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to initialize schema", goerr.V("cause", err.Error()))
	}

	return &sqliteRepo{db: db}, nil
}

func (r *sqliteRepo) PutExpense(ctx context.Context, x *model.Expense) error {
	if err := x.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO expenses (id, date, amount, category, description) VALUES (?, ?, ?, ?, ?)",
		string(x.ID), x.Date, x.Amount, string(x.Category), x.Description,
	)
	if err != nil {
		return goerr.Wrap(model.ErrStoreUnavailable, "failed to insert expense", goerr.V("id", x.ID), goerr.V("cause", err.Error()))
	}

	return nil
}

func (r *sqliteRepo) GetExpense(ctx context.Context, id model.ExpenseID) (*model.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, date, amount, category, description FROM expenses WHERE id = ?",
		string(id),
	)

	x, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, goerr.New("expense not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to get expense", goerr.V("id", id), goerr.V("cause", err.Error()))
	}

	return x, nil
}

func (r *sqliteRepo) ListExpenses(ctx context.Context, offset, limit int) ([]*model.Expense, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, date, amount, category, description FROM expenses ORDER BY date DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to list expenses", goerr.V("cause", err.Error()))
	}
	defer rows.Close()

	return collectExpenses(rows)
}

func (r *sqliteRepo) SearchExpenses(ctx context.Context, input *SearchInput) ([]*model.Expense, error) {
	var conds []string
	var args []any

	if input.Date != nil {
		conds = append(conds, "date = ?")
		args = append(args, *input.Date)
	}
	if input.From != nil && input.To != nil {
		conds = append(conds, "date BETWEEN ? AND ?")
		args = append(args, *input.From, *input.To)
	}
	if input.Amount != nil {
		conds = append(conds, "amount = ?")
		args = append(args, *input.Amount)
	}
	if input.Category != nil {
		conds = append(conds, "LOWER(category) = ?")
		args = append(args, strings.ToLower(string(*input.Category)))
	}

	query := "SELECT id, date, amount, category, description FROM expenses"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date DESC"

	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, input.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to search expenses", goerr.V("cause", err.Error()))
	}
	defer rows.Close()

	return collectExpenses(rows)
}

func (r *sqliteRepo) QueryRows(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to run query", goerr.V("cause", err.Error()))
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to read columns", goerr.V("cause", err.Error()))
	}

	var result []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to scan row", goerr.V("cause", err.Error()))
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to iterate rows", goerr.V("cause", err.Error()))
	}

	return result, nil
}

func (r *sqliteRepo) Close() error {
	if err := r.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (*model.Expense, error) {
	var x model.Expense
	var desc sql.NullString
	if err := s.Scan(&x.ID, &x.Date, &x.Amount, &x.Category, &desc); err != nil {
		return nil, err
	}
	x.Description = desc.String
	return &x, nil
}

func collectExpenses(rows *sql.Rows) ([]*model.Expense, error) {
	var result []*model.Expense
	for rows.Next() {
		x, err := scanExpense(rows)
		if err != nil {
			return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to scan expense", goerr.V("cause", err.Error()))
		}
		result = append(result, x)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to iterate expenses", goerr.V("cause", err.Error()))
	}
	return result, nil
}
