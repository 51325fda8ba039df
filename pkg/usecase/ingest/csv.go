package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/repository"
	"github.com/m-mizutani/kakeibo/pkg/utils/logging"
)

var expectedHeader = []string{"id", "date", "amount", "category", "description"}

// Enqueuer schedules a vector index upsert for an imported record
type Enqueuer interface {
	Enqueue(*model.Expense)
}

// UseCase bulk-imports expense records from CSV
type UseCase struct {
	repo  repository.Repository
	queue Enqueuer
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithEnqueuer also schedules embedding upserts for each imported record
func WithEnqueuer(q Enqueuer) Option {
	return func(u *UseCase) {
		u.queue = q
	}
}

// New creates an ingest UseCase
func New(repo repository.Repository, opts ...Option) *UseCase {
	u := &UseCase{repo: repo}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Summary reports the outcome of one import
type Summary struct {
	Imported int
	Skipped  int
	Failed   int
}

// ImportCSV reads records in the canonical five-column shape and persists
// them. The id is the natural key: rows whose id already exists are skipped,
// never overwritten, so re-importing the same file is safe.
func (u *UseCase) ImportCSV(ctx context.Context, r io.Reader) (*Summary, error) {
	logger := logging.From(ctx)
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read CSV header")
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	summary := &Summary{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read CSV row", goerr.V("line", line))
		}

		x, err := parseRow(record)
		if err != nil {
			logger.Warn("skipping malformed row", "line", line, "error", err)
			summary.Failed++
			continue
		}

		// Only a store failure aborts the import; a missing id just means
		// the row is new and gets inserted below.
		existing, err := u.repo.GetExpense(ctx, x.ID)
		if err != nil && errors.Is(err, model.ErrStoreUnavailable) {
			return nil, goerr.Wrap(err, "failed to check for existing row", goerr.V("line", line), goerr.V("id", x.ID))
		}
		if existing != nil {
			summary.Skipped++
			continue
		}

		if err := u.repo.PutExpense(ctx, x); err != nil {
			return nil, goerr.Wrap(err, "failed to persist row", goerr.V("line", line), goerr.V("id", x.ID))
		}
		summary.Imported++

		if u.queue != nil {
			u.queue.Enqueue(x)
		}
	}

	return summary, nil
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return goerr.New("unexpected CSV header", goerr.V("header", header))
	}
	for i, name := range expectedHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != name {
			return goerr.New("unexpected CSV column", goerr.V("column", header[i]), goerr.V("want", name))
		}
	}
	return nil
}

func parseRow(record []string) (*model.Expense, error) {
	if len(record) != len(expectedHeader) {
		return nil, goerr.New("unexpected column count", goerr.V("count", len(record)))
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return nil, goerr.Wrap(model.ErrInvalidParameter, "amount is not numeric", goerr.V("amount", record[2]))
	}

	date, err := model.ParseDate(strings.TrimSpace(record[1]))
	if err != nil {
		return nil, err
	}

	x := &model.Expense{
		ID:          model.ExpenseID(strings.ToLower(strings.TrimSpace(record[0]))),
		Date:        date,
		Amount:      amount,
		Category:    model.NormalizeCategory(record[3]),
		Description: strings.ToLower(strings.TrimSpace(record[4])),
	}
	if err := x.Validate(); err != nil {
		return nil, err
	}

	return x, nil
}
