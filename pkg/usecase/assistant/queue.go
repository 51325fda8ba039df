package assistant

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/kakeibo/pkg/adapter"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/utils/logging"
	"github.com/m-mizutani/kakeibo/pkg/vector"
	"golang.org/x/sync/errgroup"
)

const (
	queueBuffer  = 64
	maxAttempts  = 3
	retryBackoff = 500 * time.Millisecond
)

// UpsertQueue carries record-to-index embedding jobs off the response path.
// Delivery is at-least-once: a job is retried on failure, and the id-keyed
// replace semantics of the index make duplicate attempts harmless.
type UpsertQueue struct {
	gemini adapter.Gemini
	index  vector.Index

	jobs      chan *model.Expense
	eg        *errgroup.Group
	closeOnce sync.Once
}

// NewUpsertQueue creates a queue. Call Start before enqueueing.
func NewUpsertQueue(gemini adapter.Gemini, index vector.Index) *UpsertQueue {
	return &UpsertQueue{
		gemini: gemini,
		index:  index,
		jobs:   make(chan *model.Expense, queueBuffer),
	}
}

// Start launches the worker. The worker deliberately detaches from the
// request context: an enqueued job outlives the request that created it.
func (q *UpsertQueue) Start(ctx context.Context) {
	workCtx := context.WithoutCancel(ctx)

	q.eg = &errgroup.Group{}
	q.eg.Go(func() error {
		for x := range q.jobs {
			q.process(workCtx, x)
		}
		return nil
	})
}

// Enqueue schedules the index upsert for a created record. Blocks when the
// buffer is full rather than dropping: losing a job would break the
// at-least-once guarantee.
func (q *UpsertQueue) Enqueue(x *model.Expense) {
	q.jobs <- x
}

// Close stops accepting jobs and waits for in-flight ones to finish
func (q *UpsertQueue) Close() error {
	q.closeOnce.Do(func() {
		close(q.jobs)
	})
	if q.eg != nil {
		return q.eg.Wait()
	}
	return nil
}

func (q *UpsertQueue) process(ctx context.Context, x *model.Expense) {
	logger := logging.From(ctx)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := q.upsert(ctx, x); err != nil {
			logger.Warn("vector upsert failed", "id", x.ID, "attempt", attempt, "error", err)
			time.Sleep(retryBackoff * time.Duration(attempt))
			continue
		}
		return
	}

	logger.Error("vector upsert gave up", "id", x.ID, "attempts", maxAttempts)
}

func (q *UpsertQueue) upsert(ctx context.Context, x *model.Expense) error {
	embedding, err := q.gemini.Embedding(ctx, embedText(x))
	if err != nil {
		return err
	}

	return q.index.Upsert(ctx, &vector.Point{
		ID:        x.ID,
		Embedding: embedding,
		Payload: vector.Payload{
			Date:        x.Date,
			Amount:      x.Amount,
			Category:    x.Category,
			Description: x.Description,
		},
	})
}

func embedText(x *model.Expense) string {
	if x.Description != "" {
		return x.Description + " (" + string(x.Category) + ")"
	}
	return string(x.Category)
}
