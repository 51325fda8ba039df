package assistant

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/adapter"
	"github.com/m-mizutani/kakeibo/pkg/analytics"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/repository"
	"github.com/m-mizutani/kakeibo/pkg/tool"
	toolanalytics "github.com/m-mizutani/kakeibo/pkg/tool/analytics"
	toolexpense "github.com/m-mizutani/kakeibo/pkg/tool/expense"
	"github.com/m-mizutani/kakeibo/pkg/vector"
)

// UseCase wires the intent resolver, dispatcher and synthesizer around the
// shared stores. All dependencies are explicit; nothing here is global.
type UseCase struct {
	repo     repository.Repository
	index    vector.Index
	gemini   adapter.Gemini
	registry *tool.Registry
	queue    *UpsertQueue
}

// NewInput contains the dependencies for a UseCase
type NewInput struct {
	Repo    repository.Repository
	Index   vector.Index
	Gemini  adapter.Gemini
	Budgets map[model.Category]float64
}

// New creates the assistant UseCase and its tool registry
func New(input NewInput) (*UseCase, error) {
	if input.Repo == nil {
		return nil, goerr.New("repository is required")
	}
	if input.Index == nil {
		return nil, goerr.New("vector index is required")
	}
	if input.Gemini == nil {
		return nil, goerr.New("gemini adapter is required")
	}

	registry, err := NewRegistry(input)
	if err != nil {
		return nil, err
	}

	return &UseCase{
		repo:     input.Repo,
		index:    input.Index,
		gemini:   input.Gemini,
		registry: registry,
		queue:    NewUpsertQueue(input.Gemini, input.Index),
	}, nil
}

// NewRegistry builds the full tool catalog in its canonical order
func NewRegistry(input NewInput) (*tool.Registry, error) {
	client := &tool.Client{
		Repo:    input.Repo,
		Index:   input.Index,
		Gemini:  input.Gemini,
		Engine:  analytics.New(input.Repo),
		Budgets: input.Budgets,
	}

	return tool.NewRegistry(
		toolexpense.NewCreate(client),
		toolexpense.NewSearch(client),
		toolexpense.NewSimilar(client),
		toolanalytics.NewAggregate(client),
		toolanalytics.NewGroupByCategory(client),
		toolanalytics.NewDateRange(client),
		toolanalytics.NewAnomalies(client),
		toolanalytics.NewTrends(client),
		toolanalytics.NewForecast(client),
		toolanalytics.NewComparePeriods(client),
		toolanalytics.NewTop(client),
		toolanalytics.NewDistinctCategories(client),
		toolanalytics.NewRecurring(client),
		toolanalytics.NewCategoryPercentage(client),
		toolanalytics.NewMonthlySummary(client),
		toolanalytics.NewYearlySummary(client),
		toolanalytics.NewCheckBudget(client),
		toolanalytics.NewSuggestSavings(client),
		toolanalytics.NewGreetings(client),
	)
}

// Registry exposes the tool catalog, e.g. for the MCP surface
func (u *UseCase) Registry() *tool.Registry {
	return u.registry
}

// Start launches the background upsert worker
func (u *UseCase) Start(ctx context.Context) {
	u.queue.Start(ctx)
}

// Close drains the upsert queue and waits for in-flight jobs
func (u *UseCase) Close() error {
	return u.queue.Close()
}
