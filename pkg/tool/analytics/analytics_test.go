package analytics_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kakeibo/pkg/analytics"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/repository"
	"github.com/m-mizutani/kakeibo/pkg/tool"
	toolanalytics "github.com/m-mizutani/kakeibo/pkg/tool/analytics"
)

func setupClient(t *testing.T, budgets map[model.Category]float64) *tool.Client {
	t.Helper()

	repo, err := repository.NewSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	gt.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return &tool.Client{
		Repo:    repo,
		Engine:  analytics.New(repo),
		Budgets: budgets,
	}
}

func seed(t *testing.T, c *tool.Client, date string, amount float64, category model.Category) {
	t.Helper()
	gt.NoError(t, c.Repo.PutExpense(context.Background(), &model.Expense{
		ID:       model.NewExpenseID(),
		Date:     date,
		Amount:   amount,
		Category: category,
	}))
}

func TestAggregateExpenses(t *testing.T) {
	c := setupClient(t, nil)
	ctx := context.Background()

	seed(t, c, "2025-06-01", 10, model.CategoryFood)
	seed(t, c, "2025-06-02", 30, model.CategoryFood)

	def := toolanalytics.NewAggregate(c)

	result, err := def.Handler(ctx, map[string]any{"operation": "sum"})
	gt.NoError(t, err)
	gt.A(t, result.Rows).Length(1)
	gt.Equal(t, result.Message, "")

	// avg over an empty category yields the no-data message
	result, err = def.Handler(ctx, map[string]any{"operation": "avg", "category": "travel"})
	gt.NoError(t, err)
	gt.Equal(t, result.Message, "No matching expenses.")
}

func TestDateRangeExpenses(t *testing.T) {
	c := setupClient(t, nil)
	ctx := context.Background()

	seed(t, c, "2025-06-01", 10, model.CategoryFood)
	seed(t, c, "2025-07-01", 20, model.CategoryFood)

	def := toolanalytics.NewDateRange(c)

	result, err := def.Handler(ctx, map[string]any{
		"from_date": "2025-06-01",
		"to_date":   "2025-06-30",
	})
	gt.NoError(t, err)
	gt.A(t, result.Rows).Length(1)

	_, err = def.Handler(ctx, map[string]any{
		"from_date": "2025-06-30",
		"to_date":   "2025-06-01",
	})
	gt.Error(t, err)
}

func TestForecastExpensesNoData(t *testing.T) {
	c := setupClient(t, nil)

	def := toolanalytics.NewForecast(c)
	result, err := def.Handler(context.Background(), map[string]any{"months_ahead": 3})
	gt.NoError(t, err)
	gt.A(t, result.Rows).Length(0)
	gt.Equal(t, result.Message, "Not enough data to predict future expenses.")
}

func TestExpenseAnomaliesNoData(t *testing.T) {
	c := setupClient(t, nil)

	def := toolanalytics.NewAnomalies(c)
	result, err := def.Handler(context.Background(), map[string]any{"threshold": 2.0})
	gt.NoError(t, err)
	gt.Equal(t, result.Message, "No anomalies detected.")
}

func TestCheckBudget(t *testing.T) {
	c := setupClient(t, map[model.Category]float64{model.CategoryFood: 100})
	ctx := context.Background()

	seed(t, c, "2025-06-01", 60, model.CategoryFood)

	def := toolanalytics.NewCheckBudget(c)

	t.Run("within configured budget", func(t *testing.T) {
		result, err := def.Handler(ctx, map[string]any{"category": "food"})
		gt.NoError(t, err)
		gt.True(t, strings.HasPrefix(result.Message, "You're within budget for food"))
		gt.Equal(t, result.Rows[0]["exceeded"], any(false))
	})

	t.Run("explicit limit wins", func(t *testing.T) {
		result, err := def.Handler(ctx, map[string]any{"category": "food", "budget_limit": 50.0})
		gt.NoError(t, err)
		gt.True(t, strings.HasPrefix(result.Message, "Warning: You've exceeded your budget for food"))
		gt.Equal(t, result.Rows[0]["exceeded"], any(true))
	})

	t.Run("no budget configured", func(t *testing.T) {
		_, err := def.Handler(ctx, map[string]any{"category": "travel"})
		gt.Error(t, err)
	})
}

func TestSuggestSavings(t *testing.T) {
	c := setupClient(t, nil)
	ctx := context.Background()

	def := toolanalytics.NewSuggestSavings(c)

	result, err := def.Handler(ctx, map[string]any{})
	gt.NoError(t, err)
	gt.Equal(t, result.Message, "Not enough data to provide a savings suggestion.")

	seed(t, c, "2025-06-01", 10, model.CategoryFood)
	seed(t, c, "2025-06-02", 500, model.CategoryElectronics)

	result, err = def.Handler(ctx, map[string]any{})
	gt.NoError(t, err)
	gt.True(t, strings.Contains(result.Message, "'electronics'"))
}

func TestMonthlySummaryTool(t *testing.T) {
	c := setupClient(t, nil)
	ctx := context.Background()

	seed(t, c, "2025-06-01", 10, model.CategoryFood)
	seed(t, c, "2025-07-01", 20, model.CategoryFood)

	def := toolanalytics.NewMonthlySummary(c)

	result, err := def.Handler(ctx, map[string]any{"year": 2025, "month": 6})
	gt.NoError(t, err)
	gt.A(t, result.Rows).Length(1)

	result, err = def.Handler(ctx, map[string]any{"year": 2024, "month": 6})
	gt.NoError(t, err)
	gt.A(t, result.Rows).Length(0)
	gt.Equal(t, result.Message, "No matching expenses.")

	_, err = def.Handler(ctx, map[string]any{"year": 2025, "month": 13})
	gt.Error(t, err)
}

func TestGreetings(t *testing.T) {
	c := setupClient(t, nil)

	def := toolanalytics.NewGreetings(c)
	result, err := def.Handler(context.Background(), map[string]any{})
	gt.NoError(t, err)
	gt.True(t, strings.HasPrefix(result.Message, "Good "))
	gt.True(t, strings.HasSuffix(result.Message, "You can create or find expenses."))
}
