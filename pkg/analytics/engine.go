package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/repository"
)

// orderColumns is the allow-list for top_n ordering. Anything outside it is
// rejected before query construction.
var orderColumns = map[string]string{
	"id":       "id",
	"date":     "date",
	"amount":   "amount",
	"category": "category",
}

// Engine translates an AnalyticQuery into a parameterized SQL query against
// the record store and returns a uniform tabular result. Filter values are
// always bound parameters, never interpolated into query text.
type Engine struct {
	repo       repository.Repository
	forecaster Forecaster
}

// Option is a functional option for Engine
type Option func(*Engine)

// WithForecaster replaces the forecasting policy
func WithForecaster(f Forecaster) Option {
	return func(e *Engine) {
		e.forecaster = f
	}
}

// New creates an analytics engine bound to a repository
func New(repo repository.Repository, opts ...Option) *Engine {
	e := &Engine{
		repo:       repo,
		forecaster: &FlatAverageForecaster{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Execute runs one analytic query. Store failures propagate as
// ErrStoreUnavailable; retry policy belongs to the caller or the adapter.
func (e *Engine) Execute(ctx context.Context, q *model.AnalyticQuery) ([]map[string]any, error) {
	switch q.Op {
	case model.OpSum, model.OpAvg, model.OpMin, model.OpMax, model.OpCount:
		return e.aggregate(ctx, q)
	case model.OpGroupByCategory:
		return e.groupByCategory(ctx)
	case model.OpDateRange:
		return e.dateRange(ctx, q)
	case model.OpAnomaly:
		return e.anomaly(ctx, q)
	case model.OpTrend:
		return e.trend(ctx, q.Interval)
	case model.OpForecast:
		return e.forecast(ctx, q)
	case model.OpComparePeriods:
		return e.comparePeriods(ctx, q)
	case model.OpTopN:
		return e.topN(ctx, q)
	case model.OpDistinct:
		return e.repo.QueryRows(ctx, "SELECT DISTINCT category FROM expenses ORDER BY category")
	case model.OpRecurring:
		return e.recurring(ctx, q)
	case model.OpCategoryPercentage:
		return e.categoryPercentage(ctx)
	case model.OpMonthlySummary:
		return e.monthlySummary(ctx, q.Year, q.Month)
	case model.OpYearlySummary:
		return e.yearlySummary(ctx, q.Year)
	default:
		return nil, goerr.New("unsupported analytic operation", goerr.V("op", q.Op))
	}
}

func (e *Engine) aggregate(ctx context.Context, q *model.AnalyticQuery) ([]map[string]any, error) {
	var expr, col string
	switch q.Op {
	case model.OpSum:
		// Empty sets yield 0 for sum and count, not NULL
		expr, col = "COALESCE(SUM(amount), 0)", "total"
	case model.OpAvg:
		expr, col = "AVG(amount)", "average"
	case model.OpMin:
		expr, col = "MIN(amount)", "min"
	case model.OpMax:
		expr, col = "MAX(amount)", "max"
	case model.OpCount:
		expr, col = "COUNT(*)", "count"
	}

	query := fmt.Sprintf("SELECT %s AS %s FROM expenses", expr, col)
	where, args := buildFilter(&q.Filter)
	query += where

	return e.repo.QueryRows(ctx, query, args...)
}

func (e *Engine) groupByCategory(ctx context.Context) ([]map[string]any, error) {
	return e.repo.QueryRows(ctx,
		"SELECT category, SUM(amount) AS total, COUNT(*) AS count FROM expenses GROUP BY category ORDER BY total DESC")
}

func (e *Engine) dateRange(ctx context.Context, q *model.AnalyticQuery) ([]map[string]any, error) {
	if q.Filter.Range == nil {
		return nil, goerr.Wrap(model.ErrInvalidRange, "date range is required")
	}
	if err := q.Filter.Range.Validate(); err != nil {
		return nil, err
	}

	query := "SELECT id, date, amount, category, description FROM expenses WHERE date BETWEEN ? AND ?"
	args := []any{q.Filter.Range.From, q.Filter.Range.To}

	if q.Filter.Category != nil {
		query += " AND LOWER(category) = ?"
		args = append(args, strings.ToLower(string(*q.Filter.Category)))
	}
	query += " ORDER BY date ASC"

	return e.repo.QueryRows(ctx, query, args...)
}

func (e *Engine) anomaly(ctx context.Context, q *model.AnalyticQuery) ([]map[string]any, error) {
	threshold := q.Threshold
	if threshold <= 0 {
		threshold = 2.0
	}

	// Categories with a single record are excluded: an average of one value
	// cannot flag anomalies meaningfully.
	return e.repo.QueryRows(ctx, `
		SELECT e.id, e.date, e.amount, e.category, e.description
		FROM expenses e
		JOIN (
			SELECT category, AVG(amount) AS avg_amount
			FROM expenses
			GROUP BY category
			HAVING COUNT(*) >= 2
		) a ON e.category = a.category
		WHERE e.amount > a.avg_amount * ?
		ORDER BY e.amount DESC`,
		threshold,
	)
}

func (e *Engine) trend(ctx context.Context, interval model.Interval) ([]map[string]any, error) {
	if interval == "" {
		interval = model.IntervalMonthly
	}
	if err := interval.Validate(); err != nil {
		return nil, err
	}

	// Dates are canonical YYYY-MM-DD text, so the calendar period is a prefix
	period := "substr(date, 1, 7)"
	if interval == model.IntervalYearly {
		period = "substr(date, 1, 4)"
	}

	query := fmt.Sprintf(
		"SELECT %s AS period, SUM(amount) AS total FROM expenses GROUP BY period ORDER BY period DESC",
		period,
	)
	return e.repo.QueryRows(ctx, query)
}

func (e *Engine) forecast(ctx context.Context, q *model.AnalyticQuery) ([]map[string]any, error) {
	monthsAhead := q.MonthsAhead
	if monthsAhead <= 0 {
		monthsAhead = 1
	}

	history, err := e.trend(ctx, model.IntervalMonthly)
	if err != nil {
		return nil, err
	}

	totals := make([]float64, 0, len(history))
	for _, row := range history {
		totals = append(totals, toFloat(row["total"]))
	}

	predicted, err := e.forecaster.Forecast(ctx, totals, monthsAhead)
	if err != nil {
		return nil, goerr.Wrap(err, "forecast failed")
	}

	rows := make([]map[string]any, 0, len(predicted))
	for i, v := range predicted {
		rows = append(rows, map[string]any{"month": i + 1, "predicted": v})
	}
	return rows, nil
}

func (e *Engine) comparePeriods(ctx context.Context, q *model.AnalyticQuery) ([]map[string]any, error) {
	if q.Compare == nil {
		return nil, goerr.Wrap(model.ErrInvalidRange, "two periods are required")
	}
	if err := q.Compare.Period1.Validate(); err != nil {
		return nil, err
	}
	if err := q.Compare.Period2.Validate(); err != nil {
		return nil, err
	}

	total1, err := e.sumRange(ctx, q.Compare.Period1)
	if err != nil {
		return nil, err
	}
	total2, err := e.sumRange(ctx, q.Compare.Period2)
	if err != nil {
		return nil, err
	}

	row := map[string]any{
		"period_1_total": total1,
		"period_2_total": total2,
		"difference":     total2 - total1,
		"percent_change": nil,
	}
	if total1 != 0 {
		row["percent_change"] = (total2 - total1) / total1 * 100
	}

	return []map[string]any{row}, nil
}

func (e *Engine) sumRange(ctx context.Context, r model.DateRange) (float64, error) {
	rows, err := e.repo.QueryRows(ctx,
		"SELECT COALESCE(SUM(amount), 0) AS total FROM expenses WHERE date BETWEEN ? AND ?",
		r.From, r.To,
	)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return toFloat(rows[0]["total"]), nil
}

func (e *Engine) topN(ctx context.Context, q *model.AnalyticQuery) ([]map[string]any, error) {
	col, ok := orderColumns[strings.ToLower(q.OrderBy)]
	if !ok {
		return nil, goerr.Wrap(model.ErrInvalidColumn, "order_by not allowed", goerr.V("order_by", q.OrderBy))
	}

	direction := q.Direction
	if direction == "" {
		direction = model.DirectionDesc
	}
	if err := direction.Validate(); err != nil {
		return nil, err
	}
	order := "ASC"
	if direction == model.DirectionDesc {
		order = "DESC"
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 1
	}

	// col and order come from closed sets above, never from caller text
	query := fmt.Sprintf(
		"SELECT id, date, amount, category, description FROM expenses ORDER BY %s %s LIMIT ?",
		col, order,
	)
	return e.repo.QueryRows(ctx, query, limit)
}

func (e *Engine) recurring(ctx context.Context, q *model.AnalyticQuery) ([]map[string]any, error) {
	minCount := q.MinCount
	if minCount <= 0 {
		minCount = 5
	}

	return e.repo.QueryRows(ctx, `
		SELECT category, COUNT(*) AS occurrences, SUM(amount) AS total
		FROM expenses
		GROUP BY category
		HAVING COUNT(*) >= ?
		ORDER BY occurrences DESC`,
		minCount,
	)
}

func (e *Engine) categoryPercentage(ctx context.Context) ([]map[string]any, error) {
	return e.repo.QueryRows(ctx, `
		SELECT category,
		       SUM(amount) AS total,
		       SUM(amount) * 100.0 / (SELECT SUM(amount) FROM expenses) AS percentage
		FROM expenses
		GROUP BY category
		ORDER BY percentage DESC`)
}

func (e *Engine) monthlySummary(ctx context.Context, year, month int) ([]map[string]any, error) {
	if year <= 0 || month < 1 || month > 12 {
		return nil, goerr.Wrap(model.ErrInvalidParameter, "invalid year or month",
			goerr.V("year", year), goerr.V("month", month))
	}

	return e.repo.QueryRows(ctx,
		"SELECT category, SUM(amount) AS total FROM expenses WHERE substr(date, 1, 7) = ? GROUP BY category ORDER BY total DESC",
		fmt.Sprintf("%04d-%02d", year, month),
	)
}

func (e *Engine) yearlySummary(ctx context.Context, year int) ([]map[string]any, error) {
	if year <= 0 {
		return nil, goerr.Wrap(model.ErrInvalidParameter, "invalid year", goerr.V("year", year))
	}

	return e.repo.QueryRows(ctx,
		"SELECT category, SUM(amount) AS total FROM expenses WHERE substr(date, 1, 4) = ? GROUP BY category ORDER BY total DESC",
		fmt.Sprintf("%04d", year),
	)
}

func buildFilter(f *model.AnalyticFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Category != nil {
		conds = append(conds, "LOWER(category) = ?")
		args = append(args, strings.ToLower(string(*f.Category)))
	}
	if f.Date != nil {
		conds = append(conds, "date = ?")
		args = append(args, *f.Date)
	}
	if f.Range != nil {
		conds = append(conds, "date BETWEEN ? AND ?")
		args = append(args, f.Range.From, f.Range.To)
	}
	if f.Amount != nil {
		conds = append(conds, "amount = ?")
		args = append(args, *f.Amount)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case nil:
		return 0
	default:
		return 0
	}
}
