package analytics

import (
	"context"

	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/tool"
)

// NewTrends builds the expense_trends tool
func NewTrends(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "expense_trends",
		Description: "Spending totals per calendar period, most recent first.",
		Params: map[string]tool.Param{
			"interval": {
				Type:        tool.TypeString,
				Description: "Grouping interval.",
				Enum:        []string{"monthly", "yearly"},
				Default:     "monthly",
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			q := &model.AnalyticQuery{Op: model.OpTrend}
			if v, ok := args["interval"].(string); ok {
				q.Interval = model.Interval(v)
			}
			return execute(ctx, c, "expense_trends", q)
		},
	}
}

// NewForecast builds the forecast_expenses tool. The underlying policy is a
// flat average of historical monthly totals unless the engine was built with
// a different Forecaster.
func NewForecast(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "forecast_expenses",
		Description: "Estimate spending for upcoming months from historical monthly totals.",
		Params: map[string]tool.Param{
			"months_ahead": {
				Type:        tool.TypeInteger,
				Description: "How many months ahead to estimate.",
				Required:    true,
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			monthsAhead, _ := args["months_ahead"].(int)

			rows, err := c.Engine.Execute(ctx, &model.AnalyticQuery{
				Op:          model.OpForecast,
				MonthsAhead: monthsAhead,
			})
			if err != nil {
				return nil, err
			}

			result := &tool.Result{Tool: "forecast_expenses", Rows: rows}
			if len(rows) == 0 {
				result.Message = "Not enough data to predict future expenses."
			}
			return result, nil
		},
	}
}

// NewAnomalies builds the expense_anomalies tool
func NewAnomalies(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "expense_anomalies",
		Description: "Flag expenses significantly above their category average.",
		Params: map[string]tool.Param{
			"threshold": {
				Type:        tool.TypeNumber,
				Description: "Multiple of the category average above which an expense is flagged (default: 2.0).",
				Default:     2.0,
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			q := &model.AnalyticQuery{Op: model.OpAnomaly}
			if v, ok := args["threshold"].(float64); ok {
				q.Threshold = v
			}

			rows, err := c.Engine.Execute(ctx, q)
			if err != nil {
				return nil, err
			}

			result := &tool.Result{Tool: "expense_anomalies", Rows: rows}
			if len(rows) == 0 {
				result.Message = "No anomalies detected."
			}
			return result, nil
		},
	}
}
