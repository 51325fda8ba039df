package analytics

import (
	"context"

	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/tool"
)

// NewDateRange builds the date_range_expenses tool. Both bounds are
// inclusive; a reversed range is rejected.
func NewDateRange(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "date_range_expenses",
		Description: "List all expenses within an inclusive date range, optionally for one category.",
		Params: map[string]tool.Param{
			"from_date": {
				Type:        tool.TypeDate,
				Description: "Start of the range, inclusive.",
				Required:    true,
			},
			"to_date": {
				Type:        tool.TypeDate,
				Description: "End of the range, inclusive.",
				Required:    true,
			},
			"category": {
				Type:        tool.TypeCategory,
				Description: "Restrict to one category.",
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			from, _ := args["from_date"].(string)
			to, _ := args["to_date"].(string)

			q := &model.AnalyticQuery{Op: model.OpDateRange}
			q.Filter.Range = &model.DateRange{From: from, To: to}
			if v, ok := args["category"].(string); ok {
				category := model.Category(v)
				q.Filter.Category = &category
			}

			return execute(ctx, c, "date_range_expenses", q)
		},
	}
}

// NewComparePeriods builds the compare_periods tool
func NewComparePeriods(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "compare_periods",
		Description: "Compare total spending between two date ranges: totals, signed difference and percent change.",
		Params: map[string]tool.Param{
			"from_date_1": {Type: tool.TypeDate, Description: "Start of the first period.", Required: true},
			"to_date_1":   {Type: tool.TypeDate, Description: "End of the first period.", Required: true},
			"from_date_2": {Type: tool.TypeDate, Description: "Start of the second period.", Required: true},
			"to_date_2":   {Type: tool.TypeDate, Description: "End of the second period.", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			q := &model.AnalyticQuery{
				Op: model.OpComparePeriods,
				Compare: &model.ComparePeriods{
					Period1: model.DateRange{From: args["from_date_1"].(string), To: args["to_date_1"].(string)},
					Period2: model.DateRange{From: args["from_date_2"].(string), To: args["to_date_2"].(string)},
				},
			}
			return execute(ctx, c, "compare_periods", q)
		},
	}
}

// NewTop builds the top_expenses tool. Ordering columns come from a closed
// allow-list enforced by the engine.
func NewTop(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "top_expenses",
		Description: "Return the N highest or lowest expenses ordered by a record field.",
		Params: map[string]tool.Param{
			"n": {
				Type:        tool.TypeInteger,
				Description: "How many records to return (default: 1).",
				Default:     1,
			},
			"order_by": {
				Type:        tool.TypeString,
				Description: "Field to order by.",
				Enum:        []string{"date", "amount", "category", "id"},
				Default:     "amount",
			},
			"direction": {
				Type:        tool.TypeString,
				Description: "Sort direction.",
				Enum:        []string{"asc", "desc"},
				Default:     "desc",
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			q := &model.AnalyticQuery{Op: model.OpTopN}
			if v, ok := args["n"].(int); ok {
				q.Limit = v
			}
			if v, ok := args["order_by"].(string); ok {
				q.OrderBy = v
			}
			if v, ok := args["direction"].(string); ok {
				q.Direction = model.Direction(v)
			}
			return execute(ctx, c, "top_expenses", q)
		},
	}
}

// NewRecurring builds the recurring_expenses tool
func NewRecurring(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "recurring_expenses",
		Description: "Detect categories with recurring spending, at least min_count records.",
		Params: map[string]tool.Param{
			"min_count": {
				Type:        tool.TypeInteger,
				Description: "Minimum occurrences to count as recurring (default: 5).",
				Default:     5,
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			q := &model.AnalyticQuery{Op: model.OpRecurring}
			if v, ok := args["min_count"].(int); ok {
				q.MinCount = v
			}
			return execute(ctx, c, "recurring_expenses", q)
		},
	}
}
