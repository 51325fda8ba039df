package analytics

import (
	"context"

	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/tool"
)

// NewAggregate builds the aggregate_expenses tool covering sum, avg, min,
// max and count with an optional category filter.
func NewAggregate(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "aggregate_expenses",
		Description: "Compute the sum, average, minimum, maximum or count of expenses, optionally for one category.",
		Params: map[string]tool.Param{
			"operation": {
				Type:        tool.TypeString,
				Description: "Aggregation to run.",
				Required:    true,
				Enum:        []string{"sum", "avg", "min", "max", "count"},
			},
			"category": {
				Type:        tool.TypeCategory,
				Description: "Restrict the aggregation to one category.",
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			op, _ := args["operation"].(string)

			q := &model.AnalyticQuery{Op: model.AnalyticOp(op)}
			if v, ok := args["category"].(string); ok {
				category := model.Category(v)
				q.Filter.Category = &category
			}

			rows, err := c.Engine.Execute(ctx, q)
			if err != nil {
				return nil, err
			}

			result := &tool.Result{Tool: "aggregate_expenses", Rows: rows}
			if noData(rows) {
				result.Message = "No matching expenses."
			}
			return result, nil
		},
	}
}

// NewGroupByCategory builds the group_by_category tool
func NewGroupByCategory(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "group_by_category",
		Description: "Total spending per category. Categories without records are omitted.",
		Params:      map[string]tool.Param{},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			return execute(ctx, c, "group_by_category", &model.AnalyticQuery{Op: model.OpGroupByCategory})
		},
	}
}

// NewDistinctCategories builds the distinct_categories tool
func NewDistinctCategories(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "distinct_categories",
		Description: "List the categories that currently have at least one expense.",
		Params:      map[string]tool.Param{},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			return execute(ctx, c, "distinct_categories", &model.AnalyticQuery{Op: model.OpDistinct})
		},
	}
}

// NewCategoryPercentage builds the category_percentage tool
func NewCategoryPercentage(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "category_percentage",
		Description: "Percentage of total spending per category, highest share first.",
		Params:      map[string]tool.Param{},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			return execute(ctx, c, "category_percentage", &model.AnalyticQuery{Op: model.OpCategoryPercentage})
		},
	}
}

// NewMonthlySummary builds the monthly_summary tool
func NewMonthlySummary(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "monthly_summary",
		Description: "Total expenses per category for one calendar month.",
		Params: map[string]tool.Param{
			"year": {
				Type:        tool.TypeInteger,
				Description: "Calendar year, e.g. 2025.",
				Required:    true,
			},
			"month": {
				Type:        tool.TypeInteger,
				Description: "Calendar month, 1 to 12.",
				Required:    true,
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			year, _ := args["year"].(int)
			month, _ := args["month"].(int)
			return execute(ctx, c, "monthly_summary", &model.AnalyticQuery{
				Op:    model.OpMonthlySummary,
				Year:  year,
				Month: month,
			})
		},
	}
}

// NewYearlySummary builds the yearly_summary tool
func NewYearlySummary(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "yearly_summary",
		Description: "Total expenses per category for one calendar year.",
		Params: map[string]tool.Param{
			"year": {
				Type:        tool.TypeInteger,
				Description: "Calendar year, e.g. 2025.",
				Required:    true,
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			year, _ := args["year"].(int)
			return execute(ctx, c, "yearly_summary", &model.AnalyticQuery{
				Op:   model.OpYearlySummary,
				Year: year,
			})
		},
	}
}

func execute(ctx context.Context, c *tool.Client, name string, q *model.AnalyticQuery) (*tool.Result, error) {
	rows, err := c.Engine.Execute(ctx, q)
	if err != nil {
		return nil, err
	}

	result := &tool.Result{Tool: name, Rows: rows}
	if len(rows) == 0 {
		result.Message = "No matching expenses."
	}
	return result, nil
}

// noData reports whether an aggregate result carries only NULL values, the
// "no data" shape avg/min/max produce over an empty set.
func noData(rows []map[string]any) bool {
	if len(rows) == 0 {
		return true
	}
	for _, row := range rows {
		for _, v := range row {
			if v != nil {
				return false
			}
		}
	}
	return true
}
