package analytics

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/tool"
)

// NewCheckBudget builds the check_budget tool. An explicit budget_limit
// argument wins over the configured per-category budget.
func NewCheckBudget(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "check_budget",
		Description: "Check whether spending in a category exceeds a budget limit.",
		Params: map[string]tool.Param{
			"category": {
				Type:        tool.TypeCategory,
				Description: "Category to check.",
				Required:    true,
			},
			"budget_limit": {
				Type:        tool.TypeNumber,
				Description: "Budget limit. Omit to use the configured budget for the category.",
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			category := model.Category(args["category"].(string))

			limit, ok := args["budget_limit"].(float64)
			if !ok {
				limit, ok = c.Budgets[category]
				if !ok {
					return nil, goerr.Wrap(model.ErrInvalidParameter, "no budget configured for category",
						goerr.V("category", category))
				}
			}

			q := &model.AnalyticQuery{Op: model.OpSum}
			q.Filter.Category = &category
			rows, err := c.Engine.Execute(ctx, q)
			if err != nil {
				return nil, err
			}

			var spent float64
			if len(rows) > 0 {
				if v, ok := rows[0]["total"].(float64); ok {
					spent = v
				}
			}

			message := fmt.Sprintf("You're within budget for %s. Spent: %.2f, Limit: %.2f", category, spent, limit)
			if spent > limit {
				message = fmt.Sprintf("Warning: You've exceeded your budget for %s. Spent: %.2f, Limit: %.2f", category, spent, limit)
			}

			return &tool.Result{
				Tool:    "check_budget",
				Message: message,
				Rows: []map[string]any{{
					"category": string(category),
					"spent":    spent,
					"limit":    limit,
					"exceeded": spent > limit,
				}},
			}, nil
		},
	}
}

// NewSuggestSavings builds the suggest_savings tool, which points at the
// category with the highest average expense.
func NewSuggestSavings(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "suggest_savings",
		Description: "Suggest which category to cut back on, based on the highest average expense.",
		Params:      map[string]tool.Param{},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			rows, err := c.Repo.QueryRows(ctx, `
				SELECT category, AVG(amount) AS avg_spent
				FROM expenses
				GROUP BY category
				ORDER BY avg_spent DESC
				LIMIT 1`)
			if err != nil {
				return nil, err
			}

			if len(rows) == 0 || rows[0]["avg_spent"] == nil {
				return &tool.Result{
					Tool:    "suggest_savings",
					Message: "Not enough data to provide a savings suggestion.",
				}, nil
			}

			category, _ := rows[0]["category"].(string)
			avg, _ := rows[0]["avg_spent"].(float64)

			return &tool.Result{
				Tool: "suggest_savings",
				Rows: rows,
				Message: fmt.Sprintf(
					"To save money, consider reducing your spending on the '%s' category. Your average expense in this category is %.2f, which is the highest among all categories.",
					category, avg),
			}, nil
		},
	}
}
