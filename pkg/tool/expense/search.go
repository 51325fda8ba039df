package expense

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/repository"
	"github.com/m-mizutani/kakeibo/pkg/tool"
)

// NewSearch builds the search_expenses tool for exact-match field search
func NewSearch(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "search_expenses",
		Description: "Search stored expenses by exact date, date range, amount or category.",
		Params: map[string]tool.Param{
			"date": {
				Type:        tool.TypeDate,
				Description: "Exact date of the expense.",
			},
			"from_date": {
				Type:        tool.TypeDate,
				Description: "Start of an inclusive date range. Use together with to_date.",
			},
			"to_date": {
				Type:        tool.TypeDate,
				Description: "End of an inclusive date range. Use together with from_date.",
			},
			"amount": {
				Type:        tool.TypeNumber,
				Description: "Exact amount of the expense.",
			},
			"category": {
				Type:        tool.TypeCategory,
				Description: "Category of the expense.",
			},
			"limit": {
				Type:        tool.TypeInteger,
				Description: "Max results (default: 50).",
				Default:     50,
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			input := &repository.SearchInput{}

			if v, ok := args["date"].(string); ok {
				input.Date = &v
			}
			from, hasFrom := args["from_date"].(string)
			to, hasTo := args["to_date"].(string)
			switch {
			case hasFrom && hasTo:
				input.From, input.To = &from, &to
			case hasFrom != hasTo:
				return nil, goerr.Wrap(model.ErrInvalidParameter,
					"from_date and to_date must be given together")
			}
			if v, ok := args["amount"].(float64); ok {
				input.Amount = &v
			}
			if v, ok := args["category"].(string); ok {
				category := model.Category(v)
				input.Category = &category
			}
			if v, ok := args["limit"].(int); ok {
				input.Limit = v
			}

			found, err := c.Repo.SearchExpenses(ctx, input)
			if err != nil {
				return nil, err
			}

			rows := make([]map[string]any, 0, len(found))
			for _, x := range found {
				rows = append(rows, expenseRow(x))
			}

			result := &tool.Result{Tool: "search_expenses", Rows: rows}
			if len(rows) == 0 {
				result.Message = "No expenses found matching the criteria."
			}
			return result, nil
		},
	}
}

func expenseRow(x *model.Expense) map[string]any {
	return map[string]any{
		"id":          string(x.ID),
		"date":        x.Date,
		"amount":      x.Amount,
		"category":    string(x.Category),
		"description": x.Description,
	}
}
