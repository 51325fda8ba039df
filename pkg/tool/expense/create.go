package expense

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/tool"
)

// NewCreate builds the create_expense tool. The amount parameter must come
// from the classifier: the resolver discards create calls without it, so the
// handler never sees a defaulted amount.
func NewCreate(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "create_expense",
		Description: "Record a single expense with amount, category, date and a short description.",
		Params: map[string]tool.Param{
			"date": {
				Type:        tool.TypeDate,
				Description: "Date of the expense in YYYY-MM-DD form. Omit when the user did not mention one.",
			},
			"amount": {
				Type:        tool.TypeNumber,
				Description: "Amount spent. Ignore currency symbols and other non-numeric characters.",
				Required:    true,
			},
			"category": {
				Type:        tool.TypeCategory,
				Description: "Category of the expense.",
				Required:    true,
			},
			"description": {
				Type:        tool.TypeString,
				Description: "Short summary of the expense, e.g. \"lunch at Banani\".",
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			amount, ok := args["amount"].(float64)
			if !ok {
				return nil, goerr.Wrap(model.ErrInvalidParameter, "amount is required")
			}

			date, _ := args["date"].(string)
			if date == "" {
				date = time.Now().Format(model.DateLayout)
			}

			category, _ := args["category"].(string)
			description, _ := args["description"].(string)

			x := &model.Expense{
				ID:          model.NewExpenseID(),
				Date:        date,
				Amount:      amount,
				Category:    model.NormalizeCategory(category),
				Description: description,
			}

			if err := c.Repo.PutExpense(ctx, x); err != nil {
				return nil, err
			}

			return &tool.Result{
				Tool:    "create_expense",
				Record:  x,
				Message: "Record added successfully",
			}, nil
		},
	}
}
