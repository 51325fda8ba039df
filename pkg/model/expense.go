package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type ExpenseID string

// NewExpenseID generates a new unique ExpenseID
func NewExpenseID() ExpenseID {
	return ExpenseID(uuid.New().String())
}

type Category string

const (
	CategoryFood          Category = "food"
	CategoryTravel        Category = "travel"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"
	CategoryGrocery       Category = "grocery"
	CategoryShopping      Category = "shopping"
	CategoryElectronics   Category = "electronics"
	CategoryHealth        Category = "health"
	CategoryMiscellaneous Category = "miscellaneous"
	CategoryAutomobile    Category = "automobile"
	CategoryOther         Category = "other"
	CategoryNone          Category = "none"
)

// Categories lists all known categories in a stable order
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTravel,
		CategoryTransport,
		CategoryEntertainment,
		CategoryUtilities,
		CategoryGrocery,
		CategoryShopping,
		CategoryElectronics,
		CategoryHealth,
		CategoryMiscellaneous,
		CategoryAutomobile,
		CategoryOther,
		CategoryNone,
	}
}

// Validate checks if the category is a known one
func (c Category) Validate() error {
	for _, known := range Categories() {
		if c == known {
			return nil
		}
	}
	return goerr.New("unknown category", goerr.V("category", c))
}

// NormalizeCategory maps arbitrary input to a known category. Unknown values
// become CategoryOther and empty input becomes CategoryNone, so a noisy
// classifier output never rejects a record.
func NormalizeCategory(s string) Category {
	v := Category(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return CategoryNone
	}
	if err := v.Validate(); err != nil {
		return CategoryOther
	}
	return v
}

// DateLayout is the canonical calendar date format for all expense dates
const DateLayout = "2006-01-02"

// ParseDate validates a date string against the canonical YYYY-MM-DD form
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", goerr.Wrap(ErrInvalidParameter, "invalid date", goerr.V("date", s))
	}
	return t.Format(DateLayout), nil
}

// Expense is a single persisted expense record. Records are immutable once
// created; corrections are new records.
type Expense struct {
	ID          ExpenseID `json:"id"`
	Date        string    `json:"date"`
	Amount      float64   `json:"amount"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
}

// Validate checks if the expense satisfies the persistence shape
func (x *Expense) Validate() error {
	if x.ID == "" {
		return goerr.New("expense id is empty")
	}
	if _, err := ParseDate(x.Date); err != nil {
		return err
	}
	if x.Amount < 0 {
		return goerr.New("expense amount is negative", goerr.V("amount", x.Amount))
	}
	return x.Category.Validate()
}
