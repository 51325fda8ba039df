package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kakeibo/pkg/model"
)

func TestNormalizeCategory(t *testing.T) {
	gt.Equal(t, model.NormalizeCategory("food"), model.CategoryFood)
	gt.Equal(t, model.NormalizeCategory("  Food  "), model.CategoryFood)
	gt.Equal(t, model.NormalizeCategory("GROCERY"), model.CategoryGrocery)
	gt.Equal(t, model.NormalizeCategory("crypto"), model.CategoryOther)
	gt.Equal(t, model.NormalizeCategory(""), model.CategoryNone)
	gt.Equal(t, model.NormalizeCategory("   "), model.CategoryNone)
}

func TestCategoryValidate(t *testing.T) {
	for _, c := range model.Categories() {
		gt.NoError(t, c.Validate())
	}
	gt.Error(t, model.Category("crypto").Validate())
	gt.Error(t, model.Category("").Validate())
}

func TestParseDate(t *testing.T) {
	d, err := model.ParseDate("2025-03-09")
	gt.NoError(t, err)
	gt.Equal(t, d, "2025-03-09")

	cases := []string{"2025-3-9", "09-03-2025", "2025/03/09", "2025-02-30", "today", ""}
	for _, s := range cases {
		_, err := model.ParseDate(s)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvalidParameter))
	}
}

func TestDateRangeValidate(t *testing.T) {
	gt.NoError(t, model.DateRange{From: "2025-01-01", To: "2025-01-31"}.Validate())
	gt.NoError(t, model.DateRange{From: "2025-01-01", To: "2025-01-01"}.Validate())

	err := model.DateRange{From: "2025-02-01", To: "2025-01-01"}.Validate()
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrInvalidRange))

	gt.Error(t, model.DateRange{From: "bad", To: "2025-01-01"}.Validate())
	gt.Error(t, model.DateRange{From: "2025-01-01", To: "bad"}.Validate())
}

func TestExpenseValidate(t *testing.T) {
	x := &model.Expense{
		ID:          model.NewExpenseID(),
		Date:        "2025-06-15",
		Amount:      42.5,
		Category:    model.CategoryFood,
		Description: "lunch",
	}
	gt.NoError(t, x.Validate())

	missing := *x
	missing.ID = ""
	gt.Error(t, missing.Validate())

	negative := *x
	negative.Amount = -1
	gt.Error(t, negative.Validate())

	badDate := *x
	badDate.Date = "15/06/2025"
	gt.Error(t, badDate.Validate())

	badCategory := *x
	badCategory.Category = "crypto"
	gt.Error(t, badCategory.Validate())
}

func TestNewExpenseID(t *testing.T) {
	a := model.NewExpenseID()
	b := model.NewExpenseID()
	gt.True(t, a != "")
	gt.True(t, a != b)
}
