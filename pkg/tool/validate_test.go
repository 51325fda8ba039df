package tool_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/tool"
)

func validateDef() *tool.Definition {
	return &tool.Definition{
		Name: "record",
		Params: map[string]tool.Param{
			"amount":    {Type: tool.TypeNumber, Required: true},
			"category":  {Type: tool.TypeCategory, Required: true},
			"date":      {Type: tool.TypeDate},
			"limit":     {Type: tool.TypeInteger, Default: 5},
			"operation": {Type: tool.TypeString, Enum: []string{"sum", "avg"}},
			"note":      {Type: tool.TypeString},
		},
	}
}

func TestValidateRequired(t *testing.T) {
	_, err := tool.Validate(validateDef(), map[string]any{"category": "food"})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrInvalidParameter))
}

func TestValidateDefaults(t *testing.T) {
	args, err := tool.Validate(validateDef(), map[string]any{
		"amount":   42.0,
		"category": "food",
	})
	gt.NoError(t, err)

	// Absent key gets the default
	gt.Equal(t, args["limit"], any(5))

	// Present key keeps its value, even when it differs from the default
	args, err = tool.Validate(validateDef(), map[string]any{
		"amount":   42.0,
		"category": "food",
		"limit":    float64(9),
	})
	gt.NoError(t, err)
	gt.Equal(t, args["limit"], any(9))

	// Optional key without a default stays absent
	_, ok := args["note"]
	gt.False(t, ok)
}

func TestValidateDropsUnknownKeys(t *testing.T) {
	args, err := tool.Validate(validateDef(), map[string]any{
		"amount":    10.0,
		"category":  "food",
		"reasoning": "the model explained itself",
		"extra":     123,
	})
	gt.NoError(t, err)

	_, ok := args["reasoning"]
	gt.False(t, ok)
	_, ok = args["extra"]
	gt.False(t, ok)
}

func TestValidateNumberCoercion(t *testing.T) {
	args, err := tool.Validate(validateDef(), map[string]any{
		"amount":   "42.5",
		"category": "food",
	})
	gt.NoError(t, err)
	gt.Equal(t, args["amount"], any(42.5))

	_, err = tool.Validate(validateDef(), map[string]any{
		"amount":   "lots",
		"category": "food",
	})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrInvalidParameter))
}

func TestValidateIntegerCoercion(t *testing.T) {
	args, err := tool.Validate(validateDef(), map[string]any{
		"amount":   1.0,
		"category": "food",
		"limit":    "7",
	})
	gt.NoError(t, err)
	gt.Equal(t, args["limit"], any(7))

	_, err = tool.Validate(validateDef(), map[string]any{
		"amount":   1.0,
		"category": "food",
		"limit":    2.5,
	})
	gt.Error(t, err)
}

func TestValidateEnumCaseInsensitive(t *testing.T) {
	args, err := tool.Validate(validateDef(), map[string]any{
		"amount":    1.0,
		"category":  "food",
		"operation": "SUM",
	})
	gt.NoError(t, err)
	gt.Equal(t, args["operation"], any("sum"))

	_, err = tool.Validate(validateDef(), map[string]any{
		"amount":    1.0,
		"category":  "food",
		"operation": "median",
	})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrInvalidParameter))
}

func TestValidateDate(t *testing.T) {
	args, err := tool.Validate(validateDef(), map[string]any{
		"amount":   1.0,
		"category": "food",
		"date":     "2025-06-15",
	})
	gt.NoError(t, err)
	gt.Equal(t, args["date"], any("2025-06-15"))

	_, err = tool.Validate(validateDef(), map[string]any{
		"amount":   1.0,
		"category": "food",
		"date":     "yesterday",
	})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrInvalidParameter))
}

func TestValidateCategoryNeverRejects(t *testing.T) {
	cases := map[string]string{
		"food":   "food",
		"FOOD":   "food",
		"crypto": "other",
		"":       "none",
	}
	for input, want := range cases {
		args, err := tool.Validate(validateDef(), map[string]any{
			"amount":   1.0,
			"category": input,
		})
		gt.NoError(t, err)
		gt.Equal(t, args["category"], any(want))
	}
}
