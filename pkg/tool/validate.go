package tool

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"
)

// Validate coerces raw classifier arguments against a tool's parameter
// schema. Unknown keys are dropped rather than rejected, tolerating
// classifier noise. Defaults apply only when a key is entirely absent, not
// when it is present but empty.
func Validate(def *Definition, raw map[string]any) (map[string]any, error) {
	args := make(map[string]any, len(def.Params))

	for name, p := range def.Params {
		value, ok := raw[name]
		if !ok {
			if p.Required {
				return nil, goerr.Wrap(model.ErrInvalidParameter, "required parameter missing",
					goerr.V("tool", def.Name), goerr.V("parameter", name))
			}
			if p.Default != nil {
				args[name] = p.Default
			}
			continue
		}

		coerced, err := coerce(p, value)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid argument",
				goerr.V("tool", def.Name), goerr.V("parameter", name))
		}
		args[name] = coerced
	}

	return args, nil
}

func coerce(p Param, value any) (any, error) {
	switch p.Type {
	case TypeString:
		s, err := toString(value)
		if err != nil {
			return nil, err
		}
		if len(p.Enum) > 0 {
			return matchEnum(s, p.Enum)
		}
		return s, nil

	case TypeNumber:
		return toNumber(value)

	case TypeInteger:
		return toInteger(value)

	case TypeDate:
		s, err := toString(value)
		if err != nil {
			return nil, err
		}
		return model.ParseDate(s)

	case TypeCategory:
		s, err := toString(value)
		if err != nil {
			return nil, err
		}
		// Unknown categories become the sentinel, never a rejection
		return string(model.NormalizeCategory(s)), nil

	default:
		return nil, goerr.Wrap(model.ErrInvalidParameter, "unsupported parameter type", goerr.V("type", p.Type))
	}
}

func matchEnum(s string, enum []string) (string, error) {
	for _, member := range enum {
		if strings.EqualFold(s, member) {
			return member, nil
		}
	}
	return "", goerr.Wrap(model.ErrInvalidParameter, "value not in enum",
		goerr.V("value", s), goerr.V("enum", enum))
}

func toString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case int, int64:
		return strconv.FormatInt(toInt64(s), 10), nil
	case bool:
		return strconv.FormatBool(s), nil
	default:
		return "", goerr.Wrap(model.ErrInvalidParameter, "expected a string", goerr.V("value", v))
	}
}

func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, goerr.Wrap(model.ErrInvalidParameter, "not a number", goerr.V("value", n))
		}
		return f, nil
	default:
		return 0, goerr.Wrap(model.ErrInvalidParameter, "expected a number", goerr.V("value", v))
	}
}

func toInteger(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, goerr.Wrap(model.ErrInvalidParameter, "expected an integer", goerr.V("value", n))
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, goerr.Wrap(model.ErrInvalidParameter, "not an integer", goerr.V("value", n))
		}
		return i, nil
	default:
		return 0, goerr.Wrap(model.ErrInvalidParameter, "expected an integer", goerr.V("value", v))
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}
