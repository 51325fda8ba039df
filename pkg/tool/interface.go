package tool

import (
	"context"

	"github.com/m-mizutani/kakeibo/pkg/model"
)

// ParamType is the closed set of parameter types a tool may declare
type ParamType string

const (
	TypeString   ParamType = "string"
	TypeNumber   ParamType = "number"
	TypeInteger  ParamType = "integer"
	TypeDate     ParamType = "date"
	TypeCategory ParamType = "category"
)

// Param declares one tool parameter. Default is applied only when the key is
// entirely absent from the raw arguments.
type Param struct {
	Type        ParamType
	Description string
	Required    bool
	Default     any
	Enum        []string
}

// Result is the uniform outcome of one tool execution
type Result struct {
	Tool    string           `json:"tool"`
	Rows    []map[string]any `json:"rows,omitempty"`
	Message string           `json:"message,omitempty"`
	Record  *model.Expense   `json:"record,omitempty"`
}

// Handler executes a tool with validated, coerced arguments
type Handler func(ctx context.Context, args map[string]any) (*Result, error)

// Definition binds a tool name and parameter schema to a handler. Definitions
// are immutable once registered.
type Definition struct {
	Name        string
	Description string
	Params      map[string]Param
	Handler     Handler
}
