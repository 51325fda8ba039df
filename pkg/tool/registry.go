package tool

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"
)

// Registry is the static catalog of operations the dispatcher may execute.
// It is built once at startup; no request path mutates it.
type Registry struct {
	byName map[string]*Definition
	order  []*Definition
}

// NewRegistry creates a registry with the given tools, preserving order
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]*Definition, len(defs)),
	}

	for _, def := range defs {
		if err := r.register(def); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Registry) register(def *Definition) error {
	if def.Name == "" {
		return goerr.New("tool name is empty")
	}
	if _, exists := r.byName[def.Name]; exists {
		return goerr.Wrap(model.ErrDuplicateTool, "duplicate tool name", goerr.V("name", def.Name))
	}

	r.byName[def.Name] = def
	r.order = append(r.order, def)
	return nil
}

// Resolve returns the tool with the given name
func (r *Registry) Resolve(name string) (*Definition, error) {
	def, ok := r.byName[name]
	if !ok {
		return nil, goerr.Wrap(model.ErrUnknownTool, "tool not registered", goerr.V("name", name))
	}
	return def, nil
}

// List returns all registered tools in registration order
func (r *Registry) List() []*Definition {
	return append([]*Definition(nil), r.order...)
}
