package tool

import (
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"google.golang.org/genai"
)

// ManifestEntry is the wire contract for one tool, consumed by an external
// classifier. The classifier must only ever return tool names present here.
type ManifestEntry struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Schema      *jsonschema.Schema `json:"parameters"`
}

// Manifest returns the capability manifest in registration order
func (r *Registry) Manifest() []*ManifestEntry {
	entries := make([]*ManifestEntry, 0, len(r.order))
	for _, def := range r.order {
		entries = append(entries, &ManifestEntry{
			Name:        def.Name,
			Description: def.Description,
			Schema:      toJSONSchema(def),
		})
	}
	return entries
}

// Specs returns Gemini function declarations for all tools, in registration
// order, wrapped in a single genai.Tool.
func (r *Registry) Specs() []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(r.order))
	for _, def := range r.order {
		decls = append(decls, toFunctionDeclaration(def))
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func sortedParamNames(def *Definition) []string {
	names := make([]string, 0, len(def.Params))
	for name := range def.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func toJSONSchema(def *Definition) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(def.Params)),
	}

	for _, name := range sortedParamNames(def) {
		p := def.Params[name]

		prop := &jsonschema.Schema{Description: p.Description}
		switch p.Type {
		case TypeNumber:
			prop.Type = "number"
		case TypeInteger:
			prop.Type = "integer"
		case TypeDate:
			prop.Type = "string"
			prop.Format = "date"
		default:
			prop.Type = "string"
		}

		for _, v := range enumValues(p) {
			prop.Enum = append(prop.Enum, v)
		}

		schema.Properties[name] = prop
		if p.Required {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

func toFunctionDeclaration(def *Definition) *genai.FunctionDeclaration {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(def.Params)),
	}

	for _, name := range sortedParamNames(def) {
		p := def.Params[name]

		prop := &genai.Schema{Description: p.Description}
		switch p.Type {
		case TypeNumber:
			prop.Type = genai.TypeNumber
		case TypeInteger:
			prop.Type = genai.TypeInteger
		default:
			prop.Type = genai.TypeString
		}

		for _, v := range enumValues(p) {
			prop.Enum = append(prop.Enum, v.(string))
		}

		schema.Properties[name] = prop
		if p.Required {
			schema.Required = append(schema.Required, name)
		}
	}

	return &genai.FunctionDeclaration{
		Name:        def.Name,
		Description: def.Description,
		Parameters:  schema,
	}
}

func enumValues(p Param) []any {
	if p.Type == TypeCategory {
		values := make([]any, 0, len(model.Categories()))
		for _, c := range model.Categories() {
			values = append(values, string(c))
		}
		return values
	}

	values := make([]any, 0, len(p.Enum))
	for _, v := range p.Enum {
		values = append(values, v)
	}
	return values
}
