package analytics

import (
	"context"
	"time"

	"github.com/m-mizutani/kakeibo/pkg/tool"
)

// NewGreetings builds the greetings tool for small-talk input
func NewGreetings(c *tool.Client) *tool.Definition {
	return &tool.Definition{
		Name:        "greetings",
		Description: "Respond to a greeting and invite the user to create or find expenses.",
		Params:      map[string]tool.Param{},
		Handler: func(ctx context.Context, args map[string]any) (*tool.Result, error) {
			greeting := "Good evening"
			switch hour := time.Now().Hour(); {
			case hour < 12:
				greeting = "Good morning"
			case hour < 17:
				greeting = "Good afternoon"
			}

			return &tool.Result{
				Tool:    "greetings",
				Message: greeting + "! You can create or find expenses.",
			}, nil
		},
	}
}
