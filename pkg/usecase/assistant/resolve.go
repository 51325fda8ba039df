package assistant

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/utils/logging"
	"google.golang.org/genai"
)

const systemPrompt = `You are an expense tracking assistant. The user either describes a new
expense to record or asks a question about previously stored expenses.
Always answer by calling one or more of the provided functions. Extract
dates in YYYY-MM-DD form. Amounts are plain numbers without currency
symbols. When the user describes an expense, call create_expense with the
amount, category and a short description.`

// UnknownIntentMessage is the user-facing answer when the classifier yields
// nothing usable. This is a recovered condition, never a hard failure.
const UnknownIntentMessage = "Could not determine intent. Please refine your input."

// Resolve asks the classifier to map free-form input to tool calls. A
// create_expense call without an amount is discarded: defaulting money is
// worse than asking the user again.
func (u *UseCase) Resolve(ctx context.Context, input string) ([]*model.ResolvedIntent, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, ""),
		Tools:             u.registry.Specs(),
		Temperature:       genai.Ptr[float32](0),
	}

	contents := []*genai.Content{
		genai.NewContentFromText(input, genai.RoleUser),
	}

	resp, err := u.gemini.GenerateContent(ctx, contents, config)
	if err != nil {
		return nil, goerr.Wrap(err, "classifier call failed")
	}

	var intents []*model.ResolvedIntent
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.FunctionCall == nil {
				continue
			}
			fc := part.FunctionCall

			if fc.Name == "create_expense" && !hasAmount(fc.Args) {
				logging.From(ctx).Warn("discarding create_expense without amount", "args", fc.Args)
				continue
			}

			intents = append(intents, &model.ResolvedIntent{
				Tool: fc.Name,
				Args: fc.Args,
			})
		}
	}

	return intents, nil
}

func hasAmount(args map[string]any) bool {
	v, ok := args["amount"]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}
