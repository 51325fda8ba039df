package assistant

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/tool"
	"github.com/m-mizutani/kakeibo/pkg/utils/logging"
)

// State is the dispatcher's per-request phase
type State string

const (
	StateReceived     State = "received"
	StateResolving    State = "resolving"
	StateValidating   State = "validating"
	StateExecuting    State = "executing"
	StateSynthesizing State = "synthesizing"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// IntentResult is the outcome of one resolved intent. Error carries a
// per-intent failure without aborting sibling intents.
type IntentResult struct {
	Tool   string       `json:"tool"`
	Result *tool.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// Response is the structured answer for one request. Failures are always
// distinguishable from success; no bare error ever reaches the caller from
// a single intent.
type Response struct {
	State   State           `json:"state"`
	Message string          `json:"message,omitempty"`
	Results []*IntentResult `json:"results,omitempty"`
}

// HandleMessage runs one request through the dispatcher state machine:
// received, resolving, validating, executing, synthesizing. Only a global
// failure (the classifier being unreachable) fails the whole request.
func (u *UseCase) HandleMessage(ctx context.Context, input string) (*Response, error) {
	logger := logging.From(ctx)

	logger.Debug("request received", "state", StateResolving)
	intents, err := u.Resolve(ctx, input)
	if err != nil {
		return &Response{State: StateFailed}, goerr.Wrap(err, "intent resolution failed")
	}

	if len(intents) == 0 {
		return &Response{
			State:   StateDone,
			Message: UnknownIntentMessage,
		}, nil
	}

	logger.Debug("intents resolved", "count", len(intents), "state", StateValidating)
	results := make([]*IntentResult, 0, len(intents))
	for _, intent := range intents {
		results = append(results, u.dispatch(ctx, intent))
	}

	logger.Debug("execution finished", "state", StateSynthesizing)
	return u.synthesize(results), nil
}

// dispatch validates and executes a single intent. Any failure is captured
// in the result: one bad intent never aborts its siblings.
func (u *UseCase) dispatch(ctx context.Context, intent *model.ResolvedIntent) *IntentResult {
	def, err := u.registry.Resolve(intent.Tool)
	if err != nil {
		return &IntentResult{Tool: intent.Tool, Error: err.Error()}
	}

	args, err := tool.Validate(def, intent.Args)
	if err != nil {
		return &IntentResult{Tool: intent.Tool, Error: err.Error()}
	}

	result, err := def.Handler(ctx, args)
	if err != nil {
		return &IntentResult{Tool: intent.Tool, Error: err.Error()}
	}

	// A successful store write schedules the index upsert; a failed write
	// never does, so the two stores cannot diverge the wrong way around.
	if result.Record != nil {
		u.queue.Enqueue(result.Record)
	}

	return &IntentResult{Tool: intent.Tool, Result: result}
}
