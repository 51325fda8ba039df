package assistant

import (
	"fmt"
	"strings"
)

// synthesize merges per-intent results into one response. A single result is
// returned as-is; multiple results degrade to a summary that lists each
// tool's outcome. Per-intent failures are surfaced, never dropped.
func (u *UseCase) synthesize(results []*IntentResult) *Response {
	resp := &Response{
		State:   StateDone,
		Results: results,
	}

	if len(results) == 1 {
		r := results[0]
		if r.Error != "" {
			resp.Message = fmt.Sprintf("%s failed: %s", r.Tool, r.Error)
		} else {
			resp.Message = r.Result.Message
		}
		return resp
	}

	var lines []string
	for _, r := range results {
		switch {
		case r.Error != "":
			lines = append(lines, fmt.Sprintf("%s: failed (%s)", r.Tool, r.Error))
		case r.Result.Message != "":
			lines = append(lines, fmt.Sprintf("%s: %s", r.Tool, r.Result.Message))
		default:
			lines = append(lines, fmt.Sprintf("%s: %d row(s)", r.Tool, len(r.Result.Rows)))
		}
	}
	resp.Message = strings.Join(lines, "\n")

	return resp
}
