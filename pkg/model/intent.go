package model

// ResolvedIntent is the classifier's output for a single tool invocation.
// It is request-scoped and discarded after dispatch.
type ResolvedIntent struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}
