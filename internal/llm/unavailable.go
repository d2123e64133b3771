package llm

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by the Unavailable completer on every call.
var ErrUnavailable = errors.New("completion service not configured")

// Unavailable is the Completer used when no completion service is
// configured. Every call fails with ErrUnavailable, which the extraction
// service treats as the normal signal to use its deterministic fallback.
// This keeps the no-service case on the same code path as a reachable but
// failing service, instead of branching through the extraction logic.
type Unavailable struct{}

// Complete always returns ErrUnavailable.
func (Unavailable) Complete(ctx context.Context, prompt string) (string, error) {
	return "", ErrUnavailable
}

// Model returns "none".
func (Unavailable) Model() string {
	return "none"
}
