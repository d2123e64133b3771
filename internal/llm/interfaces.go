package llm

import "context"

// Completer is the interface to the external completion service used for
// capture analysis. All extraction prompts use single-string completion
// style (not chat). The returned text is untrusted: callers must validate
// it parses into the expected shape before use.
//
// Absence of a completion service is a normal, expected condition, not an
// error: the Unavailable implementation satisfies this interface and lets
// extraction fall back deterministically.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}
