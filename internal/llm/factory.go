package llm

import (
	"github.com/karstegg/martha-assistant-system/internal/config"
)

// NewCompleter creates the appropriate Completer for the configuration:
// an HTTP client when the completion service is enabled, the Unavailable
// variant otherwise. Callers never branch on availability themselves;
// extraction treats both the same way.
func NewCompleter(cfg config.CompletionConfig) Completer {
	if !cfg.Enabled {
		return Unavailable{}
	}
	return NewClient(ClientConfig{
		BaseURL:           cfg.BaseURL,
		Model:             cfg.Model,
		Timeout:           cfg.Timeout(),
		RequestsPerMinute: cfg.RequestsPerMinute,
	})
}
