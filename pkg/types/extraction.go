package types

import "time"

// Confidence grades how much the extraction output can be trusted.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// IsValidConfidence checks if the given value is a valid confidence grade.
func IsValidConfidence(c Confidence) bool {
	return c == ConfidenceHigh || c == ConfidenceMedium || c == ConfidenceLow
}

// ExtractionResult is the structured output of extraction before it is
// materialized into an Entry. It is ephemeral: consumed immediately by the
// extraction service and never stored.
type ExtractionResult struct {
	Title            string     `json:"title"`
	Type             EntryType  `json:"type"`
	Priority         Priority   `json:"priority"`
	Summary          string     `json:"summary"`
	Actionables      []string   `json:"actionables"`
	People           []string   `json:"people"`
	Location         string     `json:"location"`
	Topic            string     `json:"topic"`
	SuggestedDueDate *time.Time `json:"suggested_due_date,omitempty"`
	KeyTopics        []string   `json:"key_topics"`
	Confidence       Confidence `json:"confidence"`
}

// CaptureInput is what the extraction service receives for a device capture:
// the artifact plus any accompanying text the user typed alongside it.
type CaptureInput struct {
	Artifact *MediaArtifact // Captured media, nil when the input is text-only
	Mode     CaptureMode    // Mode hint used by the deterministic fallback
	TypeHint EntryType      // Caller-supplied type, honored when the mode gives no signal
	Text     string         // Optional accompanying free text (e.g. a rough transcript)
}

// EntryForm is an explicit, user-typed submission. Actionables arrive
// newline-separated and people comma-separated, exactly as typed; the
// extraction service normalizes both.
type EntryForm struct {
	Title       string
	Type        EntryType
	Priority    Priority
	Location    string
	Topic       string
	People      string
	Summary     string
	Actionables string
	Due         *time.Time
	Files       []string
}
