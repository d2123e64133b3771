package llm

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/karstegg/martha-assistant-system/pkg/types"
)

// captureResponse is the wire shape of a capture analysis completion.
type captureResponse struct {
	Title            string   `json:"title"`
	Type             string   `json:"type"`
	Priority         string   `json:"priority"`
	Summary          string   `json:"summary"`
	Actionables      []string `json:"actionables"`
	People           []string `json:"people"`
	Location         string   `json:"location"`
	Topic            string   `json:"topic"`
	SuggestedDueDate *string  `json:"suggested_due_date"`
	KeyTopics        []string `json:"key_topics"`
	Confidence       string   `json:"confidence"`
}

// EnrichmentResponse is the parsed result of an entry enrichment completion.
// Only the enrichable fields are present; typed fields stay authoritative.
type EnrichmentResponse struct {
	Summary          string     `json:"summary"`
	Actionables      []string   `json:"actionables"`
	People           []string   `json:"people"`
	KeyTopics        []string   `json:"key_topics"`
	SuggestedDueDate *time.Time `json:"-"`
}

// extractJSON extracts the first complete JSON object from a string that may
// contain extra text. Models add explanations before/after the JSON and wrap
// it in markdown fences despite instructions; this strips both.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return text // no JSON found, let the parser fail
	}

	braceCount := 0
	inString := false
	escape := false

	for i := start; i < len(text); i++ {
		char := text[i]

		if escape {
			escape = false
			continue
		}
		if char == '\\' {
			escape = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}

		if !inString {
			switch char {
			case '{':
				braceCount++
			case '}':
				braceCount--
				if braceCount == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return text // unbalanced, let the parser fail
}

// ParseCaptureResponse validates a capture analysis completion into an
// ExtractionResult. The input is untrusted: malformed JSON, a missing title,
// or out-of-enumeration type/priority values are errors, which the caller
// treats as the signal to fall back to deterministic extraction. Fields that
// can be safely dropped (an unparseable due date, an unknown confidence
// grade) are filtered rather than failing the whole response.
func ParseCaptureResponse(raw string) (types.ExtractionResult, error) {
	var resp captureResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &resp); err != nil {
		return types.ExtractionResult{}, fmt.Errorf("malformed capture response: %w", err)
	}

	title := strings.TrimSpace(resp.Title)
	if title == "" {
		return types.ExtractionResult{}, fmt.Errorf("capture response missing title")
	}

	entryType := types.EntryType(strings.TrimSpace(resp.Type))
	if !types.IsValidEntryType(entryType) {
		return types.ExtractionResult{}, fmt.Errorf("capture response has unknown type %q", resp.Type)
	}

	priority := types.Priority(strings.ToUpper(strings.TrimSpace(resp.Priority)))
	if !types.IsValidPriority(priority) {
		return types.ExtractionResult{}, fmt.Errorf("capture response has unknown priority %q", resp.Priority)
	}

	confidence := types.Confidence(strings.ToLower(strings.TrimSpace(resp.Confidence)))
	if !types.IsValidConfidence(confidence) {
		confidence = types.ConfidenceLow
	}

	return types.ExtractionResult{
		Title:            title,
		Type:             entryType,
		Priority:         priority,
		Summary:          strings.TrimSpace(resp.Summary),
		Actionables:      cleanList(resp.Actionables),
		People:           cleanList(resp.People),
		Location:         strings.TrimSpace(resp.Location),
		Topic:            strings.TrimSpace(resp.Topic),
		SuggestedDueDate: parseDueDate(resp.SuggestedDueDate),
		KeyTopics:        cleanList(resp.KeyTopics),
		Confidence:       confidence,
	}, nil
}

// ParseEnrichmentResponse validates an entry enrichment completion.
// Malformed JSON is an error; everything else is filtered leniently since
// the typed form already supplies the required fields.
func ParseEnrichmentResponse(raw string) (EnrichmentResponse, error) {
	var resp struct {
		Summary          string   `json:"summary"`
		Actionables      []string `json:"actionables"`
		People           []string `json:"people"`
		KeyTopics        []string `json:"key_topics"`
		SuggestedDueDate *string  `json:"suggested_due_date"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &resp); err != nil {
		return EnrichmentResponse{}, fmt.Errorf("malformed enrichment response: %w", err)
	}

	return EnrichmentResponse{
		Summary:          strings.TrimSpace(resp.Summary),
		Actionables:      cleanList(resp.Actionables),
		People:           cleanList(resp.People),
		KeyTopics:        cleanList(resp.KeyTopics),
		SuggestedDueDate: parseDueDate(resp.SuggestedDueDate),
	}, nil
}

// parseDueDate parses a YYYY-MM-DD due date. Unparseable or null values
// are dropped rather than failing the response.
func parseDueDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return nil
	}
	t, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		log.Printf("Dropping unparseable due date %q: %v", trimmed, err)
		return nil
	}
	return &t
}

// cleanList trims each item and drops empty fragments, preserving order.
func cleanList(items []string) []string {
	var out []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
