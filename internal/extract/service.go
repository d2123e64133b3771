// Package extract converts captures and typed forms into structured
// entries. It delegates to the completion service when one is reachable
// and degrades to deterministic rules otherwise; extraction never leaves
// the caller without a usable entry.
package extract

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/karstegg/martha-assistant-system/internal/llm"
	"github.com/karstegg/martha-assistant-system/internal/slug"
	"github.com/karstegg/martha-assistant-system/internal/store"
	"github.com/karstegg/martha-assistant-system/pkg/types"
)

// ValidationError reports a rejected explicit-form submission. No entry is
// created when validation fails.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Service is the extraction service. It owns no entries; materialized
// entries are appended to the store and returned to the caller.
type Service struct {
	completer llm.Completer
	store     *store.EntryStore
	now       func() time.Time
}

// NewService creates an extraction service. A nil completer degrades to
// the always-unavailable variant so every path still has a Completer.
func NewService(completer llm.Completer, st *store.EntryStore) *Service {
	if completer == nil {
		completer = llm.Unavailable{}
	}
	return &Service{
		completer: completer,
		store:     st,
		now:       time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// FromForm materializes an entry from an explicit, user-typed form. Typed
// fields are authoritative: enrichment may refine the summary and fill
// gaps, but it never overrides the typed title, type, priority, or due
// date. An empty title is rejected before any entry is created.
func (s *Service) FromForm(ctx context.Context, form types.EntryForm) (types.Entry, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return types.Entry{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	entryType := form.Type
	if entryType == "" {
		entryType = types.TypeTask
	}
	if !types.IsValidEntryType(entryType) {
		return types.Entry{}, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown entry type %q", form.Type)}
	}

	priority := form.Priority
	if priority == "" {
		priority = types.PriorityP3
	}
	if !types.IsValidPriority(priority) {
		return types.Entry{}, &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", form.Priority)}
	}

	result := types.ExtractionResult{
		Title:       title,
		Type:        entryType,
		Priority:    priority,
		Summary:     strings.TrimSpace(form.Summary),
		Actionables: splitLines(form.Actionables),
		People:      splitCommas(form.People),
		Location:    strings.TrimSpace(form.Location),
		Topic:       strings.TrimSpace(form.Topic),
		Confidence:  types.ConfidenceHigh,
	}

	// Enrich typed content through the completion service when there is
	// content worth enriching. Failure is normal: the typed fields already
	// make a complete entry.
	if result.Summary != "" || len(form.Files) > 0 {
		if enriched, err := s.enrichForm(ctx, form); err == nil {
			mergeEnrichment(&result, enriched)
		} else {
			log.Printf("Form enrichment unavailable, keeping typed fields: %v", err)
		}
	}

	if result.Summary == "" {
		result.Summary = fmt.Sprintf("%s entry created", entryType)
	}

	return s.materialize(result, form.Files, false, form.Due, true)
}

// FromCapture materializes an entry from a device capture (or text-only
// quick note). The completion service is asked for the full extraction
// shape; any failure, including a malformed payload, falls back to
// deterministic rules. This never returns an extraction error.
func (s *Service) FromCapture(ctx context.Context, input types.CaptureInput) (types.Entry, error) {
	var files []string
	if input.Artifact != nil {
		files = []string{input.Artifact.Name}
	}

	result, err := s.analyzeCapture(ctx, input, files)
	if err != nil {
		log.Printf("Capture analysis degraded to fallback: %v", err)
		result = s.fallbackResult(input)
	}

	return s.materialize(result, files, true, nil, false)
}

// enrichForm delegates a typed form to the completion service and parses
// the enrichable fields.
func (s *Service) enrichForm(ctx context.Context, form types.EntryForm) (llm.EnrichmentResponse, error) {
	raw, err := s.completer.Complete(ctx, llm.EnrichmentPrompt(form))
	if err != nil {
		return llm.EnrichmentResponse{}, err
	}
	return llm.ParseEnrichmentResponse(raw)
}

// analyzeCapture delegates a capture to the completion service and
// validates the full extraction shape.
func (s *Service) analyzeCapture(ctx context.Context, input types.CaptureInput, files []string) (types.ExtractionResult, error) {
	raw, err := s.completer.Complete(ctx, llm.CaptureAnalysisPrompt(input.Mode, input.Text, files))
	if err != nil {
		return types.ExtractionResult{}, err
	}
	return llm.ParseCaptureResponse(raw)
}

// fallbackResult is the deterministic extraction used when the completion
// service is absent or its output unusable. It is intentionally
// conservative: no fabricated people, locations, or due dates.
func (s *Service) fallbackResult(input types.CaptureInput) types.ExtractionResult {
	now := s.now()

	entryType := types.TypeTask
	if types.IsValidEntryType(input.TypeHint) {
		entryType = input.TypeHint
	}
	label := "Capture"
	switch input.Mode {
	case types.ModeVideo:
		entryType, label = types.TypeVoice, "Video"
	case types.ModeAudio:
		entryType, label = types.TypeVoice, "Audio"
	case types.ModePhoto:
		entryType, label = types.TypeInspection, "Photo"
	}

	return types.ExtractionResult{
		Title:       fmt.Sprintf("Quick Capture - %s", label),
		Type:        entryType,
		Priority:    types.PriorityP3,
		Summary:     fmt.Sprintf("Field capture recorded at %s", now.Format("2006-01-02 15:04")),
		Actionables: []string{"Review captured content"},
		People:      nil,
		Topic:       "field_capture",
		KeyTopics:   []string{"field_work"},
		Confidence:  types.ConfidenceLow,
	}
}

// materialize turns an extraction result into a stored entry: deterministic
// slug, fresh id, open status, attached files, and due-date resolution.
// When authoritativeDue is set (explicit forms) the caller's due date wins
// over any suggestion; automatic extraction lets the suggestion through.
func (s *Service) materialize(result types.ExtractionResult, files []string, quickCapture bool, explicitDue *time.Time, authoritativeDue bool) (types.Entry, error) {
	createdAt := s.now()

	base := slug.Generate(result.Type, result.Location, result.Topic, createdAt)
	unique := slug.Unique(base, s.store.SlugExists)

	entry := types.Entry{
		ID:            uuid.NewString(),
		Slug:          unique,
		Title:         result.Title,
		Type:          result.Type,
		Status:        types.StatusOpen,
		Priority:      result.Priority,
		Summary:       result.Summary,
		Actionables:   result.Actionables,
		People:        result.People,
		Location:      result.Location,
		Topic:         result.Topic,
		KeyTopics:     result.KeyTopics,
		Due:           s.resolveDue(result, createdAt, explicitDue, authoritativeDue),
		CreatedAt:     createdAt,
		AttachedFiles: files,
		Link:          fmt.Sprintf("drive://%s/", unique),
		QuickCapture:  quickCapture,
	}

	if err := s.store.Append(entry); err != nil {
		return types.Entry{}, err
	}
	return entry, nil
}

// resolveDue picks the entry's due date. P1 entries never go without one:
// absent any suggestion (or given a suggestion already in the past), a P1
// due defaults to one day after creation.
func (s *Service) resolveDue(result types.ExtractionResult, createdAt time.Time, explicitDue *time.Time, authoritativeDue bool) *time.Time {
	due := result.SuggestedDueDate
	if authoritativeDue && explicitDue != nil {
		due = explicitDue
	}

	if result.Priority == types.PriorityP1 {
		if due == nil || (!authoritativeDue && due.Before(createdAt)) {
			d := createdAt.Add(24 * time.Hour)
			due = &d
		}
	}
	return due
}

// splitLines splits newline-separated actionables, trimming and dropping
// empty fragments.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// splitCommas splits comma-separated people, trimming and dropping empty
// fragments.
func splitCommas(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// mergeEnrichment overlays enrichable fields onto a form-derived result.
// Empty enrichment fields leave the typed values in place.
func mergeEnrichment(result *types.ExtractionResult, enriched llm.EnrichmentResponse) {
	if enriched.Summary != "" {
		result.Summary = enriched.Summary
	}
	if len(enriched.Actionables) > 0 {
		result.Actionables = enriched.Actionables
	}
	if len(enriched.People) > 0 {
		result.People = enriched.People
	}
	if len(enriched.KeyTopics) > 0 {
		result.KeyTopics = enriched.KeyTopics
	}
	if enriched.SuggestedDueDate != nil {
		result.SuggestedDueDate = enriched.SuggestedDueDate
	}
}
