// Package llm provides the completion-service integration for capture
// analysis and entry enrichment. It includes strict JSON-only prompt
// templates and a tolerant response parser that validates the untrusted
// completion output before extraction uses it.
package llm

import (
	"fmt"
	"strings"

	"github.com/karstegg/martha-assistant-system/pkg/types"
)

// captureNouns maps capture modes to the noun used in prompts.
var captureNouns = map[types.CaptureMode]string{
	types.ModePhoto: "photo",
	types.ModeAudio: "audio recording",
	types.ModeVideo: "video",
}

// CaptureAnalysisPrompt builds the prompt for analyzing a quick field
// capture. The completion service is asked to produce every field of the
// extraction result as a single JSON object.
func CaptureAnalysisPrompt(mode types.CaptureMode, text string, files []string) string {
	noun := captureNouns[mode]
	if noun == "" {
		noun = "capture"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `TASK: Analyze a %s captured in the field. The user is describing work that needs to be done, an issue found, or an idea to remember.
OUTPUT: ONLY valid JSON. NO markdown. NO code blocks. NO backticks.

PRIORITY SCALE: P1=critical/safety, P2=high, P3=medium, P4=low, P5=idea

REQUIRED JSON STRUCTURE:
Your response MUST start with { and end with }
{
  "title": "descriptive title based on content",
  "type": "site-visit|meeting|audit|inspection|incident|task|idea|voice|report",
  "priority": "P1|P2|P3|P4|P5",
  "summary": "concise summary, 50 words or less",
  "actionables": ["specific action items mentioned"],
  "people": ["names mentioned"],
  "location": "location if mentioned, else empty string",
  "topic": "main subject, equipment, or area",
  "suggested_due_date": "YYYY-MM-DD or null",
  "key_topics": ["equipment", "safety", "maintenance"],
  "confidence": "high|medium|low"
}

Only include action items, people, and locations actually present in the content. Use null for suggested_due_date unless urgency is implied.
`, noun)

	if text != "" {
		fmt.Fprintf(&b, "\nCAPTURE TEXT:\n%s\n", text)
	}
	if len(files) > 0 {
		fmt.Fprintf(&b, "\nATTACHED FILES: %s\n", strings.Join(files, ", "))
	}

	return b.String()
}

// EnrichmentPrompt builds the prompt for enriching an explicitly typed
// entry form. The service refines the summary and extracts structure, but
// the typed title, type, and priority remain authoritative: the caller
// merges only the enrichable fields back.
func EnrichmentPrompt(form types.EntryForm) string {
	var b strings.Builder
	fmt.Fprintf(&b, `TASK: Enhance a field work entry typed by the user.
OUTPUT: ONLY valid JSON. NO markdown. NO code blocks. NO backticks.

ENTRY:
Type: %s
Title: %s
Summary: %s
People: %s
`, form.Type, form.Title, form.Summary, form.People)

	if len(form.Files) > 0 {
		fmt.Fprintf(&b, "Files: %s\n", strings.Join(form.Files, ", "))
	}

	b.WriteString(`
REQUIRED JSON STRUCTURE:
Your response MUST start with { and end with }
{
  "summary": "enhanced summary, 50 words or less",
  "actionables": ["action items from the content"],
  "people": ["people mentioned"],
  "key_topics": ["key topics or themes"],
  "suggested_due_date": "YYYY-MM-DD or null"
}

Only include people and action items actually present in the content.
`)

	return b.String()
}
