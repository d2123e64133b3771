// Package slug generates deterministic human-readable identifiers for
// entries. Slugs encode the entry type, a normalized location or topic, and
// the creation timestamp, so the same inputs always produce the same slug.
package slug

import (
	"fmt"
	"strings"
	"time"

	"github.com/karstegg/martha-assistant-system/pkg/types"
)

// Normalize lowercases text and strips every character that is not an ASCII
// letter or digit.
func Normalize(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Generate composes a slug from the entry type, location, topic, and
// timestamp. Date and time components are rendered in the timestamp's own
// zone. Pure and deterministic: uniqueness against a store is layered on by
// Unique.
func Generate(entryType types.EntryType, location, topic string, ts time.Time) string {
	date := ts.Format("2006_01_02")
	clock := ts.Format("1504")

	switch entryType {
	case types.TypeSiteVisit:
		return fmt.Sprintf("sitevisit_%s_%s", Normalize(location), date)
	case types.TypeMeeting:
		return fmt.Sprintf("meeting_%s_%s_%s", Normalize(topic), date, clock)
	case types.TypeAudit:
		return fmt.Sprintf("audit_%s_%s", Normalize(firstNonEmpty(location, topic)), date)
	case types.TypeVoice:
		return fmt.Sprintf("voice_%s_%s_%s", Normalize(topic), date, clock)
	default:
		return fmt.Sprintf("%s_%s_%s", entryType, Normalize(firstNonEmpty(topic, location)), date)
	}
}

// Unique appends a numeric disambiguator (_2, _3, ...) until exists reports
// the slug free. The base slug itself counts as suffix 1, so the first
// collision yields "_2". Existing slugs are never reused or mutated.
func Unique(base string, exists func(slug string) bool) string {
	if !exists(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if !exists(candidate) {
			return candidate
		}
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
