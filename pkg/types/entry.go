package types

import "time"

// Entry is a single triage-ready work item produced by the capture pipeline.
// Entries are the atomic units the dashboard shows: every capture, typed form,
// or voice note ends up as exactly one Entry.
type Entry struct {
	// Core identification fields
	ID        string    `json:"id"`         // Unique identifier (uuid), immutable
	Slug      string    `json:"slug"`       // Deterministic human-readable identifier, immutable
	Title     string    `json:"title"`      // Short display title
	CreatedAt time.Time `json:"created_at"` // When the entry was created, immutable

	// Classification
	Type     EntryType `json:"type"`     // Entry type (site-visit, meeting, audit, ...)
	Status   Status    `json:"status"`   // Workflow status (open, in-progress, done, dismissed)
	Priority Priority  `json:"priority"` // P1 (safety-critical) .. P5 (idea)

	// Extracted content
	Summary     string   `json:"summary"`              // Bounded free text (~50 words recommended)
	Actionables []string `json:"actionables"`          // Ordered action items, may be empty
	People      []string `json:"people,omitempty"`     // Names mentioned; order preserved for display
	Location    string   `json:"location,omitempty"`   // Location reference if detected
	Topic       string   `json:"topic,omitempty"`      // Main subject/equipment/area
	KeyTopics   []string `json:"key_topics,omitempty"` // Themes detected during extraction

	// Scheduling
	Due *time.Time `json:"due,omitempty"` // Optional deadline; nil means none

	// Attachments and provenance
	AttachedFiles []string `json:"attached_files,omitempty"` // File references by name only
	Link          string   `json:"link,omitempty"`           // Storage locator (drive://{slug}/)
	QuickCapture  bool     `json:"quick_capture,omitempty"`  // True when created from a device capture
}

// EntryType classifies what kind of work an entry represents.
type EntryType string

const (
	TypeSiteVisit  EntryType = "site-visit"
	TypeMeeting    EntryType = "meeting"
	TypeAudit      EntryType = "audit"
	TypeVoice      EntryType = "voice"
	TypeTask       EntryType = "task"
	TypeInspection EntryType = "inspection"
	TypeReport     EntryType = "report"
	TypeIdea       EntryType = "idea"
	TypeIncident   EntryType = "incident"
)

// ValidEntryTypes contains all valid entry type values.
var ValidEntryTypes = []EntryType{
	TypeSiteVisit,
	TypeMeeting,
	TypeAudit,
	TypeVoice,
	TypeTask,
	TypeInspection,
	TypeReport,
	TypeIdea,
	TypeIncident,
}

// IsValidEntryType checks if the given type is a valid entry type.
func IsValidEntryType(t EntryType) bool {
	for _, valid := range ValidEntryTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// Priority ranks an entry's urgency. P1 sorts first in triage.
type Priority string

const (
	PriorityP1 Priority = "P1" // Critical / safety
	PriorityP2 Priority = "P2" // High
	PriorityP3 Priority = "P3" // Medium
	PriorityP4 Priority = "P4" // Low
	PriorityP5 Priority = "P5" // Idea / someday
)

// priorityRanks maps each priority to its urgency rank (lower = more urgent).
var priorityRanks = map[Priority]int{
	PriorityP1: 1,
	PriorityP2: 2,
	PriorityP3: 3,
	PriorityP4: 4,
	PriorityP5: 5,
}

// IsValidPriority checks if the given priority is one of P1..P5.
func IsValidPriority(p Priority) bool {
	_, ok := priorityRanks[p]
	return ok
}

// Rank returns the urgency rank for sorting (P1=1 .. P5=5).
// Unknown priorities rank after P5 so malformed data never jumps the queue.
func (p Priority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return len(priorityRanks) + 1
}

// Status is an entry's workflow state.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
	StatusDismissed  Status = "dismissed"
)

// ValidStatuses contains all valid status values.
var ValidStatuses = []Status{
	StatusOpen,
	StatusInProgress,
	StatusDone,
	StatusDismissed,
}

// IsValidStatus checks if the given status is a valid entry status.
func IsValidStatus(s Status) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// IsValidStatusTransition validates entry status transitions.
//
// Valid transitions:
//
//	open -> in-progress | done | dismissed
//	in-progress -> done | dismissed
//	done -> open (explicit reopen)
//	dismissed -> open (explicit reopen)
//
// Transitions only move forward, except reopening a closed entry back to
// open, which the user may do explicitly.
func IsValidStatusTransition(current, next Status) bool {
	if current == next {
		return false
	}

	switch current {
	case StatusOpen:
		return next == StatusInProgress || next == StatusDone || next == StatusDismissed
	case StatusInProgress:
		return next == StatusDone || next == StatusDismissed
	case StatusDone, StatusDismissed:
		return next == StatusOpen
	default:
		return false
	}
}

// IsActionable reports whether the entry should appear in the triage view.
func (s Status) IsActionable() bool {
	return s == StatusOpen || s == StatusInProgress
}
