package types_test

import (
	"testing"

	"github.com/karstegg/martha-assistant-system/pkg/types"
)

func TestValidEntryTypes(t *testing.T) {
	valid := []types.EntryType{
		"site-visit", "meeting", "audit", "voice",
		"task", "inspection", "report", "idea", "incident",
	}

	for _, et := range valid {
		if !types.IsValidEntryType(et) {
			t.Errorf("Expected %s to be a valid entry type", et)
		}
	}
}

func TestInvalidEntryTypes(t *testing.T) {
	invalid := []types.EntryType{"", "sitevisit", "note", "unknown"}

	for _, et := range invalid {
		if types.IsValidEntryType(et) {
			t.Errorf("Expected %s to be an invalid entry type", et)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	tests := []struct {
		priority types.Priority
		rank     int
	}{
		{types.PriorityP1, 1},
		{types.PriorityP2, 2},
		{types.PriorityP3, 3},
		{types.PriorityP4, 4},
		{types.PriorityP5, 5},
		{types.Priority("P9"), 6}, // unknown ranks last
		{types.Priority(""), 6},
	}

	for _, tt := range tests {
		if got := tt.priority.Rank(); got != tt.rank {
			t.Errorf("Rank(%q) = %d, want %d", tt.priority, got, tt.rank)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current types.Status
		next    types.Status
		valid   bool
	}{
		{"open to in-progress", types.StatusOpen, types.StatusInProgress, true},
		{"open to done", types.StatusOpen, types.StatusDone, true},
		{"open to dismissed", types.StatusOpen, types.StatusDismissed, true},
		{"in-progress to done", types.StatusInProgress, types.StatusDone, true},
		{"in-progress to dismissed", types.StatusInProgress, types.StatusDismissed, true},
		{"reopen from done", types.StatusDone, types.StatusOpen, true},
		{"reopen from dismissed", types.StatusDismissed, types.StatusOpen, true},
		{"no backward to open from in-progress", types.StatusInProgress, types.StatusOpen, false},
		{"done to in-progress rejected", types.StatusDone, types.StatusInProgress, false},
		{"dismissed to done rejected", types.StatusDismissed, types.StatusDone, false},
		{"self transition rejected", types.StatusOpen, types.StatusOpen, false},
		{"unknown current rejected", types.Status("archived"), types.StatusOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := types.IsValidStatusTransition(tt.current, tt.next); got != tt.valid {
				t.Errorf("IsValidStatusTransition(%q, %q) = %v, want %v", tt.current, tt.next, got, tt.valid)
			}
		})
	}
}

func TestStatusIsActionable(t *testing.T) {
	if !types.StatusOpen.IsActionable() || !types.StatusInProgress.IsActionable() {
		t.Error("open and in-progress should be actionable")
	}
	if types.StatusDone.IsActionable() || types.StatusDismissed.IsActionable() {
		t.Error("done and dismissed should not be actionable")
	}
}

func TestCaptureTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current types.CaptureState
		next    types.CaptureState
		valid   bool
	}{
		{"idle to requesting", types.CaptureIdle, types.CaptureRequesting, true},
		{"requesting to recording", types.CaptureRequesting, types.CaptureRecording, true},
		{"requesting straight to stopped (photo)", types.CaptureRequesting, types.CaptureStopped, true},
		{"requesting to error", types.CaptureRequesting, types.CaptureError, true},
		{"recording to stopped", types.CaptureRecording, types.CaptureStopped, true},
		{"recording to error", types.CaptureRecording, types.CaptureError, true},
		{"stopped is terminal", types.CaptureStopped, types.CaptureIdle, false},
		{"error is terminal", types.CaptureError, types.CaptureRequesting, false},
		{"idle cannot skip to recording", types.CaptureIdle, types.CaptureRecording, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := types.IsValidCaptureTransition(tt.current, tt.next); got != tt.valid {
				t.Errorf("IsValidCaptureTransition(%q, %q) = %v, want %v", tt.current, tt.next, got, tt.valid)
			}
		})
	}
}

func TestCaptureModeContentType(t *testing.T) {
	tests := []struct {
		mode types.CaptureMode
		want string
	}{
		{types.ModePhoto, "image/jpeg"},
		{types.ModeAudio, "audio/webm"},
		{types.ModeVideo, "video/webm"},
		{types.CaptureMode("screen"), "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := tt.mode.ContentType(); got != tt.want {
			t.Errorf("ContentType(%q) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
