package triage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karstegg/martha-assistant-system/pkg/types"
)

func entry(id string, priority types.Priority, status types.Status, due *time.Time) types.Entry {
	return types.Entry{
		ID:       id,
		Priority: priority,
		Status:   status,
		Due:      due,
	}
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func ids(entries []types.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestSortByPriorityStable(t *testing.T) {
	in := []types.Entry{
		entry("a", types.PriorityP2, types.StatusOpen, nil),
		entry("b", types.PriorityP1, types.StatusOpen, nil),
		entry("c", types.PriorityP3, types.StatusOpen, nil),
		entry("d", types.PriorityP1, types.StatusOpen, nil),
	}

	got := Sort(in)
	// both P1s first, retaining their original relative order
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(got))
}

func TestSortFiltersClosedEntries(t *testing.T) {
	in := []types.Entry{
		entry("a", types.PriorityP1, types.StatusDone, nil),
		entry("b", types.PriorityP2, types.StatusOpen, nil),
		entry("c", types.PriorityP3, types.StatusDismissed, nil),
		entry("d", types.PriorityP1, types.StatusInProgress, nil),
	}

	got := Sort(in)
	assert.Equal(t, []string{"d", "b"}, ids(got))
}

func TestSortDueDateTieBreak(t *testing.T) {
	in := []types.Entry{
		entry("later", types.PriorityP1, types.StatusOpen, datePtr(2025, 7, 18)),
		entry("sooner", types.PriorityP1, types.StatusOpen, datePtr(2025, 7, 16)),
	}

	got := Sort(in)
	assert.Equal(t, []string{"sooner", "later"}, ids(got))
}

func TestSortNoDueDateKeepsOrder(t *testing.T) {
	in := []types.Entry{
		entry("a", types.PriorityP2, types.StatusOpen, nil),
		entry("b", types.PriorityP2, types.StatusOpen, datePtr(2025, 7, 16)),
		entry("c", types.PriorityP2, types.StatusOpen, nil),
	}

	got := Sort(in)
	// an entry without a due date is never reordered against one with a due date
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := []types.Entry{
		entry("a", types.PriorityP3, types.StatusOpen, nil),
		entry("b", types.PriorityP1, types.StatusOpen, nil),
	}

	_ = Sort(in)
	require.Equal(t, "a", in[0].ID)
	require.Equal(t, "b", in[1].ID)
}

func TestSortEmpty(t *testing.T) {
	assert.Empty(t, Sort(nil))
	assert.Empty(t, Sort([]types.Entry{entry("a", types.PriorityP1, types.StatusDone, nil)}))
}
