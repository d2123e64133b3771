package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karstegg/martha-assistant-system/pkg/types"
)

func testEntry(id, slug string, status types.Status) types.Entry {
	return types.Entry{
		ID:        id,
		Slug:      slug,
		Title:     "Test entry " + id,
		Type:      types.TypeTask,
		Status:    status,
		Priority:  types.PriorityP3,
		Summary:   "summary",
		CreatedAt: time.Date(2025, 7, 16, 10, 0, 0, 0, time.UTC),
	}
}

func TestAppendAndGet(t *testing.T) {
	s := NewEntryStore()
	e := testEntry("id-1", "task_one_2025_07_16", types.StatusOpen)

	require.NoError(t, s.Append(e))

	got, err := s.Get("id-1")
	require.NoError(t, err)
	assert.Equal(t, e, got)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendRejectsDuplicates(t *testing.T) {
	s := NewEntryStore()
	require.NoError(t, s.Append(testEntry("id-1", "slug_a", types.StatusOpen)))

	assert.Error(t, s.Append(testEntry("id-1", "slug_b", types.StatusOpen)))
	assert.Error(t, s.Append(testEntry("id-2", "slug_a", types.StatusOpen)))
	assert.Equal(t, 1, s.Len())
}

func TestAllMostRecentFirst(t *testing.T) {
	s := NewEntryStore()
	require.NoError(t, s.Append(testEntry("id-1", "slug_1", types.StatusOpen)))
	require.NoError(t, s.Append(testEntry("id-2", "slug_2", types.StatusOpen)))
	require.NoError(t, s.Append(testEntry("id-3", "slug_3", types.StatusOpen)))

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "id-3", all[0].ID)
	assert.Equal(t, "id-2", all[1].ID)
	assert.Equal(t, "id-1", all[2].ID)
}

func TestOpenFiltersByStatus(t *testing.T) {
	s := NewEntryStore()
	require.NoError(t, s.Append(testEntry("id-1", "slug_1", types.StatusOpen)))
	require.NoError(t, s.Append(testEntry("id-2", "slug_2", types.StatusDone)))
	require.NoError(t, s.Append(testEntry("id-3", "slug_3", types.StatusInProgress)))
	require.NoError(t, s.Append(testEntry("id-4", "slug_4", types.StatusDismissed)))

	open := s.Open()
	require.Len(t, open, 2)
	// creation order preserved
	assert.Equal(t, "id-1", open[0].ID)
	assert.Equal(t, "id-3", open[1].ID)
}

func TestSlugExists(t *testing.T) {
	s := NewEntryStore()
	require.NoError(t, s.Append(testEntry("id-1", "audit_shaftb_2025_07_16", types.StatusOpen)))

	assert.True(t, s.SlugExists("audit_shaftb_2025_07_16"))
	assert.False(t, s.SlugExists("audit_shaftb_2025_07_16_2"))
}

func TestUpdateStatusUnknownIDIsNoOp(t *testing.T) {
	s := NewEntryStore()
	require.NoError(t, s.Append(testEntry("id-1", "slug_1", types.StatusOpen)))

	s.UpdateStatus("missing", types.StatusDone)

	got, err := s.Get("id-1")
	require.NoError(t, err)
	assert.Equal(t, types.StatusOpen, got.Status)
}

func TestUpdateStatusTransitions(t *testing.T) {
	s := NewEntryStore()
	e := testEntry("id-1", "slug_1", types.StatusOpen)
	require.NoError(t, s.Append(e))

	s.UpdateStatus("id-1", types.StatusInProgress)
	got, _ := s.Get("id-1")
	assert.Equal(t, types.StatusInProgress, got.Status)

	// immutable fields untouched
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, e.Slug, got.Slug)
	assert.Equal(t, e.CreatedAt, got.CreatedAt)

	// invalid transition ignored
	s.UpdateStatus("id-1", types.StatusOpen)
	got, _ = s.Get("id-1")
	assert.Equal(t, types.StatusInProgress, got.Status)

	// reopen after done
	s.UpdateStatus("id-1", types.StatusDone)
	s.UpdateStatus("id-1", types.StatusOpen)
	got, _ = s.Get("id-1")
	assert.Equal(t, types.StatusOpen, got.Status)
}
