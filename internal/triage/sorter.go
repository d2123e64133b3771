// Package triage ranks open entries for attention. Sorting is pure: it
// copies its input and never mutates store state.
package triage

import (
	"sort"

	"github.com/karstegg/martha-assistant-system/pkg/types"
)

// Sort filters entries to open/in-progress and orders them for display:
// priority rank first (P1 before P2 before ... P5), then earlier due date
// within equal priority. The due-date comparison only applies when both
// entries carry one; an entry without a due date keeps its relative position.
// The sort is stable, so equal-ranked entries retain their pre-sort order.
func Sort(entries []types.Entry) []types.Entry {
	var open []types.Entry
	for _, e := range entries {
		if e.Status.IsActionable() {
			open = append(open, e)
		}
	}

	sort.SliceStable(open, func(i, j int) bool {
		a, b := open[i], open[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		if a.Due != nil && b.Due != nil {
			return a.Due.Before(*b.Due)
		}
		return false
	})

	return open
}
