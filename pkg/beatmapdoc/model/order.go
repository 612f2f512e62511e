package model

import (
	"cmp"
	"slices"
)

// CompareNotes orders notes by absolute timing, then lane. Timing is compared
// exactly as (bar index, grid fraction) so that float rounding never decides
// the order; equal instants fall back to finish lane and id.
func CompareNotes(a, b *Note) int {
	if c := cmp.Compare(a.bar.Index, b.bar.Index); c != 0 {
		return c
	}
	// a.IndexInGrid/da vs b.IndexInGrid/db
	da, db := a.bar.GridDensity(), b.bar.GridDensity()
	if c := cmp.Compare(a.IndexInGrid*db, b.IndexInGrid*da); c != 0 {
		return c
	}
	if c := cmp.Compare(a.StartPosition, b.StartPosition); c != 0 {
		return c
	}
	if c := cmp.Compare(a.FinishPosition, b.FinishPosition); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func sortNotes(notes []*Note) {
	slices.SortFunc(notes, CompareNotes)
}

func insertNote(notes []*Note, n *Note) []*Note {
	i, _ := slices.BinarySearchFunc(notes, n, CompareNotes)
	return slices.Insert(notes, i, n)
}
