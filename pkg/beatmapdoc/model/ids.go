package model

import "sync/atomic"

// NoteID identifies a note for the lifetime of the process and across
// save/load cycles.
type NoteID int

// InvalidNoteID is the "no note" value used by relationship fields.
const InvalidNoteID NoteID = 0

var lastNoteID atomic.Int64

// NextNoteID allocates a fresh identifier.
func NextNoteID() NoteID {
	return NoteID(lastNoteID.Add(1))
}

// ReserveNoteIDs makes sure later calls to NextNoteID return values above max.
func ReserveNoteIDs(max NoteID) {
	for {
		cur := lastNoteID.Load()
		if int64(max) <= cur {
			return
		}
		if lastNoteID.CompareAndSwap(cur, int64(max)) {
			return
		}
	}
}
