// Package diag collects the non-fatal findings of a load or save.
package diag

import (
	"fmt"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
)

type Kind int

const (
	// VersionFallback: the stored version was missing, malformed or not a
	// known generation and another one was used.
	VersionFallback Kind = iota + 1
	// DuplicateNoteID: a notes table repeated an id; the later row was skipped.
	DuplicateNoteID
	// SpecialNoteCollision: two special note rows matched the same note.
	SpecialNoteCollision
	// GridDrop: a note fell between the grid lines of a coarser grid and was removed.
	GridDrop
	// LinkCleared: a relationship pointed at a dropped note and was cleared.
	LinkCleared
	// LinkRepaired: a missing mirror link was filled in.
	LinkRepaired
)

func (k Kind) String() string {
	switch k {
	case VersionFallback:
		return "version-fallback"
	case DuplicateNoteID:
		return "duplicate-note-id"
	case SpecialNoteCollision:
		return "special-note-collision"
	case GridDrop:
		return "grid-drop"
	case LinkCleared:
		return "link-cleared"
	case LinkRepaired:
		return "link-repaired"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Diagnostic struct {
	Kind       Kind
	Difficulty model.Difficulty // DifficultyInvalid for document-wide findings
	NoteID     model.NoteID
	Message    string
}

func (d Diagnostic) String() string {
	if d.Difficulty.Valid() {
		return fmt.Sprintf("[%s] %s: %s", d.Kind, d.Difficulty, d.Message)
	}
	return fmt.Sprintf("[%s] %s", d.Kind, d.Message)
}

// Sink receives every diagnostic as it is reported.
type Sink interface {
	Warnf(format string, args ...any)
}

// Report accumulates diagnostics. The zero value is ready to use.
type Report struct {
	list []Diagnostic
	sink Sink
}

func NewReport(sink Sink) *Report {
	return &Report{sink: sink}
}

// Add records a diagnostic. It is safe to call on a nil Report.
func (r *Report) Add(kind Kind, difficulty model.Difficulty, noteID model.NoteID, format string, args ...any) {
	if r == nil {
		return
	}
	d := Diagnostic{
		Kind:       kind,
		Difficulty: difficulty,
		NoteID:     noteID,
		Message:    fmt.Sprintf(format, args...),
	}
	r.list = append(r.list, d)
	if r.sink != nil {
		r.sink.Warnf("%s", d)
	}
}

func (r *Report) All() []Diagnostic {
	if r == nil {
		return nil
	}
	return r.list
}

func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.list)
}

// Count returns how many diagnostics of kind were recorded.
func (r *Report) Count(kind Kind) int {
	n := 0
	for _, d := range r.All() {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
