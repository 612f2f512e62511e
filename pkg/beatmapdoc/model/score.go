package model

import (
	"errors"
	"fmt"
)

var (
	ErrForeignBar     = errors.New("bar does not belong to this score")
	ErrNoteAttached   = errors.New("note already belongs to a bar")
	ErrDuplicateNote  = errors.New("duplicate note id")
	ErrGridOutOfRange = errors.New("grid index out of range")
)

// Score is the chart of one difficulty. Notes() is the flattened, time sorted
// view over every bar; index maps ids to notes of this score only.
type Score struct {
	Difficulty Difficulty

	bars    []*Bar
	notes   []*Note
	index   map[NoteID]*Note
	project *Project
}

func newScore(p *Project, d Difficulty) *Score {
	return &Score{
		Difficulty: d,
		index:      make(map[NoteID]*Note),
		project:    p,
	}
}

func (s *Score) Project() *Project {
	return s.project
}

func (s *Score) Settings() ScoreSettings {
	return s.project.Settings
}

// Bars returns the bars in index order. The slice must not be modified.
func (s *Score) Bars() []*Bar {
	return s.bars
}

// Bar returns the bar at index i, or nil when out of range.
func (s *Score) Bar(i int) *Bar {
	if i < 0 || i >= len(s.bars) {
		return nil
	}
	return s.bars[i]
}

// Notes returns every note of the score in timing order. The slice must not
// be modified.
func (s *Score) Notes() []*Note {
	return s.notes
}

func (s *Score) NoteByID(id NoteID) (*Note, bool) {
	if id == InvalidNoteID {
		return nil, false
	}
	n, ok := s.index[id]
	return n, ok
}

// AppendBar adds an empty bar after the last one.
func (s *Score) AppendBar() *Bar {
	b := &Bar{Index: len(s.bars), score: s}
	s.bars = append(s.bars, b)
	return b
}

// EnsureBars pads the score with empty bars until it has at least n of them.
func (s *Score) EnsureBars(n int) {
	for len(s.bars) < n {
		s.AppendBar()
	}
}

// AddNote attaches n to bar, keeping bar and score ordering intact.
func (s *Score) AddNote(bar *Bar, n *Note) error {
	if bar == nil || bar.score != s {
		return ErrForeignBar
	}
	if n.bar != nil {
		return fmt.Errorf("%w: %s", ErrNoteAttached, n)
	}
	if n.IndexInGrid < 0 || n.IndexInGrid >= bar.GridDensity() {
		return fmt.Errorf("%w: index %d, bar %d has %d slots", ErrGridOutOfRange, n.IndexInGrid, bar.Index, bar.GridDensity())
	}
	if n.ID == InvalidNoteID {
		n.ID = NextNoteID()
	}
	if _, ok := s.index[n.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateNote, n.ID)
	}

	n.bar = bar
	bar.insertSorted(n)
	s.notes = insertNote(s.notes, n)
	s.index[n.ID] = n
	n.HitTiming = bar.TimeAt(n.IndexInGrid)
	return nil
}

// RemoveNote detaches n from the score. Links held by other notes that
// pointed at n are cleared; those notes are returned.
func (s *Score) RemoveNote(n *Note) []*Note {
	if n.bar == nil || n.bar.score != s {
		return nil
	}
	n.bar.remove(n)
	for i, x := range s.notes {
		if x == n {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			break
		}
	}
	delete(s.index, n.ID)
	n.bar = nil

	var touched []*Note
	for _, other := range s.notes {
		changed := false
		if other.PrevFlickOrSlideNoteID == n.ID {
			other.PrevFlickOrSlideNoteID = InvalidNoteID
			changed = true
		}
		if other.NextFlickOrSlideNoteID == n.ID {
			other.NextFlickOrSlideNoteID = InvalidNoteID
			changed = true
		}
		if other.HoldTargetID == n.ID {
			other.HoldTargetID = InvalidNoteID
			if other.Type == NoteTypeHold {
				other.Type = NoteTypeTapOrFlick
			}
			changed = true
		}
		if changed {
			touched = append(touched, other)
		}
	}
	return touched
}

// SortNotes restores timing order in every bar and in the flattened list.
func (s *Score) SortNotes() {
	for _, b := range s.bars {
		sortNotes(b.notes)
	}
	sortNotes(s.notes)
}

// RebuildIndex recreates the id lookup from the flattened list.
func (s *Score) RebuildIndex() error {
	index := make(map[NoteID]*Note, len(s.notes))
	for _, n := range s.notes {
		if _, ok := index[n.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateNote, n.ID)
		}
		index[n.ID] = n
	}
	s.index = index
	return nil
}

// NextInChain follows NextFlickOrSlideNoteID.
func (s *Score) NextInChain(n *Note) *Note {
	next, _ := s.NoteByID(n.NextFlickOrSlideNoteID)
	return next
}

// PrevInChain follows PrevFlickOrSlideNoteID.
func (s *Score) PrevInChain(n *Note) *Note {
	prev, _ := s.NoteByID(n.PrevFlickOrSlideNoteID)
	return prev
}

// HoldTarget follows HoldTargetID.
func (s *Score) HoldTarget(n *Note) *Note {
	t, _ := s.NoteByID(n.HoldTargetID)
	return t
}

// Chain returns the flick or slide group n belongs to, head first.
func (s *Score) Chain(n *Note) []*Note {
	head := n
	seen := map[NoteID]bool{head.ID: true}
	for prev := s.PrevInChain(head); prev != nil && !seen[prev.ID]; prev = s.PrevInChain(head) {
		seen[prev.ID] = true
		head = prev
	}

	chain := []*Note{head}
	seen = map[NoteID]bool{head.ID: true}
	for next := s.NextInChain(head); next != nil && !seen[next.ID]; next = s.NextInChain(next) {
		seen[next.ID] = true
		chain = append(chain, next)
	}
	return chain
}

// GameplayNotes returns the notes that belong in the primary notes table.
func (s *Score) GameplayNotes() []*Note {
	out := make([]*Note, 0, len(s.notes))
	for _, n := range s.notes {
		if n.IsGameplay() {
			out = append(out, n)
		}
	}
	return out
}

// SpecialNotes returns the decorative notes of the score.
func (s *Score) SpecialNotes() []*Note {
	var out []*Note
	for _, n := range s.notes {
		if n.IsSpecial() {
			out = append(out, n)
		}
	}
	return out
}
