package model

import "fmt"

// NoteType is persisted as an integer in the notes and special notes tables.
type NoteType int

const (
	NoteTypeInvalid NoteType = iota
	// NoteTypeTapOrFlick is a tap when FlickType is FlickNone, a flick otherwise.
	// It is also the placeholder given to notes read from generations that did
	// not store a type.
	NoteTypeTapOrFlick
	NoteTypeHold
	NoteTypeSlide
	// NoteTypeVariantBpm is a special note: it changes the tempo from its grid
	// position onwards and never takes part in gameplay.
	NoteTypeVariantBpm
)

func (t NoteType) String() string {
	switch t {
	case NoteTypeTapOrFlick:
		return "TapOrFlick"
	case NoteTypeHold:
		return "Hold"
	case NoteTypeSlide:
		return "Slide"
	case NoteTypeVariantBpm:
		return "VariantBpm"
	default:
		return fmt.Sprintf("NoteType(%d)", int(t))
	}
}

// IsGameplay reports whether notes of this type go into the primary notes table.
func (t NoteType) IsGameplay() bool {
	return t == NoteTypeTapOrFlick || t == NoteTypeHold || t == NoteTypeSlide
}

// IsSpecial reports whether notes of this type are decorative markers.
func (t NoteType) IsSpecial() bool {
	return t == NoteTypeVariantBpm
}

type FlickType int

const (
	FlickNone FlickType = iota
	FlickLeft
	FlickRight
)

func (f FlickType) String() string {
	switch f {
	case FlickNone:
		return "None"
	case FlickLeft:
		return "Left"
	case FlickRight:
		return "Right"
	default:
		return fmt.Sprintf("FlickType(%d)", int(f))
	}
}

// NotePosition is a lane, 1 (leftmost) to 5. Special notes sit on PositionNowhere.
type NotePosition int

const (
	PositionNowhere NotePosition = iota
	PositionLeft
	PositionCenterLeft
	PositionCenter
	PositionCenterRight
	PositionRight
)

// Note is a single chart element. Relationship fields hold ids of notes in the
// same Score; Score.NoteByID turns them into notes.
type Note struct {
	ID             NoteID
	IndexInGrid    int
	Type           NoteType
	FlickType      FlickType
	StartPosition  NotePosition
	FinishPosition NotePosition

	PrevFlickOrSlideNoteID NoteID
	NextFlickOrSlideNoteID NoteID
	HoldTargetID           NoteID

	// ExtraParams is only set on special notes.
	ExtraParams *NoteExtraParams

	// HitTiming is the absolute time in seconds, derived by Score.UpdateTimings.
	HitTiming float64

	bar *Bar
}

// NewNote creates a note with a freshly allocated id.
func NewNote(typ NoteType, indexInGrid int) *Note {
	return &Note{ID: NextNoteID(), Type: typ, IndexInGrid: indexInGrid}
}

// Bar returns the owning bar, nil for a detached note.
func (n *Note) Bar() *Bar {
	return n.bar
}

func (n *Note) IsGameplay() bool { return n.Type.IsGameplay() }

func (n *Note) IsSpecial() bool { return n.Type.IsSpecial() }

func (n *Note) IsTap() bool {
	return n.Type == NoteTypeTapOrFlick && n.FlickType == FlickNone
}

func (n *Note) IsFlick() bool {
	return n.Type == NoteTypeTapOrFlick && n.FlickType != FlickNone
}

func (n *Note) IsSlide() bool { return n.Type == NoteTypeSlide }

// IsHoldStart reports whether the note opens a hold span.
func (n *Note) IsHoldStart() bool { return n.Type == NoteTypeHold }

// IsHoldEnd reports whether the note closes a hold span.
func (n *Note) IsHoldEnd() bool {
	return n.HoldTargetID != InvalidNoteID && n.Type != NoteTypeHold
}

func (n *Note) HasChain() bool {
	return n.PrevFlickOrSlideNoteID != InvalidNoteID || n.NextFlickOrSlideNoteID != InvalidNoteID
}

func (n *Note) String() string {
	bar := -1
	if n.bar != nil {
		bar = n.bar.Index
	}
	return fmt.Sprintf("note#%d(%s bar=%d grid=%d lane=%d->%d)", n.ID, n.Type, bar, n.IndexInGrid, n.StartPosition, n.FinishPosition)
}
