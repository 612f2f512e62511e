package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScore(t *testing.T, bars int) *Score {
	t.Helper()
	p := NewProject(DefaultScoreSettings())
	s := p.Score(Master)
	require.NotNil(t, s)
	s.EnsureBars(bars)
	return s
}

func addTap(t *testing.T, s *Score, bar, index int, lane NotePosition) *Note {
	t.Helper()
	n := NewNote(NoteTypeTapOrFlick, index)
	n.StartPosition, n.FinishPosition = lane, lane
	require.NoError(t, s.AddNote(s.Bar(bar), n))
	return n
}

func TestNewProjectHasOneScorePerDifficulty(t *testing.T) {
	p := NewProject(DefaultScoreSettings())

	scores := p.Scores()
	require.Len(t, scores, 5)
	for i, d := range Difficulties() {
		assert.Equal(t, d, scores[i].Difficulty)
		assert.Same(t, scores[i], p.Score(d))
		assert.Same(t, p, scores[i].Project())
	}
	assert.Nil(t, p.Score(DifficultyInvalid))
}

func TestAddNoteKeepsOrder(t *testing.T) {
	s := newTestScore(t, 2)

	late := addTap(t, s, 1, 0, PositionLeft)
	mid := addTap(t, s, 0, 48, PositionRight)
	earlyRight := addTap(t, s, 0, 0, PositionRight)
	earlyLeft := addTap(t, s, 0, 0, PositionLeft)

	assert.Equal(t, []*Note{earlyLeft, earlyRight, mid, late}, s.Notes())
	assert.Equal(t, []*Note{earlyLeft, earlyRight, mid}, s.Bar(0).Notes())
	assert.Equal(t, []*Note{late}, s.Bar(1).Notes())
}

func TestAddNoteRejectsInvalidPlacement(t *testing.T) {
	s := newTestScore(t, 1)
	other := newTestScore(t, 1)

	err := s.AddNote(s.Bar(0), NewNote(NoteTypeTapOrFlick, 96))
	assert.ErrorIs(t, err, ErrGridOutOfRange)

	err = s.AddNote(other.Bar(0), NewNote(NoteTypeTapOrFlick, 0))
	assert.ErrorIs(t, err, ErrForeignBar)

	n := addTap(t, s, 0, 3, PositionCenter)
	err = s.AddNote(s.Bar(0), n)
	assert.ErrorIs(t, err, ErrNoteAttached)

	dup := &Note{ID: n.ID, Type: NoteTypeTapOrFlick, IndexInGrid: 4}
	err = s.AddNote(s.Bar(0), dup)
	assert.ErrorIs(t, err, ErrDuplicateNote)
}

func TestRemoveNoteClearsReferences(t *testing.T) {
	s := newTestScore(t, 1)
	a := addTap(t, s, 0, 0, PositionLeft)
	b := addTap(t, s, 0, 24, PositionLeft)
	c := addTap(t, s, 0, 48, PositionLeft)
	a.NextFlickOrSlideNoteID = b.ID
	b.PrevFlickOrSlideNoteID = a.ID
	b.NextFlickOrSlideNoteID = c.ID
	c.PrevFlickOrSlideNoteID = b.ID

	touched := s.RemoveNote(b)

	assert.ElementsMatch(t, []*Note{a, c}, touched)
	assert.Equal(t, InvalidNoteID, a.NextFlickOrSlideNoteID)
	assert.Equal(t, InvalidNoteID, c.PrevFlickOrSlideNoteID)
	assert.Nil(t, b.Bar())
	assert.Equal(t, []*Note{a, c}, s.Notes())
	assert.Equal(t, []*Note{a, c}, s.Bar(0).Notes())
	_, ok := s.NoteByID(b.ID)
	assert.False(t, ok)
}

func TestRemoveHoldEndDemotesStart(t *testing.T) {
	s := newTestScore(t, 1)
	start := addTap(t, s, 0, 0, PositionCenter)
	end := addTap(t, s, 0, 48, PositionCenter)
	start.Type = NoteTypeHold
	start.HoldTargetID = end.ID
	end.HoldTargetID = start.ID

	s.RemoveNote(end)

	assert.Equal(t, NoteTypeTapOrFlick, start.Type)
	assert.Equal(t, InvalidNoteID, start.HoldTargetID)
}

func TestChainTraversal(t *testing.T) {
	s := newTestScore(t, 1)
	a := addTap(t, s, 0, 0, PositionLeft)
	b := addTap(t, s, 0, 12, PositionCenterLeft)
	c := addTap(t, s, 0, 24, PositionCenter)
	a.NextFlickOrSlideNoteID = b.ID
	b.PrevFlickOrSlideNoteID = a.ID
	b.NextFlickOrSlideNoteID = c.ID
	c.PrevFlickOrSlideNoteID = b.ID

	assert.Equal(t, []*Note{a, b, c}, s.Chain(c))
	assert.Equal(t, []*Note{a, b, c}, s.Chain(a))
	assert.Same(t, c, s.NextInChain(b))
	assert.Same(t, a, s.PrevInChain(b))
	assert.Nil(t, s.NextInChain(c))
}

func TestChainTerminatesOnCycle(t *testing.T) {
	s := newTestScore(t, 1)
	a := addTap(t, s, 0, 0, PositionLeft)
	b := addTap(t, s, 0, 12, PositionLeft)
	a.NextFlickOrSlideNoteID, a.PrevFlickOrSlideNoteID = b.ID, b.ID
	b.NextFlickOrSlideNoteID, b.PrevFlickOrSlideNoteID = a.ID, a.ID

	assert.Len(t, s.Chain(a), 2)
}

func TestSortNotesIsDeterministic(t *testing.T) {
	s := newTestScore(t, 2)
	for i := 0; i < 10; i++ {
		addTap(t, s, i%2, (i*7)%96, NotePosition(1+i%5))
	}
	before := append([]*Note(nil), s.Notes()...)

	s.SortNotes()
	s.SortNotes()

	assert.Equal(t, before, s.Notes())
}

func TestBarParamsOverrideDensity(t *testing.T) {
	s := newTestScore(t, 2)
	s.Bar(1).Params = &BarParams{UserDefinedGridPerSignature: 48}

	assert.Equal(t, 96, s.Bar(0).GridDensity())
	assert.Equal(t, 192, s.Bar(1).GridDensity())
	assert.True(t, s.Bar(1).HasOwnGrid())
	assert.False(t, s.Bar(0).HasOwnGrid())
}

func TestReserveNoteIDs(t *testing.T) {
	cur := NextNoteID()
	ReserveNoteIDs(cur + 1000)
	assert.Greater(t, NextNoteID(), cur+1000)

	ReserveNoteIDs(1)
	next := NextNoteID()
	assert.Greater(t, next, cur+1000)
}

func TestProjectHasNoteIDSpansDifficulties(t *testing.T) {
	p := NewProject(DefaultScoreSettings())
	s := p.Score(Master)
	s.EnsureBars(1)
	n := NewNote(NoteTypeTapOrFlick, 0)
	n.StartPosition, n.FinishPosition = PositionCenter, PositionCenter
	require.NoError(t, s.AddNote(s.Bar(0), n))

	assert.True(t, p.HasNoteID(n.ID))
	assert.False(t, p.HasNoteID(InvalidNoteID))
	assert.False(t, p.HasNoteID(n.ID+1))
	_, inDebut := p.Score(Debut).NoteByID(n.ID)
	assert.False(t, inDebut)
}
