package resolve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/diag"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
)

// testingT is satisfied by both *testing.T and *rapid.T.
type testingT interface {
	require.TestingT
	Helper()
}

func newScore(t testingT, bars int) *model.Score {
	t.Helper()
	s := model.NewProject(model.DefaultScoreSettings()).Score(model.Master)
	s.EnsureBars(bars)
	return s
}

func place(t testingT, s *model.Score, id model.NoteID, bar, index int, lane model.NotePosition) *model.Note {
	t.Helper()
	n := &model.Note{ID: id, Type: model.NoteTypeTapOrFlick, IndexInGrid: index, StartPosition: lane, FinishPosition: lane}
	require.NoError(t, s.AddNote(s.Bar(bar), n))
	return n
}

// snapshot captures what resolution may change, in score order.
type noteState struct {
	ID               model.NoteID
	Bar, Index       int
	Type             model.NoteType
	Prev, Next, Hold model.NoteID
	HitTiming        float64
}

func snapshot(s *model.Score) []noteState {
	out := make([]noteState, 0, len(s.Notes()))
	for _, n := range s.Notes() {
		out = append(out, noteState{
			ID: n.ID, Bar: n.Bar().Index, Index: n.IndexInGrid, Type: n.Type,
			Prev: n.PrevFlickOrSlideNoteID, Next: n.NextFlickOrSlideNoteID, Hold: n.HoldTargetID,
			HitTiming: n.HitTiming,
		})
	}
	return out
}

func TestFlickChainTraversal(t *testing.T) {
	s := newScore(t, 2)
	first := place(t, s, 100, 0, 0, model.PositionLeft)
	mid := place(t, s, 101, 0, 24, model.PositionCenter)
	last := place(t, s, 102, 1, 0, model.PositionRight)
	first.FlickType = model.FlickRight
	first.NextFlickOrSlideNoteID = mid.ID
	mid.NextFlickOrSlideNoteID = last.ID
	last.FlickType = model.FlickRight

	report := diag.NewReport(nil)
	require.NoError(t, Score(s, report))

	chain := s.Chain(first)
	require.Len(t, chain, 3)
	assert.Equal(t, model.NoteID(102), chain[2].ID)
	for i := 1; i < len(chain); i++ {
		assert.Same(t, chain[i-1], s.PrevInChain(chain[i]))
	}
	assert.Equal(t, 2, report.Count(diag.LinkRepaired))

	assert.True(t, first.IsFlick())
	assert.Equal(t, model.NoteTypeSlide, mid.Type)
	assert.True(t, last.IsFlick())
}

func TestHoldRefinement(t *testing.T) {
	s := newScore(t, 1)
	start := place(t, s, 1, 0, 0, model.PositionCenter)
	end := place(t, s, 2, 0, 48, model.PositionCenter)
	start.HoldTargetID = end.ID
	end.HoldTargetID = start.ID

	require.NoError(t, Score(s, nil))
	assert.Equal(t, model.NoteTypeHold, start.Type)
	assert.Equal(t, model.NoteTypeTapOrFlick, end.Type)
	assert.True(t, end.IsHoldEnd())
}

func TestHoldMirrorRepaired(t *testing.T) {
	s := newScore(t, 1)
	start := place(t, s, 1, 0, 0, model.PositionCenter)
	end := place(t, s, 2, 0, 48, model.PositionCenter)
	start.HoldTargetID = end.ID

	report := diag.NewReport(nil)
	require.NoError(t, Score(s, report))
	assert.Equal(t, start.ID, end.HoldTargetID)
	assert.Equal(t, 1, report.Count(diag.LinkRepaired))
	require.NoError(t, Validate(s))
}

func TestDanglingLinkFails(t *testing.T) {
	s := newScore(t, 1)
	n := place(t, s, 1, 0, 0, model.PositionCenter)
	n.NextFlickOrSlideNoteID = 999

	err := Score(s, nil)
	require.Error(t, err)
	assert.True(t, ErrIntegrity.Has(err))
	assert.True(t, ErrIntegrity.Has(Validate(s)))
}

func TestSelfLinkFails(t *testing.T) {
	s := newScore(t, 1)
	n := place(t, s, 1, 0, 0, model.PositionCenter)
	n.HoldTargetID = n.ID

	assert.True(t, ErrIntegrity.Has(Score(s, nil)))
}

func TestContradictoryMirrorFails(t *testing.T) {
	s := newScore(t, 1)
	a := place(t, s, 1, 0, 0, model.PositionLeft)
	b := place(t, s, 2, 0, 24, model.PositionLeft)
	c := place(t, s, 3, 0, 48, model.PositionLeft)
	a.NextFlickOrSlideNoteID = b.ID
	c.NextFlickOrSlideNoteID = b.ID

	err := Score(s, nil)
	require.Error(t, err)
	assert.True(t, ErrIntegrity.Has(err))
}

func TestValidateDoesNotRepair(t *testing.T) {
	s := newScore(t, 1)
	a := place(t, s, 1, 0, 0, model.PositionLeft)
	b := place(t, s, 2, 0, 24, model.PositionLeft)
	a.NextFlickOrSlideNoteID = b.ID

	assert.True(t, ErrIntegrity.Has(Validate(s)))
	assert.Equal(t, model.InvalidNoteID, b.PrevFlickOrSlideNoteID)
}

func TestResolveUpdatesTimings(t *testing.T) {
	p := model.NewProject(model.ScoreSettings{GlobalBpm: 60, StartTimeOffset: 2, GlobalGridPerSignature: 24, GlobalSignature: 4})
	s := p.Score(model.Regular)
	s.EnsureBars(2)
	n := place(t, s, 1, 1, 24, model.PositionLeft)

	require.NoError(t, Score(s, nil))
	// one bar of four beats at 60 bpm, then one beat
	assert.InDelta(t, 7.0, n.HitTiming, 1e-9)
	assert.InDelta(t, 6.0, s.Bar(1).StartTime, 1e-9)
}

func TestResolveIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newScore(t, 4)
		count := rapid.IntRange(1, 40).Draw(t, "count")

		used := map[[3]int]bool{}
		var notes []*model.Note
		for i := 0; i < count; i++ {
			bar := rapid.IntRange(0, 3).Draw(t, "bar")
			index := rapid.IntRange(0, 95).Draw(t, "index")
			lane := rapid.IntRange(1, 5).Draw(t, "lane")
			key := [3]int{bar, index, lane}
			if used[key] {
				continue
			}
			used[key] = true
			notes = append(notes, place(t, s, model.NoteID(1000+i), bar, index, model.NotePosition(lane)))
		}

		// link consecutive pairs one way only; the resolver fills the rest
		sorted := s.Notes()
		for i := 0; i+1 < len(sorted); i += 2 {
			a, b := sorted[i], sorted[i+1]
			if rapid.Bool().Draw(t, "hold") {
				a.HoldTargetID = b.ID
			} else {
				a.NextFlickOrSlideNoteID = b.ID
			}
		}

		require.NoError(t, Score(s, nil))
		once := snapshot(s)
		require.NoError(t, Score(s, nil))
		if diff := cmp.Diff(once, snapshot(s)); diff != "" {
			t.Fatalf("second pass changed the score (-once +twice):\n%s", diff)
		}

		for i := 1; i < len(s.Notes()); i++ {
			if model.CompareNotes(s.Notes()[i-1], s.Notes()[i]) >= 0 {
				t.Fatalf("notes out of order at %d", i)
			}
		}
		require.Len(t, s.Notes(), len(notes))
	})
}
