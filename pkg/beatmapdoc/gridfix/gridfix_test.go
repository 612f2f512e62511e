package gridfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/diag"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
)

var defaultGrid = model.DefaultScoreSettings()

func projectWithGrid(gridPerSignature, signature int) *model.Project {
	settings := model.DefaultScoreSettings()
	settings.GlobalGridPerSignature = gridPerSignature
	settings.GlobalSignature = signature
	return model.NewProject(settings)
}

func put(t require.TestingT, s *model.Score, bar, index int) *model.Note {
	n := model.NewNote(model.NoteTypeTapOrFlick, index)
	n.StartPosition, n.FinishPosition = model.PositionCenter, model.PositionCenter
	s.EnsureBars(bar + 1)
	require.NoError(t, s.AddNote(s.Bar(bar), n))
	return n
}

func TestSameDensityIsNoop(t *testing.T) {
	p := projectWithGrid(32, 3)
	n := put(t, p.Score(model.Master), 0, 31)

	res, err := Fixup(p, defaultGrid, nil)
	require.NoError(t, err)
	assert.False(t, res.Rescaled)
	assert.Equal(t, 31, n.IndexInGrid)
	assert.Equal(t, 32, p.Settings.GlobalGridPerSignature)
}

func TestLegacyDocumentDoubles(t *testing.T) {
	p := projectWithGrid(12, 4)
	p.Settings.GlobalBpm = 174
	s := p.Score(model.Pro)
	var notes []*model.Note
	for i := 0; i < 48; i += 5 {
		notes = append(notes, put(t, s, i%3, i))
	}
	before := make([]int, len(notes))
	for i, n := range notes {
		before[i] = n.IndexInGrid
	}

	res, err := Fixup(p, defaultGrid, nil)
	require.NoError(t, err)

	assert.Equal(t, Result{OldGrids: 48, NewGrids: 96, Rescaled: true}, res)
	assert.Equal(t, 96, p.Settings.GridDensity())
	assert.Equal(t, 174.0, p.Settings.GlobalBpm)
	require.Len(t, s.Notes(), len(notes))
	for i, n := range notes {
		assert.Equal(t, before[i]*2, n.IndexInGrid)
	}
}

func TestFineDocumentContracts(t *testing.T) {
	p := projectWithGrid(96, 4)
	s := p.Score(model.Master)
	off := put(t, s, 0, 17)
	on := put(t, s, 0, 16)

	report := diag.NewReport(nil)
	res, err := Fixup(p, defaultGrid, report)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, 4, on.IndexInGrid)
	assert.Nil(t, off.Bar())
	_, ok := s.NoteByID(off.ID)
	assert.False(t, ok)
	assert.Equal(t, []*model.Note{on}, s.Notes())
	assert.Equal(t, []*model.Note{on}, s.Bar(0).Notes())
	assert.Equal(t, 1, report.Count(diag.GridDrop))
}

func TestDroppedHoldEndClearsStart(t *testing.T) {
	p := projectWithGrid(96, 4)
	s := p.Score(model.Regular)
	start := put(t, s, 0, 0)
	end := put(t, s, 0, 3)
	start.Type = model.NoteTypeHold
	start.HoldTargetID, end.HoldTargetID = end.ID, start.ID

	report := diag.NewReport(nil)
	_, err := Fixup(p, defaultGrid, report)
	require.NoError(t, err)

	assert.Equal(t, model.InvalidNoteID, start.HoldTargetID)
	assert.Equal(t, model.NoteTypeTapOrFlick, start.Type)
	assert.Equal(t, 1, report.Count(diag.LinkCleared))
}

func TestNonDivisibleGridRejected(t *testing.T) {
	p := projectWithGrid(20, 4)
	n := put(t, p.Score(model.Debut), 0, 7)

	_, err := Fixup(p, defaultGrid, nil)
	require.Error(t, err)
	assert.True(t, ErrUnsupportedGrid.Has(err))
	assert.Equal(t, 20, p.Settings.GlobalGridPerSignature)
	assert.Equal(t, 7, n.IndexInGrid)
}

func TestBarWithOwnGridKeepsIndices(t *testing.T) {
	p := projectWithGrid(12, 4)
	s := p.Score(model.Master)
	s.EnsureBars(2)
	s.Bar(1).Params = &model.BarParams{UserDefinedGridPerSignature: 16, UserDefinedSignature: 4}
	fixed := put(t, s, 1, 63)
	scaled := put(t, s, 0, 11)

	_, err := Fixup(p, defaultGrid, nil)
	require.NoError(t, err)
	assert.Equal(t, 63, fixed.IndexInGrid)
	assert.Equal(t, 22, scaled.IndexInGrid)
}

func TestSignatureOnlyOverrideFollowsGlobalGrid(t *testing.T) {
	p := projectWithGrid(12, 4)
	s := p.Score(model.Master)
	s.EnsureBars(1)
	s.Bar(0).Params = &model.BarParams{UserDefinedSignature: 3}
	n := put(t, s, 0, 35)

	_, err := Fixup(p, defaultGrid, nil)
	require.NoError(t, err)
	assert.Equal(t, 70, n.IndexInGrid)
	assert.Equal(t, 72, s.Bar(0).GridDensity())
}

func TestExpansionIsExact(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := rapid.SampledFrom([]int{2, 4, 8}).Draw(t, "k")
		p := projectWithGrid(24/k, 4)
		s := p.Score(model.Master)
		density := p.Settings.GridDensity()

		indices := rapid.SliceOfN(rapid.IntRange(0, density-1), 1, 30).Draw(t, "indices")
		notes := make([]*model.Note, len(indices))
		for i, idx := range indices {
			notes[i] = put(t, s, i%4, idx)
		}

		res, err := Fixup(p, defaultGrid, nil)
		require.NoError(t, err)
		require.Zero(t, res.Dropped)
		require.Len(t, s.Notes(), len(indices))
		for i, n := range notes {
			if n.IndexInGrid != indices[i]*k {
				t.Fatalf("note %d: index %d, want %d", i, n.IndexInGrid, indices[i]*k)
			}
		}
	})
}

func TestContractionIsSelective(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := rapid.SampledFrom([]int{2, 4}).Draw(t, "k")
		p := projectWithGrid(24*k, 4)
		s := p.Score(model.Master)
		density := p.Settings.GridDensity()

		indices := rapid.SliceOfN(rapid.IntRange(0, density-1), 1, 30).Draw(t, "indices")
		notes := make([]*model.Note, len(indices))
		survivors := 0
		for i, idx := range indices {
			notes[i] = put(t, s, i%4, idx)
			if idx%k == 0 {
				survivors++
			}
		}

		res, err := Fixup(p, defaultGrid, nil)
		require.NoError(t, err)
		require.Equal(t, len(indices)-survivors, res.Dropped)
		require.Len(t, s.Notes(), survivors)
		for i, n := range notes {
			if indices[i]%k != 0 {
				if n.Bar() != nil {
					t.Fatalf("note %d at %d should have been removed", i, indices[i])
				}
				continue
			}
			if n.IndexInGrid != indices[i]/k {
				t.Fatalf("note %d: index %d, want %d", i, n.IndexInGrid, indices[i]/k)
			}
		}
	})
}
