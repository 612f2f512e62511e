package model

// BarParams overrides the global grid for a single bar. Zero fields inherit
// the global value.
type BarParams struct {
	UserDefinedGridPerSignature int
	UserDefinedSignature        int
}

func (p *BarParams) IsEmpty() bool {
	return p == nil || (p.UserDefinedGridPerSignature == 0 && p.UserDefinedSignature == 0)
}

// Bar is one measure of a Score.
type Bar struct {
	Index  int
	Params *BarParams

	// Derived by Score.UpdateTimings.
	StartTime float64
	EndTime   float64
	StartBpm  float64

	notes      []*Note
	score      *Score
	bpmChanges []bpmChange
}

// Score returns the owning score.
func (b *Bar) Score() *Score {
	return b.score
}

// Notes returns the bar's notes in timing order. The slice must not be modified.
func (b *Bar) Notes() []*Note {
	return b.notes
}

func (b *Bar) GridPerSignature() int {
	if b.Params != nil && b.Params.UserDefinedGridPerSignature > 0 {
		return b.Params.UserDefinedGridPerSignature
	}
	return b.score.project.Settings.GlobalGridPerSignature
}

func (b *Bar) Signature() int {
	if b.Params != nil && b.Params.UserDefinedSignature > 0 {
		return b.Params.UserDefinedSignature
	}
	return b.score.project.Settings.GlobalSignature
}

// GridDensity is the number of grid slots in this bar.
func (b *Bar) GridDensity() int {
	return b.GridPerSignature() * b.Signature()
}

// HasOwnGrid reports whether BarParams override the grid density.
func (b *Bar) HasOwnGrid() bool {
	return b.Params != nil && (b.Params.UserDefinedGridPerSignature > 0 || b.Params.UserDefinedSignature > 0)
}

// FindNote returns the first note matching typ at indexInGrid.
func (b *Bar) FindNote(typ NoteType, indexInGrid int) *Note {
	for _, n := range b.notes {
		if n.Type == typ && n.IndexInGrid == indexInGrid {
			return n
		}
	}
	return nil
}

func (b *Bar) insertSorted(n *Note) {
	b.notes = insertNote(b.notes, n)
}

func (b *Bar) remove(n *Note) bool {
	for i, x := range b.notes {
		if x == n {
			b.notes = append(b.notes[:i], b.notes[i+1:]...)
			return true
		}
	}
	return false
}
