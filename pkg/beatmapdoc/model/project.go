package model

// Project is the root of a beatmap document.
type Project struct {
	MusicFileName string
	Version       Version
	Settings      ScoreSettings

	// SaveFileName is the document the project is bound to; IsChanged is the
	// editor's dirty flag. Both are maintained by the engine's Save calls.
	SaveFileName string
	IsChanged    bool

	scores map[Difficulty]*Score
}

// NewProject creates an empty project with one score per difficulty.
func NewProject(settings ScoreSettings) *Project {
	p := &Project{
		Version:  CurrentVersion,
		Settings: settings,
		scores:   make(map[Difficulty]*Score, len(Difficulties())),
	}
	for _, d := range Difficulties() {
		p.scores[d] = newScore(p, d)
	}
	return p
}

// Score returns the score of difficulty d, nil for an invalid difficulty.
func (p *Project) Score(d Difficulty) *Score {
	return p.scores[d]
}

// Scores returns every score in difficulty order.
func (p *Project) Scores() []*Score {
	out := make([]*Score, 0, len(p.scores))
	for _, d := range Difficulties() {
		out = append(out, p.scores[d])
	}
	return out
}

// UpdateTimings refreshes derived timing on every score.
func (p *Project) UpdateTimings() {
	for _, s := range p.Scores() {
		s.UpdateTimings()
	}
}

// HasNoteID reports whether any score of the project holds a note with id.
// Ids share one space across difficulties.
func (p *Project) HasNoteID(id NoteID) bool {
	for _, s := range p.Scores() {
		if _, ok := s.NoteByID(id); ok {
			return true
		}
	}
	return false
}

// MaxNoteID returns the highest id used by any note of the project.
func (p *Project) MaxNoteID() NoteID {
	var max NoteID
	for _, s := range p.Scores() {
		for _, n := range s.notes {
			if n.ID > max {
				max = n.ID
			}
		}
	}
	return max
}
