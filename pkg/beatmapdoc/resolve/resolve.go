// Package resolve turns the raw id references of a freshly read score into a
// consistent graph: every link points at a note of the same score, mirror
// links agree, timings are current and notes are sorted.
package resolve

import (
	"github.com/zeebo/errs"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/diag"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
)

// ErrIntegrity is the error class for references that cannot be resolved.
var ErrIntegrity = errs.Class("integrity")

type linkKind int

const (
	linkNext linkKind = iota
	linkPrev
	linkHold
)

func (k linkKind) String() string {
	switch k {
	case linkNext:
		return "next"
	case linkPrev:
		return "prev"
	default:
		return "hold"
	}
}

func (k linkKind) get(n *model.Note) model.NoteID {
	switch k {
	case linkNext:
		return n.NextFlickOrSlideNoteID
	case linkPrev:
		return n.PrevFlickOrSlideNoteID
	default:
		return n.HoldTargetID
	}
}

func (k linkKind) set(n *model.Note, id model.NoteID) {
	switch k {
	case linkNext:
		n.NextFlickOrSlideNoteID = id
	case linkPrev:
		n.PrevFlickOrSlideNoteID = id
	default:
		n.HoldTargetID = id
	}
}

// mirror is the link the target must hold back.
func (k linkKind) mirror() linkKind {
	switch k {
	case linkNext:
		return linkPrev
	case linkPrev:
		return linkNext
	default:
		return linkHold
	}
}

var linkKinds = []linkKind{linkNext, linkPrev, linkHold}

// Project resolves every score of p.
func Project(p *model.Project, report *diag.Report) error {
	for _, s := range p.Scores() {
		if err := Score(s, report); err != nil {
			return err
		}
	}
	return nil
}

// Score resolves s in place. Running it again on its own output changes
// nothing.
func Score(s *model.Score, report *diag.Report) error {
	if err := s.RebuildIndex(); err != nil {
		return ErrIntegrity.New("%s: %v", s.Difficulty, err)
	}
	s.SortNotes()

	if err := checkLinks(s); err != nil {
		return err
	}
	if err := repairMirrors(s, report); err != nil {
		return err
	}

	s.UpdateTimings()
	refineTypes(s)
	return nil
}

// Validate reports the first reference of s that does not resolve or whose
// mirror disagrees. It never modifies s.
func Validate(s *model.Score) error {
	if err := checkLinks(s); err != nil {
		return err
	}
	for _, n := range s.Notes() {
		for _, k := range linkKinds {
			target, _ := s.NoteByID(k.get(n))
			if target == nil {
				continue
			}
			if back := k.mirror().get(target); back != n.ID {
				return ErrIntegrity.New("%s: %s link of note %d points at %d, whose %s link is %d",
					s.Difficulty, k, n.ID, target.ID, k.mirror(), back)
			}
		}
	}
	return nil
}

// ValidateProject runs Validate on every score of p.
func ValidateProject(p *model.Project) error {
	for _, s := range p.Scores() {
		if err := Validate(s); err != nil {
			return err
		}
	}
	return nil
}

func checkLinks(s *model.Score) error {
	for _, n := range s.Notes() {
		if n.Bar() == nil || n.Bar().Score() != s {
			return ErrIntegrity.New("%s: note %d is not attached to this score", s.Difficulty, n.ID)
		}
		if id, ok := s.NoteByID(n.ID); !ok || id != n {
			return ErrIntegrity.New("%s: note %d missing from the id index", s.Difficulty, n.ID)
		}
		for _, k := range linkKinds {
			id := k.get(n)
			if id == model.InvalidNoteID {
				continue
			}
			if id == n.ID {
				return ErrIntegrity.New("%s: note %d has a %s link to itself", s.Difficulty, n.ID, k)
			}
			if _, ok := s.NoteByID(id); !ok {
				return ErrIntegrity.New("%s: note %d has a dangling %s link to %d", s.Difficulty, n.ID, k, id)
			}
		}
	}
	return nil
}

// repairMirrors fills a missing back link and rejects one that points
// elsewhere.
func repairMirrors(s *model.Score, report *diag.Report) error {
	for _, n := range s.Notes() {
		for _, k := range linkKinds {
			target, ok := s.NoteByID(k.get(n))
			if !ok {
				continue
			}
			m := k.mirror()
			switch back := m.get(target); back {
			case n.ID:
			case model.InvalidNoteID:
				m.set(target, n.ID)
				report.Add(diag.LinkRepaired, s.Difficulty, target.ID,
					"note %d had no %s link back to note %d, restored", target.ID, m, n.ID)
			default:
				return ErrIntegrity.New("%s: %s link of note %d points at %d, whose %s link is %d",
					s.Difficulty, k, n.ID, target.ID, m, back)
			}
		}
	}
	return nil
}

// refineTypes promotes the TapOrFlick placeholder of generations that did not
// store a note type. Notes must be sorted.
func refineTypes(s *model.Score) {
	for _, n := range s.Notes() {
		if n.Type != model.NoteTypeTapOrFlick {
			continue
		}
		if target := s.HoldTarget(n); target != nil {
			if target.Type != model.NoteTypeHold && model.CompareNotes(n, target) < 0 {
				n.Type = model.NoteTypeHold
			}
			continue
		}
		if n.HasChain() && n.FlickType == model.FlickNone {
			n.Type = model.NoteTypeSlide
		}
	}
}
