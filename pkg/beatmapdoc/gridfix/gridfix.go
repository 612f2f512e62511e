// Package gridfix re-expresses note grid indices when a document was saved
// with a different default grid density than the one the engine runs with.
package gridfix

import (
	"github.com/zeebo/errs"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/diag"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
)

// ErrUnsupportedGrid is returned when neither density divides the other.
var ErrUnsupportedGrid = errs.Class("unsupported grid")

// Result summarizes a Fixup call.
type Result struct {
	OldGrids int
	NewGrids int
	// Rescaled is set when any index or the global grid changed.
	Rescaled bool
	Dropped  int
}

// Fixup moves p onto the grid of target. Only the grid fields of target are
// used; BPM and offset stay as loaded. Expansion multiplies indices, contraction
// divides those that fall on the coarser grid and removes the rest. Bars whose
// own params fix their density are left alone. Nothing is modified when an
// error is returned.
func Fixup(p *model.Project, target model.ScoreSettings, report *diag.Report) (Result, error) {
	res := Result{
		OldGrids: p.Settings.GridDensity(),
		NewGrids: target.GridDensity(),
	}
	if res.NewGrids <= 0 || res.OldGrids <= 0 {
		return res, ErrUnsupportedGrid.New("cannot map a %d grid onto %d", res.OldGrids, res.NewGrids)
	}
	if res.OldGrids == res.NewGrids {
		return res, nil
	}

	next := p.Settings
	next.GlobalGridPerSignature = target.GlobalGridPerSignature
	next.GlobalSignature = target.GlobalSignature

	// plan everything before touching the project
	type barPlan struct {
		bar      *model.Bar
		from, to int
	}
	var plans []barPlan
	for _, s := range p.Scores() {
		for _, b := range s.Bars() {
			from, to := density(b.Params, p.Settings), density(b.Params, next)
			if from == to {
				continue
			}
			if to%from != 0 && from%to != 0 {
				return res, ErrUnsupportedGrid.New("%s bar %d: %d grid lines cannot be mapped onto %d", s.Difficulty, b.Index, from, to)
			}
			plans = append(plans, barPlan{bar: b, from: from, to: to})
		}
	}

	p.Settings = next
	res.Rescaled = true

	for _, plan := range plans {
		s := plan.bar.Score()
		if plan.to > plan.from {
			k := plan.to / plan.from
			for _, n := range plan.bar.Notes() {
				n.IndexInGrid *= k
			}
			continue
		}

		k := plan.from / plan.to
		notes := append([]*model.Note(nil), plan.bar.Notes()...)
		for _, n := range notes {
			if n.IndexInGrid%k == 0 {
				n.IndexInGrid /= k
				continue
			}
			report.Add(diag.GridDrop, s.Difficulty, n.ID,
				"%s at bar %d grid %d/%d has no place on a %d grid, removed", n.Type, plan.bar.Index, n.IndexInGrid, plan.from, plan.to)
			for _, other := range s.RemoveNote(n) {
				report.Add(diag.LinkCleared, s.Difficulty, other.ID,
					"note %d lost its link to removed note %d", other.ID, n.ID)
			}
			res.Dropped++
		}
	}

	p.UpdateTimings()
	return res, nil
}

func density(params *model.BarParams, settings model.ScoreSettings) int {
	gps, sig := settings.GlobalGridPerSignature, settings.GlobalSignature
	if params != nil && params.UserDefinedGridPerSignature > 0 {
		gps = params.UserDefinedGridPerSignature
	}
	if params != nil && params.UserDefinedSignature > 0 {
		sig = params.UserDefinedSignature
	}
	return gps * sig
}
