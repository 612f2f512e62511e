package schema

import (
	"strconv"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/diag"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/storage"
)

// Keys of the score_settings table.
const (
	keyGlobalBpm              = "global_bpm"
	keyStartTimeOffset        = "start_time_offset"
	keyGlobalGridPerSignature = "global_grid_per_signature"
	keyGlobalSignature        = "global_signature"
)

// Grid every 0.1 document used when it did not store one.
const (
	v01GridPerSignature = 12
	v01Signature        = 4
)

// Read decodes the document behind c as generation version. defaults fills
// settings the document does not carry. The returned project is populated
// but not yet resolved.
func Read(c *storage.DBClient, version model.Version, defaults model.ScoreSettings, report *diag.Report) (*model.Project, error) {
	if err := requireDocument(c); err != nil {
		return nil, err
	}
	r := &docReader{c: c, defaults: defaults, report: report}

	var err error
	switch version {
	case model.V0_1:
		err = r.readV01()
	case model.V0_2:
		err = r.readV02()
	case model.V0_3, model.V0_3_1:
		err = r.readV03()
	default:
		return nil, ErrUnknownVersion.New("no reader for %s", version)
	}
	if err != nil {
		return nil, err
	}
	r.project.Version = version
	return r.project, nil
}

type docReader struct {
	c        *storage.DBClient
	defaults model.ScoreSettings
	report   *diag.Report
	project  *model.Project
}

// readV01 reads the original layout: main, score_settings and one notes
// table per difficulty, no note types.
func (r *docReader) readV01() error {
	legacy := r.defaults
	legacy.GlobalGridPerSignature = v01GridPerSignature
	legacy.GlobalSignature = v01Signature
	if err := r.readHeader(legacy); err != nil {
		return err
	}
	for _, s := range r.project.Scores() {
		if err := r.readNotes(s, false); err != nil {
			return err
		}
	}
	return nil
}

// readV02 adds per-bar grid overrides.
func (r *docReader) readV02() error {
	if err := r.readHeader(r.defaults); err != nil {
		return err
	}
	for _, s := range r.project.Scores() {
		if err := r.readBarParams(s); err != nil {
			return err
		}
		if err := r.readNotes(s, false); err != nil {
			return err
		}
	}
	return nil
}

// readV03 adds special notes and, from 0.3.1 on, the note type column. The
// column is detected per table rather than trusted from the version number.
func (r *docReader) readV03() error {
	if err := r.readHeader(r.defaults); err != nil {
		return err
	}
	for _, s := range r.project.Scores() {
		if err := r.readBarParams(s); err != nil {
			return err
		}
		if err := r.readNotes(s, true); err != nil {
			return err
		}
	}
	// special rows may need fresh ids, which must clear every difficulty
	model.ReserveNoteIDs(r.project.MaxNoteID())
	for _, s := range r.project.Scores() {
		if err := r.readSpecialNotes(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *docReader) readHeader(defaults model.ScoreSettings) error {
	main, err := r.c.ReadKeyValues(storage.MainTable)
	if err != nil {
		return err
	}
	values, err := r.c.ReadKeyValues(storage.ScoreSettingsTable)
	if err != nil {
		return err
	}

	settings := defaults
	if settings.GlobalBpm, err = floatSetting(values, keyGlobalBpm, defaults.GlobalBpm); err != nil {
		return err
	}
	if settings.StartTimeOffset, err = floatSetting(values, keyStartTimeOffset, defaults.StartTimeOffset); err != nil {
		return err
	}
	if settings.GlobalGridPerSignature, err = intSetting(values, keyGlobalGridPerSignature, defaults.GlobalGridPerSignature); err != nil {
		return err
	}
	if settings.GlobalSignature, err = intSetting(values, keyGlobalSignature, defaults.GlobalSignature); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return Error.New("score settings: %v", err)
	}

	r.project = model.NewProject(settings)
	r.project.MusicFileName = main[keyMusicFileName]
	return nil
}

func floatSetting(values map[string]string, key string, def float64) (float64, error) {
	raw, ok := values[key]
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, Error.New("setting %s=%q: %v", key, raw, err)
	}
	return v, nil
}

func intSetting(values map[string]string, key string, def int) (int, error) {
	raw, ok := values[key]
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Error.New("setting %s=%q: %v", key, raw, err)
	}
	return v, nil
}

func (r *docReader) readBarParams(s *model.Score) error {
	rows, err := r.c.ReadBarParams(storage.BarParamsTable(s.Difficulty.Key()))
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.BarIndex < 0 {
			return Error.New("%s: bar params for negative bar %d", s.Difficulty, row.BarIndex)
		}
		params := &model.BarParams{}
		if row.GridPerSignature != nil {
			params.UserDefinedGridPerSignature = *row.GridPerSignature
		}
		if row.Signature != nil {
			params.UserDefinedSignature = *row.Signature
		}
		if params.UserDefinedGridPerSignature < 0 || params.UserDefinedSignature < 0 {
			return Error.New("%s: bar %d has a negative grid override", s.Difficulty, row.BarIndex)
		}
		s.EnsureBars(row.BarIndex + 1)
		if !params.IsEmpty() {
			s.Bar(row.BarIndex).Params = params
		}
	}
	return nil
}

// readNotes loads the gameplay notes of s. When typed is set and the table
// has a type column the stored type is used; otherwise every note starts as
// the TapOrFlick placeholder which the resolver refines.
func (r *docReader) readNotes(s *model.Score, typed bool) error {
	table := storage.NotesTable(s.Difficulty.Key())
	rows, err := r.c.ReadNotes(table)
	if err != nil {
		return err
	}
	hasType := typed && r.c.HasColumn(table, storage.ColumnNoteType)

	seen := make(map[int]bool, len(rows))
	for _, row := range rows {
		if row.ID <= 0 {
			return Error.New("%s: invalid note id %d", s.Difficulty, row.ID)
		}
		if seen[row.ID] {
			r.report.Add(diag.DuplicateNoteID, s.Difficulty, model.NoteID(row.ID),
				"note id %d appears more than once, skipping the later row", row.ID)
			continue
		}
		seen[row.ID] = true

		if row.BarIndex < 0 {
			return Error.New("%s: note %d in negative bar %d", s.Difficulty, row.ID, row.BarIndex)
		}

		n := &model.Note{
			ID:                     model.NoteID(row.ID),
			IndexInGrid:            row.IndexInGrid,
			Type:                   model.NoteTypeTapOrFlick,
			FlickType:              model.FlickType(row.FlickType),
			StartPosition:          model.NotePosition(row.StartPosition),
			FinishPosition:         model.NotePosition(row.FinishPosition),
			PrevFlickOrSlideNoteID: model.NoteID(row.PrevFlickNoteID),
			NextFlickOrSlideNoteID: model.NoteID(row.NextFlickNoteID),
			HoldTargetID:           model.NoteID(row.HoldTargetID),
		}
		if hasType && row.Type != nil {
			n.Type = model.NoteType(*row.Type)
			if !n.Type.IsGameplay() && !n.Type.IsSpecial() {
				return Error.New("%s: note %d has unknown type %d", s.Difficulty, row.ID, *row.Type)
			}
			if n.IsSpecial() {
				n.ExtraParams = model.NewExtraParams(n)
			}
		}
		if n.FlickType < model.FlickNone || n.FlickType > model.FlickRight {
			return Error.New("%s: note %d has unknown flick type %d", s.Difficulty, row.ID, row.FlickType)
		}

		s.EnsureBars(row.BarIndex + 1)
		if err := s.AddNote(s.Bar(row.BarIndex), n); err != nil {
			return Error.New("%s: note %d: %v", s.Difficulty, row.ID, err)
		}
	}
	return nil
}

// readSpecialNotes merges the special notes table into the populated bars.
// Older documents gave these notes no stable id, so a row is matched to an
// existing note by (type, grid index) and the first match wins.
func (r *docReader) readSpecialNotes(s *model.Score) error {
	rows, err := r.c.ReadSpecialNotes(storage.SpecialNotesTable(s.Difficulty.Key()))
	if err != nil {
		return err
	}

	matched := make(map[*model.Note]int)
	for _, row := range rows {
		typ := model.NoteType(row.Type)
		if !typ.IsSpecial() {
			return Error.New("%s: special note %d has non-special type %d", s.Difficulty, row.ID, row.Type)
		}
		if row.BarIndex < 0 {
			return Error.New("%s: special note %d in negative bar %d", s.Difficulty, row.ID, row.BarIndex)
		}
		s.EnsureBars(row.BarIndex + 1)
		bar := s.Bar(row.BarIndex)

		if n := bar.FindNote(typ, row.IndexInGrid); n != nil {
			if first, ok := matched[n]; ok {
				r.report.Add(diag.SpecialNoteCollision, s.Difficulty, n.ID,
					"special rows %d and %d both match bar %d grid %d, merged into note %d",
					first, row.ID, bar.Index, row.IndexInGrid, n.ID)
			} else {
				matched[n] = row.ID
			}
			if n.ExtraParams == nil {
				n.ExtraParams = model.NewExtraParams(n)
			}
			if err := n.ExtraParams.UpdateByDataString(row.ParamValues); err != nil {
				return Error.New("%s: special note %d params: %v", s.Difficulty, row.ID, err)
			}
			continue
		}

		id := model.NoteID(row.ID)
		if id <= model.InvalidNoteID || r.project.HasNoteID(id) {
			id = model.NextNoteID()
		} else {
			model.ReserveNoteIDs(id)
		}
		n := &model.Note{ID: id, Type: typ, IndexInGrid: row.IndexInGrid}
		if n.ExtraParams, err = model.FromDataString(row.ParamValues, n); err != nil {
			return Error.New("%s: special note %d params: %v", s.Difficulty, row.ID, err)
		}
		if err := s.AddNote(bar, n); err != nil {
			return Error.New("%s: special note %d: %v", s.Difficulty, row.ID, err)
		}
		matched[n] = row.ID
	}
	return nil
}
