package schema

import (
	"strconv"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/storage"
)

// Write stores p into the empty document behind c using the latest
// generation. Everything happens inside one transaction; on error nothing is
// committed.
func Write(c *storage.DBClient, p *model.Project) error {
	if p == nil {
		return Error.New("nil project")
	}

	keys := make([]string, 0, len(model.Difficulties()))
	for _, d := range model.Difficulties() {
		keys = append(keys, d.Key())
	}

	return c.Transaction(func(tx *storage.Tx) error {
		if err := tx.CreateTables(keys); err != nil {
			return err
		}

		if err := tx.WriteKeyValues(storage.MainTable, map[string]string{
			keyMusicFileName: p.MusicFileName,
			keyVersion:       formatVersion(model.CurrentVersion),
		}); err != nil {
			return err
		}
		if err := tx.WriteKeyValues(storage.ScoreSettingsTable, settingsValues(p.Settings)); err != nil {
			return err
		}

		// The sentinel goes in first so that links set to "no note" always
		// reference a registered id.
		if err := tx.RegisterNoteIDs([]int{int(model.InvalidNoteID)}); err != nil {
			return err
		}
		if err := tx.RegisterNoteIDs(projectNoteIDs(p)); err != nil {
			return err
		}

		for _, s := range p.Scores() {
			if err := writeScore(tx, s); err != nil {
				return Error.New("%s: %v", s.Difficulty, err)
			}
		}
		return nil
	})
}

func settingsValues(s model.ScoreSettings) map[string]string {
	return map[string]string{
		keyGlobalBpm:              strconv.FormatFloat(s.GlobalBpm, 'f', -1, 64),
		keyStartTimeOffset:        strconv.FormatFloat(s.StartTimeOffset, 'f', -1, 64),
		keyGlobalGridPerSignature: strconv.Itoa(s.GlobalGridPerSignature),
		keyGlobalSignature:        strconv.Itoa(s.GlobalSignature),
	}
}

func projectNoteIDs(p *model.Project) []int {
	var ids []int
	seen := make(map[model.NoteID]bool)
	for _, s := range p.Scores() {
		for _, n := range s.Notes() {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			ids = append(ids, int(n.ID))
		}
	}
	return ids
}

func writeScore(tx *storage.Tx, s *model.Score) error {
	key := s.Difficulty.Key()

	var notes []storage.NoteRow
	var specials []storage.SpecialNoteRow
	for _, n := range s.Notes() {
		if n.IsSpecial() {
			specials = append(specials, specialRow(n))
			continue
		}
		notes = append(notes, noteRow(n))
	}

	var params []storage.BarParamsRow
	for _, b := range s.Bars() {
		if b.Params.IsEmpty() {
			continue
		}
		row := storage.BarParamsRow{BarIndex: b.Index}
		if v := b.Params.UserDefinedGridPerSignature; v > 0 {
			row.GridPerSignature = &v
		}
		if v := b.Params.UserDefinedSignature; v > 0 {
			row.Signature = &v
		}
		params = append(params, row)
	}

	if err := tx.InsertNotes(storage.NotesTable(key), notes); err != nil {
		return err
	}
	if err := tx.InsertBarParams(storage.BarParamsTable(key), params); err != nil {
		return err
	}
	return tx.InsertSpecialNotes(storage.SpecialNotesTable(key), specials)
}

func noteRow(n *model.Note) storage.NoteRow {
	typ := int(n.Type)
	return storage.NoteRow{
		ID:              int(n.ID),
		BarIndex:        n.Bar().Index,
		IndexInGrid:     n.IndexInGrid,
		StartPosition:   int(n.StartPosition),
		FinishPosition:  int(n.FinishPosition),
		FlickType:       int(n.FlickType),
		PrevFlickNoteID: int(n.PrevFlickOrSlideNoteID),
		NextFlickNoteID: int(n.NextFlickOrSlideNoteID),
		HoldTargetID:    int(n.HoldTargetID),
		Type:            &typ,
	}
}

func specialRow(n *model.Note) storage.SpecialNoteRow {
	var params string
	if n.ExtraParams != nil {
		params = n.ExtraParams.ToDataString()
	}
	return storage.SpecialNoteRow{
		ID:          int(n.ID),
		BarIndex:    n.Bar().Index,
		IndexInGrid: n.IndexInGrid,
		Type:        int(n.Type),
		ParamValues: params,
	}
}
