package storage

import (
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 500

// ErrUnregisteredID is returned when a note row is inserted before its id
// was registered.
var ErrUnregisteredID = Error.New("note id not registered")

// Tx is the write side of a document, valid inside DBClient.Transaction.
type Tx struct {
	db         *gorm.DB
	registered map[int]struct{}
}

// CreateTables creates the fixed tables and the per-difficulty tables of the
// latest generation.
func (t *Tx) CreateTables(difficulties []string) error {
	for _, table := range []string{MainTable, ScoreSettingsTable} {
		if err := t.db.Table(table).AutoMigrate(&KeyValue{}); err != nil {
			return Error.New("creating %s: %v", table, err)
		}
	}
	if err := t.db.AutoMigrate(&NoteIDRow{}); err != nil {
		return Error.New("creating %s: %v", NoteIDsTable, err)
	}
	for _, d := range difficulties {
		if err := t.db.Table(NotesTable(d)).AutoMigrate(&NoteRow{}); err != nil {
			return Error.New("creating %s: %v", NotesTable(d), err)
		}
		if err := t.db.Table(BarParamsTable(d)).AutoMigrate(&BarParamsRow{}); err != nil {
			return Error.New("creating %s: %v", BarParamsTable(d), err)
		}
		if err := t.db.Table(SpecialNotesTable(d)).AutoMigrate(&SpecialNoteRow{}); err != nil {
			return Error.New("creating %s: %v", SpecialNotesTable(d), err)
		}
	}
	return nil
}

// WriteKeyValues stores values into a name/value table, keys in sorted order.
func (t *Tx) WriteKeyValues(table string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]KeyValue, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, KeyValue{Name: k, Value: values[k]})
	}
	err := t.db.Table(table).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoUpdates: clause.AssignmentColumns([]string{"value"})}).
		Create(&rows).Error
	if err != nil {
		return Error.New("writing %s: %v", table, err)
	}
	return nil
}

// RegisterNoteIDs records ids in the identifier table. Ids already present
// are left alone.
func (t *Tx) RegisterNoteIDs(ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	rows := make([]NoteIDRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, NoteIDRow{ID: id})
	}
	if err := t.db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, batchSize).Error; err != nil {
		return Error.New("registering note ids: %v", err)
	}
	if t.registered == nil {
		t.registered = make(map[int]struct{}, len(ids))
	}
	for _, id := range ids {
		t.registered[id] = struct{}{}
	}
	return nil
}

func (t *Tx) checkRegistered(id int) error {
	if _, ok := t.registered[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnregisteredID, id)
	}
	return nil
}

// IsNoteIDRegistered reports whether id has been written to the identifier table.
func (t *Tx) IsNoteIDRegistered(id int) (bool, error) {
	var count int64
	if err := t.db.Model(&NoteIDRow{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, Error.Wrap(err)
	}
	return count > 0, nil
}

// InsertNotes writes gameplay note rows. Every id must have been registered
// through RegisterNoteIDs first.
func (t *Tx) InsertNotes(table string, rows []NoteRow) error {
	if len(rows) == 0 {
		return nil
	}
	for _, r := range rows {
		if err := t.checkRegistered(r.ID); err != nil {
			return err
		}
	}
	if err := t.db.Table(table).CreateInBatches(rows, batchSize).Error; err != nil {
		return Error.New("batch insert %s: %v", table, err)
	}
	return nil
}

func (t *Tx) InsertBarParams(table string, rows []BarParamsRow) error {
	if len(rows) == 0 {
		return nil
	}
	if err := t.db.Table(table).CreateInBatches(rows, batchSize).Error; err != nil {
		return Error.New("batch insert %s: %v", table, err)
	}
	return nil
}

func (t *Tx) InsertSpecialNotes(table string, rows []SpecialNoteRow) error {
	if len(rows) == 0 {
		return nil
	}
	for _, r := range rows {
		if err := t.checkRegistered(r.ID); err != nil {
			return err
		}
	}
	if err := t.db.Table(table).CreateInBatches(rows, batchSize).Error; err != nil {
		return Error.New("batch insert %s: %v", table, err)
	}
	return nil
}
