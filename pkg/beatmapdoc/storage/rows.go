package storage

// Fixed table names and the per-difficulty table prefixes.
const (
	MainTable          = "main"
	ScoreSettingsTable = "score_settings"
	NoteIDsTable       = "note_ids"

	notesPrefix        = "notes_"
	barParamsPrefix    = "bar_params_"
	specialNotesPrefix = "special_notes_"
)

// Column names that decide how a document is read.
const (
	ColumnNoteType = "type"
)

func NotesTable(difficulty string) string        { return notesPrefix + difficulty }
func BarParamsTable(difficulty string) string    { return barParamsPrefix + difficulty }
func SpecialNotesTable(difficulty string) string { return specialNotesPrefix + difficulty }

// KeyValue is a row of the main and score_settings tables.
type KeyValue struct {
	Name  string `gorm:"primaryKey;column:name"`
	Value string `gorm:"column:value"`
}

// NoteIDRow registers an identifier before any note row uses it.
type NoteIDRow struct {
	ID int `gorm:"primaryKey;autoIncrement:false;column:id"`
}

func (NoteIDRow) TableName() string { return NoteIDsTable }

// NoteRow is a gameplay note. Type is nil for generations before 0.3.1.
type NoteRow struct {
	ID              int  `gorm:"primaryKey;autoIncrement:false;column:id"`
	BarIndex        int  `gorm:"column:bar_index;not null"`
	IndexInGrid     int  `gorm:"column:index_in_grid;not null"`
	StartPosition   int  `gorm:"column:start_position;not null"`
	FinishPosition  int  `gorm:"column:finish_position;not null"`
	FlickType       int  `gorm:"column:flick_type;not null"`
	PrevFlickNoteID int  `gorm:"column:prev_flick_note_id;not null"`
	NextFlickNoteID int  `gorm:"column:next_flick_note_id;not null"`
	HoldTargetID    int  `gorm:"column:hold_target_id;not null"`
	Type            *int `gorm:"column:type"`
}

// BarParamsRow overrides the grid of one bar; NULL columns inherit.
type BarParamsRow struct {
	BarIndex         int  `gorm:"primaryKey;autoIncrement:false;column:bar_index"`
	GridPerSignature *int `gorm:"column:grid_per_signature"`
	Signature        *int `gorm:"column:signature"`
}

// SpecialNoteRow is a decorative note with its opaque parameter string.
type SpecialNoteRow struct {
	ID          int    `gorm:"primaryKey;autoIncrement:false;column:id"`
	BarIndex    int    `gorm:"column:bar_index;not null"`
	IndexInGrid int    `gorm:"column:index_in_grid;not null"`
	Type        int    `gorm:"column:type;not null"`
	ParamValues string `gorm:"column:param_values"`
}
