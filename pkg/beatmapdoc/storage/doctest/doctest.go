// Package doctest writes documents of any schema generation for tests. It
// uses plain DDL so that it can produce layouts the current writer no longer
// emits, including tables without primary keys.
package doctest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/storage"
)

// Note is one raw notes-table row. Type is only written when the document
// has the type column.
type Note struct {
	ID, Bar, Grid          int
	Start, Finish, Flick   int
	Prev, Next, HoldTarget int
	Type                   *int
}

type Special struct {
	ID, Bar, Grid, Type int
	Params              string
}

type BarParams struct {
	Bar             int
	Grid, Signature *int
}

// Document describes the raw content of a file.
type Document struct {
	// Version is written verbatim to the main table; empty omits the key.
	Version       string
	MusicFileName string
	Settings      map[string]string

	BarParamsTable    bool
	SpecialNotesTable bool
	TypeColumn        bool

	Notes     map[model.Difficulty][]Note
	BarParams map[model.Difficulty][]BarParams
	Specials  map[model.Difficulty][]Special
}

// ForVersion returns an empty document with the tables generation v has.
func ForVersion(v model.Version) Document {
	return Document{
		Version:           fmt.Sprintf("%g", v.Decimal()),
		Settings:          map[string]string{},
		BarParamsTable:    v >= model.V0_2,
		SpecialNotesTable: v >= model.V0_3,
		TypeColumn:        v >= model.V0_3_1,
		Notes:             map[model.Difficulty][]Note{},
		BarParams:         map[model.Difficulty][]BarParams{},
		Specials:          map[model.Difficulty][]Special{},
	}
}

// Grid sets the stored global grid.
func (d Document) Grid(gridPerSignature, signature int) Document {
	d.Settings["global_grid_per_signature"] = fmt.Sprint(gridPerSignature)
	d.Settings["global_signature"] = fmt.Sprint(signature)
	return d
}

// IntPtr is a convenience for the nullable columns.
func IntPtr(v int) *int { return &v }

// Write creates the document at path, failing the test on any error.
func Write(t testing.TB, path string, doc Document) {
	t.Helper()

	c, err := storage.Create(path)
	if err != nil {
		t.Fatalf("creating fixture %s: %v", path, err)
	}
	defer c.Close()

	var stmts []string
	var args [][]any
	exec := func(stmt string, a ...any) {
		stmts = append(stmts, stmt)
		args = append(args, a)
	}

	exec(`CREATE TABLE main (name TEXT PRIMARY KEY, value TEXT)`)
	exec(`CREATE TABLE score_settings (name TEXT PRIMARY KEY, value TEXT)`)
	if doc.Version != "" {
		exec(`INSERT INTO main (name, value) VALUES (?, ?)`, "version", doc.Version)
	}
	if doc.MusicFileName != "" {
		exec(`INSERT INTO main (name, value) VALUES (?, ?)`, "music_file_name", doc.MusicFileName)
	}
	for k, v := range doc.Settings {
		exec(`INSERT INTO score_settings (name, value) VALUES (?, ?)`, k, v)
	}

	for _, d := range model.Difficulties() {
		notes := storage.NotesTable(d.Key())
		cols := []string{"id INTEGER NOT NULL", "bar_index INTEGER NOT NULL", "index_in_grid INTEGER NOT NULL",
			"start_position INTEGER NOT NULL", "finish_position INTEGER NOT NULL", "flick_type INTEGER NOT NULL",
			"prev_flick_note_id INTEGER NOT NULL", "next_flick_note_id INTEGER NOT NULL", "hold_target_id INTEGER NOT NULL"}
		if doc.TypeColumn {
			cols = append(cols, "type INTEGER")
		}
		exec(fmt.Sprintf(`CREATE TABLE %s (%s)`, notes, strings.Join(cols, ", ")))
		for _, n := range doc.Notes[d] {
			if doc.TypeColumn {
				exec(fmt.Sprintf(`INSERT INTO %s VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, notes),
					n.ID, n.Bar, n.Grid, n.Start, n.Finish, n.Flick, n.Prev, n.Next, n.HoldTarget, n.Type)
			} else {
				exec(fmt.Sprintf(`INSERT INTO %s VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, notes),
					n.ID, n.Bar, n.Grid, n.Start, n.Finish, n.Flick, n.Prev, n.Next, n.HoldTarget)
			}
		}

		if doc.BarParamsTable {
			table := storage.BarParamsTable(d.Key())
			exec(fmt.Sprintf(`CREATE TABLE %s (bar_index INTEGER PRIMARY KEY, grid_per_signature INTEGER NULL, signature INTEGER NULL)`, table))
			for _, p := range doc.BarParams[d] {
				exec(fmt.Sprintf(`INSERT INTO %s VALUES (?, ?, ?)`, table), p.Bar, p.Grid, p.Signature)
			}
		}

		if doc.SpecialNotesTable {
			table := storage.SpecialNotesTable(d.Key())
			exec(fmt.Sprintf(`CREATE TABLE %s (id INTEGER NOT NULL, bar_index INTEGER NOT NULL, index_in_grid INTEGER NOT NULL, type INTEGER NOT NULL, param_values TEXT)`, table))
			for _, s := range doc.Specials[d] {
				exec(fmt.Sprintf(`INSERT INTO %s VALUES (?, ?, ?, ?, ?)`, table), s.ID, s.Bar, s.Grid, s.Type, s.Params)
			}
		}
	}

	for i, stmt := range stmts {
		if err := c.DB.Exec(stmt, args[i]...).Error; err != nil {
			t.Fatalf("fixture statement %q: %v", stmt, err)
		}
	}
}
