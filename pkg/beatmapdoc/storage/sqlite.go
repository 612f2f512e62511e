package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/zeebo/errs"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const errDBClientNil = "db client is nil"

// Error is the error class for storage failures.
var Error = errs.Class("storage")

// ErrNoDocument is returned by Open when the file does not exist.
var ErrNoDocument = errors.New("document file does not exist")

// DBClient is a handle on one document file.
type DBClient struct {
	DB   *gorm.DB
	db   *sql.DB
	path string
}

// Open opens an existing document. It never creates a file.
func Open(path string) (*DBClient, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoDocument, path)
		}
		return nil, Error.Wrap(err)
	}
	if info.IsDir() {
		return nil, Error.New("%s is a directory", path)
	}
	c, err := open(path)
	if err != nil {
		return nil, err
	}
	var n int64
	if err := c.DB.Raw("SELECT count(*) FROM sqlite_master").Scan(&n).Error; err != nil {
		c.Close()
		return nil, Error.New("%s is not a document: %v", path, err)
	}
	return c, nil
}

// Create starts a new, empty document at path, replacing any file there.
func Create(path string) (*DBClient, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, Error.New("creating document dir: %v", err)
		}
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, Error.New("clearing %s: %v", path, err)
	}
	return open(path)
}

func open(path string) (*DBClient, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	// Rollback journal rather than WAL: a closed document is a single file that
	// can be renamed into place.
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=journal_mode(DELETE)"), gormConfig)
	if err != nil {
		return nil, Error.New("opening sqlite db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, Error.New("getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return &DBClient{DB: db, db: sqlDB, path: path}, nil
}

func (c *DBClient) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return Error.Wrap(c.db.Close())
}

func (c *DBClient) HasTable(table string) bool {
	if c == nil || c.DB == nil {
		return false
	}
	return c.DB.Migrator().HasTable(table)
}

// HasColumn matches exact column names; the migrator's HasColumn pattern-matches
// the DDL and would find "type" inside "flick_type".
func (c *DBClient) HasColumn(table, column string) bool {
	if c == nil || c.DB == nil || !c.HasTable(table) {
		return false
	}
	cols, err := c.DB.Migrator().ColumnTypes(table)
	if err != nil {
		return false
	}
	for _, col := range cols {
		if col.Name() == column {
			return true
		}
	}
	return false
}

// ReadKeyValues loads a name/value table into a map. A missing table yields
// an empty map.
func (c *DBClient) ReadKeyValues(table string) (map[string]string, error) {
	if c == nil || c.DB == nil {
		return nil, Error.New(errDBClientNil)
	}
	out := make(map[string]string)
	if !c.HasTable(table) {
		return out, nil
	}
	var rows []KeyValue
	if err := c.DB.Table(table).Find(&rows).Error; err != nil {
		return nil, Error.New("reading %s: %v", table, err)
	}
	for _, r := range rows {
		out[r.Name] = r.Value
	}
	return out, nil
}

// ReadNotes returns the rows of a notes table in on-disk order. Tables of
// generations without the type column leave NoteRow.Type nil.
func (c *DBClient) ReadNotes(table string) ([]NoteRow, error) {
	var rows []NoteRow
	if err := c.readTable(table, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *DBClient) ReadBarParams(table string) ([]BarParamsRow, error) {
	var rows []BarParamsRow
	if err := c.readTable(table, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *DBClient) ReadSpecialNotes(table string) ([]SpecialNoteRow, error) {
	var rows []SpecialNoteRow
	if err := c.readTable(table, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *DBClient) readTable(table string, dest any) error {
	if c == nil || c.DB == nil {
		return Error.New(errDBClientNil)
	}
	if !c.HasTable(table) {
		return nil
	}
	if err := c.DB.Table(table).Order("rowid").Find(dest).Error; err != nil {
		return Error.New("reading %s: %v", table, err)
	}
	return nil
}

// Transaction runs fn inside a single database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
func (c *DBClient) Transaction(fn func(tx *Tx) error) error {
	if c == nil || c.DB == nil {
		return Error.New(errDBClientNil)
	}
	return c.DB.Transaction(func(db *gorm.DB) error {
		return fn(&Tx{db: db})
	})
}
