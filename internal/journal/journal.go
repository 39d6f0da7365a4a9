// Package journal keeps an append-only history of the operations applied
// to the storage directory in a SQLite database next to the record files.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Journal records operations and lists them back.
type Journal interface {
	// Record stores one entry. ID and At are filled in when empty.
	Record(e Entry) (Entry, error)
	// Recent returns up to limit entries, newest first.
	Recent(limit int) ([]Entry, error)
	// ForFile returns the entries of one file, newest first.
	ForFile(file string, limit int) ([]Entry, error)
	// Close closes the underlying database.
	Close() error
}

// SQLiteJournal implements Journal backed by SQLite.
type SQLiteJournal struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens a journal database at the given path and initializes the schema.
func Open(dbPath string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := Init(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteJournal{db: db, now: time.Now}, nil
}

func (j *SQLiteJournal) Record(e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = j.now()
	}
	e.At = e.At.UTC()
	_, err := j.db.Exec(
		"INSERT INTO operations (id, op, file, detail, at) VALUES (?, ?, ?, ?, ?)",
		e.ID, string(e.Op), e.File, e.Detail, e.At,
	)
	if err != nil {
		return e, fmt.Errorf("insert operation: %w", err)
	}
	return e, nil
}

func (j *SQLiteJournal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		"SELECT id, op, file, detail, at FROM operations ORDER BY at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (j *SQLiteJournal) ForFile(file string, limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		"SELECT id, op, file, detail, at FROM operations WHERE file = ? ORDER BY at DESC, rowid DESC LIMIT ?",
		file, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			op string
		)
		if err := rows.Scan(&e.ID, &op, &e.File, &e.Detail, &e.At); err != nil {
			return nil, err
		}
		e.Op = Op(op)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
