// Package records is the application context shared by the interactive
// menus, the command line and the MCP server. It owns the storage, the
// operation journal and the logger, and applies one error policy to all of
// them.
package records

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"studentdb/internal/journal"
	"studentdb/internal/logging"
	"studentdb/internal/store"
	"studentdb/internal/student"

	"github.com/go-playground/validator/v10"
)

// Config holds the manager configuration.
type Config struct {
	StorageDir string
	// JournalPath is the SQLite journal. Empty disables journaling.
	JournalPath string
	Logger      *slog.Logger
}

// Manager is the public API for managing record files.
type Manager struct {
	store    store.Store
	dir      string
	journal  journal.Journal
	log      *slog.Logger
	validate *validator.Validate
	active   string
}

// New opens the storage directory. Errors returned here are fatal (see
// IsFatal). A journal that cannot be opened is logged and disabled.
func New(cfg Config) (*Manager, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	st, err := store.Open(cfg.StorageDir)
	if err != nil {
		log.Error("storage setup failed", "dir", cfg.StorageDir, "error", err)
		return nil, err
	}

	m := &Manager{
		store:    st,
		dir:      cfg.StorageDir,
		log:      log,
		validate: newValidator(),
	}

	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			log.Warn("journal disabled", "path", cfg.JournalPath, "error", err)
		} else {
			m.journal = j
		}
	}

	log.Info("storage opened", "dir", cfg.StorageDir, "files", len(st.Files()))
	return m, nil
}

// Close flushes the manifest and releases the journal.
func (m *Manager) Close() error {
	err := m.store.Save()
	if m.journal != nil {
		err = errors.Join(err, m.journal.Close())
	}
	return err
}

// IsFatal reports whether err must terminate the process. Only an
// unavailable storage directory or manifest is fatal; every other failure
// is reported to the user, who acknowledges it and carries on.
func IsFatal(err error) bool {
	return errors.Is(err, store.ErrStorageUnavailable)
}

// Files returns the managed file names in ascending order.
func (m *Manager) Files() []string { return m.store.Files() }

// StorageDir is the directory holding the manifest and record files.
func (m *Manager) StorageDir() string { return m.dir }

// Active is the file most recently opened by a menu, or "".
func (m *Manager) Active() string { return m.active }

// SetActive marks name as the file being worked on.
func (m *Manager) SetActive(name string) { m.active = name }

func (m *Manager) record(op journal.Op, file, detail string) {
	m.log.Info("file "+string(op), "file", file, "detail", detail)
	if m.journal == nil {
		return
	}
	if _, err := m.journal.Record(journal.Entry{Op: op, File: file, Detail: detail}); err != nil {
		m.log.Warn("journal write failed", "op", op, "file", file, "error", err)
	}
}

func (m *Manager) fail(action, file string, err error) error {
	m.log.Warn(action+" failed", "file", file, "error", err)
	return err
}

// CreateFile validates the user's input, appends FileSuffix and creates an
// empty record file. It returns the stored name.
func (m *Manager) CreateFile(input string) (string, error) {
	name, err := m.FileName(input)
	if err != nil {
		return "", m.fail("create", input, err)
	}
	if err := m.store.Create(name); err != nil {
		return "", m.fail("create", name, err)
	}
	m.record(journal.OpCreate, name, "")
	return name, nil
}

// AddStudent appends s to file.
func (m *Manager) AddStudent(file string, s student.Student) error {
	if err := s.Validate(); err != nil {
		return m.fail("append", file, err)
	}
	if err := m.store.Append(file, s); err != nil {
		return m.fail("append", file, err)
	}
	m.SetActive(file)
	m.record(journal.OpAppend, file, s.Surname)
	return nil
}

// Students decodes every record of file. Corrupt records are skipped and
// returned as failures.
func (m *Manager) Students(file string) ([]student.Student, []*student.ParseError, error) {
	students, failures, err := m.store.ReadAll(file)
	if err != nil {
		return nil, nil, m.fail("read", file, err)
	}
	for _, f := range failures {
		m.log.Warn("corrupt record skipped", "file", file, "line", f.Line, "error", f)
	}
	m.SetActive(file)
	return students, failures, nil
}

// Lines returns the raw text of file.
func (m *Manager) Lines(file string) ([]string, error) {
	lines, err := m.store.ReadLines(file)
	if err != nil {
		return nil, m.fail("read", file, err)
	}
	m.SetActive(file)
	return lines, nil
}

// SaveLines rewrites file with edited text. Trailing spaces of every line
// and trailing blank lines are dropped.
func (m *Manager) SaveLines(file string, lines []string) error {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRight(l, " ")
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if err := m.store.WriteLines(file, out); err != nil {
		return m.fail("edit", file, err)
	}
	m.record(journal.OpEdit, file, fmt.Sprintf("%d lines", len(out)))
	return nil
}

// ErrCorruptFile refuses rewrites that would silently drop corrupt records.
var ErrCorruptFile = errors.New("file contains corrupt records")

// SortFile sorts the records of file and rewrites it. Files with corrupt
// records are left untouched.
func (m *Manager) SortFile(file string, field student.SortField, dir student.Direction) ([]student.Student, error) {
	students, failures, err := m.store.ReadAll(file)
	if err != nil {
		return nil, m.fail("sort", file, err)
	}
	if len(failures) > 0 {
		err := fmt.Errorf("%w: %d corrupt record(s), first at %v", ErrCorruptFile, len(failures), failures[0])
		return nil, m.fail("sort", file, err)
	}
	sorted := student.Sort(students, field, dir)
	if err := m.store.RewriteAll(file, sorted); err != nil {
		return nil, m.fail("sort", file, err)
	}
	m.SetActive(file)
	m.record(journal.OpSort, file, field.String()+" "+dir.String())
	return sorted, nil
}

// IndividualTask returns the students of file with no failing math or cs mark.
func (m *Manager) IndividualTask(file string) ([]student.Student, error) {
	students, _, err := m.Students(file)
	if err != nil {
		return nil, err
	}
	return student.IndividualTask(students), nil
}

// RemoveFile deletes file from disk and from the index.
func (m *Manager) RemoveFile(file string) error {
	existed, err := m.store.Delete(file)
	if err != nil {
		return m.fail("delete", file, err)
	}
	if !existed {
		m.log.Warn("backing file was already missing", "file", file)
	}
	if m.active == file {
		m.active = ""
	}
	m.record(journal.OpDelete, file, "")
	return nil
}

// ErrNoJournal is returned by History when journaling is disabled.
var ErrNoJournal = errors.New("journal disabled")

// History returns recent journal entries, newest first. A non-empty file
// restricts the result to that file.
func (m *Manager) History(file string, limit int) ([]journal.Entry, error) {
	if m.journal == nil {
		return nil, ErrNoJournal
	}
	if file != "" {
		return m.journal.ForFile(file, limit)
	}
	return m.journal.Recent(limit)
}

// Save flushes the manifest.
func (m *Manager) Save() error {
	return m.store.Save()
}

// Message turns err into the text shown in a notification.
func Message(err error) string {
	var pe *student.ParseError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, store.ErrDuplicateName):
		return "A file with the same name already exists!"
	case errors.Is(err, store.ErrInvalidName):
		if _, detail, ok := strings.Cut(err.Error(), ": "); ok {
			return capitalize(detail)
		}
		return "Invalid file name!"
	case errors.Is(err, store.ErrNotFound):
		return "File not found!"
	case errors.Is(err, ErrCorruptFile):
		return "The file contains corrupt records and was not changed."
	case errors.As(err, &pe):
		return "Corrupt record at " + pe.Error()
	case errors.Is(err, student.ErrInvalid):
		if _, detail, ok := strings.Cut(err.Error(), ": "); ok {
			return "Invalid student: " + detail
		}
		return "Invalid student!"
	case errors.Is(err, store.ErrIO):
		return "File operation failed: " + err.Error()
	case errors.Is(err, store.ErrStorageUnavailable):
		return "Storage unavailable: " + err.Error()
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
