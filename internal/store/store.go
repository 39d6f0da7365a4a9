package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"studentdb/internal/student"
)

// ManifestName is the manifest file inside the storage directory.
const ManifestName = "fileStorage.txt"

// Store provides persistence for the directory index and record files.
type Store interface {
	// Files returns the managed file names in ascending order.
	Files() []string
	// Create makes an empty record file and registers it in the index.
	Create(name string) error
	// Append encodes s at the end of an existing record file.
	Append(name string, s student.Student) error
	// ReadAll decodes every record of a file. Corrupt records are skipped
	// and returned as failures; err is set only when the file is unreadable.
	ReadAll(name string) (students []student.Student, failures []*student.ParseError, err error)
	// RewriteAll replaces the whole content of a file with students.
	RewriteAll(name string, students []student.Student) error
	// ReadLines returns the raw lines of a file.
	ReadLines(name string) ([]string, error)
	// WriteLines replaces the whole content of a file with lines.
	WriteLines(name string, lines []string) error
	// Delete removes a file from disk and from the index. existed is false
	// when the backing file was already gone.
	Delete(name string) (existed bool, err error)
	// Save flushes the index to the manifest.
	Save() error
}

var _ Store = (*FileStore)(nil)

// FileStore implements Store over a directory of text files.
type FileStore struct {
	dir      string
	manifest string
	index    *Index
}

// Open prepares the storage directory and manifest under dir, creating
// them when missing, and loads the index. Every error it returns wraps
// ErrStorageUnavailable.
func Open(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create storage directory: %w", ErrStorageUnavailable, err)
	}
	manifest := filepath.Join(dir, ManifestName)
	f, err := os.OpenFile(manifest, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: create manifest: %w", ErrStorageUnavailable, err)
	}
	f.Close()

	ix, err := LoadIndex(manifest)
	if err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, manifest: manifest, index: ix}, nil
}

// Dir is the storage directory.
func (s *FileStore) Dir() string { return s.dir }

// ManifestPath is the full path of the manifest.
func (s *FileStore) ManifestPath() string { return s.manifest }

func (s *FileStore) Files() []string { return s.index.Names() }

// path resolves name inside the storage directory.
func (s *FileStore) path(name string) (string, error) {
	switch {
	case name == "":
		return "", fmt.Errorf("%w: the file name cannot be empty", ErrInvalidName)
	case name == "." || name == "..":
		return "", fmt.Errorf("%w: the name %q is reserved", ErrInvalidName, name)
	case name == ManifestName:
		return "", fmt.Errorf("%w: the name %q is reserved for the file list", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return "", fmt.Errorf("%w: the name %q contains a path separator", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// known resolves name and checks that the index holds it.
func (s *FileStore) known(name string) (string, error) {
	p, err := s.path(name)
	if err != nil {
		return "", err
	}
	if !s.index.Contains(name) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return p, nil
}

// mutate applies fn to a copy of the index and persists it. The in-memory
// index is replaced only after the manifest write succeeds, so memory and
// disk never diverge.
func (s *FileStore) mutate(fn func(*Index) error) error {
	next := s.index.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := next.Persist(s.manifest); err != nil {
		return fmt.Errorf("%w: write manifest: %w", ErrIO, err)
	}
	s.index = next
	return nil
}

func (s *FileStore) Create(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if s.index.Contains(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s already exists on disk", ErrDuplicateName, name)
		}
		return fmt.Errorf("%w: create %s: %w", ErrIO, name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(p)
		return fmt.Errorf("%w: create %s: %w", ErrIO, name, err)
	}

	if err := s.mutate(func(ix *Index) error { return ix.Insert(name) }); err != nil {
		os.Remove(p)
		return err
	}
	return nil
}

func (s *FileStore) Append(name string, st student.Student) error {
	p, err := s.known(name)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrIO, name, err)
	}
	defer f.Close()

	if _, err := f.WriteString(student.Encode(st)); err != nil {
		return fmt.Errorf("%w: append to %s: %w", ErrIO, name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, name, err)
	}
	return nil
}

func (s *FileStore) ReadLines(name string) ([]string, error) {
	p, err := s.known(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s is listed but missing on disk", ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, name, err)
	}
	defer f.Close()

	lines, err := student.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, name, err)
	}
	return lines, nil
}

func (s *FileStore) ReadAll(name string) ([]student.Student, []*student.ParseError, error) {
	lines, err := s.ReadLines(name)
	if err != nil {
		return nil, nil, err
	}
	students, failures := student.DecodeAll(lines)
	return students, failures, nil
}

func (s *FileStore) RewriteAll(name string, students []student.Student) error {
	p, err := s.known(name)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(p, []byte(student.EncodeAll(students))); err != nil {
		return fmt.Errorf("%w: rewrite %s: %w", ErrIO, name, err)
	}
	return nil
}

func (s *FileStore) WriteLines(name string, lines []string) error {
	p, err := s.known(name)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if err := writeFileAtomic(p, []byte(b.String())); err != nil {
		return fmt.Errorf("%w: rewrite %s: %w", ErrIO, name, err)
	}
	return nil
}

// Delete removes the backing file first. When that fails for any reason
// other than the file already being gone, the index is left untouched.
func (s *FileStore) Delete(name string) (bool, error) {
	p, err := s.known(name)
	if err != nil {
		return false, err
	}
	existed := true
	if err := os.Remove(p); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return true, fmt.Errorf("%w: remove %s: %w", ErrIO, name, err)
		}
		existed = false
	}
	if err := s.mutate(func(ix *Index) error { return ix.Remove(name) }); err != nil {
		return existed, fmt.Errorf("%s removed from disk but still listed: %w", name, err)
	}
	return existed, nil
}

func (s *FileStore) Save() error {
	if err := s.index.Persist(s.manifest); err != nil {
		return fmt.Errorf("%w: write manifest: %w", ErrIO, err)
	}
	return nil
}
