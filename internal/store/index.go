package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Index is the ordered set of managed record file names. Names are kept
// sorted ascending and compared case-sensitively.
type Index struct {
	names []string
}

// NewIndex builds an index from names, dropping blanks and duplicates.
func NewIndex(names ...string) *Index {
	ix := &Index{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || ix.Contains(n) {
			continue
		}
		ix.names = append(ix.names, n)
	}
	slices.Sort(ix.names)
	return ix
}

// LoadIndex reads a manifest, one name per line. When the manifest cannot
// be opened it returns an empty index together with an error wrapping
// ErrStorageUnavailable; the caller decides whether that is fatal.
func LoadIndex(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return NewIndex(), fmt.Errorf("%w: open manifest: %w", ErrStorageUnavailable, err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		names = append(names, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return NewIndex(), fmt.Errorf("%w: read manifest: %w", ErrStorageUnavailable, err)
	}
	return NewIndex(names...), nil
}

// Names returns a copy of the names in ascending order.
func (ix *Index) Names() []string { return slices.Clone(ix.names) }

// Len is the number of names.
func (ix *Index) Len() int { return len(ix.names) }

// Contains reports whether name is present.
func (ix *Index) Contains(name string) bool {
	_, found := slices.BinarySearch(ix.names, name)
	return found
}

// Insert adds name, keeping the set sorted.
func (ix *Index) Insert(name string) error {
	i, found := slices.BinarySearch(ix.names, name)
	if found {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	ix.names = slices.Insert(ix.names, i, name)
	return nil
}

// Remove deletes name.
func (ix *Index) Remove(name string) error {
	i, found := slices.BinarySearch(ix.names, name)
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	ix.names = slices.Delete(ix.names, i, i+1)
	return nil
}

// Clone returns an independent copy.
func (ix *Index) Clone() *Index { return &Index{names: slices.Clone(ix.names)} }

// Persist overwrites the manifest at path with the current names. The
// content is written to a temporary file first and renamed into place, so
// an interrupted write leaves the previous manifest intact.
func (ix *Index) Persist(path string) error {
	var b strings.Builder
	for _, n := range ix.names {
		b.WriteString(n)
		b.WriteByte('\n')
	}
	return writeFileAtomic(path, []byte(b.String()))
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
