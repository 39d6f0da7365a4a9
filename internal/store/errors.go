package store

import "errors"

var (
	// ErrStorageUnavailable means the storage directory or the manifest
	// cannot be created or read. The application cannot run without them.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrDuplicateName is returned when creating a file the index already holds.
	ErrDuplicateName = errors.New("duplicate file name")
	// ErrNotFound is returned for operations on a name the index does not hold.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidName rejects names that would escape the storage directory.
	ErrInvalidName = errors.New("invalid file name")
	// ErrIO covers failed reads, writes and removals of record files and
	// failed manifest updates after startup.
	ErrIO = errors.New("i/o error")
)
