package journal

import "time"

// Op names a mutating operation on the storage directory.
type Op string

const (
	OpCreate Op = "create"
	OpAppend Op = "append"
	OpEdit   Op = "edit"
	OpSort   Op = "sort"
	OpDelete Op = "delete"
)

// Entry is one journaled operation.
type Entry struct {
	ID     string
	Op     Op
	File   string
	Detail string
	At     time.Time
}
