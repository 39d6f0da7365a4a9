package journal

import "database/sql"

const ddl = `
PRAGMA journal_mode=WAL;

CREATE TABLE IF NOT EXISTS operations (
    id     TEXT PRIMARY KEY,
    op     TEXT NOT NULL,
    file   TEXT NOT NULL DEFAULT '',
    detail TEXT NOT NULL DEFAULT '',
    at     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS operations_at ON operations(at);
CREATE INDEX IF NOT EXISTS operations_file ON operations(file);
`

// Init creates the schema tables if they don't exist.
func Init(db *sql.DB) error {
	_, err := db.Exec(ddl)
	return err
}
