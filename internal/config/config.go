// Package config resolves the runtime settings of studentdb.
//
// Precedence, highest first: explicit overrides (command-line flags),
// process environment, a .env file, built-in defaults.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvStorage  = "STUDENTDB_STORAGE"
	EnvJournal  = "STUDENTDB_JOURNAL"
	EnvLogFile  = "STUDENTDB_LOG_FILE"
	EnvLogLevel = "STUDENTDB_LOG_LEVEL"
)

// DefaultStorageDir is used when nothing else names the storage directory.
const DefaultStorageDir = "storage"

// Config holds the resolved settings.
type Config struct {
	// StorageDir holds the manifest and the record files.
	StorageDir string
	// JournalPath is the SQLite operation journal. Empty disables it.
	JournalPath string
	// LogFile receives structured logs. "-" means stderr.
	LogFile string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Overrides are values set explicitly on the command line. Empty fields
// are ignored.
type Overrides struct {
	StorageDir  string
	JournalPath string
	LogFile     string
	LogLevel    string
	NoJournal   bool
}

// Load reads dotEnvPath (if it exists) into the environment without
// replacing variables already set, then resolves the configuration.
func Load(dotEnvPath string, o Overrides) (Config, error) {
	if dotEnvPath != "" {
		if err := godotenv.Load(dotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return Resolve(o), nil
}

// Resolve builds a Config from the environment and overrides.
func Resolve(o Overrides) Config {
	cfg := Config{
		StorageDir: pick(o.StorageDir, os.Getenv(EnvStorage), DefaultStorageDir),
		LogLevel:   pick(o.LogLevel, os.Getenv(EnvLogLevel), "info"),
	}
	cfg.JournalPath = pick(o.JournalPath, os.Getenv(EnvJournal), filepath.Join(cfg.StorageDir, "journal.db"))
	cfg.LogFile = pick(o.LogFile, os.Getenv(EnvLogFile), filepath.Join(cfg.StorageDir, "studentdb.log"))
	if o.NoJournal {
		cfg.JournalPath = ""
	}
	return cfg
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
