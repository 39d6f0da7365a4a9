package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvStorage, EnvJournal, EnvLogFile, EnvLogLevel} {
		t.Setenv(k, "")
	}
}

func TestResolve_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Resolve(Overrides{})
	assert.Equal(t, "storage", cfg.StorageDir)
	assert.Equal(t, filepath.Join("storage", "journal.db"), cfg.JournalPath)
	assert.Equal(t, filepath.Join("storage", "studentdb.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestResolve_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvStorage, "/env/storage")
	t.Setenv(EnvLogLevel, "debug")

	cfg := Resolve(Overrides{})
	assert.Equal(t, "/env/storage", cfg.StorageDir)
	assert.Equal(t, filepath.Join("/env/storage", "journal.db"), cfg.JournalPath)
	assert.Equal(t, "debug", cfg.LogLevel)

	cfg = Resolve(Overrides{StorageDir: "/flag", LogLevel: "warn", NoJournal: true})
	assert.Equal(t, "/flag", cfg.StorageDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.JournalPath)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvStorage)
	os.Unsetenv(EnvLogFile)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvStorage+"=dotenv_storage\n"+EnvLogFile+"=-\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv(EnvStorage)
		os.Unsetenv(EnvLogFile)
	})

	cfg, err := Load(path, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "dotenv_storage", cfg.StorageDir)
	assert.Equal(t, "-", cfg.LogFile)
}

func TestLoad_MissingDotEnvIgnored(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"), Overrides{StorageDir: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", cfg.StorageDir)
}
