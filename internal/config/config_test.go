package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	unset(t, "INPUT_CSV", "OUTPUT_SQL", "SCHEDULES_SQL", "SKIP_SCHEDULES", "OUTPUT_DIR", "SQLITE_PATH", "XLSX_PATH", "SQL_BATCH_SIZE", "APP_ENV", "LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("clean_data", "final_flight_data.csv"), cfg.InputCSV)
	assert.Equal(t, filepath.Join("sql_statements", "generated", "001_seed_bundle.sql"), cfg.OutputSQL)
	assert.Equal(t, filepath.Join("sql_statements", "011_generate_flight_schedules.sql"), cfg.SchedulesSQL)
	assert.False(t, cfg.SkipSchedules)
	assert.Equal(t, filepath.Join("out", "seed.db"), cfg.SQLitePath)
	assert.Equal(t, 500, cfg.SQLBatchSize)
	assert.Equal(t, "development", cfg.AppEnv)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INPUT_CSV", "data/routes.csv")
	t.Setenv("SKIP_SCHEDULES", "yes")
	t.Setenv("OUTPUT_DIR", "build")
	unset(t, "SQLITE_PATH")
	t.Setenv("SQL_BATCH_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/routes.csv", cfg.InputCSV)
	assert.True(t, cfg.SkipSchedules)
	assert.Equal(t, filepath.Join("build", "seed.db"), cfg.SQLitePath)
	assert.Equal(t, 50, cfg.SQLBatchSize)
}

func TestLoadRejectsNonPositiveBatch(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SQL_BATCH_SIZE", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SQL_BATCH_SIZE")
}

func TestRequire(t *testing.T) {
	var cfg Config
	assert.Error(t, cfg.Require("INPUT_CSV", "  "))
	assert.NoError(t, cfg.Require("INPUT_CSV", "x.csv"))
	// flag names pass through so the CLI error names the flag
	assert.EqualError(t, cfg.Require("--output-sql", ""), "missing required setting: --output-sql")
}

// unset removes keys for the duration of the test; t.Setenv restores them afterwards.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
