package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	home := t.TempDir()
	path := DefaultPath(home)

	cfg, err := Load(path, home)
	require.NoError(t, err)

	assert.Equal(t, Default(home), cfg)
	assert.FileExists(t, path)

	again, err := Load(path, home)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadNormalizesPartialFile(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	content := "data_dir: ~/plans\ngrid_minutes: 15\nmax_columns: -1\nweekly_anchor: sometimes\nconflict_buffer: -5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path, home)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "plans"), cfg.DataDir)
	assert.Equal(t, 15, cfg.GridMinutes)
	assert.Equal(t, 15, cfg.RowMinutes)
	assert.Equal(t, 4, cfg.MaxColumns)
	assert.Equal(t, 0, cfg.ConflictBuffer)
	assert.Equal(t, AnchorExplicit, cfg.WeeklyAnchor)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadInvalidYAML(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid_minutes: [oops"), 0644))

	_, err := Load(path, home)
	assert.Error(t, err)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("", t.TempDir())
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "nested", "config.yaml")
	cfg := Default(home)
	cfg.WeeklyAnchor = AnchorInclude
	cfg.ConflictBuffer = 10

	require.NoError(t, Save(path, cfg))

	got, err := Load(path, home)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestEvaluator(t *testing.T) {
	cfg := Default(t.TempDir())
	assert.False(t, cfg.Evaluator().IncludeAnchorWeekday)

	cfg.WeeklyAnchor = AnchorInclude
	assert.True(t, cfg.Evaluator().IncludeAnchorWeekday)
}

func TestApplyEnv(t *testing.T) {
	home := t.TempDir()
	cfg := Default(home)

	err := cfg.ApplyEnv(mapLookup(map[string]string{
		EnvDataDir:     "~/elsewhere",
		EnvLogLevel:    "DEBUG",
		EnvGridMinutes: "10",
	}), home)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "elsewhere"), cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.GridMinutes)
}

func TestApplyEnvWarningLevel(t *testing.T) {
	home := t.TempDir()
	cfg := Default(home)

	err := cfg.ApplyEnv(mapLookup(map[string]string{EnvLogLevel: "Warning"}), home)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	fromFile := Config{LogLevel: " WARNING "}
	fromFile.Normalize(home)
	assert.Equal(t, "warn", fromFile.LogLevel)
}

func TestApplyEnvBadNumber(t *testing.T) {
	home := t.TempDir()
	cfg := Default(home)

	err := cfg.ApplyEnv(mapLookup(map[string]string{EnvGridMinutes: "ten"}), home)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), EnvGridMinutes)
}

func TestApplyEnvIgnoresEmpty(t *testing.T) {
	home := t.TempDir()
	cfg := Default(home)

	require.NoError(t, cfg.ApplyEnv(mapLookup(map[string]string{EnvDataDir: "  "}), home))
	assert.Equal(t, Default(home).DataDir, cfg.DataDir)
}

func TestEnvLookupReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DAYGRID_TEST_ONLY_KEY=from-file\n"), 0644))

	lookup, err := EnvLookup(path)
	require.NoError(t, err)

	v, ok := lookup("DAYGRID_TEST_ONLY_KEY")
	assert.True(t, ok)
	assert.Equal(t, "from-file", v)

	t.Setenv("DAYGRID_TEST_ONLY_KEY", "from-env")
	v, ok = lookup("DAYGRID_TEST_ONLY_KEY")
	assert.True(t, ok)
	assert.Equal(t, "from-env", v)
}

func TestEnvLookupMissingFile(t *testing.T) {
	lookup, err := EnvLookup(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	_, ok := lookup("DAYGRID_TEST_ONLY_MISSING")
	assert.False(t, ok)
}
