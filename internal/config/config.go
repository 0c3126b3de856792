package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Flyrell/daygrid/internal/schedule"
)

const (
	// AnchorExplicit repeats a weekly activity only on its listed days.
	AnchorExplicit = "explicit"
	// AnchorInclude also repeats it on the weekday of its scheduled date.
	AnchorInclude = "include"
)

// Environment variables that override file values.
const (
	EnvDataDir     = "DAYGRID_DATA_DIR"
	EnvLogLevel    = "DAYGRID_LOG_LEVEL"
	EnvGridMinutes = "DAYGRID_GRID_MINUTES"
)

// Config is the on-disk daygrid configuration.
type Config struct {
	// DataDir is where activity files live. A leading "~/" is expanded.
	DataDir string `yaml:"data_dir"`

	// GridMinutes is the snap grid for drags and moves.
	GridMinutes int `yaml:"grid_minutes"`

	// RowMinutes is how many minutes one terminal row represents on the
	// timeline.
	RowMinutes int `yaml:"row_minutes"`

	// MaxColumns caps how many side-by-side lanes the timeline draws.
	MaxColumns int `yaml:"max_columns"`

	// ConflictBuffer warns about activities closer than this many minutes.
	// Zero disables the warning.
	ConflictBuffer int `yaml:"conflict_buffer"`

	// WeeklyAnchor is "explicit" or "include".
	WeeklyAnchor string `yaml:"weekly_anchor"`

	LogLevel string `yaml:"log_level"`
}

// Dir returns the daygrid home directory.
func Dir(homeDir string) string {
	return filepath.Join(homeDir, ".daygrid")
}

// DefaultPath returns the default config file location.
func DefaultPath(homeDir string) string {
	return filepath.Join(Dir(homeDir), "config.yaml")
}

// Default returns the built-in configuration.
func Default(homeDir string) *Config {
	return &Config{
		DataDir:        filepath.Join(Dir(homeDir), "activities"),
		GridMinutes:    schedule.DefaultGridMinutes,
		RowMinutes:     15,
		MaxColumns:     4,
		ConflictBuffer: 0,
		WeeklyAnchor:   AnchorExplicit,
		LogLevel:       "info",
	}
}

// Normalize fills zero or out-of-range values with defaults so that partial
// files still load.
func (c *Config) Normalize(homeDir string) {
	def := Default(homeDir)

	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	c.DataDir = expandHome(c.DataDir, homeDir)
	if c.GridMinutes <= 0 || c.GridMinutes > 60 {
		c.GridMinutes = def.GridMinutes
	}
	if c.RowMinutes <= 0 || c.RowMinutes > 60 {
		c.RowMinutes = def.RowMinutes
	}
	if c.MaxColumns <= 0 {
		c.MaxColumns = def.MaxColumns
	}
	if c.ConflictBuffer < 0 {
		c.ConflictBuffer = 0
	}
	switch c.WeeklyAnchor {
	case AnchorExplicit, AnchorInclude:
	default:
		c.WeeklyAnchor = def.WeeklyAnchor
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	case "warning":
		c.LogLevel = "warn"
	default:
		c.LogLevel = def.LogLevel
	}
}

// Evaluator returns the recurrence evaluator configured by WeeklyAnchor.
func (c *Config) Evaluator() schedule.Evaluator {
	return schedule.Evaluator{IncludeAnchorWeekday: c.WeeklyAnchor == AnchorInclude}
}

// Load reads the YAML config at path. On first run the file does not exist;
// the defaults are written there and returned.
func Load(path, homeDir string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default(homeDir)
		if err := Save(path, cfg); err != nil {
			return cfg, fmt.Errorf("writing default config: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Normalize(homeDir)
	return &cfg, nil
}

// Save writes cfg to path through a temp file and rename.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".daygrid-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a lookup that prefers the process environment and falls
// back to the values of the dotenv file at path. A missing file is not an
// error.
func EnvLookup(path string) (LookupFunc, error) {
	file := map[string]string{}
	if path != "" {
		values, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides file values with DAYGRID_* variables.
func (c *Config) ApplyEnv(lookup LookupFunc, homeDir string) error {
	if v, ok := lookup(EnvDataDir); ok && strings.TrimSpace(v) != "" {
		c.DataDir = expandHome(strings.TrimSpace(v), homeDir)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvGridMinutes); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", EnvGridMinutes, v)
		}
		c.GridMinutes = n
	}
	c.Normalize(homeDir)
	return nil
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
