// Package config loads and validates console configuration. The dashboard
// captures one immutable Config at the start of each collection cycle and
// threads it explicitly through collection and render calls, so a cycle
// never observes a mid-flight settings change.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/babakskr/Conduit-console/internal/errors"
)

const (
	// ConfigDir is the directory under $HOME holding the config file.
	ConfigDir = ".config/conduit"
	// ConfigFile is the config file name.
	ConfigFile = "config.yaml"
	// WidthEnv overrides the maximum rendered width.
	WidthEnv = "CONDUIT_MAX_WIDTH"
)

// Config is one immutable settings snapshot.
type Config struct {
	// Refresh is the dashboard collection cadence.
	Refresh time.Duration `mapstructure:"refresh"`
	// Interface is the NIC sampled for throughput; empty aggregates all
	// non-loopback interfaces.
	Interface string `mapstructure:"interface"`
	// MaxWidth caps the rendered frame width regardless of terminal size.
	MaxWidth int `mapstructure:"max_width"`
	// Concurrency bounds in-flight collector tasks per population.
	Concurrency int `mapstructure:"concurrency"`
	// CacheDir holds the per-instance status cache files.
	CacheDir string `mapstructure:"cache_dir"`
	// CacheFloor is the minimum cache TTL; the effective TTL is the
	// larger of this and twice Refresh.
	CacheFloor time.Duration `mapstructure:"cache_floor"`
	// DataDir holds read-only per-instance metadata files.
	DataDir string `mapstructure:"data_dir"`
}

// Default returns the configuration used when no file and no flags are
// present. The dashboard must work with no flags at all.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Refresh:     3 * time.Second,
		Interface:   "",
		MaxWidth:    120,
		Concurrency: 8,
		CacheDir:    filepath.Join(home, ".cache", "conduit", "stats"),
		CacheFloor:  15 * time.Second,
		DataDir:     filepath.Join(home, ".local", "share", "conduit"),
	}
}

// DefaultPath returns the expected config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigFile
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

// Load reads configuration from path, or from the default location when
// path is empty. A missing file yields defaults, not an error; the
// console is expected to run unconfigured.
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found: "+path,
					"Run 'conduit init' to create one, or drop the --config flag.")
			}
			return applyEnv(Default()), nil
		}
		return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file "+path,
			"Check that the file is valid YAML.")
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format in "+path,
			"Check the YAML structure against 'conduit init' output.")
	}

	return applyEnv(cfg), nil
}

// applyEnv layers environment overrides on top of file values.
func applyEnv(cfg Config) Config {
	if raw := os.Getenv(WidthEnv); raw != "" {
		if w, err := strconv.Atoi(raw); err == nil && w > 0 {
			cfg.MaxWidth = w
		}
	}
	return cfg
}

// Validate clamps out-of-range values to usable ones rather than failing;
// a dashboard that refuses to start over a bad interval helps nobody.
func (c Config) Validate() Config {
	if c.Refresh < time.Second {
		c.Refresh = time.Second
	}
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.MaxWidth < 40 {
		c.MaxWidth = 40
	}
	if c.CacheFloor < 0 {
		c.CacheFloor = 0
	}
	return c
}
