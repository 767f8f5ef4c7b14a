package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babakskr/Conduit-console/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3*time.Second, cfg.Refresh)
	assert.Empty(t, cfg.Interface)
	assert.Equal(t, 120, cfg.MaxWidth)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 15*time.Second, cfg.CacheFloor)
	assert.Contains(t, cfg.CacheDir, "conduit")
	assert.Contains(t, cfg.DataDir, "conduit")
}

func TestLoadMissingDefaultFileYieldsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Refresh)
	assert.Equal(t, 120, cfg.MaxWidth)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "refresh: 10s\ninterface: eth1\nmax_width: 90\nconcurrency: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Refresh)
	assert.Equal(t, "eth1", cfg.Interface)
	assert.Equal(t, 90, cfg.MaxWidth)
	assert.Equal(t, 2, cfg.Concurrency)

	// Unset keys keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.CacheFloor)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("refresh: [unterminated\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestWidthEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(WidthEnv, "72")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 72, cfg.MaxWidth)
}

func TestWidthEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name  string
		value string
	}{
		{"non-numeric", "wide"},
		{"zero", "0"},
		{"negative", "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(WidthEnv, tt.value)
			cfg, err := Load("")
			require.NoError(t, err)
			assert.Equal(t, 120, cfg.MaxWidth)
		})
	}
}

func TestValidateClamps(t *testing.T) {
	cfg := Config{
		Refresh:     time.Millisecond,
		Concurrency: 0,
		MaxWidth:    10,
		CacheFloor:  -time.Second,
	}.Validate()

	assert.Equal(t, time.Second, cfg.Refresh)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, 40, cfg.MaxWidth)
	assert.Equal(t, time.Duration(0), cfg.CacheFloor)
}

func TestValidateKeepsGoodValues(t *testing.T) {
	in := Default()
	assert.Equal(t, in, in.Validate())
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/op")
	assert.Equal(t, "/home/op/.config/conduit/config.yaml", DefaultPath())
}
