package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohmytoolbox/tbx/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "adb", cfg.Tools.ADB)
	assert.Equal(t, "fastboot", cfg.Tools.Fastboot)
	assert.Equal(t, "qdl", cfg.Tools.QDL)
	assert.Equal(t, "ramdump", cfg.Tools.Ramdump)
	assert.Equal(t, 2*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 120, cfg.Monitor.History)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
version: 1
tools:
  adb: /opt/platform-tools/adb
  fastboot: fastboot
  qdl: /usr/local/bin/qdl
  ramdump: ramdump
monitor:
  interval: 5s
  history: 300
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/platform-tools/adb", cfg.Tools.ADB)
	assert.Equal(t, "/usr/local/bin/qdl", cfg.Tools.QDL)
	assert.Equal(t, 5*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 300, cfg.Monitor.History)
}

func TestLoadPartialConfigMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
tools:
  adb: /custom/adb
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/custom/adb", cfg.Tools.ADB)
	assert.Equal(t, "fastboot", cfg.Tools.Fastboot)
	assert.Equal(t, 2*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 120, cfg.Monitor.History)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ConfigFileName))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "tools: [not: a: mapping\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadRejectsFutureVersion(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "version: 99\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "future")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty tool name",
			mutate:  func(c *Config) { c.Tools.ADB = "  " },
			wantErr: "tools.adb cannot be empty",
		},
		{
			name:    "shell metacharacters",
			mutate:  func(c *Config) { c.Tools.QDL = "qdl; rm -rf /" },
			wantErr: "shell metacharacters",
		},
		{
			name:    "zero interval",
			mutate:  func(c *Config) { c.Monitor.Interval = 0 },
			wantErr: "monitor.interval must be positive",
		},
		{
			name:    "zero history",
			mutate:  func(c *Config) { c.Monitor.History = 0 },
			wantErr: "monitor.history must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFindExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "version: 1\n")

	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFindExplicitPathMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFindCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "version: 1\n")
	t.Chdir(dir)

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, ConfigFileName, filepath.Base(found))
	assert.Equal(t, path, found)
}

func TestFindParentDirectory(t *testing.T) {
	parent := t.TempDir()
	path := writeConfig(t, parent, "version: 1\n")

	child := filepath.Join(parent, "a", "b")
	require.NoError(t, os.MkdirAll(child, 0o755))
	t.Chdir(child)

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ConfigFileName)

	cfg := DefaultConfig()
	cfg.Tools.ADB = "/opt/adb"
	cfg.Monitor.Interval = 7 * time.Second
	cfg.Monitor.History = 50

	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Interval is written as a duration string, not nanoseconds.
	assert.Contains(t, string(data), "interval: 7s")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Tools.ADB, loaded.Tools.ADB)
	assert.Equal(t, cfg.Monitor.Interval, loaded.Monitor.Interval)
	assert.Equal(t, cfg.Monitor.History, loaded.Monitor.History)
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Monitor.History = -1

	err := cfg.Save(filepath.Join(t.TempDir(), ConfigFileName))
	require.Error(t, err)
}
