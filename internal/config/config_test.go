// ABOUTME: Tests for config loading and saving.
// ABOUTME: Uses a temp XDG_CONFIG_HOME so the real config is never touched.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(RecorderEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigPathFollowsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "notepad", "config.yaml"), ConfigPath())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(RecorderEnv, "")

	cfg := DefaultConfig()
	cfg.Recorder.Command = []string{"rec", "-q", "-t", "ogg", "-"}
	cfg.Recorder.MimeType = "audio/ogg"
	cfg.LogLevel = "debug"
	cfg.Render.WordWrap = 100

	require.NoError(t, Save("", cfg))

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0600))
	t.Setenv(RecorderEnv, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultConfig().Recorder, cfg.Recorder)
	assert.Equal(t, 80, cfg.Render.WordWrap)
}

func TestLoadRecorderEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(RecorderEnv, "parecord --raw")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"parecord", "--raw"}, cfg.Recorder.Command)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recorder: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
