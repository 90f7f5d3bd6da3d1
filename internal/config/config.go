// ABOUTME: Configuration for notepad.
// ABOUTME: Handles the recorder command, logging and rendering settings at XDG config paths.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/notepad/internal/capture"
	"gopkg.in/yaml.v3"
)

// RecorderEnv overrides the recorder command. It is split on whitespace.
const RecorderEnv = "NOTEPAD_RECORDER"

type Config struct {
	Recorder Recorder `yaml:"recorder"`

	// LogLevel is a zerolog level name (default: warn)
	LogLevel string `yaml:"log_level"`

	Render Render `yaml:"render"`
}

type Recorder struct {
	// Command is the recorder argv; it must write audio to stdout.
	Command  []string `yaml:"command,omitempty"`
	MimeType string   `yaml:"mime_type,omitempty"`
}

type Render struct {
	WordWrap int `yaml:"word_wrap"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Recorder: Recorder{
			Command:  append([]string(nil), capture.DefaultRecorder...),
			MimeType: capture.DefaultMIMEType,
		},
		LogLevel: "warn",
		Render:   Render{WordWrap: 80},
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notepad")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load reads path (ConfigPath when empty) over the defaults. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // Config path is user-provided
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if env := strings.Fields(os.Getenv(RecorderEnv)); len(env) > 0 {
		cfg.Recorder.Command = env
	}
	return cfg, nil
}

// Save writes configuration to path (ConfigPath when empty).
func Save(path string, cfg *Config) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
