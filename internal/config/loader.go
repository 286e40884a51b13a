package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/scribble"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Durations arrive as
// strings ("2s") and booleans as pointers so absent keys keep defaults.
type rawConfig struct {
	Store       rawStoreConfig       `json:"store"`
	UI          rawUIConfig          `json:"ui"`
	Editor      rawEditorConfig      `json:"editor"`
	Transcriber rawTranscriberConfig `json:"transcriber"`
	Keymap      rawKeymapConfig      `json:"keymap"`
}

type rawKeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

type rawStoreConfig struct {
	Path string `json:"path"`
}

type rawUIConfig struct {
	Theme      string `json:"theme"`
	ShowFooter *bool  `json:"showFooter"`
}

type rawEditorConfig struct {
	AutoSaveInterval string `json:"autoSaveInterval"`
}

type rawTranscriberConfig struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/scribble/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Return defaults on error
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	cfg.Store.Path = ExpandPath(cfg.Store.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	if raw.Store.Path != "" {
		cfg.Store.Path = raw.Store.Path
	}

	if raw.UI.Theme != "" {
		cfg.UI.Theme = raw.UI.Theme
	}
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}

	if raw.Editor.AutoSaveInterval != "" {
		if d, err := time.ParseDuration(raw.Editor.AutoSaveInterval); err == nil {
			cfg.Editor.AutoSaveInterval = d
		}
	}

	if raw.Transcriber.Command != "" {
		cfg.Transcriber.Command = raw.Transcriber.Command
		cfg.Transcriber.Args = raw.Transcriber.Args
	}

	if len(raw.Keymap.Overrides) > 0 {
		cfg.Keymap.Overrides = raw.Keymap.Overrides
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
