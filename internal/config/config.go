package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Store       StoreConfig       `json:"store"`
	UI          UIConfig          `json:"ui"`
	Editor      EditorConfig      `json:"editor"`
	Transcriber TranscriberConfig `json:"transcriber"`
	Keymap      KeymapConfig      `json:"keymap"`
}

// KeymapConfig carries user key overrides, key string to command id.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// StoreConfig configures the persistence backend.
type StoreConfig struct {
	Path string `json:"path"` // SQLite file; empty = platform default
}

// UIConfig configures appearance.
type UIConfig struct {
	Theme      string `json:"theme"` // "light" or "dark"; the store's saved theme wins when present
	ShowFooter bool   `json:"showFooter"`
}

// EditorConfig configures editing behavior.
type EditorConfig struct {
	AutoSaveInterval time.Duration `json:"autoSaveInterval"`
}

// TranscriberConfig configures the voice-input command. The command is
// expected to emit transcript fragments on stdout, one per line, until
// killed.
type TranscriberConfig struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Theme:      "dark",
			ShowFooter: true,
		},
		Editor: EditorConfig{
			AutoSaveInterval: 2 * time.Second,
		},
	}
}

// Validate checks the configuration, clamping nonsense values back to
// defaults rather than failing.
func (c *Config) Validate() error {
	if c.Editor.AutoSaveInterval <= 0 {
		c.Editor.AutoSaveInterval = 2 * time.Second
	}
	if c.UI.Theme != "light" && c.UI.Theme != "dark" {
		c.UI.Theme = "dark"
	}
	return nil
}
