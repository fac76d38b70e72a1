package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/qnkhuat/weetris/pkg/gui"
)

// Config holds the settings of the terminal client and the SSH server.
type Config struct {
	Game   GameConfig     `yaml:"game"`
	Theme  string         `yaml:"theme,omitempty"` // Empty picks a palette from the terminal colors
	Themes []gui.ThemeHex `yaml:"themes,omitempty"`
	Log    LogConfig      `yaml:"log"`
	Scores string         `yaml:"scores"` // Path of the best scores file
	Server ServerConfig   `yaml:"server"`
}

type GameConfig struct {
	DisplayNextPiece bool `yaml:"display_next_piece"`
	KeyDownSlow      bool `yaml:"key_down_slow"` // Off swaps the down and bottom keys
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Listen            string        `yaml:"listen"`
	HostKey           string        `yaml:"host_key,omitempty"`
	Binary            string        `yaml:"binary"` // Client binary started for each session
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	SessionsPerMinute int           `yaml:"sessions_per_minute"`
	SessionBurst      int           `yaml:"session_burst"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{
		Game: GameConfig{
			DisplayNextPiece: true,
			KeyDownSlow:      true,
		},
	}
	c.setDefaults()
	return c
}

// Load reads configuration from a YAML file. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	// An empty file leaves the defaults.
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Log.File == "" {
		c.Log.File = "weetris.log"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Scores == "" {
		c.Scores = "weetris_scores.yaml"
	}
	if c.Server.Listen == "" {
		c.Server.Listen = ":2222"
	}
	if c.Server.Binary == "" {
		c.Server.Binary = "weetris"
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 5 * time.Minute
	}
	if c.Server.SessionsPerMinute == 0 {
		c.Server.SessionsPerMinute = 30
	}
	if c.Server.SessionBurst == 0 {
		c.Server.SessionBurst = 5
	}
}

// Save writes the configuration back as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ResolveTheme returns the configured theme. With no theme name set it picks
// the 256 color palette when the terminal supports it.
func (c *Config) ResolveTheme(colors int) (gui.Theme, error) {
	if c.Theme == "" {
		return gui.DefaultTheme(colors), nil
	}

	t, err := gui.ImportThemes(c.Theme, c.Themes)
	if err != nil {
		return gui.Theme{}, fmt.Errorf("theme %q: %w", c.Theme, err)
	}
	return t, nil
}
