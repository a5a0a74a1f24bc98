package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dixieflatline76/Mosaic/pkg/collage"
)

// Package config provides configuration management for the Mosaic collage engine

// Config holds all configuration data loaded from settings.toml.
type Config struct {
	Paths   Paths   `toml:"paths"`
	General General `toml:"general"`
	Display Display `toml:"display"`
}

// Paths holds the source and output folder locations.
type Paths struct {
	WallpapersFolder string `toml:"wallpapers_folder"`
	OutputFolder     string `toml:"output_folder"`
}

// General holds the selection and rotation settings.
type General struct {
	Interval          int    `toml:"interval"` // seconds between rotations in watch mode
	Selection         string `toml:"selection"`
	CollageCount      int    `toml:"collage_count"`
	CollageSameForAll bool   `toml:"collage_same_for_all"`
	FadeIn            bool   `toml:"fade_in"`
}

// Display holds the fit policy and the optional static monitor list.
type Display struct {
	FitMode   string          `toml:"fit_mode"`
	SmartCrop bool            `toml:"smart_crop"`
	Monitors  []MonitorConfig `toml:"monitors"`
}

// MonitorConfig describes one display in virtual-desktop coordinates.
// Used on platforms without native monitor detection.
type MonitorConfig struct {
	X      int `toml:"x"`
	Y      int `toml:"y"`
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// GetPath returns the path to the user's config directory.
func GetPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName)), nil
}

// GetFilename returns the path to the user's settings file.
func GetFilename() (string, error) {
	dir, err := GetPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFile), nil
}

// Default returns a Config populated with default values.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaultValues()
	return cfg
}

// setDefaultValues sets default values for the configuration
func (c *Config) setDefaultValues() {
	if c.Paths.WallpapersFolder == "" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			c.Paths.WallpapersFolder = filepath.Join(homeDir, "Pictures", "Wallpapers")
		}
	}
	if c.Paths.OutputFolder == "" {
		if dir, err := GetPath(); err == nil {
			c.Paths.OutputFolder = dir
		}
	}
	if c.General.Interval == 0 {
		c.General.Interval = 600
	}
	if c.General.Selection == "" {
		c.General.Selection = collage.SelectionRandom.String()
	}
	if c.General.CollageCount == 0 {
		c.General.CollageCount = 4
	}
	if c.Display.FitMode == "" {
		c.Display.FitMode = collage.FitFill.String()
	}
}

// Load reads the configuration from the given file. An empty path selects the
// per-user default location; a missing file there yields the default config,
// while an explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = GetFilename()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg.setDefaultValues()
			return cfg, nil
		}
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.setDefaultValues()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enum-valued settings and clamps the collage count.
func (c *Config) Validate() error {
	if _, err := collage.ParseFitMode(c.Display.FitMode); err != nil {
		return err
	}
	if _, err := collage.ParseSelectionPolicy(c.General.Selection); err != nil {
		return err
	}
	if c.General.CollageCount < 1 {
		c.General.CollageCount = 1
	}
	if c.General.Interval < 0 {
		return fmt.Errorf("interval must not be negative: %d", c.General.Interval)
	}
	for _, m := range c.Display.Monitors {
		if m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("monitor entries need positive width and height, got %dx%d", m.Width, m.Height)
		}
	}
	return nil
}

// Save writes the current configuration to the given file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encoding config data: %w", err)
	}
	return nil
}
