package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the config file name looked up in the user and local
// config directories.
const ConfigFile = "pixelisland.yaml"

// Load reads the configuration.
// Search order: customPath -> ~/.pixelisland/config.yaml -> ./configs/pixelisland.yaml -> embedded default
//
// Every file is decoded over Default(), so a partial file only overrides
// the keys it sets.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the defaults and validates the result.
func parse(data []byte) (Config, error) {
	cfg := Default()
	// Lists replace rather than merge: a file that sets obstacles owns them all.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pixelisland", filename)
}

// Overrides holds command-line values that win over the file.
// Zero values leave the file value in place.
type Overrides struct {
	TickRate  int    `env:"PIXELISLAND_FPS"`
	DBPath    string `env:"PIXELISLAND_DB"`
	Profile   string `env:"PIXELISLAND_PROFILE"`
	AssetsDir string `env:"PIXELISLAND_ASSETS"`
	LogLevel  string `env:"PIXELISLAND_LOG_LEVEL"`
}

// EnvOverrides reads overrides from PIXELISLAND_* environment variables.
func EnvOverrides() (Overrides, error) {
	var o Overrides
	if err := env.Parse(&o); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// Apply copies every set override into cfg.
func (o Overrides) Apply(cfg *Config) {
	if o.TickRate > 0 {
		cfg.TickRate = o.TickRate
	}
	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	if o.Profile != "" {
		cfg.Profile = o.Profile
	}
	if o.AssetsDir != "" {
		cfg.AssetsDir = o.AssetsDir
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
}
