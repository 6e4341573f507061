package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings. SizeLabels is the t-shirt size
// table in ascending order; the sequencer places unknown labels after the
// last entry.
type UIConfig struct {
	SizeLabels       []string `mapstructure:"size_labels"`
	DefaultCriterion string   `mapstructure:"default_criterion"`
	DefaultDirection string   `mapstructure:"default_direction"`
}

// Load reads configuration from file and env. Env var overrides use prefix JASKPLAN_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "jaskplan", "jaskplan.db"))
	v.SetDefault("ui.size_labels", []string{"XS", "S", "M", "L", "XL", "XXL"})
	v.SetDefault("ui.default_criterion", "creation")
	v.SetDefault("ui.default_direction", "asc")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("JASKPLAN_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "jaskplan"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JASKPLAN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory
// if needed. Used by the TUI settings view.
func Save(cfg Config) error {
	path := os.Getenv("JASKPLAN_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "jaskplan", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.size_labels", cfg.UI.SizeLabels)
	v.Set("ui.default_criterion", cfg.UI.DefaultCriterion)
	v.Set("ui.default_direction", cfg.UI.DefaultDirection)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
