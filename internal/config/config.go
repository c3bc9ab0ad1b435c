// This file defines the configuration structure for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port     int `mapstructure:"port"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	App struct {
		Version string `mapstructure:"version"`
	} `mapstructure:"app"`
	Source struct {
		VersionID int      `mapstructure:"version_id"`
		Suffixes  []string `mapstructure:"suffixes"`
	} `mapstructure:"source"`
	HTTP struct {
		Timeout int `mapstructure:"timeout"` // seconds
	} `mapstructure:"http"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or "yaml"
	viper.AddConfigPath(".")      // looking for config in the current directory

	// --- Environment Variable Overrides ---
	// e.g., EASYYOMI_DATABASE_PATH will override the `database.path` key.
	viper.SetEnvPrefix("EASYYOMI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("port", 8080)
	viper.SetDefault("database.path", "./easyyomi.db")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("source.version_id", 1)
	viper.SetDefault("source.suffixes", []string{"", "2", "3"})
	viper.SetDefault("http.timeout", 30)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}
	return &config, nil
}

// normalize validates values that viper cannot check by itself.
func (c *Config) normalize() error {
	v, err := semver.NewVersion(strings.TrimPrefix(c.App.Version, "v"))
	if err != nil {
		return fmt.Errorf("invalid app.version %q: %w", c.App.Version, err)
	}
	c.App.Version = v.String()

	if c.Source.VersionID < 1 {
		return fmt.Errorf("source.version_id must be positive, got %d", c.Source.VersionID)
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative, got %d", c.HTTP.Timeout)
	}
	return nil
}

// Watch calls onChange whenever the loaded config file is modified. Nothing
// is reloaded: sources read their configuration once, at startup.
func Watch(onChange func(path string)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		if e.Has(fsnotify.Write) || e.Has(fsnotify.Create) {
			onChange(e.Name)
		}
	})
	viper.WatchConfig()
}
