package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Application ApplicationConfig `mapstructure:"application"`
	Watch       WatchConfig       `mapstructure:"watch"`
	Output      OutputConfig      `mapstructure:"output"`
	Log         LogConfig         `mapstructure:"log"`
}

type ApplicationConfig struct {
	Name           string        `mapstructure:"name"`
	Version        string        `mapstructure:"version"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	DefaultLang    string        `mapstructure:"default_lang"`
	Storage        StorageConfig `mapstructure:"storage"`
}

// Addr is the listen address of the HTTP server.
func (c *ApplicationConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type StorageConfig struct {
	// Stage is watched for incoming presentations.
	Stage     string `mapstructure:"stage"`
	Output    string `mapstructure:"output"`
	Processed string `mapstructure:"processed"`
}

type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

type OutputConfig struct {
	BOM          bool   `mapstructure:"bom"`
	Dir          string `mapstructure:"dir"`
	PreviewWidth int    `mapstructure:"preview_width"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Flags bound into the configuration when present on the flag set.
var flagKeys = map[string]string{
	"out-dir":       "output.dir",
	"bom":           "output.bom",
	"preview-width": "output.preview_width",
	"log-level":     "log.level",
}

// LoadConfig reads .env, an optional config.yaml (or the file named by the
// --config flag), environment variables and the given flags, in increasing
// order of precedence. flags may be nil.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}

	v := viper.New()

	configFile, explicit := "config.yaml", false
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Changed {
			configFile, explicit = f.Value.String(), true
		}
	}
	v.SetConfigFile(configFile)

	// Environment variable mappings
	mappings := []struct {
		key, env string
	}{
		{"application.host", "HOST"},
		{"application.port", "PORT"},
		{"application.max_upload_bytes", "MAX_UPLOAD_BYTES"},
		{"application.default_lang", "DEFAULT_LANG"},

		// Storage
		{"application.storage.stage", "STORAGE_STAGE"},
		{"application.storage.output", "STORAGE_OUTPUT"},
		{"application.storage.processed", "STORAGE_PROCESSED"},

		// Watcher
		{"watch.enabled", "WATCH_ENABLED"},
		{"watch.debounce", "WATCH_DEBOUNCE"},

		// Reports
		{"output.bom", "OUTPUT_BOM"},
		{"output.dir", "OUTPUT_DIR"},
		{"output.preview_width", "PREVIEW_WIDTH"},

		// Logging
		{"log.level", "LOG_LEVEL"},
		{"log.format", "LOG_FORMAT"},
	}
	for _, m := range mappings {
		if err := v.BindEnv(m.key, m.env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", m.env, err)
		}
	}

	// Defaults
	v.SetDefault("application.name", "SlideSift")
	v.SetDefault("application.version", "dev")
	v.SetDefault("application.host", "")
	v.SetDefault("application.port", 8080)
	v.SetDefault("application.max_upload_bytes", 50<<20)
	v.SetDefault("application.default_lang", "en")
	v.SetDefault("application.storage.stage", "./storage/stage")
	v.SetDefault("application.storage.output", "./storage/output")
	v.SetDefault("application.storage.processed", "./storage/processed")
	v.SetDefault("watch.enabled", false)
	v.SetDefault("watch.debounce", "500ms")
	v.SetDefault("output.bom", false)
	v.SetDefault("output.dir", "")
	v.SetDefault("output.preview_width", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding --%s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if explicit || !missing {
			return nil, fmt.Errorf("reading %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Application.Port <= 0 || c.Application.Port > 65535 {
		return fmt.Errorf("application.port %d is out of range", c.Application.Port)
	}
	if c.Application.MaxUploadBytes <= 0 {
		return fmt.Errorf("application.max_upload_bytes must be positive")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q is not text or json", c.Log.Format)
	}
	return nil
}
