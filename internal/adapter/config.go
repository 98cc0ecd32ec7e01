package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PICTA_PROVIDER_API_KEY
const EnvPrefix = "PICTA"

// Config holds all application configuration
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	UI       UIConfig       `mapstructure:"ui"`
	History  HistoryConfig  `mapstructure:"history"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ProviderConfig holds image search provider configuration
type ProviderConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	ImageType   string        `mapstructure:"image_type"`  // photo, illustration, vector, all
	Orientation string        `mapstructure:"orientation"` // horizontal, vertical, all
	SafeSearch  bool          `mapstructure:"safe_search"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns   int           `mapstructure:"grid_columns"`
	ToastDuration time.Duration `mapstructure:"toast_duration"`
	Mouse         bool          `mapstructure:"mouse"`
}

// HistoryConfig holds search history configuration
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // empty keeps history in memory only
	Limit   int    `mapstructure:"limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL:     "https://pixabay.com/api/",
			ImageType:   "photo",
			Orientation: "horizontal",
			Timeout:     15 * time.Second,
		},
		UI: UIConfig{
			GridColumns:   4,
			ToastDuration: 4 * time.Second,
			Mouse:         true,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(defaultDataPath(), "history.db"),
			Limit:   50,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "picta.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the directory for logs and history on the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "picta")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "picta")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "picta")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "picta")
	}
}

// newViper returns a viper instance seeded with defaults and env bindings
func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()

	v.SetDefault("provider.base_url", d.Provider.BaseURL)
	v.SetDefault("provider.api_key", d.Provider.APIKey)
	v.SetDefault("provider.image_type", d.Provider.ImageType)
	v.SetDefault("provider.orientation", d.Provider.Orientation)
	v.SetDefault("provider.safe_search", d.Provider.SafeSearch)
	v.SetDefault("provider.timeout", d.Provider.Timeout)
	v.SetDefault("ui.grid_columns", d.UI.GridColumns)
	v.SetDefault("ui.toast_duration", d.UI.ToastDuration)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("history.limit", d.History.Limit)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.level", d.Logging.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from path, or from the default
// locations when path is empty, then applies environment overrides.
// A missing file at a default location is not an error.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the UI and provider cannot work with
func (c *Config) Validate() error {
	if c.UI.GridColumns < 1 {
		return fmt.Errorf("ui.grid_columns must be at least 1, got %d", c.UI.GridColumns)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative, got %d", c.History.Limit)
	}
	if c.Provider.Timeout < 0 {
		return fmt.Errorf("provider.timeout must not be negative, got %s", c.Provider.Timeout)
	}
	switch strings.ToUpper(c.Logging.Level) {
	case "", "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return c.Provider.APIKey != ""
}

// SaveConfig writes cfg as YAML to path, or to the default location when path is empty.
// It returns the path written.
func SaveConfig(cfg *Config, path string) (string, error) {
	if path == "" {
		path = filepath.Join(DefaultConfigDir(), "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("provider.base_url", cfg.Provider.BaseURL)
	v.Set("provider.api_key", cfg.Provider.APIKey)
	v.Set("provider.image_type", cfg.Provider.ImageType)
	v.Set("provider.orientation", cfg.Provider.Orientation)
	v.Set("provider.safe_search", cfg.Provider.SafeSearch)
	v.Set("provider.timeout", cfg.Provider.Timeout.String())

	v.Set("ui.grid_columns", cfg.UI.GridColumns)
	v.Set("ui.toast_duration", cfg.UI.ToastDuration.String())
	v.Set("ui.mouse", cfg.UI.Mouse)

	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.path", cfg.History.Path)
	v.Set("history.limit", cfg.History.Limit)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
