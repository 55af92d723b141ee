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

// ErrMissingAPIKey is returned by Validate when no metadata API key is set
var ErrMissingAPIKey = errors.New("tmdb.api_key is not set (config.yaml or CINEPICK_TMDB_API_KEY)")

// Color modes for UIConfig.Color
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Store   StoreConfig   `mapstructure:"store"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Search  SearchConfig  `mapstructure:"search"`
	User    UserConfig    `mapstructure:"user"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds metadata API configuration
type TMDBConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	Language      string        `mapstructure:"language"` // e.g. "ko-KR"
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second"` // 0 or less uses 20 per second
}

// RedisConfig holds document store configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"` // empty disables favorites and comments
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StoreConfig holds local storage configuration
type StoreConfig struct {
	Path string `mapstructure:"path"` // directory for the database file, empty for memory only
}

// CacheConfig sizes the gateway response cache
type CacheConfig struct {
	MaxSize int           `mapstructure:"max_size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// SearchConfig holds search behavior
type SearchConfig struct {
	ReadyWait time.Duration `mapstructure:"ready_wait"` // how long a search waits for the keyword list
}

// UserConfig identifies the local user to the document store
type UserConfig struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// UIConfig holds output configuration
type UIConfig struct {
	Color string `mapstructure:"color"` // "auto", "always" or "never"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:       "https://api.themoviedb.org/3",
			Language:      "ko-KR",
			Timeout:       10 * time.Second,
			RatePerSecond: 20,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Store: StoreConfig{
			Path: defaultDataPath(),
		},
		Cache: CacheConfig{
			MaxSize: 200,
			TTL:     10 * time.Minute,
		},
		Search: SearchConfig{
			ReadyWait: 500 * time.Millisecond,
		},
		User: UserConfig{
			ID:   "local",
			Name: "local",
		},
		UI: UIConfig{
			Color: ColorAuto,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "cinepick.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "cinepick")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinepick")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinepick")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cinepick")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), defaultConfigPath(), ".")
}

func loadConfig(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides, e.g. CINEPICK_TMDB_API_KEY
	v.SetEnvPrefix("CINEPICK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it on Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("tmdb.api_key", cfg.TMDB.APIKey)
	v.SetDefault("tmdb.base_url", cfg.TMDB.BaseURL)
	v.SetDefault("tmdb.language", cfg.TMDB.Language)
	v.SetDefault("tmdb.timeout", cfg.TMDB.Timeout)
	v.SetDefault("tmdb.rate_per_second", cfg.TMDB.RatePerSecond)

	v.SetDefault("redis.addr", cfg.Redis.Addr)
	v.SetDefault("redis.password", cfg.Redis.Password)
	v.SetDefault("redis.db", cfg.Redis.DB)

	v.SetDefault("store.path", cfg.Store.Path)

	v.SetDefault("cache.max_size", cfg.Cache.MaxSize)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)

	v.SetDefault("search.ready_wait", cfg.Search.ReadyWait)

	v.SetDefault("user.id", cfg.User.ID)
	v.SetDefault("user.name", cfg.User.Name)

	v.SetDefault("ui.color", cfg.UI.Color)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// SaveConfig writes the configuration to the default config file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.New(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to keep snake_case key names
	v.Set("tmdb.api_key", cfg.TMDB.APIKey)
	v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	v.Set("tmdb.language", cfg.TMDB.Language)
	v.Set("tmdb.timeout", cfg.TMDB.Timeout.String())
	v.Set("tmdb.rate_per_second", cfg.TMDB.RatePerSecond)

	v.Set("redis.addr", cfg.Redis.Addr)
	v.Set("redis.password", cfg.Redis.Password)
	v.Set("redis.db", cfg.Redis.DB)

	v.Set("store.path", cfg.Store.Path)

	v.Set("cache.max_size", cfg.Cache.MaxSize)
	v.Set("cache.ttl", cfg.Cache.TTL.String())

	v.Set("search.ready_wait", cfg.Search.ReadyWait.String())

	v.Set("user.id", cfg.User.ID)
	v.Set("user.name", cfg.User.Name)

	v.Set("ui.color", cfg.UI.Color)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate reports configuration the application cannot start without
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		return ErrMissingAPIKey
	}
	switch c.UI.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid ui.color %q (want auto, always or never)", c.UI.Color)
	}
	return nil
}

// DocStoreEnabled returns true if a document store address is configured
func (c *Config) DocStoreEnabled() bool {
	return c.Redis.Addr != ""
}
