// Package config loads application settings from flags, environment and an optional config file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

type AppConfig struct {
	ServerAddr    string
	StoragePath   string
	RulesFile     string
	PlacesFile    string
	ForecastURL   string
	GeocodingURL  string
	HTTPTimeout   time.Duration
	CacheTTL      time.Duration
	MaxRetries    int
	PruneInterval time.Duration
	LogLevel      slog.Level
	LogFormat     string
}

// SetDefaults registers every key so environment variables and flags can override it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("rules.file", "")
	v.SetDefault("places.file", "data/places.json")
	v.SetDefault("forecast.base_url", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("forecast.geocoding_url", "https://geocoding-api.open-meteo.com/v1/search")
	v.SetDefault("forecast.timeout", "10s")
	v.SetDefault("forecast.cache_ttl", "30m")
	v.SetDefault("forecast.max_retries", 3)
	v.SetDefault("scheduler.prune_interval", "15m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "packlist.db"
	}
	return filepath.Join(home, ".local", "share", "packlist", "packlist.db")
}

// Init wires a .env file, PACKLIST_ environment variables and the config file into v.
// cfgFile overrides the search for config.yaml in . and $HOME/.config/packlist.
func Init(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "packlist"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PACKLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// Load reads and validates settings from v.
func Load(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{
		ServerAddr:   v.GetString("server.addr"),
		StoragePath:  expandPath(v.GetString("storage.path")),
		RulesFile:    expandPath(v.GetString("rules.file")),
		PlacesFile:   expandPath(v.GetString("places.file")),
		ForecastURL:  v.GetString("forecast.base_url"),
		GeocodingURL: v.GetString("forecast.geocoding_url"),
		MaxRetries:   v.GetInt("forecast.max_retries"),
		LogFormat:    v.GetString("log.format"),
	}

	var err error
	if cfg.HTTPTimeout, err = positiveDuration(v, "forecast.timeout"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = positiveDuration(v, "forecast.cache_ttl"); err != nil {
		return nil, err
	}
	if cfg.PruneInterval, err = positiveDuration(v, "scheduler.prune_interval"); err != nil {
		return nil, err
	}

	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("%w: forecast.max_retries must not be negative", ErrInvalidConfig)
	}

	if cfg.LogLevel, err = parseLevel(v.GetString("log.level")); err != nil {
		return nil, err
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("%w: log.format %q (want console or json)", ErrInvalidConfig, cfg.LogFormat)
	}

	if cfg.StoragePath == "" {
		return nil, fmt.Errorf("%w: storage.path is required", ErrInvalidConfig)
	}

	return cfg, nil
}

func positiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, key)
	}
	return d, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, level)
	}
}

// expandPath expands a leading ~ and environment variables.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
