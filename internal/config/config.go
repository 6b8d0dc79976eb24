package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// ErrMissingDatabaseURL is returned when neither DATABASE_URL nor CHANNELS_FILE is set.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required (or set CHANNELS_FILE to serve from a fixture file)")

const (
	defaultServerPort      = "8080"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultCacheTTL        = time.Minute
	defaultCacheSize       = 1000
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string        `yaml:"database_url" env:"DATABASE_URL"`
	ChannelsFile    string        `yaml:"channels_file" env:"CHANNELS_FILE"`
	RedisURL        string        `yaml:"redis_url" env:"REDIS_URL"`
	ServerPort      string        `yaml:"server_port" env:"SERVER_PORT"`
	BasePath        string        `yaml:"base_path" env:"BASE_PATH"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat       string        `yaml:"log_format" env:"LOG_FORMAT"`
	CacheTTL        time.Duration `yaml:"cache_ttl" env:"CACHE_TTL"`
	CacheSize       int           `yaml:"cache_size" env:"CACHE_SIZE"` // local LRU entries when REDIS_URL is unset; 0 disables
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// Load builds config from environment variables.
// If DATABASE_URL is not set, Load tries to load .env.local and .env from the current directory.
// DATABASE_URL is required unless CHANNELS_FILE points at a fixture file.
func Load() (*Config, error) {
	if os.Getenv("DATABASE_URL") == "" {
		loadEnvFiles()
	}
	c := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		ChannelsFile: os.Getenv("CHANNELS_FILE"),
		RedisURL:     os.Getenv("REDIS_URL"),
		ServerPort:   os.Getenv("SERVER_PORT"),
		BasePath:     os.Getenv("BASE_PATH"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogFormat:    os.Getenv("LOG_FORMAT"),
	}
	c.CacheTTL = parseDuration(os.Getenv("CACHE_TTL"), defaultCacheTTL)
	c.ShutdownTimeout = parseDuration(os.Getenv("SHUTDOWN_TIMEOUT"), defaultShutdownTimeout)
	c.CacheSize = parseSize(os.Getenv("CACHE_SIZE"), defaultCacheSize)
	c.applyDefaults()
	if c.DatabaseURL == "" && c.ChannelsFile == "" {
		return nil, ErrMissingDatabaseURL
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.ServerPort == "" {
		c.ServerPort = defaultServerPort
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}
}

// parseDuration returns def when s is empty or not a valid duration.
func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// parseSize returns def when s is empty or not a non-negative integer.
func parseSize(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
