package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	DatabaseURL     string `yaml:"database_url"`
	ChannelsFile    string `yaml:"channels_file"`
	RedisURL        string `yaml:"redis_url"`
	ServerPort      string `yaml:"server_port"`
	BasePath        string `yaml:"base_path"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
	CacheTTL        string `yaml:"cache_ttl"`
	CacheSize       *int   `yaml:"cache_size"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// LoadFromFile loads config from a YAML file. database_url or channels_file is required.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.DatabaseURL == "" && f.ChannelsFile == "" {
		return nil, ErrMissingDatabaseURL
	}
	c := &Config{
		DatabaseURL:     f.DatabaseURL,
		ChannelsFile:    f.ChannelsFile,
		RedisURL:        f.RedisURL,
		ServerPort:      f.ServerPort,
		BasePath:        f.BasePath,
		LogLevel:        f.LogLevel,
		LogFormat:       f.LogFormat,
		CacheTTL:        parseDuration(f.CacheTTL, defaultCacheTTL),
		ShutdownTimeout: parseDuration(f.ShutdownTimeout, defaultShutdownTimeout),
	}
	c.CacheSize = defaultCacheSize
	if f.CacheSize != nil && *f.CacheSize >= 0 {
		c.CacheSize = *f.CacheSize
	}
	c.applyDefaults()
	return c, nil
}
