package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Time    TimeConfig    `mapstructure:"time"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Transport string `mapstructure:"transport"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// TimeConfig holds time source and formatting configuration
type TimeConfig struct {
	Source          string `mapstructure:"source"`
	FixedTime       string `mapstructure:"fixed_time"`
	DefaultTimezone string `mapstructure:"default_timezone"`
	Format          string `mapstructure:"format"`
}

// New loads and validates the application configuration
func New() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	viper.SetDefault("server.transport", "stdio")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("logging.mode", "production")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("time.source", "system")
	viper.SetDefault("time.fixed_time", "")
	viper.SetDefault("time.default_timezone", "Asia/Shanghai")
	viper.SetDefault("time.format", "2006-01-02 15:04:05 MST")

	// The container contract exposes the listen address as bare HOST/PORT
	// environment variables, so bind those keys explicitly.
	_ = viper.BindEnv("server.host", "HOST")
	_ = viper.BindEnv("server.port", "PORT")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// If config file not found, continue with defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

// validate ensures the configuration is valid
func (c *Config) validate() error {
	supportedTransports := map[string]bool{
		"stdio": true,
		"sse":   true,
		"http":  true,
	}
	if !supportedTransports[c.Server.Transport] {
		return fmt.Errorf("invalid server.transport: %s, must be 'stdio', 'sse' or 'http'", c.Server.Transport)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in range 1-65535, got: %d", c.Server.Port)
	}

	if c.Logging.Mode != "production" && c.Logging.Mode != "development" {
		return fmt.Errorf("invalid logging.mode: %s, must be 'production' or 'development'", c.Logging.Mode)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
		"dpanic": true, "panic": true, "fatal": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	switch c.Time.Source {
	case "system":
		// nothing more to check
	case "fixed":
		if _, err := time.Parse(time.RFC3339, c.Time.FixedTime); err != nil {
			return fmt.Errorf("time.fixed_time must be RFC 3339 when time.source is 'fixed': %w", err)
		}
	default:
		return fmt.Errorf("unsupported time.source: %s, must be 'system' or 'fixed'", c.Time.Source)
	}

	if _, err := time.LoadLocation(c.Time.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid time.default_timezone: %s: %w", c.Time.DefaultTimezone, err)
	}

	if c.Time.Format == "" {
		return fmt.Errorf("time.format must not be empty")
	}

	return nil
}

// ListenAddr returns the host:port address for network transports
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
