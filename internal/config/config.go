// internal/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	DBURL          string        `mapstructure:"DB_URL"`
	HTTPAddr       string        `mapstructure:"HTTP_ADDR"`
	GithubToken    string        `mapstructure:"GITHUB_TOKEN"`
	ScrapeInterval time.Duration `mapstructure:"SCRAPE_INTERVAL"`
	DataDir        string        `mapstructure:"DATA_DIR"`
	SearchMaxPages int           `mapstructure:"SEARCH_MAX_PAGES"`
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("SCRAPE_INTERVAL", "6h")
	viper.SetDefault("DATA_DIR", "scraped_data")
	viper.SetDefault("SEARCH_MAX_PAGES", 10)

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}
	if cfg.ScrapeInterval <= 0 {
		return nil, errors.New("SCRAPE_INTERVAL must be a positive duration")
	}
	if cfg.SearchMaxPages <= 0 {
		return nil, errors.New("SEARCH_MAX_PAGES must be positive")
	}

	return &cfg, nil
}
