// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Server  ServerConfig
	YouTube YouTubeConfig
	Ranking RankingConfig
	Quota   QuotaConfig
	Logging LoggingConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	APIKeys         []string
}

// YouTubeConfig contains upstream API configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type YouTubeConfig struct {
	APIKey       string
	PageSize     int
	MaxPages     int
	RetryBackoff time.Duration
	Timeout      time.Duration
}

// RankingConfig contains the default ranking weights, overridable per
// request.
type RankingConfig struct {
	LikeWeight   float64
	ViewWeight   float64
	HalfLifeDays float64
}

// QuotaConfig contains daily quota budgeting configuration.
type QuotaConfig struct {
	DailyLimit       int
	ThresholdPercent int
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The upstream API key commonly lives in the conventional env var.
	_ = viper.BindEnv("youtube.apikey", "YOUTUBE_API_KEY", "APP_YOUTUBE_APIKEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)
	viper.SetDefault("server.apikeys", []string{})

	// YouTube
	viper.SetDefault("youtube.apikey", "")
	viper.SetDefault("youtube.pagesize", 50)
	viper.SetDefault("youtube.maxpages", 100)
	viper.SetDefault("youtube.retrybackoff", 2*time.Second)
	viper.SetDefault("youtube.timeout", 30*time.Second)

	// Ranking
	viper.SetDefault("ranking.likeweight", 1.0)
	viper.SetDefault("ranking.viewweight", 0.1)
	viper.SetDefault("ranking.halflifedays", 90.0)

	// Quota
	viper.SetDefault("quota.dailylimit", 10000)
	viper.SetDefault("quota.thresholdpercent", 90)

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
