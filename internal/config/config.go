// Package config loads layered settings: struct defaults, then an optional
// YAML file, then PM_* environment variables (with .env support).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rcliao/pm-philosophy/internal/recommend"
)

// Data sources for the episode library.
const (
	SourceDir    = "dir"
	SourceSQLite = "sqlite"
)

// Config is the complete application configuration.
type Config struct {
	Data    DataConfig              `koanf:"data"`
	Server  ServerConfig            `koanf:"server"`
	Logging LoggingConfig           `koanf:"logging"`
	Ranking recommend.RankingConfig `koanf:"ranking"`
	Quiz    QuizConfig              `koanf:"quiz"`
}

// DataConfig locates the episode library.
type DataConfig struct {
	// Dir holds episodes.json and verified/*.json.
	Dir string `koanf:"dir"`

	// DBPath is the SQLite index written by import.
	DBPath string `koanf:"db_path"`

	// Source picks where serve and recommend read the library from.
	Source string `koanf:"source"`

	// LoadWorkers bounds parallel file decoding; 0 means GOMAXPROCS.
	LoadWorkers int `koanf:"load_workers"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr               string        `koanf:"addr"`
	ReadTimeout        time.Duration `koanf:"read_timeout"`
	WriteTimeout       time.Duration `koanf:"write_timeout"`
	CORSOrigins        []string      `koanf:"cors_origins"`
	RateLimitPerMinute int           `koanf:"rate_limit_per_minute"` // 0 disables
	CacheSize          int           `koanf:"cache_size"`            // 0 disables
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

// QuizConfig holds quiz completion rules.
type QuizConfig struct {
	MinAnswers int `koanf:"min_answers"`
}

// defaultConfig returns the settings used when nothing overrides them.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:         "data",
			DBPath:      defaultDBPath(),
			Source:      SourceDir,
			LoadWorkers: 0,
		},
		Server: ServerConfig{
			Addr:               ":8080",
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       15 * time.Second,
			CORSOrigins:        []string{"*"},
			RateLimitPerMinute: 120,
			CacheSize:          1024,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Ranking: recommend.DefaultRankingConfig(),
		Quiz: QuizConfig{
			MinAnswers: 7,
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".pm-philosophy", "index.db")
	}
	return filepath.Join(home, ".pm-philosophy", "index.db")
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceDir:
		if c.Data.Dir == "" {
			return fmt.Errorf("data.dir is required when data.source is %q", SourceDir)
		}
	case SourceSQLite:
		if c.Data.DBPath == "" {
			return fmt.Errorf("data.db_path is required when data.source is %q", SourceSQLite)
		}
	default:
		return fmt.Errorf("data.source must be %q or %q, got %q", SourceDir, SourceSQLite, c.Data.Source)
	}
	if c.Data.LoadWorkers < 0 {
		return fmt.Errorf("data.load_workers must be >= 0, got %d", c.Data.LoadWorkers)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0, got %d", c.Server.RateLimitPerMinute)
	}
	if c.Server.CacheSize < 0 {
		return fmt.Errorf("server.cache_size must be >= 0, got %d", c.Server.CacheSize)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}

	if err := c.Ranking.Validate(); err != nil {
		return fmt.Errorf("ranking: %w", err)
	}
	if c.Quiz.MinAnswers < 1 {
		return fmt.Errorf("quiz.min_answers must be >= 1, got %d", c.Quiz.MinAnswers)
	}
	return nil
}
