// Package config provides centralized configuration loaded from environment
// variables, with an optional TOML file for chart rendering settings.
// Shared by cmd/api and cmd/squadgraph.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// --------------------------------------------------------------------------
// Data sources
// --------------------------------------------------------------------------

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// --------------------------------------------------------------------------
// Table names, matching schema.sql
// --------------------------------------------------------------------------

const (
	MatchesTable      = "matches"
	MatchTeamsTable   = "match_teams"
	MatchPlayersTable = "match_players"
	PlayersTable      = "players"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Dataset
	DataSource  string // file or postgres
	MatchesFile string
	PlayersFile string

	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	LogLevel    slog.Level

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
	CacheTTL     time.Duration

	// Chart rendering (CONFIG_FILE, [render] table)
	Render RenderConfig
}

// RenderConfig controls the HTML graph chart.
type RenderConfig struct {
	Title        string `toml:"title"`
	Width        string `toml:"width"`
	Height       string `toml:"height"`
	Theme        string `toml:"theme"`
	Layout       string `toml:"layout"`         // force or circular
	Repulsion    int    `toml:"repulsion"`      // force layout node repulsion
	MaxEdgeWidth int    `toml:"max_edge_width"` // edge width cap in px
	NodeSize     int    `toml:"node_size"`
}

// DefaultRenderConfig returns the default chart settings.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Title:        "Evolution of Football Teams",
		Width:        "1400px",
		Height:       "900px",
		Theme:        "dark",
		Layout:       "force",
		Repulsion:    200,
		MaxEdgeWidth: 5,
		NodeSize:     15,
	}
}

type fileConfig struct {
	Render RenderConfig `toml:"render"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DataSource:  strings.ToLower(envOr("DATA_SOURCE", SourceFile)),
		MatchesFile: envOr("MATCHES_FILE", "matches.json"),
		PlayersFile: envOr("PLAYERS_FILE", "players.json"),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		LogLevel:    envLevel("LOG_LEVEL", slog.LevelInfo),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
		CacheTTL:     time.Duration(envInt("CACHE_TTL_MINUTES", 60)) * time.Minute,

		Render: DefaultRenderConfig(),
	}

	switch cfg.DataSource {
	case SourceFile:
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when DATA_SOURCE=%s", SourcePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q (want %s or %s)", cfg.DataSource, SourceFile, SourcePostgres)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		render, err := LoadRenderFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Render = render
	}

	return cfg, nil
}

// LoadRenderFile reads the [render] table of a TOML file on top of the
// defaults. A missing file is an error; missing keys keep their defaults.
func LoadRenderFile(path string) (RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("read config file: %w", err)
	}
	return ParseRender(data)
}

// ParseRender decodes TOML bytes into a RenderConfig seeded with defaults.
func ParseRender(data []byte) (RenderConfig, error) {
	fc := fileConfig{Render: DefaultRenderConfig()}
	if err := toml.Unmarshal(data, &fc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return RenderConfig{}, fmt.Errorf("parse config file at %d:%d: %w", row, col, err)
		}
		return RenderConfig{}, fmt.Errorf("parse config file: %w", err)
	}
	if fc.Render.MaxEdgeWidth < 1 {
		fc.Render.MaxEdgeWidth = 1
	}
	return fc.Render, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NewLogger returns the process logger at the configured level.
func (c *Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: c.LogLevel}))
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			return level
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
