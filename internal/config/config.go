// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/quizup/internal/llm"
)

// Config holds everything the server and CLI need besides the database path,
// which is resolved separately so the --db flag can win.
type Config struct {
	// HTTPAddr is the listen address for `quizup serve`.
	HTTPAddr string

	// JWTSecret signs and verifies bearer tokens. Required for serve and token.
	JWTSecret string

	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration

	// CORSOrigins lists allowed origins. Empty allows none; "*" allows all.
	CORSOrigins []string

	// RedisAddr enables the leaderboard cache when set.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// AMQPURL enables event publishing when set.
	AMQPURL      string
	AMQPExchange string

	// Metrics exposes /metrics when true.
	Metrics bool

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration

	// UpdateRepo is the GitHub "owner/name" checked by `quizup update`.
	UpdateRepo string

	LLM llm.Config
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		HTTPAddr:        ":8080",
		TokenTTL:        24 * time.Hour,
		AMQPExchange:    "quizup.events",
		Metrics:         true,
		ShutdownTimeout: 10 * time.Second,
		UpdateRepo:      "abhisek/quizup",
		LLM:             llm.DefaultConfig(),
	}
}

// Load reads an optional .env file from the working directory, then
// QUIZUP_* environment variables over the defaults. Variables already set
// in the environment take precedence over the .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// LoadFile is like Load but reads the named env files instead of .env.
func LoadFile(paths ...string) (Config, error) {
	if err := godotenv.Load(paths...); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", strings.Join(paths, ", "), err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.HTTPAddr = getenvDefault("QUIZUP_HTTP_ADDR", cfg.HTTPAddr)
	cfg.JWTSecret = os.Getenv("QUIZUP_JWT_SECRET")
	cfg.RedisAddr = os.Getenv("QUIZUP_REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("QUIZUP_REDIS_PASSWORD")
	cfg.AMQPURL = os.Getenv("QUIZUP_AMQP_URL")
	cfg.AMQPExchange = getenvDefault("QUIZUP_AMQP_EXCHANGE", cfg.AMQPExchange)
	cfg.UpdateRepo = getenvDefault("QUIZUP_UPDATE_REPO", cfg.UpdateRepo)

	if v := os.Getenv("QUIZUP_CORS_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	var err error
	if cfg.TokenTTL, err = getDuration("QUIZUP_TOKEN_TTL", cfg.TokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getDuration("QUIZUP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = getInt("QUIZUP_REDIS_DB", cfg.RedisDB); err != nil {
		return Config{}, err
	}
	if cfg.Metrics, err = getBool("QUIZUP_METRICS", cfg.Metrics); err != nil {
		return Config{}, err
	}

	cfg.LLM = llm.ConfigFromEnv()
	if !cfg.LLM.Configured() {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg.LLM = discovered
		}
	}

	return cfg, nil
}

// RequireSecret returns an error when no JWT secret is configured.
func (c Config) RequireSecret() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("QUIZUP_JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("QUIZUP_JWT_SECRET must be at least 16 characters")
	}
	return nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	return d, nil
}

func getInt(k string, fallback int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", k, v, err)
	}
	return n, nil
}

func getBool(k string, fallback bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s=%q is not a boolean: %w", k, v, err)
	}
	return b, nil
}
