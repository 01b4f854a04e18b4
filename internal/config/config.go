// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all runtime configuration values. It is built once in main and
// handed to the components that need it; nothing mutates it afterwards.
type Config struct {
	Env  string // application environment (dev, test, prod)
	Port string // HTTP port to listen on

	DBUser string
	DBPass string // may be empty
	DBHost string
	DBPort string
	DBName string

	JWTSecret  string        // HS256 signing secret for login tokens
	TokenTTL   time.Duration // lifetime of issued tokens
	BcryptCost int

	LogLevel  string
	LogFormat string // json or console

	CORSAllowOrigins []string

	AMQPURL               string // empty disables ticket event publishing
	TicketConsumerEnabled bool

	ChatLogTimeout           time.Duration // upper bound for the best-effort chat insert
	RecommendBreakerFailures uint32
	RecommendBreakerTimeout  time.Duration
}

// Load reads the configuration from the environment. Every missing required
// variable is reported in the returned error.
func Load() (Config, error) {
	var missing []string
	must := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
		return strings.TrimSpace(v)
	}

	cfg := Config{
		Env:    envStr("APP_ENV", "dev"),
		Port:   envStr("APP_PORT", "5000"),
		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: must("DB_HOST"),
		DBPort: envStr("DB_PORT", "3306"),
		DBName: must("DB_NAME"),

		JWTSecret:  must("JWT_SECRET"),
		TokenTTL:   time.Duration(envInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		BcryptCost: envInt("BCRYPT_COST", 10),

		LogLevel:  envStr("LOG_LEVEL", "info"),
		LogFormat: envStr("LOG_FORMAT", "json"),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", "*"),

		AMQPURL:               envStr("AMQP_URL", ""),
		TicketConsumerEnabled: envBool("TICKET_CONSUMER_ENABLED", false),

		ChatLogTimeout:           envDur("CHAT_LOG_TIMEOUT", 3*time.Second),
		RecommendBreakerFailures: uint32(max(envInt("RECOMMEND_BREAKER_FAILURES", 5), 1)),
		RecommendBreakerTimeout:  envDur("RECOMMEND_BREAKER_TIMEOUT", 30*time.Second),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, errors.New("TOKEN_TTL_HOURS must be positive")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Config{}, fmt.Errorf("BCRYPT_COST out of range: %d", cfg.BcryptCost)
	}
	return cfg, nil
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}
