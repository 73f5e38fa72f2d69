package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config holds everything the frontend reads from the environment.
type Config struct {
	Server   ServerConfig
	GuideAPI GuideAPIConfig
	Logging  LoggingConfig
	Session  SessionConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// GuideAPIConfig points at the external guide generation service.
type GuideAPIConfig struct {
	BaseURL string
}

type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

type SessionConfig struct {
	Backend       string
	TTL           time.Duration
	SweepInterval time.Duration
	CookieName    string
	SecureCookie  bool
}

type RedisConfig struct {
	Address   string
	Password  string
	DB        int
	KeyPrefix string
}

// environment is the flat variable set read by envconfig.
type environment struct {
	Port            string        `envconfig:"PORT" default:"3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	GuideAPIURL string `envconfig:"GUIDE_API_URL" default:"http://localhost:8000"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	SessionBackend       string        `envconfig:"SESSION_BACKEND" default:"memory"`
	SessionTTLMinutes    int           `envconfig:"SESSION_TTL_MINUTES" default:"120"`
	SessionSweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1m"`
	SessionCookieName    string        `envconfig:"SESSION_COOKIE_NAME" default:"travelguide_session"`
	SessionCookieSecure  bool          `envconfig:"SESSION_COOKIE_SECURE" default:"false"`

	RedisAddr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"travelguide:session:"`
}

// Load reads an optional .env file and then the process environment.
// Malformed values are rejected.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var env environment
	if err := envconfig.Process("", &env); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            env.Port,
			ShutdownTimeout: env.ShutdownTimeout,
		},
		GuideAPI: GuideAPIConfig{
			BaseURL: strings.TrimRight(env.GuideAPIURL, "/"),
		},
		Logging: LoggingConfig{
			Level:  env.LogLevel,
			Format: env.LogFormat,
		},
		Session: SessionConfig{
			Backend:       strings.ToLower(env.SessionBackend),
			TTL:           time.Duration(env.SessionTTLMinutes) * time.Minute,
			SweepInterval: env.SessionSweepInterval,
			CookieName:    env.SessionCookieName,
			SecureCookie:  env.SessionCookieSecure,
		},
		Redis: RedisConfig{
			Address:   env.RedisAddr,
			Password:  env.RedisPassword,
			DB:        env.RedisDB,
			KeyPrefix: env.RedisKeyPrefix,
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.GuideAPI.BaseURL == "" {
		return fmt.Errorf("GUIDE_API_URL must not be empty")
	}
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("unsupported session backend: %s. Use '%s' or '%s'",
			c.Session.Backend, SessionBackendMemory, SessionBackendRedis)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	return nil
}
