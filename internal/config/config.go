package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultSessionSecret = "change-me-replace-in-prod"

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level
	LogFile     string

	Database DatabaseConfig
	RedisURL string
	Session  SessionConfig
	Events   EventsConfig

	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	Params          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectRetries  int
	AutoMigrate     bool
}

type SessionConfig struct {
	Secret       string
	CookieName   string
	TTL          time.Duration
	CookieSecure bool
}

type EventsConfig struct {
	KafkaBrokers []string
	TopicPrefix  string
}

// LoadConfig reads configuration from the environment. Values from a .env
// file in the working directory are used only when the variable is unset;
// a variable set to the empty string keeps its empty value.
func LoadConfig() (*Config, error) {
	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			if _, ok := os.LookupEnv(k); !ok {
				os.Setenv(k, v)
			}
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: strings.ToLower(getEnv("ENVIRONMENT", "development")),
		LogFile:     getEnv("LOG_FILE", ""),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "mysql")),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", ""),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnvAllowEmpty("DB_PASSWORD", "root"),
			Name:            getEnv("DB_NAME", "finwise"),
			Params:          getEnv("DB_PARAMS", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 3600)) * time.Second,
			ConnectRetries:  getEnvInt("DB_CONNECT_RETRIES", 5),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", false),
		},
		RedisURL: getEnv("REDIS_URL", ""),
		Session: SessionConfig{
			Secret:       getEnv("SESSION_SECRET", DefaultSessionSecret),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "finwise_session"),
			CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
		},
		Events: EventsConfig{
			KafkaBrokers: getEnvList("KAFKA_BROKERS"),
			TopicPrefix:  getEnv("EVENTS_TOPIC_PREFIX", "finwise."),
		},
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.Session.TTL = ttl

	if cfg.Database.Port == "" {
		cfg.Database.Port = defaultPort(cfg.Database.Driver)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at startup.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want mysql or postgres)", c.Database.Driver)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDefaultSecret reports whether cookies are signed with the built-in key.
func (c *Config) UsesDefaultSecret() bool {
	return c.Session.Secret == DefaultSessionSecret
}

func defaultPort(driver string) string {
	if driver == "postgres" {
		return "5432"
	}
	return "3306"
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAllowEmpty is getEnv for values where empty is meaningful, such as
// a passwordless database user.
func getEnvAllowEmpty(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil || intValue < 0 {
		slog.Warn("Ignoring invalid integer environment variable", "key", key, "value", value)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("Ignoring invalid boolean environment variable", "key", key, "value", value)
		return defaultValue
	}
	return b
}

func getEnvList(key string) []string {
	value := getEnv(key, "")
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
