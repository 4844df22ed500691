package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Config is loaded from the environment. A .env file, if present, is
// read by the cmd entry point before Load runs.
type Config struct {
	// Store backend: "memory" or "postgres".
	StoreBackend string
	PostgresDSN  string

	// Local preference store.
	PrefsDBPath string

	// Currency broadcast. Empty AMQPURL disables the bridge and keeps
	// currency events in-process only.
	AMQPURL      string
	AMQPExchange string

	// Audit sink: "memory" or "sheets".
	AuditSink string

	LogLevel slog.Level
}

func Load() *Config {
	return &Config{
		StoreBackend: getEnv("STORE_BACKEND", "memory"),
		PostgresDSN:  getEnv("POSTGRES_DSN", ""),
		PrefsDBPath:  getEnv("PREFS_DB_PATH", "./data/prefs.db"),
		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finbook.currency"),
		AuditSink:    getEnv("AUDIT_SINK", "memory"),
		LogLevel:     getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	switch c.StoreBackend {
	case "memory":
	case "postgres":
		if c.PostgresDSN == "" {
			errors = append(errors, "POSTGRES_DSN is required when using the postgres backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of [memory postgres]", c.StoreBackend))
	}

	if c.PrefsDBPath == "" {
		errors = append(errors, "preference database path cannot be empty")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	switch c.AuditSink {
	case "memory", "sheets":
	default:
		errors = append(errors, fmt.Sprintf("invalid audit sink '%s': must be one of [memory sheets]", c.AuditSink))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}
