// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Config represents the application configuration
type Config struct {
	APIName                string `env:"YC_API_APP_NAME,optional"`
	APIVersion             string `env:"YC_API_APP_VERSION,optional"`
	ServerPort             string `env:"YC_API_SERVER_PORT,optional"`
	ServerLogLevel         string `env:"YC_API_SERVER_LOG_LEVEL,optional"`
	PostgresDsn            string `env:"YC_API_PG_DSN"`
	PostgresLogLevel       string `env:"YC_API_PG_LOG_LEVEL,optional"`
	RedisURL               string `env:"YC_API_REDIS_URL"`
	AdminSessionDays       string `env:"YC_API_ADMIN_SESSION_DAYS,optional"`
	AdminBootstrapEmail    string `env:"YC_API_ADMIN_BOOTSTRAP_EMAIL,optional"`
	AdminBootstrapPassword string `env:"YC_API_ADMIN_BOOTSTRAP_PASSWORD,optional"`
	AdminFids              string `env:"YC_API_ADMIN_FIDS,optional"`
	QuickAuthDomain        string `env:"YC_API_QUICKAUTH_DOMAIN,optional"`
}

var (
	SingleLine string = "--------------------------------------------------"
)

const (
	defaultSessionDays = 14
	maxSessionDays     = 90
)

var (
	instance *Config
	once     sync.Once
	err      error
)

// Get returns the application configuration
func Get() (*Config, error) {
	once.Do(func() {
		instance, err = loadConfig()
	})
	return instance, err
}

// loadConfig loads configuration from environment variables
func loadConfig() (*Config, error) {
	cfg := &Config{}
	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() error {
	t := reflect.TypeOf(*c)
	v := reflect.ValueOf(c).Elem()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			return fmt.Errorf("missing env tag for field %s", field.Name)
		}

		name, opts, _ := strings.Cut(envTag, ",")
		value := os.Getenv(name)
		if value == "" && opts != "optional" {
			return fmt.Errorf("env variable %s is required but not set", name)
		}

		v.Field(i).SetString(value)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.APIName == "" {
		c.APIName = "Yeshua-Christ API"
	}
	if c.APIVersion == "" {
		c.APIVersion = "v1"
	}
	if c.ServerPort == "" {
		c.ServerPort = "3008"
	}
	if c.ServerLogLevel == "" {
		c.ServerLogLevel = "info"
	}
	if c.PostgresLogLevel == "" {
		c.PostgresLogLevel = "warn"
	}
}

// SessionDays returns the admin session lifetime in days, defaulting to 14
// and clamped to 90.
func (c *Config) SessionDays() int {
	days, err := strconv.Atoi(strings.TrimSpace(c.AdminSessionDays))
	if err != nil || days <= 0 {
		return defaultSessionDays
	}
	if days > maxSessionDays {
		return maxSessionDays
	}
	return days
}

// AdminFidList parses the comma-separated admin fid allowlist.
func (c *Config) AdminFidList() []int64 {
	var fids []int64
	for _, part := range strings.Split(c.AdminFids, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fid, err := strconv.ParseInt(part, 10, 64)
		if err != nil || fid <= 0 {
			continue
		}
		fids = append(fids, fid)
	}
	return fids
}

// String returns the configuration as a string
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n--------------------------------------\n")
	sb.WriteString("Configuration:\n")
	sb.WriteString("--------------------------------------\n")

	t := reflect.TypeOf(*c)
	v := reflect.ValueOf(*c)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i).String()

		// Mask sensitive fields
		value = maskSensitiveField(field.Name, value)
		sb.WriteString(fmt.Sprintf("  %s:  %s\n", field.Name, value))
	}

	sb.WriteString("--------------------------------------\n")

	return sb.String()
}

func maskSensitiveField(fieldName, value string) string {
	sensitiveFields := []string{"token", "dsn", "secret", "password", "url"}

	fieldNameLower := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFields {
		if strings.Contains(fieldNameLower, sensitive) {
			return maskValue(value)
		}
	}

	return value
}

func maskValue(value string) string {
	if len(value) <= 3 {
		return strings.Repeat("*", 7)
	}
	return value[:3] + strings.Repeat("*", 7)
}
