package config

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"staybooking/pkg/database"
	"staybooking/pkg/models"
)

const defaultSigningKey = "c3RheWJvb2tpbmctZGV2ZWxvcG1lbnQta2V5LWNoYW5nZS1tZQ=="

type ClientConfig struct {
	APIBaseURL      string
	DataPath        string
	Timeout         time.Duration
	Language        models.Language
	Offline         bool
	BreakerFailures int
	BreakerTimeout  time.Duration
}

type BackendConfig struct {
	Addr           string
	Driver         string
	SQLitePath     string
	Postgres       database.PostgresConfig
	SigningKey     []byte
	AllowedOrigins []string
	Seed           bool
}

// LoadDotEnv reads a .env file from the working directory when one exists.
func LoadDotEnv(logger *log.Logger) {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		logger.Printf("Warning: could not load .env file: %v", err)
	}
}

func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{
		APIBaseURL:      getEnv("STAYBOOKING_API", "http://localhost:8080"),
		DataPath:        getEnv("STAYBOOKING_DATA", defaultDataPath()),
		Timeout:         getDuration("STAYBOOKING_TIMEOUT", 10*time.Second),
		Language:        models.ParseLanguage(getEnv("STAYBOOKING_LANG", "en")),
		Offline:         getBool("STAYBOOKING_OFFLINE", false),
		BreakerFailures: getInt("STAYBOOKING_BREAKER_FAILURES", 5),
		BreakerTimeout:  getDuration("STAYBOOKING_BREAKER_TIMEOUT", 30*time.Second),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ClientConfig) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url cannot be empty")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base url %q", c.APIBaseURL)
	}
	if c.DataPath == "" {
		return fmt.Errorf("data path cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.BreakerFailures < 1 {
		return fmt.Errorf("breaker failures must be at least 1")
	}
	return nil
}

func LoadBackend() (*BackendConfig, error) {
	key, err := base64.StdEncoding.DecodeString(getEnv("SIGNING_KEY", defaultSigningKey))
	if err != nil {
		return nil, fmt.Errorf("decode signing secret: %w", err)
	}

	cfg := &BackendConfig{
		Addr:       getEnv("SERVER_ADDR", ":8080"),
		Driver:     getEnv("DB_DRIVER", "sqlite"),
		SQLitePath: getEnv("DB_PATH", "staybooking-backend.db"),
		Postgres: database.PostgresConfig{
			Host:     getEnv("DB_HOST", "postgres"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "program"),
			Password: getEnv("DB_PASSWORD", "test"),
			Name:     getEnv("DB_NAME", "staybooking"),
		},
		SigningKey:     key,
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		Seed:           getBool("DB_SEED", true),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *BackendConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	switch c.Driver {
	case "postgres":
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite path cannot be empty")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Driver)
	}
	if len(c.SigningKey) == 0 {
		return fmt.Errorf("signing secret cannot be empty")
	}
	return nil
}

func defaultDataPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "staybooking.db"
	}
	return filepath.Join(dir, "staybooking", "staybooking.db")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
