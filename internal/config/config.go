package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type Config struct {
	HTTPAddr    string    `yaml:"http_addr"`
	AppEnv      string    `yaml:"app_env"`
	StoreDriver string    `yaml:"store_driver"`
	SQLitePath  string    `yaml:"sqlite_path"`
	DatabaseURL string    `yaml:"database_url"`
	RateLimit   RateLimit `yaml:"rate_limit"`
}

func Defaults() *Config {
	return &Config{
		HTTPAddr:    ":8080",
		AppEnv:      "development",
		StoreDriver: DriverSQLite,
		SQLitePath:  "hidro.db",
		RateLimit:   RateLimit{RPS: 5, Burst: 10},
	}
}

// LoadDotEnv loads .env into the process environment. A missing file is fine.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load builds the configuration: defaults, then the YAML file named by
// HIDRO_CONFIG if set, then individual environment variables.
func Load(getenv func(string) string) (*Config, error) {
	cfg := Defaults()

	if path := strings.TrimSpace(getenv("HIDRO_CONFIG")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	setString(&cfg.HTTPAddr, getenv("HTTP_ADDR"))
	setString(&cfg.AppEnv, getenv("APP_ENV"))
	setString(&cfg.StoreDriver, getenv("STORE_DRIVER"))
	setString(&cfg.SQLitePath, getenv("SQLITE_PATH"))
	setString(&cfg.DatabaseURL, getenv("DATABASE_URL"))

	if v := strings.TrimSpace(getenv("RATE_LIMIT_RPS")); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimit.RPS = rps
	}
	if v := strings.TrimSpace(getenv("RATE_LIMIT_BURST")); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimit.Burst = burst
	}

	cfg.StoreDriver = strings.ToLower(cfg.StoreDriver)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.HTTPAddr == "" {
		return errors.New("http address is empty")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v/%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	return nil
}
