package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const DefaultFile = "pawfuel.yaml"

type Config struct {
	DBPath      string `yaml:"db_path" env:"PAWFUEL_DB_PATH" env-default:""`
	LogLevel    string `yaml:"log_level" env:"PAWFUEL_LOG_LEVEL" env-default:"warn"`
	Environment string `yaml:"environment" env:"PAWFUEL_ENV" env-default:"development"`

	Catalog CatalogConfig `yaml:"catalog"`
	Feeding FeedingConfig `yaml:"feeding"`
	Orders  OrdersConfig  `yaml:"orders"`

	// Seed fixes the shuffle seed for rotations and treats; 0 means random.
	Seed uint64 `yaml:"seed" env:"PAWFUEL_SEED" env-default:"0"`
}

type CatalogConfig struct {
	// Source is "embedded", a file path or an http(s) URL.
	Source  string        `yaml:"source" env:"PAWFUEL_CATALOG_SOURCE" env-default:"embedded"`
	Timeout time.Duration `yaml:"timeout" env:"PAWFUEL_CATALOG_TIMEOUT" env-default:"12s"`
}

type FeedingConfig struct {
	DefaultPercent float64 `yaml:"default_percent" env:"PAWFUEL_DEFAULT_FEEDING_PERCENT" env-default:"0.03"`
}

type OrdersConfig struct {
	Branch       string `yaml:"branch" env:"PAWFUEL_BRANCH" env-default:"lebanon"`
	PhoneLebanon string `yaml:"phone_lebanon" env:"PAWFUEL_PHONE_LEBANON" env-default:"96181678131"`
	PhoneCyprus  string `yaml:"phone_cyprus" env:"PAWFUEL_PHONE_CYPRUS" env-default:"35700000000"`
}

// Load reads .env (if present), then the YAML file at path (if present),
// then environment overrides. An empty path means DefaultFile.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultFile
	}

	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read config from environment: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}
	if c.Feeding.DefaultPercent <= 0 || c.Feeding.DefaultPercent > 0.1 {
		return fmt.Errorf("feeding.default_percent must be in (0, 0.1]")
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be > 0")
	}
	c.Orders.Branch = strings.ToLower(strings.TrimSpace(c.Orders.Branch))
	switch c.Orders.Branch {
	case "lebanon", "cyprus":
	default:
		return fmt.Errorf("orders.branch must be lebanon or cyprus")
	}
	return nil
}

// Phone returns the messaging number for a branch.
func (o OrdersConfig) Phone(branch string) string {
	if strings.EqualFold(branch, "cyprus") {
		return o.PhoneCyprus
	}
	return o.PhoneLebanon
}
