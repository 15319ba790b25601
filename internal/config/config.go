package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	VariantCatalog  = "catalog"
	VariantFreeform = "freeform"

	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	WorkoutsAPIURL string        `env:"WORKOUTS_API_URL" envDefault:"http://localhost:5050/api/workouts"`
	SubmitRetries  int           `env:"SUBMIT_RETRIES" envDefault:"0"`
	SubmitTimeout  time.Duration `env:"SUBMIT_TIMEOUT" envDefault:"10s"`

	FormVariant string `env:"FORM_VARIANT" envDefault:"catalog"`

	DraftStore   string        `env:"DRAFT_STORE" envDefault:"memory"`
	DraftTTL     time.Duration `env:"DRAFT_TTL" envDefault:"24h"`
	DraftCacheMB int           `env:"DRAFT_CACHE_MB" envDefault:"16"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	Debug       bool   `env:"DEBUG" envDefault:"false"`
	LogFile     string `env:"LOG_FILE"`
	Addr        string `env:"ADDR" envDefault:":8080"`
	OpenBrowser bool   `env:"OPEN_BROWSER" envDefault:"false"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values env.Parse accepts but the service cannot run with.
func (c *Config) Validate() error {
	switch c.FormVariant {
	case VariantCatalog, VariantFreeform:
	default:
		return fmt.Errorf("FORM_VARIANT: unknown variant %q", c.FormVariant)
	}
	switch c.DraftStore {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("DRAFT_STORE: unknown store %q", c.DraftStore)
	}
	if c.WorkoutsAPIURL == "" {
		return fmt.Errorf("WORKOUTS_API_URL is empty")
	}
	if c.SubmitRetries < 0 {
		return fmt.Errorf("SUBMIT_RETRIES must not be negative")
	}
	if c.DraftCacheMB <= 0 {
		return fmt.Errorf("DRAFT_CACHE_MB must be positive")
	}
	return nil
}
