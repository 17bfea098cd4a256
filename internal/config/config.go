package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

const (
	NumberingCount   = "count"
	NumberingCounter = "counter"

	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

// Config holds runtime configuration read from environment variables.
type Config struct {
	Port     int    `mapstructure:"PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	Timezone string `mapstructure:"APP_TIMEZONE"`

	StoreDriver      string `mapstructure:"STORE_DRIVER"`
	AWSRegion        string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID   string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey     string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	DynamoDBEndpoint string `mapstructure:"DYNAMODB_ENDPOINT"`

	QuotesTable      string `mapstructure:"QUOTES_TABLE"`
	SellersTable     string `mapstructure:"SELLERS_TABLE"`
	ProfilesTable    string `mapstructure:"PROFILES_TABLE"`
	CredentialsTable string `mapstructure:"CREDENTIALS_TABLE"`
	CountersTable    string `mapstructure:"QUOTE_COUNTERS_TABLE"`

	QuoteNumbering string `mapstructure:"QUOTE_NUMBERING"`

	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	SessionTTL      time.Duration `mapstructure:"SESSION_TTL"`
	ProfileCacheTTL time.Duration `mapstructure:"PROFILE_CACHE_TTL"`
	RedisURL        string        `mapstructure:"REDIS_URL"`

	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`

	// Bootstrap user for STORE_DRIVER=memory. Ignored by the document store,
	// which is seeded with cmd/seeduser.
	SeedEmail    string `mapstructure:"SEED_EMAIL"`
	SeedPassword string `mapstructure:"SEED_PASSWORD"`
	SeedName     string `mapstructure:"SEED_NAME"`
	SeedRole     string `mapstructure:"SEED_ROLE"`
	SeedSellerID string `mapstructure:"SEED_SELLER_ID"`
}

// Load reads configuration from the environment. A .env file is expected to
// be loaded beforehand by godotenv.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStore reads the same configuration but only checks the settings the
// operational commands need. JWT_SECRET may be empty.
func LoadStore() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.validateStore(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_TIMEZONE", "America/Argentina/Buenos_Aires")
	v.SetDefault("STORE_DRIVER", StoreDynamoDB)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "local")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "local")
	v.SetDefault("DYNAMODB_ENDPOINT", "")
	v.SetDefault("QUOTES_TABLE", "presupuestos")
	v.SetDefault("SELLERS_TABLE", "vendedores")
	v.SetDefault("PROFILES_TABLE", "usuarios")
	v.SetDefault("CREDENTIALS_TABLE", "credenciales")
	v.SetDefault("QUOTE_COUNTERS_TABLE", "contadores_presupuestos")
	v.SetDefault("QUOTE_NUMBERING", NumberingCounter)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_TTL", 8*time.Hour)
	v.SetDefault("PROFILE_CACHE_TTL", 5*time.Minute)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("SEED_EMAIL", "")
	v.SetDefault("SEED_PASSWORD", "")
	v.SetDefault("SEED_NAME", "Admin Demo")
	v.SetDefault("SEED_ROLE", "administrator")
	v.SetDefault("SEED_SELLER_ID", "")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := c.validateStore(); err != nil {
		return err
	}
	c.QuoteNumbering = strings.ToLower(strings.TrimSpace(c.QuoteNumbering))
	if c.QuoteNumbering != NumberingCount && c.QuoteNumbering != NumberingCounter {
		return fmt.Errorf("QUOTE_NUMBERING must be %q or %q, got %q", NumberingCount, NumberingCounter, c.QuoteNumbering)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	if strings.TrimSpace(c.SeedEmail) != "" && c.SeedPassword == "" {
		return fmt.Errorf("SEED_PASSWORD is required when SEED_EMAIL is set")
	}
	return nil
}

func (c *Config) validateStore() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	if c.StoreDriver != StoreDynamoDB && c.StoreDriver != StoreMemory {
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDynamoDB, StoreMemory, c.StoreDriver)
	}
	return nil
}

// Location returns the business time zone used for day boundaries.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
