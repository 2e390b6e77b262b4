package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ecommerce/internal/auth"
	"ecommerce/internal/database"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config groups the application settings read from the environment.
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	RabbitMQ RabbitMQConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env      string // development, staging, production
	Port     string
	LogLevel string
}

// DBConfig selects the store.
type DBConfig struct {
	Driver string // postgres or sqlite
	DSN    string
}

// JWTConfig holds token and password hashing settings.
type JWTConfig struct {
	Secret     string // base64
	Expiration int    // minutes
	Issuer     string
	BcryptCost int
}

// RabbitMQConfig holds the broker URL; empty disables catalog events.
type RabbitMQConfig struct {
	URL string
}

// Load reads an optional .env file and then the environment. Environment
// variables win over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Driver: strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetInt("JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("RABBITMQ_URL"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", database.DriverPostgres)
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "ecommerce-api")
	v.SetDefault("BCRYPT_COST", 0)
	v.SetDefault("RABBITMQ_URL", "")
}

// Validate rejects settings the process cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case database.DriverPostgres, database.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if strings.TrimSpace(c.DB.DSN) == "" {
		return errors.New("DATABASE_DSN is required")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_MINUTES must be positive, got %d", c.JWT.Expiration)
	}
	if _, err := auth.DecodeSecret(c.JWT.Secret); err != nil {
		return fmt.Errorf("invalid JWT_SECRET: %w", err)
	}
	return nil
}

// Auth builds the credential settings handed to the user repository.
func (c *Config) Auth() (auth.Config, error) {
	return auth.NewConfig(
		c.JWT.Secret,
		time.Duration(c.JWT.Expiration)*time.Minute,
		c.JWT.Issuer,
		c.JWT.BcryptCost,
	)
}

// Database returns the store settings.
func (c *Config) Database() database.Config {
	return database.Config{
		Driver:     c.DB.Driver,
		DSN:        c.DB.DSN,
		LogQueries: c.App.Env == "development" && c.App.LogLevel == "debug",
	}
}
