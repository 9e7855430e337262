package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yukikurage/task-tracker-api/internal/constants"
)

type Config struct {
	Port        int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	DBDriver    string        `mapstructure:"db_driver" validate:"required,oneof=postgres mysql sqlite"`
	DatabaseURL string        `mapstructure:"database_url" validate:"required"`
	DBLogLevel  string        `mapstructure:"db_log_level" validate:"required,oneof=silent error warn info"`
	JWTSecret   string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	LogLevel    string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	GinMode     string        `mapstructure:"gin_mode" validate:"required,oneof=debug release test"`
}

var defaults = map[string]any{
	"port":         constants.DefaultPort,
	"db_driver":    "postgres",
	"database_url": "",
	"db_log_level": "warn",
	"jwt_secret":   "",
	"token_ttl":    "0s",
	"log_level":    "info",
	"gin_mode":     "release",
}

// Load reads configuration from the environment. Values in a .env file in
// the working directory are applied first but never override variables that
// are already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.DBLogLevel = strings.ToLower(cfg.DBLogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags and the constraints tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("invalid configuration: token_ttl must not be negative")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
