package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. GOBEARING_ADDR
const EnvPrefix = "GOBEARING"

// Server holds the settings of the HTTP service
type Server struct {
	Addr            string        `mapstructure:"addr"`
	LogLevel        string        `mapstructure:"log_level"`
	RateLimit       float64       `mapstructure:"rate"`  // requests per second per client
	RateBurst       int           `mapstructure:"burst"` // bucket size per client
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Defaults used when neither a flag, the environment nor .env set a value
var Defaults = Server{
	Addr:            ":8080",
	LogLevel:        "info",
	RateLimit:       5,
	RateBurst:       10,
	ShutdownTimeout: 5 * time.Second,
}

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// Load resolves the server settings. Precedence is explicitly set flags,
// then GOBEARING_* environment variables, then Defaults. Flags may be nil.
func Load(flags *pflag.FlagSet) (Server, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("addr", Defaults.Addr)
	v.SetDefault("log_level", Defaults.LogLevel)
	v.SetDefault("rate", Defaults.RateLimit)
	v.SetDefault("burst", Defaults.RateBurst)
	v.SetDefault("shutdown_timeout", Defaults.ShutdownTimeout)

	if flags != nil {
		for key, name := range map[string]string{
			"addr":             "addr",
			"log_level":        "log-level",
			"rate":             "rate",
			"burst":            "burst",
			"shutdown_timeout": "shutdown-timeout",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Server{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := Server{
		Addr:            v.GetString("addr"),
		LogLevel:        v.GetString("log_level"),
		RateLimit:       v.GetFloat64("rate"),
		RateBurst:       v.GetInt("burst"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with
func (s Server) Validate() error {
	if s.Addr == "" {
		return errors.New("config: addr must not be empty")
	}
	if s.RateLimit <= 0 {
		return fmt.Errorf("config: rate must be positive, got %v", s.RateLimit)
	}
	if s.RateBurst <= 0 {
		return fmt.Errorf("config: burst must be positive, got %d", s.RateBurst)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: shutdown timeout must be positive, got %s", s.ShutdownTimeout)
	}
	return nil
}
