package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Defaults {
		t.Fatalf("expected %+v, got %+v", Defaults, cfg)
	}
}

func TestLoadEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("GOBEARING_ADDR", ":9090")
	t.Setenv("GOBEARING_RATE", "2.5")
	t.Setenv("GOBEARING_SHUTDOWN_TIMEOUT", "10s")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %q", cfg.Addr)
	}
	if cfg.RateLimit != 2.5 {
		t.Fatalf("expected rate 2.5, got %v", cfg.RateLimit)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected 10s, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("GOBEARING_ADDR", ":9090")

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("addr", Defaults.Addr, "")
	flags.Int("burst", Defaults.RateBurst, "")
	if err := flags.Parse([]string{"--addr", ":7070", "--burst", "3"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("expected addr :7070, got %q", cfg.Addr)
	}
	if cfg.RateBurst != 3 {
		t.Fatalf("expected burst 3, got %d", cfg.RateBurst)
	}
}

func TestLoadRejectsInvalidRate(t *testing.T) {
	t.Setenv("GOBEARING_RATE", "0")

	if _, err := Load(nil); err == nil {
		t.Fatal("expected error for zero rate")
	}
}

func TestLoadDotEnvMissingFileIsNotAnError(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("GOBEARING_LOG_LEVEL=debug\nGOBEARING_BURST=42\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("GOBEARING_LOG_LEVEL", "warn")
	t.Setenv("GOBEARING_BURST", "")
	os.Unsetenv("GOBEARING_BURST")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	defer os.Unsetenv("GOBEARING_BURST")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected existing env to win, got %q", cfg.LogLevel)
	}
	if cfg.RateBurst != 42 {
		t.Fatalf("expected burst 42 from .env, got %d", cfg.RateBurst)
	}
}
