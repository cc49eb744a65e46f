package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"SIGNBRIDGE_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("SIGNBRIDGE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDotEnvReadsOptionalFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("SIGNBRIDGE_DOTENV_PROBE=from-file\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)
	t.Cleanup(func() { _ = os.Unsetenv("SIGNBRIDGE_DOTENV_PROBE") })

	LoadDotEnv()

	if got := os.Getenv("SIGNBRIDGE_DOTENV_PROBE"); got != "from-file" {
		t.Fatalf("SIGNBRIDGE_DOTENV_PROBE = %q, want %q", got, "from-file")
	}
}

func TestLoadDotEnvMissingFileIsNotFatal(t *testing.T) {
	t.Chdir(t.TempDir())

	LoadDotEnv()
}
