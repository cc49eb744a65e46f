// Package phrases parses phrases command flags and composes the service
// entrypoint.
package phrases

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	entrypoint "github.com/louisbranch/signbridge/internal/platform/cmd"
	"github.com/louisbranch/signbridge/internal/platform/discovery"
	server "github.com/louisbranch/signbridge/internal/services/phrases/app"
)

// Config holds phrases command configuration. The listen default comes from
// the discovery conventions.
type Config struct {
	HTTPAddr string `env:"SIGNBRIDGE_PHRASES_HTTP_ADDR"`
	DBPath   string `env:"SIGNBRIDGE_PHRASES_DB_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		cfg.HTTPAddr = discovery.DefaultListenAddr(discovery.ServicePhrases)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "phrases.db")
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "phrases HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "phrase database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the phrases app and serves until the context ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePhrases, func(context.Context) error {
		if err := server.Run(ctx, server.Config{
			HTTPAddr: cfg.HTTPAddr,
			DBPath:   cfg.DBPath,
		}); err != nil {
			return fmt.Errorf("serve phrases: %w", err)
		}
		return nil
	})
}
