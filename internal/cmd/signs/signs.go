// Package signs parses signs command flags and composes the service
// entrypoint.
package signs

import (
	"context"
	"flag"
	"fmt"
	"strings"

	entrypoint "github.com/louisbranch/signbridge/internal/platform/cmd"
	"github.com/louisbranch/signbridge/internal/platform/discovery"
	server "github.com/louisbranch/signbridge/internal/services/signs/app"
)

// Config holds signs command configuration. The listen default comes from
// the discovery conventions.
type Config struct {
	HTTPAddr string `env:"SIGNBRIDGE_SIGNS_HTTP_ADDR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		cfg.HTTPAddr = discovery.DefaultListenAddr(discovery.ServiceSigns)
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "signs HTTP listen address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the signs app and serves until the context ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSigns, func(context.Context) error {
		if err := server.Run(ctx, server.Config{HTTPAddr: cfg.HTTPAddr}); err != nil {
			return fmt.Errorf("serve signs: %w", err)
		}
		return nil
	})
}
