// Package translate parses translate command flags and composes the service
// entrypoint.
package translate

import (
	"context"
	"flag"
	"fmt"
	"strings"

	entrypoint "github.com/louisbranch/signbridge/internal/platform/cmd"
	"github.com/louisbranch/signbridge/internal/platform/discovery"
	server "github.com/louisbranch/signbridge/internal/services/translate/app"
)

// Config holds translate command configuration. Defaults come from the
// discovery conventions so the cmd layer cannot drift from the topology
// catalog.
type Config struct {
	HTTPAddr       string `env:"SIGNBRIDGE_TRANSLATE_HTTP_ADDR"`
	PhrasesBaseURL string `env:"SIGNBRIDGE_PHRASES_BASE_URL"`
	SignsBaseURL   string `env:"SIGNBRIDGE_SIGNS_BASE_URL"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		cfg.HTTPAddr = discovery.DefaultListenAddr(discovery.ServiceTranslate)
	}
	cfg.PhrasesBaseURL = discovery.OrDefaultHTTPBaseURL(cfg.PhrasesBaseURL, discovery.ServicePhrases)
	cfg.SignsBaseURL = discovery.OrDefaultHTTPBaseURL(cfg.SignsBaseURL, discovery.ServiceSigns)

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "translate HTTP listen address")
	fs.StringVar(&cfg.PhrasesBaseURL, "phrases-base-url", cfg.PhrasesBaseURL, "phrase catalog base URL")
	fs.StringVar(&cfg.SignsBaseURL, "signs-base-url", cfg.SignsBaseURL, "letter catalog base URL")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the translate app and serves until the context ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTranslate, func(context.Context) error {
		if err := server.Run(ctx, server.Config{
			HTTPAddr:       cfg.HTTPAddr,
			PhrasesBaseURL: cfg.PhrasesBaseURL,
			SignsBaseURL:   cfg.SignsBaseURL,
		}); err != nil {
			return fmt.Errorf("serve translate: %w", err)
		}
		return nil
	})
}
