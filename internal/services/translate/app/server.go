// Package server hosts the translation HTTP surface.
//
// The service wires the resolver over the upstream catalog client and the
// local fallback mirror; the handler layer only maps the resolver's error
// taxonomy onto status codes.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/louisbranch/signbridge/internal/platform/branding"
	"github.com/louisbranch/signbridge/internal/platform/httpjson"
	"github.com/louisbranch/signbridge/internal/platform/timeouts"
	"github.com/louisbranch/signbridge/internal/services/translate/catalog"
	"github.com/louisbranch/signbridge/internal/services/translate/domain"
	"github.com/louisbranch/signbridge/internal/services/translate/fallback"
)

const serviceName = "signbridge-translate"

// Config defines the inputs for the translate service HTTP boundary.
type Config struct {
	HTTPAddr          string
	PhrasesBaseURL    string
	SignsBaseURL      string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server hosts the translate HTTP process.
type Server struct {
	httpAddr        string
	shutdownTimeout time.Duration
	httpServer      *http.Server
}

type metaView struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

type healthView struct {
	OK         bool `json:"ok"`
	PhrasesAPI bool `json:"phrases_api"`
	SignsAPI   bool `json:"signs_api"`
}

type translateRequest struct {
	Text string `json:"text"`
}

type translationView struct {
	NormalizedText string             `json:"normalized_text"`
	Actions        []domain.Action    `json:"actions"`
	Source         string             `json:"source"`
	Warnings       []string           `json:"warnings"`
	TimedPlan      []domain.TimedStep `json:"timed_plan"`
	TotalMillis    int                `json:"total_duration_ms"`
}

func translationViewFrom(result domain.TranslationResult) translationView {
	plan := domain.TimedPlan(result.Actions)
	return translationView{
		NormalizedText: result.NormalizedText,
		Actions:        result.Actions,
		Source:         result.Source,
		Warnings:       result.Warnings,
		TimedPlan:      plan,
		TotalMillis:    domain.PlanDuration(plan),
	}
}

// health reports upstream reachability for the health endpoint.
type health interface {
	PhrasesAvailable(ctx context.Context) bool
	SignsAvailable(ctx context.Context) bool
}

func newHandler(resolver *domain.Resolver, upstreams health) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleMeta)
	mux.HandleFunc("GET /health", handleHealth(upstreams))
	mux.HandleFunc("GET /translate", handleTranslateGet(resolver))
	mux.HandleFunc("POST /translate", handleTranslatePost(resolver))
	mux.HandleFunc("/translate", httpjson.MethodNotAllowedHandler(http.MethodGet, http.MethodPost))
	return httpjson.Chain(mux, httpjson.RecoverPanic())
}

func handleMeta(w http.ResponseWriter, _ *http.Request) {
	httpjson.Write(w, http.StatusOK, metaView{Service: serviceName, Version: branding.Version})
}

func handleHealth(upstreams health) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := healthView{OK: true}
		if upstreams != nil {
			view.PhrasesAPI = upstreams.PhrasesAvailable(r.Context())
			view.SignsAPI = upstreams.SignsAvailable(r.Context())
		}
		httpjson.Write(w, http.StatusOK, view)
	}
}

func handleTranslateGet(resolver *domain.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		translate(w, r, resolver, r.URL.Query().Get("text"))
	}
}

func handleTranslatePost(resolver *domain.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req translateRequest
		if err := httpjson.Decode(w, r, &req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with a text field")
			return
		}
		translate(w, r, resolver, req.Text)
	}
}

func translate(w http.ResponseWriter, r *http.Request, resolver *domain.Resolver, text string) {
	result, err := resolver.Resolve(r.Context(), text)
	switch {
	case err == nil:
		httpjson.Write(w, http.StatusOK, translationViewFrom(result))
	case errors.Is(err, domain.ErrInvalidInput):
		httpjson.WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "text is required")
	case errors.Is(err, domain.ErrNoTranslation):
		httpjson.WriteError(w, http.StatusUnprocessableEntity, "NO_TRANSLATION", "no phrase matched and no letter could be resolved")
	default:
		log.Printf("translate: %v", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "INTERNAL", "could not translate text")
	}
}

// NewServer builds a configured translate server over the upstream catalogs.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	phrasesBaseURL := strings.TrimSpace(config.PhrasesBaseURL)
	if phrasesBaseURL == "" {
		return nil, errors.New("phrases base URL is required")
	}
	signsBaseURL := strings.TrimSpace(config.SignsBaseURL)
	if signsBaseURL == "" {
		return nil, errors.New("signs base URL is required")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}

	client := catalog.NewClient(phrasesBaseURL, signsBaseURL)
	resolver := domain.NewResolver(client, client, fallback.NewStore())

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           otelhttp.NewHandler(newHandler(resolver, client), serviceName),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	return &Server{
		httpAddr:        httpAddr,
		shutdownTimeout: config.ShutdownTimeout,
		httpServer:      httpServer,
	}, nil
}

// Run creates and serves a translate server until the context ends.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(config)
	if err != nil {
		return fmt.Errorf("init translate server: %w", err)
	}
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve translate: %w", err)
	}
	return nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("translate server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("translate server listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
