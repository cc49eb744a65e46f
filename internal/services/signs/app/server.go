// Package server hosts the letter catalog HTTP surface.
//
// The service is a read-only data shape transformer over the embedded
// fingerspelling catalog; it owns no state beyond the catalog loaded at
// process start.
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

	"github.com/louisbranch/signbridge/internal/gesture"
	"github.com/louisbranch/signbridge/internal/platform/branding"
	"github.com/louisbranch/signbridge/internal/platform/httpjson"
	"github.com/louisbranch/signbridge/internal/platform/timeouts"
	"github.com/louisbranch/signbridge/internal/services/signs/catalog"
)

const serviceName = "signbridge-signs"

// Config defines the inputs for the signs service HTTP boundary.
type Config struct {
	HTTPAddr          string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server hosts the signs HTTP process.
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
	OK bool `json:"ok"`
}

type signView struct {
	Letter      string         `json:"letter"`
	Handshape   string         `json:"handshape"`
	Orientation string         `json:"orientation"`
	Location    string         `json:"location"`
	Motion      string         `json:"motion"`
	HoldMillis  int            `json:"hold_duration_ms"`
	Steps       []gesture.Step `json:"steps"`
	Notes       string         `json:"notes,omitempty"`
}

func signViewFrom(entry gesture.Letter) signView {
	// The flat pose mirrors the step that distinguishes the letter,
	// which is the trace step for J and Z.
	pose := entry.Steps[len(entry.Steps)-1]
	return signView{
		Letter:      entry.Letter,
		Handshape:   pose.Handshape,
		Orientation: pose.Orientation,
		Location:    pose.Location,
		Motion:      pose.Motion,
		HoldMillis:  pose.HoldMillis,
		Steps:       gesture.CloneSteps(entry.Steps),
		Notes:       entry.Notes,
	}
}

// NewHandler creates signs routes backed by the embedded catalog.
func NewHandler() http.Handler {
	return newHandler(catalog.Default())
}

func newHandler(cat *catalog.Catalog) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleMeta)
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /signs", handleListSigns(cat))
	mux.HandleFunc("GET /signs/{letter}", handleGetSign(cat))
	mux.HandleFunc("GET /signs/{letter}/pose", handleGetSignPose(cat))
	mux.HandleFunc("/signs", httpjson.MethodNotAllowedHandler(http.MethodGet))
	mux.HandleFunc("/signs/{letter}", httpjson.MethodNotAllowedHandler(http.MethodGet))
	mux.HandleFunc("/signs/{letter}/pose", httpjson.MethodNotAllowedHandler(http.MethodGet))
	return httpjson.Chain(mux, httpjson.RecoverPanic())
}

func handleMeta(w http.ResponseWriter, _ *http.Request) {
	httpjson.Write(w, http.StatusOK, metaView{Service: serviceName, Version: branding.Version})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httpjson.Write(w, http.StatusOK, healthView{OK: true})
}

func handleListSigns(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := cat.Search(r.URL.Query().Get("q"))
		views := make([]signView, 0, len(entries))
		for _, entry := range entries {
			views = append(views, signViewFrom(entry))
		}
		httpjson.Write(w, http.StatusOK, views)
	}
}

func handleGetSign(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		letter := strings.TrimSpace(r.PathValue("letter"))
		entry, ok := cat.Lookup(letter)
		if !ok {
			httpjson.WriteError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("sign %q not found", letter))
			return
		}
		httpjson.Write(w, http.StatusOK, signViewFrom(entry))
	}
}

func handleGetSignPose(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		letter := strings.TrimSpace(r.PathValue("letter"))
		entry, ok := cat.Lookup(letter)
		if !ok {
			httpjson.WriteError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("sign %q not found", letter))
			return
		}
		httpjson.Write(w, http.StatusOK, gesture.CloneSteps(entry.Steps))
	}
}

// NewServer builds a configured signs server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           otelhttp.NewHandler(NewHandler(), serviceName),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	return &Server{
		httpAddr:        httpAddr,
		shutdownTimeout: config.ShutdownTimeout,
		httpServer:      httpServer,
	}, nil
}

// Run creates and serves a signs server until the context ends.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(config)
	if err != nil {
		return fmt.Errorf("init signs server: %w", err)
	}

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve signs: %w", err)
	}
	return nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("signs server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("signs server listening on %s", s.httpAddr)
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
