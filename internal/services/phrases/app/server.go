// Package server hosts the phrase catalog HTTP surface.
//
// The service layers catalog reads over a SQLite store that is seeded with
// the builtin phrase set on first start; imported phrase packs extend it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/louisbranch/signbridge/internal/gesture"
	"github.com/louisbranch/signbridge/internal/platform/branding"
	"github.com/louisbranch/signbridge/internal/platform/httpjson"
	"github.com/louisbranch/signbridge/internal/platform/timeouts"
	"github.com/louisbranch/signbridge/internal/services/phrases/catalog"
	phrasesqlite "github.com/louisbranch/signbridge/internal/services/phrases/storage/sqlite"
)

const serviceName = "signbridge-phrases"

// Config defines the inputs for the phrases service HTTP boundary.
type Config struct {
	HTTPAddr          string
	DBPath            string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server hosts the phrases HTTP process and its storage lifecycle.
type Server struct {
	httpAddr        string
	shutdownTimeout time.Duration
	httpServer      *http.Server
	store           *phrasesqlite.Store
	library         *catalog.Library
}

type metaView struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

type healthView struct {
	OK bool `json:"ok"`
}

func newHandler(library *catalog.Library) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleMeta)
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /phrases", handleListPhrases(library))
	mux.HandleFunc("GET /phrases/{key}", handleGetPhrase(library))
	mux.HandleFunc("GET /phrases/{key}/steps", handleGetPhraseSteps(library))
	mux.HandleFunc("/phrases", httpjson.MethodNotAllowedHandler(http.MethodGet))
	mux.HandleFunc("/phrases/{key}", httpjson.MethodNotAllowedHandler(http.MethodGet))
	mux.HandleFunc("/phrases/{key}/steps", httpjson.MethodNotAllowedHandler(http.MethodGet))
	return httpjson.Chain(mux, httpjson.RecoverPanic())
}

func handleMeta(w http.ResponseWriter, _ *http.Request) {
	httpjson.Write(w, http.StatusOK, metaView{Service: serviceName, Version: branding.Version})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httpjson.Write(w, http.StatusOK, healthView{OK: true})
}

func handleListPhrases(library *catalog.Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phrases, err := library.List(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			log.Printf("list phrases: %v", err)
			httpjson.WriteError(w, http.StatusInternalServerError, "INTERNAL", "could not list phrases")
			return
		}
		httpjson.Write(w, http.StatusOK, phrases)
	}
}

func handleGetPhrase(library *catalog.Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.PathValue("key"))
		phrase, err := library.Get(r.Context(), key)
		if err != nil {
			writePhraseError(w, key, err)
			return
		}
		httpjson.Write(w, http.StatusOK, phrase)
	}
}

func handleGetPhraseSteps(library *catalog.Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.PathValue("key"))
		phrase, err := library.Get(r.Context(), key)
		if err != nil {
			writePhraseError(w, key, err)
			return
		}
		httpjson.Write(w, http.StatusOK, gesture.CloneSteps(phrase.Steps))
	}
}

func writePhraseError(w http.ResponseWriter, key string, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		httpjson.WriteError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("phrase %q not found", key))
		return
	}
	log.Printf("get phrase %q: %v", key, err)
	httpjson.WriteError(w, http.StatusInternalServerError, "INTERNAL", "could not load phrase")
}

// NewServer builds a configured phrases server and opens its store.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	dbPath := strings.TrimSpace(config.DBPath)
	if dbPath == "" {
		dbPath = filepath.Join("data", "phrases.db")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}

	store, err := openPhraseStore(dbPath)
	if err != nil {
		return nil, err
	}
	library := catalog.NewLibrary(store, nil)

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           otelhttp.NewHandler(newHandler(library), serviceName),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	return &Server{
		httpAddr:        httpAddr,
		shutdownTimeout: config.ShutdownTimeout,
		httpServer:      httpServer,
		store:           store,
		library:         library,
	}, nil
}

// Run creates and serves a phrases server until the context ends.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(config)
	if err != nil {
		return fmt.Errorf("init phrases server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve phrases: %w", err)
	}
	return nil
}

// ListenAndServe seeds the catalog and runs the HTTP server until the
// context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("phrases server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	seeded, err := s.library.EnsureSeeded(ctx)
	if err != nil {
		return fmt.Errorf("seed phrase catalog: %w", err)
	}
	if seeded > 0 {
		log.Printf("seeded %d builtin phrases", seeded)
	}

	serveErr := make(chan error, 1)
	log.Printf("phrases server listening on %s", s.httpAddr)
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

// Close releases the phrases server storage.
func (s *Server) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close phrase store: %v", err)
	}
}

func openPhraseStore(path string) (*phrasesqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := phrasesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open phrase sqlite store: %w", err)
	}
	return store, nil
}
