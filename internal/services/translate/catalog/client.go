// Package catalog queries the upstream phrase and letter catalogs over HTTP
// and normalizes every transport outcome into the resolver's error taxonomy:
// ErrUnavailable for unreachable upstreams, ErrNotFound for missing entries.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/louisbranch/signbridge/internal/gesture"
	"github.com/louisbranch/signbridge/internal/platform/timeouts"
	"github.com/louisbranch/signbridge/internal/services/translate/domain"
)

// Client fetches catalog entries from the phrases and signs services. An
// upstream whose availability probe failed is skipped entirely until the
// cached probe result expires, so a down catalog costs one probe per TTL
// window instead of one timeout per request.
type Client struct {
	phrasesBaseURL string
	signsBaseURL   string
	httpClient     *http.Client
	phrasesProbe   *availabilityCache
	signsProbe     *availabilityCache
}

// Option adjusts client construction.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithProbeTTL overrides how long a cached availability probe result holds.
func WithProbeTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.phrasesProbe.ttl = ttl
			c.signsProbe.ttl = ttl
		}
	}
}

// NewClient builds a catalog client over the two upstream base URLs.
func NewClient(phrasesBaseURL, signsBaseURL string, opts ...Option) *Client {
	client := &Client{
		phrasesBaseURL: strings.TrimRight(strings.TrimSpace(phrasesBaseURL), "/"),
		signsBaseURL:   strings.TrimRight(strings.TrimSpace(signsBaseURL), "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeouts.CatalogRequest,
		},
		phrasesProbe: &availabilityCache{ttl: defaultProbeTTL},
		signsProbe:   &availabilityCache{ttl: defaultProbeTTL},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// PhrasesAvailable reports whether the phrase catalog answered its most
// recent liveness probe, issuing a new probe when the cached result expired.
func (c *Client) PhrasesAvailable(ctx context.Context) bool {
	return c.phrasesProbe.check(ctx, func(ctx context.Context) bool {
		return c.probe(ctx, c.phrasesBaseURL+"/phrases")
	})
}

// SignsAvailable reports whether the letter catalog answered its most recent
// liveness probe, issuing a new probe when the cached result expired.
func (c *Client) SignsAvailable(ctx context.Context) bool {
	return c.signsProbe.check(ctx, func(ctx context.Context) bool {
		return c.probe(ctx, c.signsBaseURL+"/signs/A")
	})
}

// FetchAllPhrases lists every phrase the upstream catalog holds. It reports
// domain.ErrUnavailable when the catalog is unreachable, timed out, or
// answered with a non-success status.
func (c *Client) FetchAllPhrases(ctx context.Context) ([]gesture.Phrase, error) {
	if !c.PhrasesAvailable(ctx) {
		return nil, fmt.Errorf("phrase catalog probe failed: %w", domain.ErrUnavailable)
	}

	var phrases []gesture.Phrase
	if err := c.getJSON(ctx, c.phrasesBaseURL+"/phrases", &phrases); err != nil {
		return nil, fmt.Errorf("fetch phrases: %w", err)
	}
	return phrases, nil
}

// FetchLetter resolves a single fingerspelling letter. It reports
// domain.ErrNotFound when the catalog answered 404 and domain.ErrUnavailable
// on any transport failure.
func (c *Client) FetchLetter(ctx context.Context, letter string) (gesture.Letter, error) {
	canonical, err := gesture.CanonicalLetter(letter)
	if err != nil {
		return gesture.Letter{}, fmt.Errorf("letter %q: %w", letter, domain.ErrNotFound)
	}
	if !c.SignsAvailable(ctx) {
		return gesture.Letter{}, fmt.Errorf("letter catalog probe failed: %w", domain.ErrUnavailable)
	}

	var view letterView
	if err := c.getJSON(ctx, c.signsBaseURL+"/signs/"+canonical, &view); err != nil {
		return gesture.Letter{}, fmt.Errorf("fetch letter %s: %w", canonical, err)
	}
	entry, err := view.toLetter(canonical)
	if err != nil {
		return gesture.Letter{}, fmt.Errorf("letter %s catalog entry unusable: %w", canonical, domain.ErrNotFound)
	}
	return entry, nil
}

// letterView accepts both letter wire shapes: a steps array, or the flat
// single-pose form {handshape, orientation, location, motion}.
type letterView struct {
	Letter      string         `json:"letter"`
	Handshape   string         `json:"handshape"`
	Orientation string         `json:"orientation"`
	Location    string         `json:"location"`
	Motion      string         `json:"motion"`
	HoldMillis  int            `json:"hold_duration_ms"`
	Steps       []gesture.Step `json:"steps"`
	Notes       string         `json:"notes"`
}

// toLetter synthesizes the single step from the flat fields when no steps
// array was sent, then validates the result so a sparse 200 body can never
// surface as an entry without gestures.
func (v letterView) toLetter(canonical string) (gesture.Letter, error) {
	steps := v.Steps
	if len(steps) == 0 {
		steps = []gesture.Step{{
			Handshape:   v.Handshape,
			Orientation: v.Orientation,
			Location:    v.Location,
			Motion:      v.Motion,
			HoldMillis:  v.HoldMillis,
		}}
	}
	return gesture.NormalizeLetter(gesture.Letter{
		Letter: canonical,
		Steps:  steps,
		Notes:  v.Notes,
	})
}

func (c *Client) probe(ctx context.Context, url string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, timeouts.CatalogProbe)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) getJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return fmt.Errorf("catalog returned %s: %w", resp.Status, domain.ErrUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", domain.ErrUnavailable)
	}
	return nil
}
