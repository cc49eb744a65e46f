// Package timeouts defines shared timeout constants used across services.
// Centralizing these values prevents drift between service boundaries and
// makes the durations discoverable.
package timeouts

import "time"

// CatalogProbe caps the wait time for an upstream catalog liveness probe.
const CatalogProbe = 2 * time.Second

// CatalogRequest caps the time allowed for a single catalog lookup from
// the translate service to an upstream catalog API.
const CatalogRequest = 3 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
