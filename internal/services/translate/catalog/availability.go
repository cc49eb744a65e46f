package catalog

import (
	"context"
	"sync"
	"time"
)

// defaultProbeTTL is how long a probe result stands before an upstream is
// probed again. Catalogs are colocated low-traffic services; the staleness
// window trades a recovered upstream going unnoticed for not paying a
// network round-trip on every translation call.
const defaultProbeTTL = 30 * time.Second

// availabilityCache memoizes one boolean-with-timestamp probe result for a
// single upstream. Concurrent callers may race into duplicate probes when an
// entry expires; the duplicate probe is benign and the last writer wins.
type availabilityCache struct {
	ttl time.Duration

	mu        sync.Mutex
	probed    bool
	probedAt  time.Time
	reachable bool
}

func (a *availabilityCache) check(ctx context.Context, probe func(context.Context) bool) bool {
	a.mu.Lock()
	if a.probed && time.Since(a.probedAt) < a.ttl {
		reachable := a.reachable
		a.mu.Unlock()
		return reachable
	}
	a.mu.Unlock()

	reachable := probe(ctx)

	a.mu.Lock()
	a.probed = true
	a.probedAt = time.Now()
	a.reachable = reachable
	a.mu.Unlock()
	return reachable
}
