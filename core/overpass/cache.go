package overpass

import (
	"context"
	"sync"
	"time"

	"osm-linker/core/spatial"

	"golang.org/x/sync/singleflight"
)

// cachedResult holds one fetched candidate set.
type cachedResult struct {
	candidates []spatial.Candidate
	built      time.Time
}

func (c *cachedResult) expired(ttl time.Duration) bool {
	return time.Since(c.built) > ttl
}

// CachedFetcher wraps a Fetcher with a per-filter TTL cache.
// Concurrent misses for the same filter share a single upstream request.
type CachedFetcher struct {
	next Fetcher
	ttl  time.Duration

	mu      sync.RWMutex
	results map[string]*cachedResult
	sf      singleflight.Group
}

// NewCachedFetcher wraps next. A ttl of zero returns next unchanged.
func NewCachedFetcher(next Fetcher, ttl time.Duration) Fetcher {
	if ttl <= 0 {
		return next
	}
	return &CachedFetcher{
		next:    next,
		ttl:     ttl,
		results: make(map[string]*cachedResult),
	}
}

// Fetch returns cached candidates for filter, fetching them when absent or stale.
func (f *CachedFetcher) Fetch(ctx context.Context, filter string) ([]spatial.Candidate, error) {
	if candidates, ok := f.lookup(filter); ok {
		return candidates, nil
	}

	result, err, _ := f.sf.Do(filter, func() (interface{}, error) {
		// Another caller may have filled the entry while we waited.
		if candidates, ok := f.lookup(filter); ok {
			return candidates, nil
		}

		candidates, err := f.next.Fetch(ctx, filter)
		if err != nil {
			return nil, err
		}

		f.mu.Lock()
		f.results[filter] = &cachedResult{candidates: candidates, built: time.Now()}
		f.mu.Unlock()

		return candidates, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]spatial.Candidate), nil
}

// Invalidate drops every cached result.
func (f *CachedFetcher) Invalidate() {
	f.mu.Lock()
	f.results = make(map[string]*cachedResult)
	f.mu.Unlock()
}

func (f *CachedFetcher) lookup(filter string) ([]spatial.Candidate, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	cached, ok := f.results[filter]
	if !ok || cached.expired(f.ttl) {
		return nil, false
	}
	return cached.candidates, true
}
