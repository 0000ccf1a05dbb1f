package toolgate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 1024

// CacheStage short-circuits repeated calls with the last successful result.
// The key is the deterministic serialization of (tool name, validated
// arguments); entries older than the TTL are never returned and are evicted
// lazily at lookup — there is no background sweep. The store is size-bounded
// (LRU). Two concurrent identical calls may both reach the handler; the
// stage guarantees a consistent stored entry, not single-flight.
//
// Cached Data payloads are shared between results; handlers that return
// pointers must treat them as immutable.
type CacheStage struct {
	ttl   time.Duration
	store *lru.Cache[string, cacheEntry]
	now   func() time.Time
}

type cacheEntry struct {
	res      Result
	storedAt time.Time
}

// CacheOption configures a CacheStage.
type CacheOption func(*CacheStage)

// WithCacheSize bounds the number of entries (default 1024).
func WithCacheSize(n int) CacheOption {
	return func(s *CacheStage) {
		if n > 0 {
			store, err := lru.New[string, cacheEntry](n)
			if err == nil {
				s.store = store
			}
		}
	}
}

// WithCacheClock overrides the time source, for deterministic expiry tests.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(s *CacheStage) {
		if now != nil {
			s.now = now
		}
	}
}

// NewCacheStage creates a caching stage with the given time-to-live.
func NewCacheStage(ttl time.Duration, opts ...CacheOption) (*CacheStage, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %v", ttl)
	}
	store, err := lru.New[string, cacheEntry](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	s := &CacheStage{ttl: ttl, store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *CacheStage) Name() string { return "cache" }

// Request returns the cached result for the call's key if a non-expired
// entry exists, skipping the handler. Stale entries are removed here.
func (s *CacheStage) Request(_ context.Context, call *Call) (*Result, error) {
	key, ok := s.key(call)
	if !ok {
		return nil, nil
	}
	entry, ok := s.store.Get(key)
	if !ok {
		return nil, nil
	}
	if s.now().Sub(entry.storedAt) >= s.ttl {
		s.store.Remove(key)
		return nil, nil
	}
	res := entry.res
	res.Cached = true
	return &res, nil
}

// Response stores fresh successful results under the call's key. Failures
// and results that came from the cache itself are not stored.
func (s *CacheStage) Response(_ context.Context, call *Call, res *Result) *Result {
	if res == nil || !res.Success || res.Cached {
		return res
	}
	if key, ok := s.key(call); ok {
		s.store.Add(key, cacheEntry{res: *res, storedAt: s.now()})
	}
	return res
}

// Len returns the current number of entries, expired ones included.
func (s *CacheStage) Len() int { return s.store.Len() }

// key serializes (tool, args) deterministically: encoding/json writes map
// keys in sorted order at every nesting level. Unserializable arguments
// bypass the cache.
func (s *CacheStage) key(call *Call) (string, bool) {
	b, err := json.Marshal(call.Args)
	if err != nil {
		return "", false
	}
	return call.Tool + "\x00" + string(b), true
}
