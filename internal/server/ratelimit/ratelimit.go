// Package ratelimit provides per-client fixed-window rate limiting.
package ratelimit

import (
	"context"
	"log"
	"time"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter applies endpoint limits using a Store.
type Limiter struct {
	config *Config
	store  Store
	now    func() time.Time
}

// NewLimiter creates a rate limiter. A nil store uses a MemoryStore
// sized by config.MaxKeys.
func NewLimiter(config *Config, store Store) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:   true,
			Limit:     DefaultLimit,
			Window:    DefaultWindow,
			MaxKeys:   DefaultMaxKeys,
			Whitelist: make(map[string]bool),
			Blacklist: make(map[string]bool),
		}
		config.EndpointConfigs = DefaultEndpointConfigs(config.Limit, config.Window)
	}

	if store == nil {
		mem, err := NewMemoryStore(config.MaxKeys)
		if err != nil {
			log.Printf("[rate-limit] %v, disabling rate limiting", err)
			config.Enabled = false
		} else {
			store = mem
		}
	}

	return &Limiter{config: config, store: store, now: time.Now}
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Store failures allow the request.
func (l *Limiter) Allow(ctx context.Context, clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	if l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil || endpointConfig.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + endpointConfig.Method + ":" + endpointConfig.Path
	count, resetAt, err := l.store.Increment(ctx, key, endpointConfig.Window)
	if err != nil {
		log.Printf("[rate-limit] store error for %s, allowing request: %v", key, err)
		return true, Info{Allowed: true}
	}

	remaining := endpointConfig.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	allowed := count <= endpointConfig.Limit

	var retryAfter time.Duration
	if !allowed {
		retryAfter = resetAt.Sub(l.now())
		if retryAfter < 0 {
			retryAfter = 0
		}
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      endpointConfig.Limit,
		Remaining:  remaining,
		ResetTime:  resetAt,
		RetryAfter: retryAfter,
	}
}

// Stop releases the store.
func (l *Limiter) Stop() {
	if l.store == nil {
		return
	}
	if err := l.store.Close(); err != nil {
		log.Printf("[rate-limit] failed to close store: %v", err)
	}
}

// SetClock replaces the time source of the limiter and its in-memory store
func (l *Limiter) SetClock(now func() time.Time) {
	l.now = now
	if mem, ok := l.store.(*MemoryStore); ok {
		mem.SetClock(now)
	}
}
