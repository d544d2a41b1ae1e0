package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
)

// Store counts requests per key in fixed windows.
// Increment must be atomic per key.
type Store interface {
	// Increment adds one hit to key and returns the count in the current
	// window and when that window ends.
	Increment(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
	Close() error
}

type counter struct {
	count   int
	resetAt time.Time
}

// MemoryStore keeps counters in a bounded LRU map. When the map is full
// the least recently used key is evicted and its counter starts over.
type MemoryStore struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *counter]
	now   func() time.Time
}

// NewMemoryStore creates a store holding at most maxKeys counters
func NewMemoryStore(maxKeys int) (*MemoryStore, error) {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	cache, err := lru.New[string, *counter](maxKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit cache: %w", err)
	}
	return &MemoryStore{cache: cache, now: time.Now}, nil
}

// SetClock replaces the time source
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Increment implements Store
func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c, ok := s.cache.Get(key)
	if !ok || !now.Before(c.resetAt) {
		c = &counter{resetAt: now.Add(window)}
		s.cache.Add(key, c)
	}
	c.count++
	return c.count, c.resetAt, nil
}

// Len returns the number of tracked keys
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}

// Close implements Store
func (s *MemoryStore) Close() error {
	s.cache.Purge()
	return nil
}

// incrementScript bumps the counter and starts the window on the first hit
var incrementScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {count, redis.call("PTTL", KEYS[1])}
`)

// RedisStore shares counters across instances
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to the Redis server at url
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, prefix: "ratelimit:"}, nil
}

// Increment implements Store
func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	res, err := incrementScript.Run(ctx, s.client, []string{s.prefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis increment failed: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis reply of length %d", len(res))
	}

	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 {
		ttl = window
	}
	return int(res[0]), time.Now().Add(ttl), nil
}

// Close implements Store
func (s *RedisStore) Close() error {
	return s.client.Close()
}
