package cache

import (
	"fmt"
	"invoices/internal/domain"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// RistrettoIdempotencyCache keeps completed responses in ristretto with a TTL.
// Requests still in flight are tracked separately so a reservation is never evicted.
type RistrettoIdempotencyCache struct {
	cache *ristretto.Cache

	mu       sync.Mutex
	inFlight map[string]string
}

func NewIdempotencyCache(maxItems int64) (*RistrettoIdempotencyCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create idempotency cache failed: %w", err)
	}
	return &RistrettoIdempotencyCache{cache: c, inFlight: make(map[string]string)}, nil
}

func (c *RistrettoIdempotencyCache) Get(key string) (domain.IdempotentResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if hash, ok := c.inFlight[key]; ok {
		return domain.IdempotentResponse{Status: domain.IdempotencyProcessing, BodyHash: hash}, true
	}
	return c.completed(key)
}

func (c *RistrettoIdempotencyCache) Reserve(key string, bodyHash string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.inFlight[key]; ok {
		return false
	}
	if _, ok := c.completed(key); ok {
		return false
	}
	c.inFlight[key] = bodyHash
	return true
}

func (c *RistrettoIdempotencyCache) Complete(key string, resp domain.IdempotentResponse, ttl time.Duration) {
	resp.Status = domain.IdempotencyCompleted
	c.cache.SetWithTTL(key, resp, 1, ttl)
	c.cache.Wait()

	c.mu.Lock()
	delete(c.inFlight, key)
	c.mu.Unlock()
}

func (c *RistrettoIdempotencyCache) Release(key string) {
	c.mu.Lock()
	delete(c.inFlight, key)
	c.mu.Unlock()
}

func (c *RistrettoIdempotencyCache) Close() { c.cache.Close() }

func (c *RistrettoIdempotencyCache) completed(key string) (domain.IdempotentResponse, bool) {
	if v, ok := c.cache.Get(key); ok {
		resp, ok := v.(domain.IdempotentResponse)
		return resp, ok
	}
	return domain.IdempotentResponse{}, false
}
