package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
)

const cleanupInterval = 30 * time.Second

// InMemorySupplyCache implements SupplyCache with process-local storage.
// Suitable for single-instance deployments and tests; entries do not
// survive restarts and are not shared across instances.
type InMemorySupplyCache struct {
	entries sync.Map // map[string]*memoryEntry
	stopCh  chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	value     supply.Supply
	expiresAt time.Time
}

func (e *memoryEntry) expired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemorySupplyCache creates an in-memory supply cache
func NewInMemorySupplyCache() *InMemorySupplyCache {
	c := &InMemorySupplyCache{stopCh: make(chan struct{})}
	go c.cleanupLoop()
	return c
}

// Get retrieves a supply from cache, returning (nil, nil) on a miss
func (c *InMemorySupplyCache) Get(ctx context.Context, storeID, id uuid.UUID) (*supply.Supply, error) {
	v, ok := c.entries.Load(supplyCacheKey(storeID, id))
	if !ok {
		return nil, nil
	}
	entry := v.(*memoryEntry)
	if entry.expired() {
		c.entries.Delete(supplyCacheKey(storeID, id))
		return nil, nil
	}
	// copy so callers can't mutate the cached value
	s := entry.value
	return &s, nil
}

// Set stores a supply with the given TTL
func (c *InMemorySupplyCache) Set(ctx context.Context, s *supply.Supply, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	c.entries.Store(supplyCacheKey(s.StoreID, s.ID), &memoryEntry{
		value:     *s,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Delete removes a single supply from cache
func (c *InMemorySupplyCache) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	c.entries.Delete(supplyCacheKey(storeID, id))
	return nil
}

// InvalidateStore removes every cached supply for a store
func (c *InMemorySupplyCache) InvalidateStore(ctx context.Context, storeID uuid.UUID) error {
	prefix := storeKeyPrefix(storeID)
	c.entries.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.entries.Delete(key)
		}
		return true
	})
	return nil
}

// Close stops the background cleanup goroutine
func (c *InMemorySupplyCache) Close() error {
	c.once.Do(func() { close(c.stopCh) })
	return nil
}

func (c *InMemorySupplyCache) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, v any) bool {
				if v.(*memoryEntry).expired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

var _ SupplyCache = (*InMemorySupplyCache)(nil)
