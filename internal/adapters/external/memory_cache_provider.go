package external

import (
	"context"
	"sync"
	"time"

	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// MemoryCacheProvider keeps cache entries in a process-local map. Expired
// entries are dropped lazily on access and swept on every write.
type MemoryCacheProvider struct {
	hitCounter

	mutex sync.RWMutex
	data  map[string]memoryCacheItem
	clock ports.Clock
}

type memoryCacheItem struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryCacheProvider() *MemoryCacheProvider {
	return NewMemoryCacheProviderWithClock(ports.SystemClock{})
}

// NewMemoryCacheProviderWithClock creates a memory cache that reads expiry
// against clock
func NewMemoryCacheProviderWithClock(clock ports.Clock) *MemoryCacheProvider {
	return &MemoryCacheProvider{
		data:  make(map[string]memoryCacheItem),
		clock: clock,
	}
}

func (c *MemoryCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	if !exists || !c.clock.Now().Before(item.expiresAt) {
		c.RecordMiss()
		return nil, errors.NewNotFoundError("cache miss")
	}

	c.RecordHit()
	return item.data, nil
}

func (c *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := validateCacheSet(key, value, ttl); err != nil {
		return err
	}

	now := c.clock.Now()
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for k, item := range c.data {
		if !now.Before(item.expiresAt) {
			delete(c.data, k)
		}
	}
	c.data[key] = memoryCacheItem{
		data:      append([]byte(nil), value...),
		expiresAt: now.Add(ttl),
	}
	return nil
}

func (c *MemoryCacheProvider) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.data, key)
	return nil
}

func (c *MemoryCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	return exists && c.clock.Now().Before(item.expiresAt), nil
}

func (c *MemoryCacheProvider) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]memoryCacheItem)
	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *MemoryCacheProvider) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}
