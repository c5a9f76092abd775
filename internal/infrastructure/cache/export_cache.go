package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
	"github.com/damon-houk/fxrate-lookup/internal/domain/repository"
)

// CacheEntry represents a parked export with its insertion time
type CacheEntry struct {
	Export    *entity.Export
	Timestamp time.Time
}

// ExportCache is a thread-safe in-memory ExportRepository. Entries are removed
// when taken or once they outlive the expiration.
type ExportCache struct {
	cache      map[string]CacheEntry
	expiration time.Duration
	mutex      sync.RWMutex
	now        func() time.Time
}

// NewExportCache creates a new export cache
func NewExportCache(expiration time.Duration) *ExportCache {
	if expiration <= 0 {
		expiration = 15 * time.Minute
	}

	return &ExportCache{
		cache:      make(map[string]CacheEntry),
		expiration: expiration,
		now:        time.Now,
	}
}

// Save parks an export under a fresh token unless it already carries one
func (c *ExportCache) Save(_ context.Context, export *entity.Export) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if export.Token == "" {
		export.Token = uuid.New().String()
	}

	c.cache[export.Token] = CacheEntry{
		Export:    export,
		Timestamp: c.now(),
	}

	return export.Token, nil
}

// Take returns and removes the export for a token
func (c *ExportCache) Take(_ context.Context, token string) (*entity.Export, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.cache[token]
	if !exists {
		return nil, repository.ErrExportNotFound
	}

	delete(c.cache, token)

	if c.now().Sub(entry.Timestamp) > c.expiration {
		return nil, repository.ErrExportNotFound
	}

	return entry.Export, nil
}

// Size returns the number of items in the cache
func (c *ExportCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}

// CleanExpired removes expired entries from the cache
func (c *ExportCache) CleanExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	count := 0
	now := c.now()

	for key, entry := range c.cache {
		if now.Sub(entry.Timestamp) > c.expiration {
			delete(c.cache, key)
			count++
		}
	}

	return count
}

// RunJanitor removes expired entries every interval until ctx is done
func (c *ExportCache) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CleanExpired()
		}
	}
}
