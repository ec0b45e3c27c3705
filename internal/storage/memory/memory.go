package memory

import (
	"context"
	"sync"
	"time"

	"storefront_service/internal/models"
	"storefront_service/internal/storage"
)

type entry struct {
	articles  []models.Article
	expiresAt time.Time
}

// Cache is the in-process news cache used when no Redis address is
// configured. Entries are immutable once written and overwritten wholesale
// on expiry. Guarded by a RWMutex since handlers run concurrently.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	DefaultTTL time.Duration

	now func() time.Time
}

func New(defaultTTL time.Duration) *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		DefaultTTL: defaultTTL,
		now:        time.Now,
	}
}

func (c *Cache) SaveNews(_ context.Context, key string, articles []models.Article) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		articles:  articles,
		expiresAt: c.now().Add(c.DefaultTTL),
	}

	return nil
}

func (c *Cache) News(_ context.Context, key string) ([]models.Article, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, storage.ErrCacheMiss
	}

	if c.now().After(e.expiresAt) {
		c.evict(key, e.expiresAt)
		return nil, storage.ErrCacheMiss
	}

	return e.articles, nil
}

// evict deletes the entry only if it is still the one observed expired;
// a SaveNews landing between the read and write locks must survive.
func (c *Cache) evict(key string, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && e.expiresAt.Equal(expiresAt) {
		delete(c.entries, key)
	}
}
