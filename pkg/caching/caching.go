// Package caching provides a small in-memory TTL cache for fetched
// documents, so UI re-renders do not refetch the same page.
package caching

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/hbatwal/seo-intel/models"
)

type entry struct {
	doc      models.Document
	storedAt time.Time
}

// Cache is a TTL cache keyed by exact URL string. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time // swapped in tests
	m   map[string]entry
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl: ttl,
		now: time.Now,
		m:   make(map[string]entry),
	}
}

// key generates a SHA256 hash of the URL to use as the map key.
func (c *Cache) key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x", hash)
}

// Get retrieves the cached document for a URL. It returns a copy and
// true if the entry is present and not expired.
func (c *Cache) Get(url string) (*models.Document, bool) {
	c.mu.RLock()
	e, ok := c.m[c.key(url)]
	c.mu.RUnlock()

	if !ok {
		return nil, false // cache miss
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		return nil, false // cache miss (expired)
	}
	doc := e.doc
	return &doc, true
}

// Set stores a fetched document for a URL. The document is copied so
// later caller mutations do not leak into the cache.
func (c *Cache) Set(url string, doc *models.Document) {
	c.mu.Lock()
	c.m[c.key(url)] = entry{doc: *doc, storedAt: c.now()}
	c.mu.Unlock()
}
