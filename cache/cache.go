package cache

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/use-agent/skinprices/prices"
	"github.com/use-agent/skinprices/store"
)

// entry holds a loaded book with the file state it was loaded from.
type entry struct {
	book     *prices.Book
	modTime  time.Time
	size     int64
	loadedAt time.Time
}

// Cache keeps price books loaded from disk, keyed by path.
// It is safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	store map[string]*entry
	ttl   time.Duration
	load  func(string) (*prices.Book, error)
	now   func() time.Time
}

// New creates a Cache. A book is reloaded when its file changes on disk or
// when it is older than ttl; ttl <= 0 disables the age check.
func New(ttl time.Duration) *Cache {
	return &Cache{
		store: make(map[string]*entry),
		ttl:   ttl,
		load:  store.Load,
		now:   time.Now,
	}
}

// Book returns the book stored at path, loading it when the cached copy is
// missing or stale.
func (c *Cache) Book(path string) (*prices.Book, error) {
	info, err := os.Stat(path)
	if err != nil {
		c.Invalidate(path)
		return nil, fmt.Errorf("cache: stat: %w", err)
	}

	c.mu.RLock()
	e, ok := c.store[path]
	c.mu.RUnlock()
	if ok && c.fresh(e, info) {
		return e.book, nil
	}

	book, err := c.load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.store[path] = &entry{
		book:     book,
		modTime:  info.ModTime(),
		size:     info.Size(),
		loadedAt: c.now(),
	}
	c.mu.Unlock()
	return book, nil
}

// Invalidate drops the cached book for path.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.store, path)
	c.mu.Unlock()
}

func (c *Cache) fresh(e *entry, info os.FileInfo) bool {
	if !e.modTime.Equal(info.ModTime()) || e.size != info.Size() {
		return false
	}
	return c.ttl <= 0 || c.now().Sub(e.loadedAt) <= c.ttl
}
