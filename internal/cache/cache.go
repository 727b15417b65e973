// Package cache memoises indicator tables by the content of their sources.
// It is owned by the caller: nothing is cached implicitly and every entry
// can be dropped explicitly.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sells-group/bikelane-cli/internal/model"
)

// Key identifies a source triple by content.
type Key string

// KeyOf hashes the given source contents in order. Each part is length
// prefixed so moving bytes between sources changes the key.
func KeyOf(contents ...[]byte) Key {
	h := sha256.New()
	var n [8]byte
	for _, c := range contents {
		binary.BigEndian.PutUint64(n[:], uint64(len(c)))
		h.Write(n[:])
		h.Write(c)
	}
	return Key(hex.EncodeToString(h.Sum(nil)))
}

// BuildFunc produces the table for a key on a miss.
type BuildFunc func(ctx context.Context) (*model.Table, error)

// Cache holds built tables keyed by source content. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*model.Table
	group   singleflight.Group
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[Key]*model.Table)}
}

// Get returns the cached table for key, if any.
func (c *Cache) Get(key Key) (*model.Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.entries[key]
	return t, ok
}

// GetOrBuild returns the cached table for key or calls build to produce it.
// Concurrent misses on the same key share one build. Failed builds are not
// cached. The boolean reports whether the result came from the cache.
func (c *Cache) GetOrBuild(ctx context.Context, key Key, build BuildFunc) (*model.Table, bool, error) {
	if t, ok := c.Get(key); ok {
		return t, true, nil
	}

	v, err, shared := c.group.Do(string(key), func() (any, error) {
		if t, ok := c.Get(key); ok {
			return t, nil
		}
		t, err := build(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = t
		c.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, false, err
	}

	if shared {
		zap.L().Debug("cache: shared build", zap.String("key", string(key)))
	}
	return v.(*model.Table), false, nil
}

// Invalidate drops the entry for key. It reports whether one existed.
func (c *Cache) Invalidate(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	c.group.Forget(string(key))
	return ok
}

// Retain drops every entry except the one for key and returns how many
// were dropped. Callers that follow a single source triple use it to evict
// tables built from content that has since changed.
func (c *Cache) Retain(key Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.entries {
		if k == key {
			continue
		}
		delete(c.entries, k)
		c.group.Forget(string(k))
		n++
	}
	return n
}

// Purge drops every entry and returns how many there were.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	for k := range c.entries {
		c.group.Forget(string(k))
	}
	c.entries = make(map[Key]*model.Table)
	return n
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
