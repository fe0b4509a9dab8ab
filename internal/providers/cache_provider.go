package providers

import (
	"bytes"
	"errors"
	"sync"
	"time"
	"unsafe"

	"codefolio/internal/structures"

	"github.com/coocood/freecache"
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Del(key string)
	Clear()
}

// maxOversized bounds how many entries too large for freecache are kept
// beside it.
const maxOversized = 16

var ErrCacheFull = errors.New("cache: no room for oversized entry")

type oversizedEntry struct {
	value   []byte
	expires time.Time
}

// CacheProvider keeps entries in freecache. Values above freecache's per-entry
// limit (cache size / 1024) live in a small TTL'd map instead.
type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
	now   func() time.Time

	mu        sync.RWMutex
	oversized map[string]oversizedEntry
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Cache disabled")
		return &noopCache{}
	}

	sizeBytes := conf.Cache.Size * 1024 * 1024
	// freecache evicts on its own clock; the result cache checks freshness
	// itself, this only bounds memory held by stale entries.
	ttl := max(int(conf.Cache.TTL.Seconds()), 1) + 1

	logger.Infof(TypeApp, "Cache initialized: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache:     freecache.NewCache(sizeBytes),
		ttl:       ttl,
		now:       time.Now,
		oversized: make(map[string]oversizedEntry),
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// Safe when the result is only read (not modified), which is the case
// for freecache; it copies keys internally.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.oversized[key]
	c.mu.RUnlock()
	if ok {
		if c.now().Before(entry.expires) {
			return entry.value, true
		}
		c.mu.Lock()
		if cur, still := c.oversized[key]; still && !c.now().Before(cur.expires) {
			delete(c.oversized, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) error {
	err := c.cache.Set(unsafeStringToBytes(key), value, c.ttl)
	if err == nil {
		c.mu.Lock()
		delete(c.oversized, key)
		c.mu.Unlock()
		return nil
	}
	if !errors.Is(err, freecache.ErrLargeEntry) {
		return err
	}
	c.cache.Del(unsafeStringToBytes(key))
	return c.setOversized(key, value)
}

func (c *CacheProvider) setOversized(key string, value []byte) error {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.oversized[key]; !exists && len(c.oversized) >= maxOversized {
		for k, e := range c.oversized {
			if !now.Before(e.expires) {
				delete(c.oversized, k)
			}
		}
		if len(c.oversized) >= maxOversized {
			return ErrCacheFull
		}
	}
	c.oversized[key] = oversizedEntry{
		value:   bytes.Clone(value),
		expires: now.Add(time.Duration(c.ttl) * time.Second),
	}
	return nil
}

func (c *CacheProvider) Del(key string) {
	c.mu.Lock()
	delete(c.oversized, key)
	c.mu.Unlock()
	c.cache.Del(unsafeStringToBytes(key))
}

func (c *CacheProvider) Clear() {
	c.mu.Lock()
	c.oversized = make(map[string]oversizedEntry)
	c.mu.Unlock()
	c.cache.Clear()
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool)  { return nil, false }
func (n *noopCache) Set(_ string, _ []byte) error { return nil }
func (n *noopCache) Del(_ string)                 {}
func (n *noopCache) Clear()                       {}
