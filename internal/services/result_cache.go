package services

import (
	"time"

	"codefolio/internal/providers"
	"codefolio/internal/structures"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

const (
	statsKeyPrefix = "stats:"
)

type cacheEnvelope struct {
	StoredAt int64           `json:"storedAt"`
	Payload  json.RawMessage `json:"payload"`
}

// ResultCache stores aggregate results as JSON envelopes in the byte cache.
// Expiry follows the injected clock, the backing cache only bounds memory.
type ResultCache struct {
	cache  providers.CacheProviderInterface
	clock  providers.Clock
	logger providers.Logger
	ttl    time.Duration
	group  singleflight.Group
}

func NewResultCache(conf *structures.Config, cache providers.CacheProviderInterface, clock providers.Clock, logger providers.Logger) *ResultCache {
	return &ResultCache{
		cache:  cache,
		clock:  clock,
		logger: logger,
		ttl:    conf.Cache.TTL,
	}
}

func statsKey(userID, platform string) string {
	return statsKeyPrefix + userID + ":" + platform
}

// Get decodes a live entry into dst. Expired entries are dropped.
func (c *ResultCache) Get(key string, dst any) (time.Time, bool) {
	raw, ok := c.cache.Get(key)
	if !ok {
		return time.Time{}, false
	}
	var env cacheEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warnf(providers.TypeCache, "Dropping unreadable cache entry %s: %s", key, err)
		c.cache.Del(key)
		return time.Time{}, false
	}
	storedAt := time.UnixMilli(env.StoredAt)
	if c.clock.Now().Sub(storedAt) >= c.ttl {
		c.cache.Del(key)
		return time.Time{}, false
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		c.logger.Warnf(providers.TypeCache, "Dropping unreadable cache entry %s: %s", key, err)
		c.cache.Del(key)
		return time.Time{}, false
	}
	return storedAt, true
}

func (c *ResultCache) Put(key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Errorf(providers.TypeCache, "Can't cache %s: %s", key, err)
		return
	}
	data, err := json.Marshal(cacheEnvelope{StoredAt: c.clock.NowMillis(), Payload: payload})
	if err != nil {
		c.logger.Errorf(providers.TypeCache, "Can't cache %s: %s", key, err)
		return
	}
	if err := c.cache.Set(key, data); err != nil {
		c.logger.Errorf(providers.TypeCache, "Can't cache %s (%d bytes): %s", key, len(data), err)
	}
}

func (c *ResultCache) Invalidate(key string) {
	c.cache.Del(key)
}

// Clear drops every entry, contest listings and profile stats alike.
func (c *ResultCache) Clear() {
	c.cache.Clear()
	c.logger.Infof(providers.TypeCache, "Result cache cleared")
}

// remember returns the cached value for key or loads it. Concurrent callers
// of the same key share one load. load reports whether its value may be
// stored; empty or incomplete values are returned but never cached.
func remember[T any](c *ResultCache, key string, load func() (T, bool)) T {
	var cached T
	if _, ok := c.Get(key, &cached); ok {
		return cached
	}

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		var hit T
		if _, ok := c.Get(key, &hit); ok {
			return hit, nil
		}
		value, storable := load()
		if storable {
			c.Put(key, value)
		}
		return value, nil
	})
	return v.(T)
}
