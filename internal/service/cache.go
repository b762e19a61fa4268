package service

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/patrickmn/go-cache"
)

// resultCache stores rendered responses keyed by a hash of the canonical
// request line. Entries keep the line so that a hash collision is a miss.
// A nil *resultCache never hits.
type resultCache struct {
	cache *cache.Cache
}

type cacheEntry struct {
	line string
	resp string
}

func newResultCache(ttl, cleanup time.Duration) *resultCache {
	if ttl <= 0 {
		return nil
	}
	return &resultCache{cache: cache.New(ttl, cleanup)}
}

func cacheKey(prefix, line string) string {
	return prefix + ":" + strconv.FormatUint(xxhash.Sum64String(line), 16)
}

func (c *resultCache) get(prefix, line string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.cache.Get(cacheKey(prefix, line))
	if !ok {
		return "", false
	}
	e, ok := v.(cacheEntry)
	if !ok || e.line != line {
		return "", false
	}
	return e.resp, true
}

func (c *resultCache) set(prefix, line, resp string) {
	if c == nil {
		return
	}
	c.cache.SetDefault(cacheKey(prefix, line), cacheEntry{line: line, resp: resp})
}

func (c *resultCache) len() int {
	if c == nil {
		return 0
	}
	return c.cache.ItemCount()
}
