package main

import (
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/phrasemill/phrasemill/pkg/markov"
)

// GenerationCache is a short-lived TTL cache of generation output keyed
// by the full request parameters. It only serves requests that opt into
// cached sampling.
type GenerationCache struct {
	cache *ttlcache.Cache[string, string]
}

// NewGenerationCache creates a GenerationCache with TTL-based expiration.
func NewGenerationCache(ttl time.Duration) *GenerationCache {
	c := ttlcache.New[string, string](
		ttlcache.WithTTL[string, string](ttl),
		ttlcache.WithDisableTouchOnHit[string, string](),
	)
	go c.Start()
	return &GenerationCache{cache: c}
}

// Close stops the cache expiration loop.
func (gc *GenerationCache) Close() {
	gc.cache.Stop()
}

// Get returns the cached output for the given key, if present and fresh.
func (gc *GenerationCache) Get(key string) (string, bool) {
	item := gc.cache.Get(key)
	if item == nil {
		return "", false
	}
	return item.Value(), true
}

// Set stores the output for the given key with the default TTL.
func (gc *GenerationCache) Set(key, output string) {
	gc.cache.Set(key, output, ttlcache.DefaultTTL)
}

// cacheKey builds the cache key for one generation request.
func cacheKey(startPhrase string, opts markov.GenerateOptions) string {
	return fmt.Sprintf("%s|%d|%d|%g|%t", startPhrase, opts.MinLength, opts.MaxLength, opts.Temperature, opts.EndOnSentence)
}
