package main

import (
	"testing"
	"time"

	"github.com/phrasemill/phrasemill/pkg/markov"
)

func TestGenerationCache(t *testing.T) {
	cache := NewGenerationCache(time.Minute)
	t.Cleanup(cache.Close)

	if _, ok := cache.Get("missing"); ok {
		t.Error("expected a miss for an unknown key")
	}

	cache.Set("key", "alpha beta gamma.")
	output, ok := cache.Get("key")
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if output != "alpha beta gamma." {
		t.Errorf("Get returned %q", output)
	}
}

func TestCacheKeyDistinguishesOptions(t *testing.T) {
	base := markov.DefaultGenerateOptions()

	sharp := base
	sharp.Temperature = 0.5

	keys := map[string]struct{}{
		cacheKey("alpha", base):  {},
		cacheKey("beta", base):   {},
		cacheKey("alpha", sharp): {},
	}
	if len(keys) != 3 {
		t.Errorf("expected 3 distinct cache keys, got %d", len(keys))
	}
}
