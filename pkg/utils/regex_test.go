package utils

import (
	"regexp"
	"testing"
)

func TestLRUCache(t *testing.T) {
	t.Run("Basic operations", func(t *testing.T) {
		cache := NewLRUCache(3)

		// Cache miss
		if _, ok := cache.Get(DefaultGroupPattern); ok {
			t.Error("Expected cache miss")
		}

		// Store regex
		groupRegex := regexp.MustCompile(DefaultGroupPattern)
		cache.Put(DefaultGroupPattern, groupRegex)

		// Cache hit
		if result, ok := cache.Get(DefaultGroupPattern); !ok || result != groupRegex {
			t.Error("Expected cache hit")
		}
	})

	t.Run("LRU eviction", func(t *testing.T) {
		cache := NewLRUCache(2)

		cache.Put(DefaultGroupPattern, regexp.MustCompile(DefaultGroupPattern))
		cache.Put(DatePattern, regexp.MustCompile(DatePattern))

		// Add third pattern, the least recently used one goes
		cache.Put(`^1_`, regexp.MustCompile(`^1_`))

		if _, ok := cache.Get(DefaultGroupPattern); ok {
			t.Error("Expected oldest pattern to be evicted")
		}
		if _, ok := cache.Get(DatePattern); !ok {
			t.Error("Expected date pattern to still be cached")
		}
		if _, ok := cache.Get(`^1_`); !ok {
			t.Error("Expected newest pattern to be cached")
		}
	})

	t.Run("Access updates LRU order", func(t *testing.T) {
		cache := NewLRUCache(2)

		cache.Put("old", regexp.MustCompile("old"))
		cache.Put("new", regexp.MustCompile("new"))

		// Touch the old entry so "new" becomes the eviction victim
		cache.Get("old")
		cache.Put("latest", regexp.MustCompile("latest"))

		if _, ok := cache.Get("old"); !ok {
			t.Error("Expected 'old' to survive after recent access")
		}
		if _, ok := cache.Get("new"); ok {
			t.Error("Expected 'new' to be evicted")
		}
	})

	t.Run("Update existing entry", func(t *testing.T) {
		cache := NewLRUCache(2)

		cache.Put("key", regexp.MustCompile("pattern"))
		updated := regexp.MustCompile("updated_pattern")
		cache.Put("key", updated)

		if result, ok := cache.Get("key"); !ok || result != updated {
			t.Error("Expected updated regex")
		}
	})
}

func TestRegexCompile(t *testing.T) {
	// First call compiles and caches, second returns the cached object
	regex1, err := RegexCompile(DefaultGroupPattern)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	regex2, err := RegexCompile(DefaultGroupPattern)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if regex1 != regex2 {
		t.Error("Expected cached regex to be returned")
	}

	// The default pattern behaves as documented
	if got := regex1.FindStringSubmatch("12_3_после.jpg"); len(got) < 2 || got[1] != "12_3_" {
		t.Errorf("Unexpected prefix match: %v", got)
	}
	if regex1.MatchString("фото.jpg") {
		t.Error("Expected no match for a name without a numeric prefix")
	}

	// Invalid patterns surface the compile error
	if _, err = RegexCompile("[invalid"); err == nil {
		t.Error("Expected error for invalid regex")
	}
}
