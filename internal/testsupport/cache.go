package testsupport

import (
	"testing"
	"time"

	"github.com/CloudCante/Tracking-TOO/internal/histcache"
)

// MustOpenCache opens a serial-history cache under a fresh temp directory and
// registers cleanup.
func MustOpenCache(t testing.TB, ttl time.Duration) *histcache.Cache {
	t.Helper()

	cache, err := histcache.Open(t.TempDir(), ttl)
	if err != nil {
		t.Fatalf("histcache.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = cache.Close()
	})
	return cache
}
