package histcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/CloudCante/Tracking-TOO/internal/histcache"
	"github.com/CloudCante/Tracking-TOO/internal/tracking"
)

func mustOpen(t *testing.T, ttl time.Duration) *histcache.Cache {
	t.Helper()
	cache, err := histcache.Open(t.TempDir(), ttl)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestPutGetRoundTrip(t *testing.T) {
	cache := mustOpen(t, time.Hour)
	ctx := context.Background()

	records := []tracking.HistoryRecord{
		{SerialNumber: "SN1", Source: "workstation", StationName: "VI1", StationStart: "2024-03-01T09:00:00"},
		{SerialNumber: "SN1", Source: "workstation", StationName: "UPGRADE", StationStart: "2024-03-01T11:00:00"},
	}
	key := histcache.Key("SN1", tracking.Window{})
	if err := cache.Put(ctx, key, "SN1", records); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, hit, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || got[1].StationName != "UPGRADE" {
		t.Fatalf("unexpected cached records: %#v", got)
	}
}

func TestGetMissForUnknownKey(t *testing.T) {
	cache := mustOpen(t, time.Hour)
	if _, hit, err := cache.Get(context.Background(), histcache.Key("SN404", tracking.Window{})); err != nil || hit {
		t.Fatalf("expected clean miss, got hit=%v err=%v", hit, err)
	}
}

func TestWindowSeparatesEntries(t *testing.T) {
	cache := mustOpen(t, time.Hour)
	ctx := context.Background()

	windowed := tracking.Window{StartDate: "2024-01-01", EndDate: "2024-01-31"}
	if err := cache.Put(ctx, histcache.Key("SN1", windowed), "SN1", nil); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if _, hit, err := cache.Get(ctx, histcache.Key("SN1", tracking.Window{})); err != nil || hit {
		t.Fatalf("different window must miss, got hit=%v err=%v", hit, err)
	}
}

func TestExpiredEntryIsMiss(t *testing.T) {
	cache := mustOpen(t, time.Nanosecond)
	ctx := context.Background()

	key := histcache.Key("SN1", tracking.Window{})
	if err := cache.Put(ctx, key, "SN1", []tracking.HistoryRecord{{SerialNumber: "SN1"}}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, err := cache.Get(ctx, key); err != nil || hit {
		t.Fatalf("expected expired entry to miss, got hit=%v err=%v", hit, err)
	}

	dropped, err := cache.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune returned error: %v", err)
	}
	if dropped != 1 {
		t.Fatalf("expected one pruned entry, got %d", dropped)
	}
}

func TestPutReplacesEntry(t *testing.T) {
	cache := mustOpen(t, time.Hour)
	ctx := context.Background()

	key := histcache.Key("SN1", tracking.Window{})
	if err := cache.Put(ctx, key, "SN1", []tracking.HistoryRecord{{StationName: "OLD"}}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := cache.Put(ctx, key, "SN1", []tracking.HistoryRecord{{StationName: "NEW"}}); err != nil {
		t.Fatalf("second Put returned error: %v", err)
	}
	got, hit, err := cache.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if len(got) != 1 || got[0].StationName != "NEW" {
		t.Fatalf("expected replacement, got %#v", got)
	}
}

func TestOpenValidatesArguments(t *testing.T) {
	if _, err := histcache.Open("", time.Hour); err == nil {
		t.Fatal("expected error for empty dir")
	}
	if _, err := histcache.Open(t.TempDir(), 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}
