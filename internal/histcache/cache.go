package histcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/CloudCante/Tracking-TOO/internal/tracking"
)

// Cache manages serial-history persistence backed by SQLite.
type Cache struct {
	db   *sql.DB
	path string
	ttl  time.Duration
}

// Open initializes or connects to the cache database under dir. Entries older
// than ttl are treated as misses and replaced on the next Put.
func Open(dir string, ttl time.Duration) (*Cache, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("cache dir required")
	}
	if ttl <= 0 {
		return nil, errors.New("cache ttl must be positive")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{db: db, path: dbPath, ttl: ttl}
	if err := cache.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Key builds the cache key for one serial and lookup window. Different
// windows yield different histories, so they cache separately.
func Key(serial string, window tracking.Window) string {
	return serial + "|" + strings.TrimSpace(window.StartDate) + "|" + strings.TrimSpace(window.EndDate)
}

// Get returns the cached history rows for key, reporting a miss for unknown
// or expired entries. A corrupt payload is treated as a miss rather than an
// error; the next Put repairs it.
func (c *Cache) Get(ctx context.Context, key string) ([]tracking.HistoryRecord, bool, error) {
	var payload string
	var fetchedAt int64
	err := c.db.QueryRowContext(ctx,
		"SELECT payload, fetched_at FROM serial_history WHERE cache_key = ?", key,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache: %w", err)
	}

	if time.Since(time.Unix(0, fetchedAt)) > c.ttl {
		return nil, false, nil
	}

	var records []tracking.HistoryRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, false, nil
	}
	return records, true, nil
}

// Put stores the history rows for key, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, key, serial string, records []tracking.HistoryRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode cache payload: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO serial_history (cache_key, serial_number, payload, fetched_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		   serial_number = excluded.serial_number,
		   payload = excluded.payload,
		   fetched_at = excluded.fetched_at`,
		key, serial, string(payload), time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Prune removes expired entries and returns how many were dropped.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-c.ttl).UnixNano()
	res, err := c.db.ExecContext(ctx, "DELETE FROM serial_history WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	dropped, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune cache rows affected: %w", err)
	}
	return dropped, nil
}
