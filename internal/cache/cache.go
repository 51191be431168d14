// Package cache provides a content-addressed store for finalized metrics
// records, so unchanged files skip re-analysis across runs.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
)

// Cache is a file-backed cache keyed by source content hash.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

// Entry wraps a cached payload with its freshness timestamp.
type Entry struct {
	Hash      string    `json:"hash"`
	Timestamp time.Time `json:"timestamp"`
	Data      []byte    `json:"data"`
}

// New creates a cache rooted at dir. A disabled cache is a no-op.
func New(dir string, ttlHours int, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlHours) * time.Hour,
		enabled: true,
	}, nil
}

// HashBytes computes a BLAKE3 content hash as a hex string.
func HashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached payload if present and not expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	path := c.keyPath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if c.ttl > 0 && time.Since(entry.Timestamp) > c.ttl {
		os.Remove(path)
		return nil, false
	}

	return entry.Data, true
}

// Put stores a payload under key. Write errors are swallowed: the cache is
// an optimization, not a source of truth.
func (c *Cache) Put(key string, data []byte) {
	if !c.enabled {
		return
	}

	entry := Entry{
		Hash:      key,
		Timestamp: time.Now(),
		Data:      data,
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_ = os.WriteFile(c.keyPath(key), raw, 0o644)
}

// keyPath shortens arbitrary keys into fixed-width filenames.
func (c *Cache) keyPath(key string) string {
	short := xxhash.Sum64String(key)
	return filepath.Join(c.dir, fmt.Sprintf("%016x.json", short))
}
