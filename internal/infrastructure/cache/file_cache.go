// Package cache persists translation results between invocations as JSON
// files addressed by hash key.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// FileCache stores one translation per file under dir. Stale entries are
// removed lazily on read; the entry count is bounded by evicting the oldest
// files after each write.
type FileCache struct {
	dir        string
	ttl        time.Duration
	maxEntries int
	mu         sync.Mutex
}

// NewFileCache creates a cache rooted at dir. Nonpositive ttl or maxEntries
// fall back to the defaults.
func NewFileCache(dir string, ttl time.Duration, maxEntries int) *FileCache {
	if ttl <= 0 {
		ttl = domain.DefaultCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = domain.DefaultMaxCacheEntries
	}
	return &FileCache{dir: dir, ttl: ttl, maxEntries: maxEntries}
}

// Get retrieves a fresh entry by key. Expired entries are deleted and
// reported as misses; read problems are also misses, never errors, because
// a broken cache must not break translation.
func (c *FileCache) Get(key string) (domain.CacheEntry, bool) {
	if key == "" {
		return domain.CacheEntry{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.pathFor(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.CacheEntry{}, false
	}
	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return domain.CacheEntry{}, false
	}
	if time.Since(entry.CreatedAt) > c.ttl {
		_ = os.Remove(path)
		return domain.CacheEntry{}, false
	}
	return entry, true
}

// Set stores an entry and evicts the oldest files past the entry cap.
func (c *FileCache) Set(entry domain.CacheEntry) error {
	if entry.Key == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.pathFor(entry.Key), data, domain.LogFilePermissions); err != nil {
		return err
	}
	c.evict()
	return nil
}

// Entries lists cached translations, newest first. Best effort: unreadable
// files are skipped.
func (c *FileCache) Entries() []domain.CacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	files, err := os.ReadDir(c.dir)
	if err != nil {
		return nil
	}
	var entries []domain.CacheEntry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir, f.Name()))
		if err != nil {
			continue
		}
		var entry domain.CacheEntry
		if err := json.Unmarshal(data, &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	return entries
}

// Clear removes the whole cache directory.
func (c *FileCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(c.dir)
}

// Dir exposes the cache directory path.
func (c *FileCache) Dir() string {
	return c.dir
}

func (c *FileCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// evict removes the oldest files until the count fits. Held under mu.
func (c *FileCache) evict() {
	files, err := os.ReadDir(c.dir)
	if err != nil || len(files) <= c.maxEntries {
		return
	}
	type aged struct {
		name string
		mod  time.Time
	}
	var infos []aged
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		infos = append(infos, aged{name: f.Name(), mod: info.ModTime()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].mod.Before(infos[j].mod) })
	for len(infos) > c.maxEntries {
		_ = os.Remove(filepath.Join(c.dir, infos[0].name))
		infos = infos[1:]
	}
}

var _ ports.CacheStore = (*FileCache)(nil)
