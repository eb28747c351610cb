package discidcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"audiobind/internal/logging"
)

// Entry maps a MusicBrainz disc ID to the release resolved for it.
type Entry struct {
	DiscID    string    `json:"disc_id"`
	ReleaseID string    `json:"release_id,omitempty"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist,omitempty"`
	Tracks    []string  `json:"tracks,omitempty"`
	CachedAt  time.Time `json:"cached_at"`
}

// Cache is a JSON-file backed disc ID lookup table safe for concurrent use.
type Cache struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCache opens the cache at path. An empty path yields a cache whose
// operations are all no-ops. The file itself is only written on change.
func NewCache(path string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNop()
	}
	c := &Cache{
		path:    path,
		logger:  logging.NewComponentLogger(logger, "discidcache"),
		entries: make(map[string]Entry),
	}
	if path == "" {
		return c
	}
	if err := c.load(); err != nil {
		logging.WarnWithContext(c.logger, "failed to load disc id cache", "discidcache_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "cache will start empty"),
			logging.String(logging.FieldImpact, "discs will be looked up in musicbrainz again"),
		)
	}
	return c
}

// Path returns the backing file, or "" for a disabled cache.
func (c *Cache) Path() string {
	return c.path
}

// Lookup returns the entry cached for discID.
func (c *Cache) Lookup(discID string) (Entry, bool) {
	discID = strings.TrimSpace(discID)
	if discID == "" || c.path == "" {
		return Entry{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[discID]
	return entry, ok
}

// Store adds or replaces the entry for entry.DiscID and saves the file.
// A zero CachedAt is stamped with the current time.
func (c *Cache) Store(entry Entry) error {
	entry.DiscID = strings.TrimSpace(entry.DiscID)
	if entry.DiscID == "" {
		return errors.New("disc ID cannot be empty")
	}
	if c.path == "" {
		return nil
	}
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now().UTC()
	}
	entry.Tracks = append([]string(nil), entry.Tracks...)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.DiscID] = entry
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	c.logger.Debug("cached disc release",
		logging.String("disc_id", entry.DiscID),
		logging.String("title", entry.Title),
		logging.Int("tracks", len(entry.Tracks)),
	)
	return nil
}

// Remove deletes the entry for discID. Removing an unknown ID is an error.
func (c *Cache) Remove(discID string) error {
	discID = strings.TrimSpace(discID)
	if discID == "" {
		return errors.New("disc ID cannot be empty")
	}
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[discID]; !ok {
		return fmt.Errorf("disc ID %q not found in cache", discID)
	}
	delete(c.entries, discID)
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	c.logger.Debug("removed disc id from cache", logging.String("disc_id", discID))
	return nil
}

// List returns every entry, newest first.
func (c *Cache) List() []Entry {
	if c.path == "" {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sorted()
}

// Clear drops every entry and saves the empty cache.
func (c *Cache) Clear() error {
	if c.path == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	c.logger.Debug("cleared disc id cache")
	return nil
}

// Count returns the number of cached discs.
func (c *Cache) Count() int {
	if c.path == "" {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) sorted() []Entry {
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CachedAt.Equal(entries[j].CachedAt) {
			return entries[i].DiscID < entries[j].DiscID
		}
		return entries[i].CachedAt.After(entries[j].CachedAt)
	})
	return entries
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}
	c.entries = make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.DiscID) != "" {
			c.entries[entry.DiscID] = entry
		}
	}
	c.logger.Debug("loaded disc id cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("path", c.path),
	)
	return nil
}

// save writes the file via a temp file and rename. Callers hold mu.
func (c *Cache) save() error {
	data, err := json.MarshalIndent(c.sorted(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
