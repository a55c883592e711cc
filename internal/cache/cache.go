package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// CacheDirPerm is the permission for the cache directory (0700 = rwx------)
	CacheDirPerm os.FileMode = 0700
	// CacheFilePerm is the permission for cache files (0600 = rw-------)
	CacheFilePerm os.FileMode = 0600
)

// Cache stores rendered markup pairs on disk, keyed by a hash of the compared
// texts. Entries older than the TTL are treated as missing and removed.
type Cache struct {
	dir string
	ttl time.Duration
}

type CacheEntry struct {
	Hash      string `json:"hash"`
	Before    string `json:"before"`
	After     string `json:"after"`
	Timestamp int64  `json:"timestamp"`
}

// New opens the cache under ~/.sidediff/cache.
func New(ttlDays int) (*Cache, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewInDir(filepath.Join(home, ".sidediff", "cache"), ttlDays)
}

// NewInDir opens a cache rooted at dir, creating it if needed.
func NewInDir(dir string, ttlDays int) (*Cache, error) {
	if ttlDays < 0 {
		return nil, fmt.Errorf("cache TTL days must be non-negative, got %d", ttlDays)
	}
	if err := os.MkdirAll(dir, CacheDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		dir: filepath.Clean(dir),
		ttl: time.Duration(ttlDays) * 24 * time.Hour,
	}, nil
}

// Hash returns the key for a comparison. Parts are joined with a NUL byte so
// that ("ab", "c") and ("a", "bc") hash differently.
func (c *Cache) Hash(parts ...string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(strings.Join(parts, "\x00"))))
}

// Get returns the cached pair for hash. ok is false on a miss, an expired entry,
// or an unreadable entry.
func (c *Cache) Get(hash string) (before, after string, ok bool) {
	path, err := c.entryPath(hash)
	if err != nil {
		return "", "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", false
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", "", false
	}

	if time.Since(time.Unix(entry.Timestamp, 0)) > c.ttl {
		_ = os.Remove(path)
		return "", "", false
	}

	return entry.Before, entry.After, true
}

func (c *Cache) Set(hash, before, after string) error {
	path, err := c.entryPath(hash)
	if err != nil {
		return err
	}

	entry := CacheEntry{
		Hash:      hash,
		Before:    before,
		After:     after,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.WriteFile(path, data, CacheFilePerm); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// entryPath validates hash and returns the file it maps to inside the cache
// directory.
func (c *Cache) entryPath(hash string) (string, error) {
	if hash == "" {
		return "", fmt.Errorf("hash cannot be empty")
	}
	if !isValidHash(hash) {
		return "", fmt.Errorf("invalid hash format")
	}

	path := filepath.Clean(filepath.Join(c.dir, hash+".json"))
	if !strings.HasPrefix(path, c.dir+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid cache path")
	}
	return path, nil
}

// isValidHash validates that the hash is a SHA-256 hex string (64 characters)
func isValidHash(hash string) bool {
	if len(hash) != 64 {
		return false
	}
	for _, r := range hash {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}
