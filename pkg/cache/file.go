package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	lrerrors "github.com/matzehuels/layerroute/pkg/errors"
)

// FileExt is the extension of cache entry files.
const FileExt = ".cache"

// FileCache implements a file-based cache for CLI usage.
//
// In directory mode every key is stored as <dir>/<key>.cache. In single-file
// mode (see [NewFileCacheAt]) every key maps to the one explicit path, which
// is how a user-chosen cache file is honored.
type FileCache struct {
	dir  string
	file string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, lrerrors.Wrap(lrerrors.ErrCodeInvalidPath, err, "create cache directory %s", dir)
	}
	return &FileCache{dir: dir}, nil
}

// NewFileCacheAt creates a cache that stores its single entry at path.
func NewFileCacheAt(path string) (*FileCache, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, lrerrors.Wrap(lrerrors.ErrCodeInvalidPath, err, "create cache directory %s", dir)
	}
	return &FileCache{dir: dir, file: path}, nil
}

// cacheEntry wraps cached data with metadata.
type cacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Get retrieves a value from the cache. An entry that is not valid JSON is
// removed and reported as CACHE_CORRUPT.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := c.Path(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, lrerrors.Wrap(lrerrors.ErrCodeCacheCorrupt, err, "cache entry %s", path)
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores a value in the cache. A zero ttl never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	path, err := c.Path(key)
	if err != nil {
		return err
	}

	entry := cacheEntry{Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	// Write to a sibling and rename so readers never see a partial entry.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, entryData, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path, err := c.Path(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes every cache entry the cache owns and returns how many were
// removed. In directory mode that is every *.cache file directly in the
// directory; other files are left alone.
func (c *FileCache) Clear(ctx context.Context) (int, error) {
	if c.file != "" {
		err := os.Remove(c.file)
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		return 1, nil
	}

	matches, err := filepath.Glob(filepath.Join(c.dir, "*"+FileExt))
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			return n, err
		}
		n++
	}
	return n, nil
}

// Dir returns the directory entries are stored in.
func (c *FileCache) Dir() string { return c.dir }

// Path returns the file that holds key.
func (c *FileCache) Path(key string) (string, error) {
	if c.file != "" {
		return c.file, nil
	}
	if err := lrerrors.ValidateCacheKey(key); err != nil {
		return "", err
	}
	return filepath.Join(c.dir, key+FileExt), nil
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// String names the backend in logs and metrics.
func (c *FileCache) String() string { return "file" }

var (
	_ Cache   = (*FileCache)(nil)
	_ Clearer = (*FileCache)(nil)
)
