package regclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Cache keys. Each key holds at most one value and is overwritten, never
// appended.
const (
	KeyLastSubmission    = "lastWorkerSubmission"
	KeyPendingSubmission = "pendingWorkerSubmission"
)

// Cache is the client-local persistent key-value store backing the
// submission flow, the moral equivalent of the website's localStorage.
type Cache interface {
	Put(key string, value any) error
	Get(key string, dest any) (bool, error)
	Delete(key string) error
}

// FileCache stores each key as a JSON file in a directory.
type FileCache struct {
	dir string
}

// NewFileCache creates the directory if needed and returns a cache over it.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

// Put overwrites the value stored under key.
func (c *FileCache) Put(key string, value any) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := os.WriteFile(c.path(key), raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Get loads the value stored under key into dest. The second return is
// false when the key has never been written (or was deleted).
func (c *FileCache) Get(key string, dest any) (bool, error) {
	raw, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (c *FileCache) Delete(key string) error {
	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}
