package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"mocksmith/internal/project"
	"mocksmith/internal/version"
)

// Bump when CachePayload changes shape.
const cacheSchemaVersion uint16 = 1

// CachePayload is the cached output of one definition file.
type CachePayload struct {
	Schema  uint16
	Version string
	Source  string
	Doubles []string
	Content []byte
}

// DiskCache stores rendered output keyed by input digest, with an in-process
// layer in front of the files. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
	mem map[project.Digest]*CachePayload

	hits   atomic.Uint64
	misses atomic.Uint64
}

// OpenDiskCache opens $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &DiskCache{dir: dir, mem: make(map[project.Digest]*CachePayload)}, nil
}

// Dir is the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	// подкаталог "out", чтобы было что чистить руками
	return filepath.Join(c.dir, "out", key.String()+".mp")
}

// Put writes payload atomically: encode into a temp file, then rename.
func (c *DiskCache) Put(key project.Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	payload.Schema = cacheSchemaVersion
	payload.Version = version.Version

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem[key] = payload

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get looks key up. Entries from another schema or generator version count
// as misses.
func (c *DiskCache) Get(key project.Digest) (*CachePayload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	if p, ok := c.mem[key]; ok {
		c.mu.RUnlock()
		c.hits.Add(1)
		return p, true, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		c.misses.Add(1)
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload CachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		c.misses.Add(1)
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	if payload.Schema != cacheSchemaVersion || payload.Version != version.Version {
		c.misses.Add(1)
		return nil, false, nil
	}

	c.mu.Lock()
	c.mem[key] = &payload
	c.mu.Unlock()
	c.hits.Add(1)
	return &payload, true, nil
}

// Stats reports hits and misses since the cache was opened.
func (c *DiskCache) Stats() (hits, misses uint32) {
	if c == nil {
		return 0, 0
	}
	var err error
	if hits, err = safecast.Conv[uint32](c.hits.Load()); err != nil {
		hits = ^uint32(0)
	}
	if misses, err = safecast.Conv[uint32](c.misses.Load()); err != nil {
		misses = ^uint32(0)
	}
	return hits, misses
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem = make(map[project.Digest]*CachePayload)
	if err := os.RemoveAll(filepath.Join(c.dir, "out")); err != nil {
		return fmt.Errorf("drop cache: %w", err)
	}
	return nil
}
