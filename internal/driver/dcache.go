package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"lread/internal/reader"
	"lread/internal/token"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// Digest is a sha256 cache key.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// CacheKey: H(schema || comment policy || max depth || content). Anything
// that changes the read result must be part of the key.
func CacheKey(content []byte, opts reader.Options) Digest {
	depth := opts.MaxDepth
	if depth <= 0 {
		depth = reader.DefaultMaxDepth
	}
	h := sha256.New()
	fmt.Fprintf(h, "lread/%d/%s/%d\x00", diskCacheSchemaVersion, opts.Comments, depth)
	_, _ = h.Write(content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DiskCache хранит результаты чтения файлов на диске, по ключу CacheKey.
// Failed reads are never stored. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached result of one successful read.
type DiskPayload struct {
	Schema uint16
	Path   string
	Forms  []*token.Record
}

// OpenDiskCache opens the cache in dir, or in $XDG_CACHE_HOME/<app> when dir
// is empty.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "forms", key.String()+".mp")
}

// Put serializes forms and writes them under key, replacing the file
// atomically.
func (c *DiskCache) Put(key Digest, path string, forms []token.Token) (err error) {
	if c == nil {
		return nil
	}
	payload := DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   path,
		Forms:  make([]*token.Record, len(forms)),
	}
	for i, f := range forms {
		payload.Forms[i] = token.ToRecord(f)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get returns the forms stored under key. A missing entry or one written
// by another schema version is a miss, not an error.
func (c *DiskCache) Get(key Digest) (forms []token.Token, ok bool, err error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}

	forms = make([]token.Token, len(payload.Forms))
	for i, rec := range payload.Forms {
		if forms[i], err = rec.Token(); err != nil {
			return nil, false, fmt.Errorf("decode cache entry %s: %w", key, err)
		}
	}
	return forms, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "forms"))
}
