package providers

import (
	"shoutd/internal/structures"
	"sync"
	"unsafe"

	"github.com/coocood/freecache"
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Clear()
	Resize(sizeMB int)
}

// CacheProvider holds rendered read views. Keys carry the log generation
// they were computed for, so entries never need to expire on a timer.
type CacheProvider struct {
	mu     sync.RWMutex
	cache  *freecache.Cache
	logger Logger
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Cache disabled")
		return &noopCache{}
	}

	sizeBytes := conf.Cache.Size * 1024 * 1024
	logger.Infof(TypeApp, "Cache initialized: %dMB", conf.Cache.Size)

	return &CacheProvider{
		cache:  freecache.NewCache(sizeBytes),
		logger: logger,
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// Safe because freecache copies keys internally and never writes to them.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) current() *freecache.Cache {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.current().Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) {
	_ = c.current().Set(unsafeStringToBytes(key), value, 0)
}

func (c *CacheProvider) Clear() {
	c.current().Clear()
}

// Resize swaps in an empty cache of sizeMB megabytes. Cached views are
// dropped; they are rebuilt from the log on the next read.
func (c *CacheProvider) Resize(sizeMB int) {
	if sizeMB <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = freecache.NewCache(sizeMB * 1024 * 1024)
	c.logger.Infof(TypeApp, "Cache resized: %dMB", sizeMB)
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
func (n *noopCache) Clear()                      {}
func (n *noopCache) Resize(_ int)                {}
