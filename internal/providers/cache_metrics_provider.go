package providers

import "shoutd/internal/structures"

// InstrumentedViewCache counts hits and misses on the rendered /shoutouts
// views. Only lookups are counted; stores, clears and resizes pass through.
type InstrumentedViewCache struct {
	views    CacheProviderInterface
	counters MetricsProviderInterface
}

func (c *InstrumentedViewCache) Get(key string) ([]byte, bool) {
	view, hit := c.views.Get(key)
	if !hit {
		c.counters.IncCacheMisses()
		return nil, false
	}
	c.counters.IncCacheHits()
	return view, true
}

func (c *InstrumentedViewCache) Set(key string, view []byte) { c.views.Set(key, view) }
func (c *InstrumentedViewCache) Clear()                      { c.views.Clear() }
func (c *InstrumentedViewCache) Resize(sizeMB int)           { c.views.Resize(sizeMB) }

// NewInstrumentedCacheProvider builds the view cache and counts its lookups.
// A disabled cache stays bare, since every lookup on it would be a miss.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	views := NewCacheProvider(conf, logger)
	if _, disabled := views.(*noopCache); disabled {
		return views
	}
	return &InstrumentedViewCache{views: views, counters: metrics}
}
