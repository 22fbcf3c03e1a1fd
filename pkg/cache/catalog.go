// Package cache keeps read-mostly catalog lists in memory between writes.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"swc/pkg/telemetry"
)

// Catalog is one named cache. Any write to the catalog must call Invalidate.
type Catalog struct {
	name    string
	c       *gocache.Cache
	metrics *telemetry.Metrics
}

func NewCatalog(name string, ttl time.Duration, m *telemetry.Metrics) *Catalog {
	return &Catalog{name: name, c: gocache.New(ttl, 2*ttl), metrics: m}
}

func (c *Catalog) Get(key string) (any, bool) {
	v, ok := c.c.Get(key)
	if c.metrics != nil {
		result := "miss"
		if ok {
			result = "hit"
		}
		c.metrics.CacheLookups.WithLabelValues(c.name, result).Inc()
	}
	return v, ok
}

func (c *Catalog) Set(key string, v any) { c.c.SetDefault(key, v) }

func (c *Catalog) Invalidate() { c.c.Flush() }

// Load returns the cached value for key or calls fill and caches its result.
func Load[T any](c *Catalog, key string, fill func() (T, error)) (T, error) {
	if c != nil {
		if v, ok := c.Get(key); ok {
			if t, ok := v.(T); ok {
				return t, nil
			}
		}
	}
	t, err := fill()
	if err != nil {
		return t, err
	}
	if c != nil {
		c.Set(key, t)
	}
	return t, nil
}
