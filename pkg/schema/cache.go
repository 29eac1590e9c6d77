// Package schema caches the label and relationship-type inventory of the
// connected graph engine, assigning each label a stable display color.
//
// The cache is process-lifetime shared state: one Cache serves every render
// in the process. Refreshes re-enumerate labels and types through an
// injected Enumerator and re-run color allocation under a single mutex, so
// concurrent renders never interleave their allocation passes.
//
// Color guarantees:
//   - no two labels share a color within one refresh result
//   - a label keeps its previous color across refreshes as long as it keeps
//     appearing and no earlier label in enumeration order claimed the color
//     first
//   - colors of labels that disappear are retained, so a label that comes
//     back gets its old color
package schema

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Enumerator lists the current labels and relationship types of the engine.
// Implementations run the `CALL db.labels()` and
// `CALL db.relationshipTypes()` procedures, in enumeration order.
type Enumerator interface {
	Labels(ctx context.Context) ([]string, error)
	RelationshipTypes(ctx context.Context) ([]string, error)
}

// ColorStore persists label colors between processes so a restarted viewer
// shows a graph in the same colors. Optional; see the colorstore package
// for the Badger-backed implementation.
type ColorStore interface {
	Load() (map[string]string, error)
	Save(colors map[string]string) error
}

// Cache holds the refreshable label→color mapping and relationship-type
// set. All methods are safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	enum  Enumerator
	store ColorStore

	labels   map[string]string   // current mapping, nil until first refresh
	assigned map[string]string   // every assignment ever made, never pruned
	types    map[string]struct{} // nil until first refresh
}

// Option configures a Cache.
type Option func(*Cache)

// WithColorStore attaches persistent color storage. Previously stored
// assignments seed the sticky-color memory; every successful refresh is
// written back. Store failures are logged, never fatal.
func WithColorStore(store ColorStore) Option {
	return func(c *Cache) { c.store = store }
}

// NewCache creates a cache backed by the given enumerator. Nothing is
// enumerated until the first Labels or Types call.
func NewCache(enum Enumerator, opts ...Option) *Cache {
	c := &Cache{
		enum:     enum,
		assigned: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store != nil {
		stored, err := c.store.Load()
		if err != nil {
			log.Printf("schema: color store load failed: %v", err)
		} else {
			for label, color := range stored {
				c.assigned[label] = color
			}
		}
	}
	return c
}

// Labels returns the label→color mapping, enumerating on first use or when
// refresh is true. The returned map is a copy; mutating it does not affect
// the cache. An enumeration failure propagates and leaves the previous
// mapping intact.
func (c *Cache) Labels(ctx context.Context, refresh bool) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.labels == nil || refresh {
		if err := c.refreshLabels(ctx); err != nil {
			return nil, fmt.Errorf("enumerating labels: %w", err)
		}
	}

	out := make(map[string]string, len(c.labels))
	for label, color := range c.labels {
		out[label] = color
	}
	return out, nil
}

// Types returns the known relationship type names sorted, enumerating on
// first use or when refresh is true.
func (c *Cache) Types(ctx context.Context, refresh bool) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.types == nil || refresh {
		names, err := c.enum.RelationshipTypes(ctx)
		if err != nil {
			return nil, fmt.Errorf("enumerating relationship types: %w", err)
		}
		types := make(map[string]struct{}, len(names))
		for _, name := range names {
			types[name] = struct{}{}
		}
		c.types = types
	}

	out := make([]string, 0, len(c.types))
	for name := range c.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// refreshLabels re-enumerates labels and allocates colors. Caller holds mu.
func (c *Cache) refreshLabels(ctx context.Context) error {
	names, err := c.enum.Labels(ctx)
	if err != nil {
		return err
	}

	labels := make(map[string]string, len(names))
	used := make(map[string]struct{}, len(names))
	cursor := 0
	for _, name := range names {
		color := c.assigned[name]
		for {
			if _, taken := used[color]; color != "" && !taken {
				break
			}
			color = colorAt(cursor)
			cursor++
		}
		used[color] = struct{}{}
		labels[name] = color
		c.assigned[name] = color
	}
	c.labels = labels

	if c.store != nil {
		if err := c.store.Save(c.assigned); err != nil {
			log.Printf("schema: color store save failed: %v", err)
		}
	}
	return nil
}
