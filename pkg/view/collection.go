// Package view keeps a client-side copy of one remote collection in step with
// the server. It never patches the copy locally: every successful mutation is
// followed by a full refetch, and a failed fetch leaves the previous copy
// untouched.
package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	types "github.com/getmockd/storeadmin/pkg/api/types"
	"github.com/getmockd/storeadmin/pkg/logging"
)

// ErrStale wraps a refetch failure that followed a successful mutation. The
// mutation took effect on the server; the held items predate it.
var ErrStale = errors.New("collection is stale")

// ErrUnsupported is returned by CRUD methods whose operation is nil.
var ErrUnsupported = errors.New("operation not supported")

// Lister fetches a full collection.
type Lister[R any] interface {
	ListAll(ctx context.Context) ([]R, error)
}

// ListerFunc adapts a function to Lister.
type ListerFunc[R any] func(ctx context.Context) ([]R, error)

// ListAll calls f.
func (f ListerFunc[R]) ListAll(ctx context.Context) ([]R, error) { return f(ctx) }

// Collection holds the last successfully fetched items of one resource.
type Collection[R any] struct {
	name   string
	src    Lister[R]
	logger *slog.Logger

	mu     sync.RWMutex
	items  []R
	loaded bool
}

// Option configures a Collection.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger for load failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewCollection creates an empty, unloaded collection.
func NewCollection[R any](name string, src Lister[R], opts ...Option) *Collection[R] {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Nop()
	}
	return &Collection[R]{name: name, src: src, logger: o.logger}
}

// Load fetches the collection and replaces the held items. On failure the
// previous items are kept and the error is returned.
func (c *Collection[R]) Load(ctx context.Context) error {
	items, err := c.src.ListAll(ctx)
	if err != nil {
		c.logger.Warn("load failed, keeping previous items", "resource", c.name, "error", err)
		return err
	}
	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()
	c.logger.Debug("loaded", "resource", c.name, "count", len(items))
	return nil
}

// Items returns a copy of the held items.
func (c *Collection[R]) Items() []R {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]R, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of held items.
func (c *Collection[R]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Loaded reports whether a load has ever succeeded. It separates "nothing
// fetched yet" from "fetched zero records".
func (c *Collection[R]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Mutate runs fn and, if it succeeds, reloads the collection. A failed
// mutation is returned as-is without a reload. A failed reload after a
// successful mutation is returned wrapped in ErrStale.
func (c *Collection[R]) Mutate(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// Reload refetches the collection after a change reached the server. A
// failure is returned wrapped in ErrStale.
func (c *Collection[R]) Reload(ctx context.Context) error {
	if err := c.Load(ctx); err != nil {
		return fmt.Errorf("%w: reload %s: %w", ErrStale, c.name, err)
	}
	return nil
}

// Find returns the first held item matching pred.
func (c *Collection[R]) Find(pred func(R) bool) (R, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if pred(it) {
			return it, true
		}
	}
	var zero R
	return zero, false
}

// Identified is a record that knows its server ID.
type Identified interface {
	RecordID() types.ID
}

// Get returns the held item with the given ID.
func Get[R Identified](c *Collection[R], id types.ID) (R, bool) {
	return c.Find(func(r R) bool { return r.RecordID() == id })
}
