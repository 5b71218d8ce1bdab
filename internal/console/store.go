package console

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
)

// Resource describes one collection endpoint of the Resource Service.
type Resource[T any] struct {
	// Path is the collection path, e.g. "/api/sales".
	Path string
	// ID extracts the record identifier used for id-targeted mutations.
	ID func(T) int64
}

// Collection is the client-side cache of one resource collection. The cache
// is authoritative only until the next mutation: every successful write is
// followed by a full reload rather than a local patch (reload-to-reconcile),
// which trades one extra round trip for immunity to local/remote drift.
//
// Overlapping mutations are not serialized: when two writes race, both
// reconciling loads race too and the later-resolving response wins the
// cache. Acceptable for a single-operator tool; do not "fix" silently.
type Collection[T any] struct {
	client *Client
	res    Resource[T]
	logger *slog.Logger

	mu      sync.RWMutex
	records []T
	loaded  bool
}

// NewCollection builds a Collection over the given resource.
func NewCollection[T any](client *Client, res Resource[T], logger *slog.Logger) *Collection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection[T]{client: client, res: res, logger: logger}
}

// Load fetches the full collection and replaces the cache wholesale. On
// failure the cache keeps its previous value (stale-but-available) and the
// error is both traced and returned; there is no retry.
func (c *Collection[T]) Load(ctx context.Context) error {
	var fetched []T
	if err := c.client.do(ctx, http.MethodGet, c.res.Path, nil, &fetched); err != nil {
		c.logger.Debug("collection load failed, keeping stale cache",
			slog.String("path", c.res.Path), slog.Any("error", err))
		return fmt.Errorf("console: load %s: %w", c.res.Path, err)
	}
	c.mu.Lock()
	c.records = fetched
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the cached records in server order.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

// Len reports the cached record count.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Loaded reports whether an initial Load has succeeded.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Create submits a fully-formed record and reconciles on success. On failure
// the cache is unchanged and the error is surfaced to the caller.
func (c *Collection[T]) Create(ctx context.Context, record T) error {
	if err := c.client.do(ctx, http.MethodPost, c.res.Path, record, nil); err != nil {
		return fmt.Errorf("console: create %s: %w", c.res.Path, err)
	}
	return c.Load(ctx)
}

// Update submits a full replacement record for the given id and reconciles
// on success. NotFound propagates; there is no retry.
func (c *Collection[T]) Update(ctx context.Context, id int64, record T) error {
	path := fmt.Sprintf("%s/%d", c.res.Path, id)
	if err := c.client.do(ctx, http.MethodPut, path, record, nil); err != nil {
		return fmt.Errorf("console: update %s: %w", path, err)
	}
	return c.Load(ctx)
}

// Patch submits a partial body for the given id and reconciles on success.
// The permission request status transition is the one caller.
func (c *Collection[T]) Patch(ctx context.Context, id int64, body any) error {
	path := fmt.Sprintf("%s/%d", c.res.Path, id)
	if err := c.client.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("console: update %s: %w", path, err)
	}
	return c.Load(ctx)
}

// Delete removes the record at the Resource Service and reconciles on
// success.
func (c *Collection[T]) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", c.res.Path, id)
	if err := c.client.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("console: delete %s: %w", path, err)
	}
	return c.Load(ctx)
}
