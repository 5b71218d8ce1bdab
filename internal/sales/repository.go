package sales

import (
	"context"
	"sync"

	"github.com/opsdeck/opsdeck/internal/platform/httpx"
)

// Repository provides in-memory persistence for sales, seeded from the
// fixture dataset.
type Repository struct {
	mu    sync.RWMutex
	sales []Sale
}

// NewRepository constructs a repository with the given seed records.
func NewRepository(seed []Sale) *Repository {
	records := make([]Sale, len(seed))
	copy(records, seed)
	return &Repository{sales: records}
}

// List returns all sales in insertion order.
func (r *Repository) List(ctx context.Context) ([]Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Sale, len(r.sales))
	copy(out, r.sales)
	return out, nil
}

// Create appends a sale carrying a client-assigned id.
func (r *Repository) Create(ctx context.Context, sale Sale) (Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sales {
		if r.sales[i].ID == sale.ID {
			return Sale{}, httpx.ErrDuplicate
		}
	}
	r.sales = append(r.sales, sale)
	return sale, nil
}

// Update replaces the sale with the given id.
func (r *Repository) Update(ctx context.Context, id int64, sale Sale) (Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sales {
		if r.sales[i].ID == id {
			sale.ID = id
			r.sales[i] = sale
			return sale, nil
		}
	}
	return Sale{}, httpx.ErrNotFound
}

// Delete removes the sale with the given id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sales {
		if r.sales[i].ID == id {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return httpx.ErrNotFound
}
