package requests

import (
	"context"
	"sync"

	"github.com/opsdeck/opsdeck/internal/platform/httpx"
)

// Repository provides in-memory persistence for permission requests.
type Repository struct {
	mu       sync.RWMutex
	requests []Request
}

// NewRepository constructs a repository with the given seed records.
func NewRepository(seed []Request) *Repository {
	records := make([]Request, len(seed))
	copy(records, seed)
	return &Repository{requests: records}
}

// List returns all requests in insertion order.
func (r *Repository) List(ctx context.Context) ([]Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Request, len(r.requests))
	copy(out, r.requests)
	return out, nil
}

// Get returns the request with the given id.
func (r *Repository) Get(ctx context.Context, id int64) (*Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.requests {
		if r.requests[i].ID == id {
			req := r.requests[i]
			return &req, nil
		}
	}
	return nil, httpx.ErrNotFound
}

// Create appends a request carrying a client-assigned id.
func (r *Repository) Create(ctx context.Context, req Request) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == req.ID {
			return Request{}, httpx.ErrDuplicate
		}
	}
	r.requests = append(r.requests, req)
	return req, nil
}

// UpdateStatus changes only the status of the request with the given id.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status Status) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == id {
			r.requests[i].Status = status
			return r.requests[i], nil
		}
	}
	return Request{}, httpx.ErrNotFound
}
