package sales

import "context"

// RepositoryPort defines data access methods for sales.
type RepositoryPort interface {
	List(ctx context.Context) ([]Sale, error)
	Create(ctx context.Context, sale Sale) (Sale, error)
	Update(ctx context.Context, id int64, sale Sale) (Sale, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles sales business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all sales.
func (s *Service) List(ctx context.Context) ([]Sale, error) {
	return s.repo.List(ctx)
}

// Create stores a new sale record.
func (s *Service) Create(ctx context.Context, req UpsertSaleRequest) (Sale, error) {
	return s.repo.Create(ctx, Sale{ID: req.ID, Product: req.Product, Amount: req.Amount, Date: req.Date})
}

// Update replaces the sale with the given id.
func (s *Service) Update(ctx context.Context, id int64, req UpsertSaleRequest) (Sale, error) {
	return s.repo.Update(ctx, id, Sale{ID: id, Product: req.Product, Amount: req.Amount, Date: req.Date})
}

// Delete removes the sale with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
