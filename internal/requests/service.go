package requests

import (
	"context"
	"fmt"

	"github.com/opsdeck/opsdeck/internal/platform/httpx"
	"github.com/opsdeck/opsdeck/internal/shared"
)

// RepositoryPort defines data access methods for permission requests.
type RepositoryPort interface {
	List(ctx context.Context) ([]Request, error)
	Get(ctx context.Context, id int64) (*Request, error)
	Create(ctx context.Context, req Request) (Request, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (Request, error)
}

// Service handles permission request business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all requests.
func (s *Service) List(ctx context.Context) ([]Request, error) {
	return s.repo.List(ctx)
}

// Create stores a new request, always starting Pending.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Request, error) {
	return s.repo.Create(ctx, Request{
		ID:     req.ID,
		Role:   req.Role,
		Text:   req.Text,
		Status: StatusPending,
	})
}

// Decide transitions a pending request to Approved or Denied. Decided
// requests are immutable.
func (s *Service) Decide(ctx context.Context, id int64, status Status) (Request, error) {
	if status != StatusApproved && status != StatusDenied {
		return Request{}, fmt.Errorf("%w: status must be Approved or Denied", httpx.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if current.Status.Terminal() {
		return Request{}, fmt.Errorf("%w: %w", httpx.ErrValidation, shared.ErrTerminalStatus)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
