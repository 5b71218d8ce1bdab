package accounts

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/opsdeck/opsdeck/internal/rbac"
)

// RepositoryPort defines data access methods for accounts.
type RepositoryPort interface {
	List(ctx context.Context) ([]Account, error)
	FindByUserID(ctx context.Context, userID string) (*Account, error)
	Create(ctx context.Context, acct Account) (Account, error)
	Update(ctx context.Context, id int64, acct Account) (Account, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles account business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

// FindByUserID resolves a login handle.
func (s *Service) FindByUserID(ctx context.Context, userID string) (*Account, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// Register creates a new account. The registration flow checks handle
// uniqueness before any mutation; a collision rejects the draft outright.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Account, error) {
	if _, err := rbac.ParseRole(req.Role); err != nil {
		return Account{}, fmt.Errorf("accounts: register: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, fmt.Errorf("accounts: hash password: %w", err)
	}
	return s.repo.Create(ctx, Account{
		UserID:       req.UserID,
		PasswordHash: string(hash),
		Role:         req.Role,
		Status:       StatusActive,
	})
}

// Update replaces the account with the given id.
func (s *Service) Update(ctx context.Context, id int64, req UpdateAccountRequest) (Account, error) {
	if _, err := rbac.ParseRole(req.Role); err != nil {
		return Account{}, fmt.Errorf("accounts: update: %w", err)
	}
	acct := Account{
		UserID: req.UserID,
		Role:   req.Role,
		Status: req.Status,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return Account{}, fmt.Errorf("accounts: hash password: %w", err)
		}
		acct.PasswordHash = string(hash)
	}
	return s.repo.Update(ctx, id, acct)
}

// Delete removes the account with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
