package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/opsdeck/opsdeck/internal/accounts"
	"github.com/opsdeck/opsdeck/internal/rbac"
	"github.com/opsdeck/opsdeck/internal/shared"
)

// Directory defines the account lookups auth depends on.
type Directory interface {
	FindByUserID(ctx context.Context, userID string) (*accounts.Account, error)
	Register(ctx context.Context, req accounts.RegisterRequest) (accounts.Account, error)
}

// Service wraps authentication business rules.
type Service struct {
	directory Directory
	tokens    *TokenStore
}

// NewService constructs a new Service.
func NewService(directory Directory, tokens *TokenStore) *Service {
	return &Service{directory: directory, tokens: tokens}
}

// Authenticate validates handle/password credentials and issues a bearer
// token on success.
func (s *Service) Authenticate(ctx context.Context, userID, password string) (*rbac.Principal, string, error) {
	acct, err := s.directory.FindByUserID(ctx, userID)
	if err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	if acct.Status != accounts.StatusActive {
		return nil, "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	role, err := rbac.ParseRole(acct.Role)
	if err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	principal := &rbac.Principal{UserID: acct.ID, Handle: acct.UserID, Role: role}
	token, err := s.tokens.Issue(ctx, principal)
	if err != nil {
		return nil, "", err
	}
	return principal, token, nil
}

// Register creates a new account through the directory.
func (s *Service) Register(ctx context.Context, req accounts.RegisterRequest) error {
	_, err := s.directory.Register(ctx, req)
	return err
}

// Logout revokes the bearer token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}
