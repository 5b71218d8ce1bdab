package accounts

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/opsdeck/opsdeck/internal/platform/httpx"
)

// Repository provides in-memory persistence seeded from the fixture dataset.
// The collection lives for the process lifetime only; durable storage is out
// of scope for the dashboard.
type Repository struct {
	mu       sync.RWMutex
	accounts []Account
	nextID   int64
}

// NewRepository constructs a repository from fixture seeds, hashing each
// seed password. The id counter starts above the seeded maximum so deletes
// can never lead to id reuse.
func NewRepository(seeds []Seed) (*Repository, error) {
	repo := &Repository{nextID: 1}
	for _, seed := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("accounts: hash seed password: %w", err)
		}
		repo.accounts = append(repo.accounts, Account{
			ID:           repo.nextID,
			UserID:       seed.UserID,
			PasswordHash: string(hash),
			Role:         seed.Role,
			Status:       seed.Status,
		})
		repo.nextID++
	}
	return repo, nil
}

// List returns all accounts in insertion order.
func (r *Repository) List(ctx context.Context) ([]Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Account, len(r.accounts))
	copy(out, r.accounts)
	return out, nil
}

// FindByUserID returns the account with the given login handle.
func (r *Repository) FindByUserID(ctx context.Context, userID string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.accounts {
		if strings.EqualFold(r.accounts[i].UserID, userID) {
			acct := r.accounts[i]
			return &acct, nil
		}
	}
	return nil, httpx.ErrNotFound
}

// Create inserts a new account, assigning its id. Fails with ErrDuplicate
// when the handle is already taken.
func (r *Repository) Create(ctx context.Context, acct Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if strings.EqualFold(r.accounts[i].UserID, acct.UserID) {
			return Account{}, httpx.ErrDuplicate
		}
	}
	acct.ID = r.nextID
	r.nextID++
	r.accounts = append(r.accounts, acct)
	return acct, nil
}

// Update replaces the account with the given id.
func (r *Repository) Update(ctx context.Context, id int64, acct Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].ID != id {
			continue
		}
		for j := range r.accounts {
			if j != i && strings.EqualFold(r.accounts[j].UserID, acct.UserID) {
				return Account{}, httpx.ErrDuplicate
			}
		}
		acct.ID = id
		if acct.PasswordHash == "" {
			acct.PasswordHash = r.accounts[i].PasswordHash
		}
		r.accounts[i] = acct
		return acct, nil
	}
	return Account{}, httpx.ErrNotFound
}

// Delete removes the account with the given id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return httpx.ErrNotFound
}
