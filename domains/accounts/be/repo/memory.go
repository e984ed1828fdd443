package repo

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	platformauth "github.com/lettify/lettify/platform/go/auth"
	"github.com/lettify/lettify/platform/go/persistence"
)

// MemoryRepository is a simple in-memory implementation suitable for tests and
// early development.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[platformauth.Role]map[uuid.UUID]persistence.Account
}

// NewMemoryRepository constructs a MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts: map[platformauth.Role]map[uuid.UUID]persistence.Account{
			platformauth.RoleLandlord: {},
			platformauth.RoleTenant:   {},
		},
	}
}

func (r *MemoryRepository) Create(ctx context.Context, role platformauth.Role, params persistence.CreateAccountParams) (persistence.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.TrimSpace(params.Email)
	for _, existing := range r.accounts[role] {
		if existing.Email == email {
			return persistence.Account{}, persistence.ErrAccountConflict
		}
	}

	account := persistence.Account{
		ID:           params.ID,
		FirstName:    strings.TrimSpace(params.FirstName),
		LastName:     strings.TrimSpace(params.LastName),
		Email:        email,
		PasswordHash: params.PasswordHash,
	}
	r.accounts[role][account.ID] = account
	return account, nil
}

func (r *MemoryRepository) Get(ctx context.Context, role platformauth.Role, id uuid.UUID) (persistence.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[role][id]
	if !ok {
		return persistence.Account{}, persistence.ErrAccountNotFound
	}
	return account, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, role platformauth.Role, email string) (persistence.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.accounts[role] {
		if account.Email == strings.TrimSpace(email) {
			return account, nil
		}
	}
	return persistence.Account{}, persistence.ErrAccountNotFound
}

func (r *MemoryRepository) UpdateProfile(ctx context.Context, role platformauth.Role, id uuid.UUID, params persistence.UpdateAccountProfileParams) (persistence.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[role][id]
	if !ok {
		return persistence.Account{}, persistence.ErrAccountNotFound
	}

	email := strings.TrimSpace(params.Email)
	for otherID, other := range r.accounts[role] {
		if otherID != id && other.Email == email {
			return persistence.Account{}, persistence.ErrAccountConflict
		}
	}

	account.FirstName = strings.TrimSpace(params.FirstName)
	account.LastName = strings.TrimSpace(params.LastName)
	account.Email = email
	r.accounts[role][id] = account
	return account, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, role platformauth.Role, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[role][id]; !ok {
		return persistence.ErrAccountNotFound
	}
	delete(r.accounts[role], id)
	return nil
}

// Ensure interface compliance.
var _ Repository = (*MemoryRepository)(nil)
