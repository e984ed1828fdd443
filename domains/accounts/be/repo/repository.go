package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	platformauth "github.com/lettify/lettify/platform/go/auth"
	"github.com/lettify/lettify/platform/go/persistence"
)

// Repository defines the persistence operations required by the accounts service.
type Repository interface {
	Create(ctx context.Context, role platformauth.Role, params persistence.CreateAccountParams) (persistence.Account, error)
	Get(ctx context.Context, role platformauth.Role, id uuid.UUID) (persistence.Account, error)
	GetByEmail(ctx context.Context, role platformauth.Role, email string) (persistence.Account, error)
	UpdateProfile(ctx context.Context, role platformauth.Role, id uuid.UUID, params persistence.UpdateAccountProfileParams) (persistence.Account, error)
	Delete(ctx context.Context, role platformauth.Role, id uuid.UUID) error
}

type postgresRepository struct {
	store *persistence.AccountStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(store *persistence.AccountStore) Repository {
	if store == nil {
		panic("account store is required")
	}
	return &postgresRepository{store: store}
}

func (r *postgresRepository) Create(ctx context.Context, role platformauth.Role, params persistence.CreateAccountParams) (persistence.Account, error) {
	kind, err := kindFor(role)
	if err != nil {
		return persistence.Account{}, err
	}
	return r.store.CreateAccount(ctx, kind, params)
}

func (r *postgresRepository) Get(ctx context.Context, role platformauth.Role, id uuid.UUID) (persistence.Account, error) {
	kind, err := kindFor(role)
	if err != nil {
		return persistence.Account{}, err
	}
	return r.store.GetAccount(ctx, kind, id)
}

func (r *postgresRepository) GetByEmail(ctx context.Context, role platformauth.Role, email string) (persistence.Account, error) {
	kind, err := kindFor(role)
	if err != nil {
		return persistence.Account{}, err
	}
	return r.store.GetAccountByEmail(ctx, kind, email)
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, role platformauth.Role, id uuid.UUID, params persistence.UpdateAccountProfileParams) (persistence.Account, error) {
	kind, err := kindFor(role)
	if err != nil {
		return persistence.Account{}, err
	}
	return r.store.UpdateAccountProfile(ctx, kind, id, params)
}

func (r *postgresRepository) Delete(ctx context.Context, role platformauth.Role, id uuid.UUID) error {
	kind, err := kindFor(role)
	if err != nil {
		return err
	}
	return r.store.DeleteAccount(ctx, kind, id)
}

func kindFor(role platformauth.Role) (persistence.AccountKind, error) {
	switch role {
	case platformauth.RoleLandlord:
		return persistence.Landlords, nil
	case platformauth.RoleTenant:
		return persistence.Tenants, nil
	default:
		return persistence.AccountKind{}, fmt.Errorf("unknown role %q", role)
	}
}
