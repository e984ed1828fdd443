package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/lettify/lettify/platform/go/persistence"
)

// Repository defines the persistence operations required by the properties service.
type Repository interface {
	Create(ctx context.Context, id, landlordID uuid.UUID, params persistence.PropertyParams) (persistence.Property, error)
	Get(ctx context.Context, id uuid.UUID) (persistence.Property, error)
	GetAvailable(ctx context.Context, id uuid.UUID) (persistence.Property, error)
	Update(ctx context.Context, id uuid.UUID, params persistence.PropertyParams) (persistence.Property, error)
	SetAvailable(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]persistence.Property, error)
}

type postgresRepository struct {
	store *persistence.PropertyStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(store *persistence.PropertyStore) Repository {
	if store == nil {
		panic("property store is required")
	}
	return &postgresRepository{store: store}
}

func (r *postgresRepository) Create(ctx context.Context, id, landlordID uuid.UUID, params persistence.PropertyParams) (persistence.Property, error) {
	return r.store.CreateProperty(ctx, id, landlordID, params)
}

func (r *postgresRepository) Get(ctx context.Context, id uuid.UUID) (persistence.Property, error) {
	return r.store.GetProperty(ctx, id)
}

func (r *postgresRepository) GetAvailable(ctx context.Context, id uuid.UUID) (persistence.Property, error) {
	return r.store.GetAvailableProperty(ctx, id)
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, params persistence.PropertyParams) (persistence.Property, error) {
	return r.store.UpdateProperty(ctx, id, params)
}

func (r *postgresRepository) SetAvailable(ctx context.Context, id uuid.UUID) error {
	return r.store.SetPropertyAvailable(ctx, id)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.DeleteProperty(ctx, id)
}

func (r *postgresRepository) List(ctx context.Context) ([]persistence.Property, error) {
	return r.store.ListProperties(ctx)
}
