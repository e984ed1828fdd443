package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/lettify/lettify/platform/go/persistence"
)

// Repository defines the persistence operations required by the tenancies service.
type Repository interface {
	GetPropertyOwner(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error)
	CreateRequest(ctx context.Context, id, tenantID, propertyID uuid.UUID) error
	Approve(ctx context.Context, tenancyID, tenantID, propertyID uuid.UUID) error
	ListTenanciesForTenant(ctx context.Context, tenantID uuid.UUID) ([]persistence.TenantTenancyRow, error)
	ListRequestsForLandlord(ctx context.Context, landlordID uuid.UUID) ([]persistence.LandlordRequestRow, error)
	ListTenanciesForLandlord(ctx context.Context, landlordID uuid.UUID) ([]persistence.LandlordTenancyRow, error)
}

type postgresRepository struct {
	tenancies  *persistence.TenancyStore
	properties *persistence.PropertyStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(tenancies *persistence.TenancyStore, properties *persistence.PropertyStore) Repository {
	if tenancies == nil {
		panic("tenancy store is required")
	}
	if properties == nil {
		panic("property store is required")
	}
	return &postgresRepository{tenancies: tenancies, properties: properties}
}

func (r *postgresRepository) GetPropertyOwner(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error) {
	property, err := r.properties.GetProperty(ctx, propertyID)
	if err != nil {
		return uuid.Nil, err
	}
	return property.LandlordID, nil
}

func (r *postgresRepository) CreateRequest(ctx context.Context, id, tenantID, propertyID uuid.UUID) error {
	return r.tenancies.CreateRequest(ctx, id, tenantID, propertyID)
}

func (r *postgresRepository) Approve(ctx context.Context, tenancyID, tenantID, propertyID uuid.UUID) error {
	return r.tenancies.ApproveRequest(ctx, tenancyID, tenantID, propertyID)
}

func (r *postgresRepository) ListTenanciesForTenant(ctx context.Context, tenantID uuid.UUID) ([]persistence.TenantTenancyRow, error) {
	return r.tenancies.ListTenanciesForTenant(ctx, tenantID)
}

func (r *postgresRepository) ListRequestsForLandlord(ctx context.Context, landlordID uuid.UUID) ([]persistence.LandlordRequestRow, error) {
	return r.tenancies.ListRequestsForLandlord(ctx, landlordID)
}

func (r *postgresRepository) ListTenanciesForLandlord(ctx context.Context, landlordID uuid.UUID) ([]persistence.LandlordTenancyRow, error) {
	return r.tenancies.ListTenanciesForLandlord(ctx, landlordID)
}
