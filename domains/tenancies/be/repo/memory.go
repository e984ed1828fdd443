package repo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	accountsrepo "github.com/lettify/lettify/domains/accounts/be/repo"
	propertiesrepo "github.com/lettify/lettify/domains/properties/be/repo"
	platformauth "github.com/lettify/lettify/platform/go/auth"
	"github.com/lettify/lettify/platform/go/persistence"
)

type pairEntry struct {
	id         uuid.UUID
	tenantID   uuid.UUID
	propertyID uuid.UUID
}

// MemoryRepository is an in-memory implementation backed by the accounts and
// properties memory repositories, suitable for tests and early development.
type MemoryRepository struct {
	mu         sync.Mutex
	accounts   *accountsrepo.MemoryRepository
	properties *propertiesrepo.MemoryRepository
	requests   []pairEntry
	tenancies  []pairEntry
}

// NewMemoryRepository constructs a MemoryRepository joined against the given
// account and property repositories.
func NewMemoryRepository(accounts *accountsrepo.MemoryRepository, properties *propertiesrepo.MemoryRepository) *MemoryRepository {
	if accounts == nil || properties == nil {
		panic("accounts and properties repositories are required")
	}
	return &MemoryRepository{accounts: accounts, properties: properties}
}

func (r *MemoryRepository) GetPropertyOwner(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error) {
	property, err := r.properties.Get(ctx, propertyID)
	if err != nil {
		return uuid.Nil, err
	}
	return property.LandlordID, nil
}

func (r *MemoryRepository) CreateRequest(ctx context.Context, id, tenantID, propertyID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.requests {
		if entry.tenantID == tenantID && entry.propertyID == propertyID {
			return persistence.ErrDuplicateRequest
		}
	}

	r.requests = append(r.requests, pairEntry{id: id, tenantID: tenantID, propertyID: propertyID})
	return nil
}

func (r *MemoryRepository) Approve(ctx context.Context, tenancyID, tenantID, propertyID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := -1
	for i, entry := range r.requests {
		if entry.tenantID == tenantID && entry.propertyID == propertyID {
			index = i
			break
		}
	}
	if index < 0 {
		return persistence.ErrRequestNotFound
	}

	// Same contract as tenant_properties_pair_unique: a second tenancy for the
	// pair fails and the pending request stays in place.
	for _, entry := range r.tenancies {
		if entry.tenantID == tenantID && entry.propertyID == propertyID {
			return persistence.ErrDuplicateRequest
		}
	}

	r.requests = append(r.requests[:index], r.requests[index+1:]...)
	r.tenancies = append(r.tenancies, pairEntry{id: tenancyID, tenantID: tenantID, propertyID: propertyID})
	return nil
}

func (r *MemoryRepository) ListTenanciesForTenant(ctx context.Context, tenantID uuid.UUID) ([]persistence.TenantTenancyRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]persistence.TenantTenancyRow, 0)
	for _, entry := range r.tenancies {
		if entry.tenantID != tenantID {
			continue
		}

		property, err := r.properties.Get(ctx, entry.propertyID)
		if err != nil {
			continue
		}
		landlord, err := r.accounts.Get(ctx, platformauth.RoleLandlord, property.LandlordID)
		if err != nil {
			continue
		}

		rows = append(rows, persistence.TenantTenancyRow{
			TenancyID:         entry.id,
			TenantID:          entry.tenantID,
			PropertyID:        entry.propertyID,
			Title:             property.Title,
			Description:       property.Description,
			Address:           property.Address,
			RentFee:           property.RentFee,
			Availability:      property.Availability,
			LandlordFirstName: landlord.FirstName,
			LandlordLastName:  landlord.LastName,
		})
	}
	return rows, nil
}

func (r *MemoryRepository) ListRequestsForLandlord(ctx context.Context, landlordID uuid.UUID) ([]persistence.LandlordRequestRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]persistence.LandlordRequestRow, 0)
	for _, entry := range r.requests {
		property, err := r.properties.Get(ctx, entry.propertyID)
		if err != nil || property.LandlordID != landlordID {
			continue
		}
		tenant, err := r.accounts.Get(ctx, platformauth.RoleTenant, entry.tenantID)
		if err != nil {
			continue
		}

		rows = append(rows, persistence.LandlordRequestRow{
			RequestID:       entry.id,
			TenantID:        entry.tenantID,
			PropertyID:      entry.propertyID,
			TenantFirstName: tenant.FirstName,
			TenantLastName:  tenant.LastName,
			Title:           property.Title,
			Description:     property.Description,
			Address:         property.Address,
			RentFee:         property.RentFee,
			Availability:    property.Availability,
		})
	}
	return rows, nil
}

func (r *MemoryRepository) ListTenanciesForLandlord(ctx context.Context, landlordID uuid.UUID) ([]persistence.LandlordTenancyRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]persistence.LandlordTenancyRow, 0)
	for _, entry := range r.tenancies {
		property, err := r.properties.Get(ctx, entry.propertyID)
		if err != nil || property.LandlordID != landlordID {
			continue
		}
		tenant, err := r.accounts.Get(ctx, platformauth.RoleTenant, entry.tenantID)
		if err != nil {
			continue
		}

		rows = append(rows, persistence.LandlordTenancyRow{
			TenancyID:       entry.id,
			TenantID:        entry.tenantID,
			PropertyID:      entry.propertyID,
			TenantFirstName: tenant.FirstName,
			TenantLastName:  tenant.LastName,
			Title:           property.Title,
			Description:     property.Description,
			Address:         property.Address,
			RentFee:         property.RentFee,
			Availability:    property.Availability,
		})
	}
	return rows, nil
}

// RequestCount reports the number of pending requests; used by tests to assert
// the approve step consumed the request row.
func (r *MemoryRepository) RequestCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// Ensure interface compliance.
var _ Repository = (*MemoryRepository)(nil)
