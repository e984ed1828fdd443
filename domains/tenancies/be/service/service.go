package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lettify/lettify/domains/tenancies/be/repo"
	"github.com/lettify/lettify/platform/go/persistence"
)

// Domain sentinel errors.
var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotOwner         = errors.New("not authorized for this property")
	ErrDuplicateRequest = errors.New("request already sent for this property")
	ErrRequestNotFound  = errors.New("property request not found")
	ErrAlreadyApproved  = errors.New("tenancy already exists for this property")
)

// TenantTenancy is an approved tenancy as seen by the tenant, including the
// property and the owning landlord's display name.
type TenantTenancy struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	PropertyID        uuid.UUID
	PropertyTitle     string
	PropertyDesc      string
	PropertyAddress   string
	PropertyRentFee   int64
	PropertyAvailable bool
	LandlordFirstName string
	LandlordLastName  string
	CreatedAt         time.Time
}

// PendingRequest is a pending move-in request as seen by the landlord.
type PendingRequest struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	PropertyID        uuid.UUID
	TenantFirstName   string
	TenantLastName    string
	PropertyTitle     string
	PropertyDesc      string
	PropertyAddress   string
	PropertyRentFee   int64
	PropertyAvailable bool
	CreatedAt         time.Time
}

// LandlordTenancy is an approved tenancy as seen by the landlord.
type LandlordTenancy struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	PropertyID        uuid.UUID
	TenantFirstName   string
	TenantLastName    string
	PropertyTitle     string
	PropertyDesc      string
	PropertyAddress   string
	PropertyRentFee   int64
	PropertyAvailable bool
	CreatedAt         time.Time
}

// Service drives the request/approval workflow. Each (tenant, property) pair
// moves NONE -> REQUESTED -> APPROVED; there is no reject or withdraw edge.
type Service interface {
	Request(ctx context.Context, tenantID, propertyID uuid.UUID) error
	Approve(ctx context.Context, propertyID, tenantID, landlordID uuid.UUID) error
	ApprovedForTenant(ctx context.Context, tenantID uuid.UUID) ([]TenantTenancy, error)
	PendingForLandlord(ctx context.Context, landlordID uuid.UUID) ([]PendingRequest, error)
	ApprovedForLandlord(ctx context.Context, landlordID uuid.UUID) ([]LandlordTenancy, error)
}

type service struct {
	repo repo.Repository
}

// New constructs a tenancies Service backed by the provided repository.
func New(r repo.Repository) Service {
	if r == nil {
		panic("tenancies repository is required")
	}
	return &service{repo: r}
}

// Request records the tenant's interest. The property must exist but does not
// need to be available; the original accepts requests for unavailable listings.
func (s *service) Request(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	if _, err := s.propertyOwner(ctx, propertyID); err != nil {
		return err
	}

	if err := s.repo.CreateRequest(ctx, uuid.New(), tenantID, propertyID); err != nil {
		if errors.Is(err, persistence.ErrDuplicateRequest) {
			return ErrDuplicateRequest
		}
		return err
	}

	return nil
}

// Approve converts a pending request into a tenancy. Existence is checked
// before ownership, and the request delete plus tenancy insert happen in one
// transaction at the store.
func (s *service) Approve(ctx context.Context, propertyID, tenantID, landlordID uuid.UUID) error {
	owner, err := s.propertyOwner(ctx, propertyID)
	if err != nil {
		return err
	}
	if owner != landlordID {
		return ErrNotOwner
	}

	if err := s.repo.Approve(ctx, uuid.New(), tenantID, propertyID); err != nil {
		switch {
		case errors.Is(err, persistence.ErrRequestNotFound):
			return ErrRequestNotFound
		case errors.Is(err, persistence.ErrDuplicateRequest):
			// The pair already holds an active tenancy; the tenant re-requested
			// after a previous approval. The pending request is left intact.
			return ErrAlreadyApproved
		}
		return err
	}

	return nil
}

func (s *service) ApprovedForTenant(ctx context.Context, tenantID uuid.UUID) ([]TenantTenancy, error) {
	rows, err := s.repo.ListTenanciesForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := make([]TenantTenancy, 0, len(rows))
	for _, row := range rows {
		result = append(result, TenantTenancy{
			ID:                row.TenancyID,
			TenantID:          row.TenantID,
			PropertyID:        row.PropertyID,
			PropertyTitle:     row.Title,
			PropertyDesc:      row.Description,
			PropertyAddress:   row.Address,
			PropertyRentFee:   row.RentFee,
			PropertyAvailable: row.Availability,
			LandlordFirstName: row.LandlordFirstName,
			LandlordLastName:  row.LandlordLastName,
			CreatedAt:         row.CreatedAt,
		})
	}
	return result, nil
}

func (s *service) PendingForLandlord(ctx context.Context, landlordID uuid.UUID) ([]PendingRequest, error) {
	rows, err := s.repo.ListRequestsForLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	result := make([]PendingRequest, 0, len(rows))
	for _, row := range rows {
		result = append(result, PendingRequest{
			ID:                row.RequestID,
			TenantID:          row.TenantID,
			PropertyID:        row.PropertyID,
			TenantFirstName:   row.TenantFirstName,
			TenantLastName:    row.TenantLastName,
			PropertyTitle:     row.Title,
			PropertyDesc:      row.Description,
			PropertyAddress:   row.Address,
			PropertyRentFee:   row.RentFee,
			PropertyAvailable: row.Availability,
			CreatedAt:         row.CreatedAt,
		})
	}
	return result, nil
}

func (s *service) ApprovedForLandlord(ctx context.Context, landlordID uuid.UUID) ([]LandlordTenancy, error) {
	rows, err := s.repo.ListTenanciesForLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	result := make([]LandlordTenancy, 0, len(rows))
	for _, row := range rows {
		result = append(result, LandlordTenancy{
			ID:                row.TenancyID,
			TenantID:          row.TenantID,
			PropertyID:        row.PropertyID,
			TenantFirstName:   row.TenantFirstName,
			TenantLastName:    row.TenantLastName,
			PropertyTitle:     row.Title,
			PropertyDesc:      row.Description,
			PropertyAddress:   row.Address,
			PropertyRentFee:   row.RentFee,
			PropertyAvailable: row.Availability,
			CreatedAt:         row.CreatedAt,
		})
	}
	return result, nil
}

func (s *service) propertyOwner(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error) {
	if propertyID == uuid.Nil {
		return uuid.Nil, ErrPropertyNotFound
	}

	owner, err := s.repo.GetPropertyOwner(ctx, propertyID)
	if err != nil {
		if errors.Is(err, persistence.ErrPropertyNotFound) {
			return uuid.Nil, ErrPropertyNotFound
		}
		return uuid.Nil, err
	}
	return owner, nil
}
