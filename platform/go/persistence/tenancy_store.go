package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	PropertyRequestsTable = "property_requests"
	TenantPropertiesTable = "tenant_properties"
)

var (
	// ErrDuplicateRequest indicates a pending request already exists for the pair.
	ErrDuplicateRequest = errors.New("request already exists")
	// ErrRequestNotFound indicates no pending request exists for the pair.
	ErrRequestNotFound = errors.New("request not found")
)

// TenancyStore exposes persistence helpers for the request and tenancy tables.
type TenancyStore struct {
	pool *pgxpool.Pool
}

// NewTenancyStore returns a store instance bound to the shared pool.
func NewTenancyStore(pool *pgxpool.Pool) (*TenancyStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	return &TenancyStore{pool: pool}, nil
}

// CreateRequest records a tenant's pending interest in a property. At most one
// request per (tenant, property) pair; the unique constraint backs this even
// under concurrent inserts.
func (s *TenancyStore) CreateRequest(ctx context.Context, id, tenantID, propertyID uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("request id is required")
	}

	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
        INSERT INTO %s (request_id, tenant_id, property_id)
        VALUES ($1, $2, $3)
    `, PropertyRequestsTable), id, tenantID, propertyID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRequest
		}
		return fmt.Errorf("create request: %w", err)
	}

	return nil
}

// ApproveRequest converts a pending request into an active tenancy. The delete
// and insert run in one transaction so a crash cannot drop the request without
// creating the tenancy, and two concurrent approvals cannot both succeed.
func (s *TenancyStore) ApproveRequest(ctx context.Context, tenancyID, tenantID, propertyID uuid.UUID) error {
	if tenancyID == uuid.Nil {
		return errors.New("tenancy id is required")
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("approve request: begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, fmt.Sprintf(`
        DELETE FROM %s WHERE tenant_id = $1 AND property_id = $2
    `, PropertyRequestsTable), tenantID, propertyID)
	if err != nil {
		return fmt.Errorf("approve request: delete request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}

	if _, err := tx.Exec(ctx, fmt.Sprintf(`
        INSERT INTO %s (tenancy_id, tenant_id, property_id)
        VALUES ($1, $2, $3)
    `, TenantPropertiesTable), tenancyID, tenantID, propertyID); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRequest
		}
		return fmt.Errorf("approve request: insert tenancy: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("approve request: commit: %w", err)
	}

	return nil
}

// TenantTenancyRow is a tenancy joined with its property and the owning
// landlord's display name, as seen by the tenant.
type TenantTenancyRow struct {
	TenancyID         uuid.UUID
	TenantID          uuid.UUID
	PropertyID        uuid.UUID
	Title             string
	Description       string
	Address           string
	RentFee           int64
	Availability      bool
	LandlordFirstName string
	LandlordLastName  string
	CreatedAt         time.Time
}

// ListTenanciesForTenant returns the tenant's active tenancies with property
// and landlord details.
func (s *TenancyStore) ListTenanciesForTenant(ctx context.Context, tenantID uuid.UUID) ([]TenantTenancyRow, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
        SELECT tp.tenancy_id, tp.tenant_id, tp.property_id,
               p.title, p.description, p.address, p.rent_fee, p.availability,
               l.first_name, l.last_name, tp.created_at
        FROM %s tp
        JOIN %s p ON tp.property_id = p.property_id
        JOIN landlords l ON p.landlord_id = l.landlord_id
        WHERE tp.tenant_id = $1
        ORDER BY tp.created_at DESC
    `, TenantPropertiesTable, PropertiesTable), tenantID)
	if err != nil {
		return nil, fmt.Errorf("list tenancies for tenant: %w", err)
	}
	defer rows.Close()

	result := make([]TenantTenancyRow, 0)
	for rows.Next() {
		var row TenantTenancyRow
		if err := rows.Scan(
			&row.TenancyID, &row.TenantID, &row.PropertyID,
			&row.Title, &row.Description, &row.Address, &row.RentFee, &row.Availability,
			&row.LandlordFirstName, &row.LandlordLastName, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tenant tenancy: %w", err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tenant tenancies: %w", err)
	}

	return result, nil
}

// LandlordRequestRow is a pending request joined with the requesting tenant
// and the property, as seen by the landlord.
type LandlordRequestRow struct {
	RequestID       uuid.UUID
	TenantID        uuid.UUID
	PropertyID      uuid.UUID
	TenantFirstName string
	TenantLastName  string
	Title           string
	Description     string
	Address         string
	RentFee         int64
	Availability    bool
	CreatedAt       time.Time
}

// ListRequestsForLandlord returns every pending request across the landlord's
// properties.
func (s *TenancyStore) ListRequestsForLandlord(ctx context.Context, landlordID uuid.UUID) ([]LandlordRequestRow, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
        SELECT r.request_id, r.tenant_id, r.property_id,
               t.first_name, t.last_name,
               p.title, p.description, p.address, p.rent_fee, p.availability,
               r.created_at
        FROM %s r
        JOIN tenants t ON r.tenant_id = t.tenant_id
        JOIN %s p ON r.property_id = p.property_id
        WHERE p.landlord_id = $1
        ORDER BY r.created_at DESC
    `, PropertyRequestsTable, PropertiesTable), landlordID)
	if err != nil {
		return nil, fmt.Errorf("list requests for landlord: %w", err)
	}
	defer rows.Close()

	result := make([]LandlordRequestRow, 0)
	for rows.Next() {
		var row LandlordRequestRow
		if err := rows.Scan(
			&row.RequestID, &row.TenantID, &row.PropertyID,
			&row.TenantFirstName, &row.TenantLastName,
			&row.Title, &row.Description, &row.Address, &row.RentFee, &row.Availability,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan landlord request: %w", err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate landlord requests: %w", err)
	}

	return result, nil
}

// LandlordTenancyRow is an active tenancy joined with the tenant and the
// property, as seen by the landlord.
type LandlordTenancyRow struct {
	TenancyID       uuid.UUID
	TenantID        uuid.UUID
	PropertyID      uuid.UUID
	TenantFirstName string
	TenantLastName  string
	Title           string
	Description     string
	Address         string
	RentFee         int64
	Availability    bool
	CreatedAt       time.Time
}

// ListTenanciesForLandlord returns every active tenancy across the landlord's
// properties.
func (s *TenancyStore) ListTenanciesForLandlord(ctx context.Context, landlordID uuid.UUID) ([]LandlordTenancyRow, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
        SELECT tp.tenancy_id, tp.tenant_id, tp.property_id,
               t.first_name, t.last_name,
               p.title, p.description, p.address, p.rent_fee, p.availability,
               tp.created_at
        FROM %s tp
        JOIN tenants t ON tp.tenant_id = t.tenant_id
        JOIN %s p ON tp.property_id = p.property_id
        WHERE p.landlord_id = $1
        ORDER BY tp.created_at DESC
    `, TenantPropertiesTable, PropertiesTable), landlordID)
	if err != nil {
		return nil, fmt.Errorf("list tenancies for landlord: %w", err)
	}
	defer rows.Close()

	result := make([]LandlordTenancyRow, 0)
	for rows.Next() {
		var row LandlordTenancyRow
		if err := rows.Scan(
			&row.TenancyID, &row.TenantID, &row.PropertyID,
			&row.TenantFirstName, &row.TenantLastName,
			&row.Title, &row.Description, &row.Address, &row.RentFee, &row.Availability,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan landlord tenancy: %w", err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate landlord tenancies: %w", err)
	}

	return result, nil
}
