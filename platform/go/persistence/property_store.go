package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const PropertiesTable = "properties"

// Property represents a row in the properties table.
type Property struct {
	ID           uuid.UUID `db:"property_id" json:"id"`
	LandlordID   uuid.UUID `db:"landlord_id" json:"landlord_id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	Address      string    `db:"address" json:"address"`
	RentFee      int64     `db:"rent_fee" json:"rent_fee"`
	Availability bool      `db:"availability" json:"availability"`
	Image        string    `db:"image" json:"image"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ErrPropertyNotFound indicates a missing property record.
var ErrPropertyNotFound = errors.New("property not found")

// PropertyStore exposes persistence helpers for the properties table.
type PropertyStore struct {
	pool *pgxpool.Pool
}

// NewPropertyStore returns a store instance bound to the shared pool.
func NewPropertyStore(pool *pgxpool.Pool) (*PropertyStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	return &PropertyStore{pool: pool}, nil
}

// PropertyParams captures the listing fields written on create and update.
type PropertyParams struct {
	Title        string
	Description  string
	Address      string
	RentFee      int64
	Availability bool
	Image        string
}

// CreateProperty inserts a new listing owned by the given landlord.
func (s *PropertyStore) CreateProperty(ctx context.Context, id, landlordID uuid.UUID, params PropertyParams) (Property, error) {
	if id == uuid.Nil {
		return Property{}, errors.New("property id is required")
	}
	if landlordID == uuid.Nil {
		return Property{}, errors.New("landlord id is required")
	}

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (property_id, landlord_id, title, description, address, rent_fee, availability, image)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING property_id, landlord_id, title, description, address, rent_fee, availability, image, created_at, updated_at
    `, PropertiesTable),
		id,
		landlordID,
		strings.TrimSpace(params.Title),
		params.Description,
		params.Address,
		params.RentFee,
		params.Availability,
		params.Image,
	)

	property, err := scanProperty(row)
	if err != nil {
		return Property{}, fmt.Errorf("create property: %w", err)
	}
	return property, nil
}

// GetProperty fetches a listing by id regardless of availability.
func (s *PropertyStore) GetProperty(ctx context.Context, id uuid.UUID) (Property, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT property_id, landlord_id, title, description, address, rent_fee, availability, image, created_at, updated_at
        FROM %s
        WHERE property_id = $1
    `, PropertiesTable), id)

	property, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, ErrPropertyNotFound
		}
		return Property{}, fmt.Errorf("get property: %w", err)
	}
	return property, nil
}

// GetAvailableProperty fetches a listing only when its availability flag is set.
// Missing and unavailable listings are indistinguishable to the caller.
func (s *PropertyStore) GetAvailableProperty(ctx context.Context, id uuid.UUID) (Property, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT property_id, landlord_id, title, description, address, rent_fee, availability, image, created_at, updated_at
        FROM %s
        WHERE property_id = $1 AND availability = TRUE
    `, PropertiesTable), id)

	property, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, ErrPropertyNotFound
		}
		return Property{}, fmt.Errorf("get available property: %w", err)
	}
	return property, nil
}

// UpdateProperty replaces all listing fields of an existing property.
func (s *PropertyStore) UpdateProperty(ctx context.Context, id uuid.UUID, params PropertyParams) (Property, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        UPDATE %s
        SET title = $2, description = $3, address = $4, rent_fee = $5, availability = $6, image = $7, updated_at = now()
        WHERE property_id = $1
        RETURNING property_id, landlord_id, title, description, address, rent_fee, availability, image, created_at, updated_at
    `, PropertiesTable),
		id,
		strings.TrimSpace(params.Title),
		params.Description,
		params.Address,
		params.RentFee,
		params.Availability,
		params.Image,
	)

	property, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, ErrPropertyNotFound
		}
		return Property{}, fmt.Errorf("update property: %w", err)
	}
	return property, nil
}

// SetPropertyAvailable flips the availability flag to true. There is no
// symmetric reset; approved tenancies do not clear the flag.
func (s *PropertyStore) SetPropertyAvailable(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`
        UPDATE %s SET availability = TRUE, updated_at = now() WHERE property_id = $1
    `, PropertiesTable), id)
	if err != nil {
		return fmt.Errorf("set property available: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// DeleteProperty hard-deletes a listing; dependent requests and tenancies go
// with it via ON DELETE CASCADE.
func (s *PropertyStore) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`
        DELETE FROM %s WHERE property_id = $1
    `, PropertiesTable), id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// ListProperties returns every listing regardless of availability.
func (s *PropertyStore) ListProperties(ctx context.Context) ([]Property, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
        SELECT property_id, landlord_id, title, description, address, rent_fee, availability, image, created_at, updated_at
        FROM %s
        ORDER BY created_at DESC
    `, PropertiesTable))
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	properties := make([]Property, 0)
	for rows.Next() {
		property, scanErr := scanProperty(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan property: %w", scanErr)
		}
		properties = append(properties, property)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}

	return properties, nil
}

func scanProperty(row pgx.Row) (Property, error) {
	var property Property
	err := row.Scan(
		&property.ID,
		&property.LandlordID,
		&property.Title,
		&property.Description,
		&property.Address,
		&property.RentFee,
		&property.Availability,
		&property.Image,
		&property.CreatedAt,
		&property.UpdatedAt,
	)
	return property, err
}
