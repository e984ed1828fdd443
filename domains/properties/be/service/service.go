package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lettify/lettify/domains/properties/be/repo"
	"github.com/lettify/lettify/platform/go/persistence"
)

// FieldErrors maps request fields to validation issues.
type FieldErrors map[string][]string

// ValidationError is returned when the input payload is invalid.
type ValidationError struct {
	Fields FieldErrors
}

func (v *ValidationError) Error() string {
	return "validation error"
}

// Domain sentinel errors.
var (
	ErrNotFound = errors.New("property not found")
	ErrNotOwner = errors.New("not authorized for this property")
)

// Property represents the domain view of a listing.
type Property struct {
	ID           uuid.UUID
	LandlordID   uuid.UUID
	Title        string
	Description  string
	Address      string
	RentFee      int64
	Availability bool
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ListingInput carries the fields written on create and update. Updates are
// full-record replaces; there is no partial-field semantics.
type ListingInput struct {
	Title        string
	Description  string
	Address      string
	RentFee      int64
	Availability bool
	Image        string
}

// Service defines the business operations for the properties domain.
type Service interface {
	Create(ctx context.Context, landlordID uuid.UUID, input ListingInput) (Property, error)
	Update(ctx context.Context, propertyID, landlordID uuid.UUID, input ListingInput) (Property, error)
	Delete(ctx context.Context, propertyID, landlordID uuid.UUID) error
	SetAvailable(ctx context.Context, propertyID, landlordID uuid.UUID) error
	List(ctx context.Context) ([]Property, error)
	GetAvailable(ctx context.Context, propertyID uuid.UUID) (Property, error)
}

type service struct {
	repo repo.Repository
}

// New constructs a properties Service backed by the provided repository.
func New(r repo.Repository) Service {
	if r == nil {
		panic("properties repository is required")
	}
	return &service{repo: r}
}

func (s *service) Create(ctx context.Context, landlordID uuid.UUID, input ListingInput) (Property, error) {
	params, err := buildListingParams(input)
	if err != nil {
		return Property{}, err
	}

	record, err := s.repo.Create(ctx, uuid.New(), landlordID, params)
	if err != nil {
		return Property{}, mapPersistenceError(err)
	}

	return mapProperty(record), nil
}

func (s *service) Update(ctx context.Context, propertyID, landlordID uuid.UUID, input ListingInput) (Property, error) {
	if err := s.requireOwned(ctx, propertyID, landlordID); err != nil {
		return Property{}, err
	}

	params, err := buildListingParams(input)
	if err != nil {
		return Property{}, err
	}

	record, err := s.repo.Update(ctx, propertyID, params)
	if err != nil {
		return Property{}, mapPersistenceError(err)
	}

	return mapProperty(record), nil
}

func (s *service) Delete(ctx context.Context, propertyID, landlordID uuid.UUID) error {
	if err := s.requireOwned(ctx, propertyID, landlordID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, propertyID); err != nil {
		return mapPersistenceError(err)
	}
	return nil
}

func (s *service) SetAvailable(ctx context.Context, propertyID, landlordID uuid.UUID) error {
	if err := s.requireOwned(ctx, propertyID, landlordID); err != nil {
		return err
	}

	if err := s.repo.SetAvailable(ctx, propertyID); err != nil {
		return mapPersistenceError(err)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]Property, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	properties := make([]Property, 0, len(records))
	for _, record := range records {
		properties = append(properties, mapProperty(record))
	}
	return properties, nil
}

func (s *service) GetAvailable(ctx context.Context, propertyID uuid.UUID) (Property, error) {
	if propertyID == uuid.Nil {
		return Property{}, ErrNotFound
	}

	record, err := s.repo.GetAvailable(ctx, propertyID)
	if err != nil {
		return Property{}, mapPersistenceError(err)
	}

	return mapProperty(record), nil
}

// requireOwned checks existence before ownership so a missing property reports
// 404 rather than 403.
func (s *service) requireOwned(ctx context.Context, propertyID, landlordID uuid.UUID) error {
	if propertyID == uuid.Nil {
		return ErrNotFound
	}

	record, err := s.repo.Get(ctx, propertyID)
	if err != nil {
		return mapPersistenceError(err)
	}
	if record.LandlordID != landlordID {
		return ErrNotOwner
	}
	return nil
}

func buildListingParams(input ListingInput) (persistence.PropertyParams, error) {
	fieldErrors := FieldErrors{}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		fieldErrors.add("title", "title is required")
	}
	if input.RentFee < 0 {
		fieldErrors.add("rent_fee", "rent_fee cannot be negative")
	}

	if len(fieldErrors) > 0 {
		return persistence.PropertyParams{}, &ValidationError{Fields: fieldErrors}
	}

	return persistence.PropertyParams{
		Title:        title,
		Description:  input.Description,
		Address:      input.Address,
		RentFee:      input.RentFee,
		Availability: input.Availability,
		Image:        input.Image,
	}, nil
}

func mapProperty(record persistence.Property) Property {
	return Property{
		ID:           record.ID,
		LandlordID:   record.LandlordID,
		Title:        record.Title,
		Description:  record.Description,
		Address:      record.Address,
		RentFee:      record.RentFee,
		Availability: record.Availability,
		Image:        record.Image,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func mapPersistenceError(err error) error {
	if errors.Is(err, persistence.ErrPropertyNotFound) {
		return ErrNotFound
	}
	return err
}

func (f FieldErrors) add(field, message string) {
	if f == nil {
		return
	}
	f[field] = append(f[field], message)
}
