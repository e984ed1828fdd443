package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lettify/lettify/platform/go/persistence"
)

// MemoryRepository is a simple in-memory implementation suitable for tests and
// early development.
type MemoryRepository struct {
	mu         sync.RWMutex
	properties map[uuid.UUID]persistence.Property
	seq        int
	order      map[uuid.UUID]int
}

// NewMemoryRepository constructs a MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		properties: make(map[uuid.UUID]persistence.Property),
		order:      make(map[uuid.UUID]int),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, id, landlordID uuid.UUID, params persistence.PropertyParams) (persistence.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	property := persistence.Property{
		ID:           id,
		LandlordID:   landlordID,
		Title:        params.Title,
		Description:  params.Description,
		Address:      params.Address,
		RentFee:      params.RentFee,
		Availability: params.Availability,
		Image:        params.Image,
	}
	r.properties[id] = property
	r.seq++
	r.order[id] = r.seq
	return property, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id uuid.UUID) (persistence.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	property, ok := r.properties[id]
	if !ok {
		return persistence.Property{}, persistence.ErrPropertyNotFound
	}
	return property, nil
}

func (r *MemoryRepository) GetAvailable(ctx context.Context, id uuid.UUID) (persistence.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	property, ok := r.properties[id]
	if !ok || !property.Availability {
		return persistence.Property{}, persistence.ErrPropertyNotFound
	}
	return property, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id uuid.UUID, params persistence.PropertyParams) (persistence.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	property, ok := r.properties[id]
	if !ok {
		return persistence.Property{}, persistence.ErrPropertyNotFound
	}

	property.Title = params.Title
	property.Description = params.Description
	property.Address = params.Address
	property.RentFee = params.RentFee
	property.Availability = params.Availability
	property.Image = params.Image
	r.properties[id] = property
	return property, nil
}

func (r *MemoryRepository) SetAvailable(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	property, ok := r.properties[id]
	if !ok {
		return persistence.ErrPropertyNotFound
	}
	property.Availability = true
	r.properties[id] = property
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.properties[id]; !ok {
		return persistence.ErrPropertyNotFound
	}
	delete(r.properties, id)
	delete(r.order, id)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]persistence.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	properties := make([]persistence.Property, 0, len(r.properties))
	for _, property := range r.properties {
		properties = append(properties, property)
	}
	sort.Slice(properties, func(i, j int) bool {
		return r.order[properties[i].ID] > r.order[properties[j].ID]
	})
	return properties, nil
}

// Ensure interface compliance.
var _ Repository = (*MemoryRepository)(nil)
