package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	accountsrepo "github.com/lettify/lettify/domains/accounts/be/repo"
	propertiesrepo "github.com/lettify/lettify/domains/properties/be/repo"
	"github.com/lettify/lettify/domains/tenancies/be/repo"
	platformauth "github.com/lettify/lettify/platform/go/auth"
	"github.com/lettify/lettify/platform/go/persistence"
)

type fixture struct {
	svc        Service
	repo       *repo.MemoryRepository
	landlordID uuid.UUID
	tenantID   uuid.UUID
	propertyID uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	accounts := accountsrepo.NewMemoryRepository()
	properties := propertiesrepo.NewMemoryRepository()
	tenancies := repo.NewMemoryRepository(accounts, properties)

	landlord, err := accounts.Create(ctx, platformauth.RoleLandlord, persistence.CreateAccountParams{
		ID:        uuid.New(),
		FirstName: "Laura",
		LastName:  "Lord",
		Email:     "laura@example.com",
	})
	require.NoError(t, err)

	tenant, err := accounts.Create(ctx, platformauth.RoleTenant, persistence.CreateAccountParams{
		ID:        uuid.New(),
		FirstName: "Tom",
		LastName:  "Tenant",
		Email:     "tom@example.com",
	})
	require.NoError(t, err)

	property, err := properties.Create(ctx, uuid.New(), landlord.ID, persistence.PropertyParams{
		Title:   "Garden flat",
		Address: "1 Rose Lane",
		RentFee: 1200,
	})
	require.NoError(t, err)

	return fixture{
		svc:        New(tenancies),
		repo:       tenancies,
		landlordID: landlord.ID,
		tenantID:   tenant.ID,
		propertyID: property.ID,
	}
}

func TestRequestUnknownProperty(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	err := fx.svc.Request(context.Background(), fx.tenantID, uuid.New())
	require.ErrorIs(t, err, ErrPropertyNotFound)
	require.Zero(t, fx.repo.RequestCount())
}

func TestRequestAcceptsUnavailableProperty(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	// The fixture property was never flipped to available; requests still land.
	require.NoError(t, fx.svc.Request(context.Background(), fx.tenantID, fx.propertyID))
	require.Equal(t, 1, fx.repo.RequestCount())
}

func TestRequestDuplicate(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.svc.Request(ctx, fx.tenantID, fx.propertyID))

	err := fx.svc.Request(ctx, fx.tenantID, fx.propertyID)
	require.ErrorIs(t, err, ErrDuplicateRequest)
	require.Equal(t, 1, fx.repo.RequestCount())
}

func TestApproveWithoutRequest(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	err := fx.svc.Approve(context.Background(), fx.propertyID, fx.tenantID, fx.landlordID)
	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestApproveUnknownPropertyBeforeOwnership(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	// A missing property is reported as not found even to a non-owner.
	err := fx.svc.Approve(context.Background(), uuid.New(), fx.tenantID, uuid.New())
	require.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestApproveRejectsNonOwner(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.svc.Request(ctx, fx.tenantID, fx.propertyID))

	err := fx.svc.Approve(ctx, fx.propertyID, fx.tenantID, uuid.New())
	require.ErrorIs(t, err, ErrNotOwner)

	// The pending request survives the rejected approval.
	require.Equal(t, 1, fx.repo.RequestCount())
}

func TestApproveConsumesRequest(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.svc.Request(ctx, fx.tenantID, fx.propertyID))
	require.NoError(t, fx.svc.Approve(ctx, fx.propertyID, fx.tenantID, fx.landlordID))

	require.Zero(t, fx.repo.RequestCount())

	// A second approval has no request left to consume.
	err := fx.svc.Approve(ctx, fx.propertyID, fx.tenantID, fx.landlordID)
	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestReRequestAfterApprovalCannotBeApprovedAgain(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.svc.Request(ctx, fx.tenantID, fx.propertyID))
	require.NoError(t, fx.svc.Approve(ctx, fx.propertyID, fx.tenantID, fx.landlordID))

	// Nothing stops the tenant from requesting the same property again.
	require.NoError(t, fx.svc.Request(ctx, fx.tenantID, fx.propertyID))
	require.Equal(t, 1, fx.repo.RequestCount())

	// But the pair already holds a tenancy, so approval hits the unique
	// constraint and reports it as a domain error, not a raw store failure.
	err := fx.svc.Approve(ctx, fx.propertyID, fx.tenantID, fx.landlordID)
	require.ErrorIs(t, err, ErrAlreadyApproved)

	// The second pending request survives the failed approval.
	require.Equal(t, 1, fx.repo.RequestCount())

	tenantView, err := fx.svc.ApprovedForTenant(ctx, fx.tenantID)
	require.NoError(t, err)
	require.Len(t, tenantView, 1)
}

func TestViewsAfterApproval(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.svc.Request(ctx, fx.tenantID, fx.propertyID))

	pending, err := fx.svc.PendingForLandlord(ctx, fx.landlordID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, fx.tenantID, pending[0].TenantID)
	require.Equal(t, "Tom", pending[0].TenantFirstName)
	require.Equal(t, "Garden flat", pending[0].PropertyTitle)

	require.NoError(t, fx.svc.Approve(ctx, fx.propertyID, fx.tenantID, fx.landlordID))

	pending, err = fx.svc.PendingForLandlord(ctx, fx.landlordID)
	require.NoError(t, err)
	require.Empty(t, pending)

	tenantView, err := fx.svc.ApprovedForTenant(ctx, fx.tenantID)
	require.NoError(t, err)
	require.Len(t, tenantView, 1)
	require.Equal(t, fx.propertyID, tenantView[0].PropertyID)
	require.Equal(t, "Laura", tenantView[0].LandlordFirstName)
	require.Equal(t, "Lord", tenantView[0].LandlordLastName)

	landlordView, err := fx.svc.ApprovedForLandlord(ctx, fx.landlordID)
	require.NoError(t, err)
	require.Len(t, landlordView, 1)
	require.Equal(t, fx.tenantID, landlordView[0].TenantID)
	require.Equal(t, "Tenant", landlordView[0].TenantLastName)
}

func TestViewsAreScopedToTheActor(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.svc.Request(ctx, fx.tenantID, fx.propertyID))

	// Another landlord sees nothing pending; another tenant holds no tenancy.
	pending, err := fx.svc.PendingForLandlord(ctx, uuid.New())
	require.NoError(t, err)
	require.Empty(t, pending)

	require.NoError(t, fx.svc.Approve(ctx, fx.propertyID, fx.tenantID, fx.landlordID))

	tenantView, err := fx.svc.ApprovedForTenant(ctx, uuid.New())
	require.NoError(t, err)
	require.Empty(t, tenantView)
}
