package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lettify/lettify/domains/tenancies/be/service"
	platformauth "github.com/lettify/lettify/platform/go/auth"
)

type mockService struct {
	requestFn             func(ctx context.Context, tenantID, propertyID uuid.UUID) error
	approveFn             func(ctx context.Context, propertyID, tenantID, landlordID uuid.UUID) error
	approvedForTenantFn   func(ctx context.Context, tenantID uuid.UUID) ([]service.TenantTenancy, error)
	pendingForLandlordFn  func(ctx context.Context, landlordID uuid.UUID) ([]service.PendingRequest, error)
	approvedForLandlordFn func(ctx context.Context, landlordID uuid.UUID) ([]service.LandlordTenancy, error)
}

func (m *mockService) Request(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	return m.requestFn(ctx, tenantID, propertyID)
}

func (m *mockService) Approve(ctx context.Context, propertyID, tenantID, landlordID uuid.UUID) error {
	return m.approveFn(ctx, propertyID, tenantID, landlordID)
}

func (m *mockService) ApprovedForTenant(ctx context.Context, tenantID uuid.UUID) ([]service.TenantTenancy, error) {
	return m.approvedForTenantFn(ctx, tenantID)
}

func (m *mockService) PendingForLandlord(ctx context.Context, landlordID uuid.UUID) ([]service.PendingRequest, error) {
	return m.pendingForLandlordFn(ctx, landlordID)
}

func (m *mockService) ApprovedForLandlord(ctx context.Context, landlordID uuid.UUID) ([]service.LandlordTenancy, error) {
	return m.approvedForLandlordFn(ctx, landlordID)
}

// serve routes the request through chi so {propertyID} is populated.
func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Post("/properties/{propertyID}/request", h.Request)
	router.Post("/properties/{propertyID}/approve", h.Approve)
	router.Get("/tenants/approved_properties", h.ApprovedProperties)
	router.Get("/landlords/requests_to_approve", h.RequestsToApprove)
	router.Get("/landlords/approved_requests", h.ApprovedRequests)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func withActor(req *http.Request, id uuid.UUID, role platformauth.Role) *http.Request {
	return req.WithContext(platformauth.WithActor(req.Context(), platformauth.Actor{ID: id, Role: role}))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequestSuccessMessage(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	propertyID := uuid.New()
	mock := &mockService{
		requestFn: func(ctx context.Context, gotTenant, gotProperty uuid.UUID) error {
			require.Equal(t, tenantID, gotTenant)
			require.Equal(t, propertyID, gotProperty)
			return nil
		},
	}
	h := New(mock, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/properties/"+propertyID.String()+"/request", nil)
	req = withActor(req, tenantID, platformauth.RoleTenant)

	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Request sent successfully", decodeBody(t, rec)["message"])
}

func TestRequestMalformedPropertyID(t *testing.T) {
	t.Parallel()

	h := New(&mockService{}, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/properties/not-a-uuid/request", nil)
	req = withActor(req, uuid.New(), platformauth.RoleTenant)

	rec := serve(h, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, service.ErrPropertyNotFound.Error(), decodeBody(t, rec)["error"])
}

func TestRequestDuplicateMapsToBadRequest(t *testing.T) {
	t.Parallel()

	mock := &mockService{
		requestFn: func(ctx context.Context, tenantID, propertyID uuid.UUID) error {
			return service.ErrDuplicateRequest
		},
	}
	h := New(mock, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/properties/"+uuid.NewString()+"/request", nil)
	req = withActor(req, uuid.New(), platformauth.RoleTenant)

	rec := serve(h, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, service.ErrDuplicateRequest.Error(), decodeBody(t, rec)["error"])
}

func TestApproveSuccessMessage(t *testing.T) {
	t.Parallel()

	landlordID := uuid.New()
	tenantID := uuid.New()
	propertyID := uuid.New()
	mock := &mockService{
		approveFn: func(ctx context.Context, gotProperty, gotTenant, gotLandlord uuid.UUID) error {
			require.Equal(t, propertyID, gotProperty)
			require.Equal(t, tenantID, gotTenant)
			require.Equal(t, landlordID, gotLandlord)
			return nil
		},
	}
	h := New(mock, zaptest.NewLogger(t))

	payload := bytes.NewBufferString(`{"tenant_id":"` + tenantID.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/properties/"+propertyID.String()+"/approve", payload)
	req = withActor(req, landlordID, platformauth.RoleLandlord)

	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Request approved successfully", decodeBody(t, rec)["message"])
}

func TestApproveMissingTenantID(t *testing.T) {
	t.Parallel()

	h := New(&mockService{}, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/properties/"+uuid.NewString()+"/approve", bytes.NewBufferString(`{}`))
	req = withActor(req, uuid.New(), platformauth.RoleLandlord)

	rec := serve(h, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "tenant_id is required", decodeBody(t, rec)["error"])
}

func TestApproveErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "missing property", err: service.ErrPropertyNotFound, wantStatus: http.StatusNotFound},
		{name: "missing request", err: service.ErrRequestNotFound, wantStatus: http.StatusNotFound},
		{name: "not owner", err: service.ErrNotOwner, wantStatus: http.StatusForbidden},
		{name: "already approved", err: service.ErrAlreadyApproved, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock := &mockService{
				approveFn: func(ctx context.Context, propertyID, tenantID, landlordID uuid.UUID) error {
					return tc.err
				},
			}
			h := New(mock, zaptest.NewLogger(t))

			payload := bytes.NewBufferString(`{"tenant_id":"` + uuid.NewString() + `"}`)
			req := httptest.NewRequest(http.MethodPost, "/properties/"+uuid.NewString()+"/approve", payload)
			req = withActor(req, uuid.New(), platformauth.RoleLandlord)

			rec := serve(h, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			require.Equal(t, tc.err.Error(), decodeBody(t, rec)["error"])
		})
	}
}

func TestApprovedPropertiesFieldAliases(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	mock := &mockService{
		approvedForTenantFn: func(ctx context.Context, gotTenant uuid.UUID) ([]service.TenantTenancy, error) {
			require.Equal(t, tenantID, gotTenant)
			return []service.TenantTenancy{{
				ID:                uuid.New(),
				TenantID:          gotTenant,
				PropertyID:        uuid.New(),
				PropertyTitle:     "Garden flat",
				PropertyAddress:   "1 Rose Lane",
				PropertyRentFee:   1200,
				PropertyAvailable: true,
				LandlordFirstName: "Laura",
				LandlordLastName:  "Lord",
			}}, nil
		},
	}
	h := New(mock, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/tenants/approved_properties", nil)
	req = withActor(req, tenantID, platformauth.RoleTenant)

	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, "Garden flat", items[0]["property_title"])
	require.Equal(t, "1 Rose Lane", items[0]["property_address"])
	require.Equal(t, float64(1200), items[0]["property_rent_fee"])
	require.Equal(t, "Laura", items[0]["landlord_first_name"])
	require.Equal(t, "Lord", items[0]["landlord_last_name"])
}

func TestRequestsToApproveFieldAliases(t *testing.T) {
	t.Parallel()

	landlordID := uuid.New()
	mock := &mockService{
		pendingForLandlordFn: func(ctx context.Context, gotLandlord uuid.UUID) ([]service.PendingRequest, error) {
			require.Equal(t, landlordID, gotLandlord)
			return []service.PendingRequest{{
				ID:              uuid.New(),
				TenantID:        uuid.New(),
				PropertyID:      uuid.New(),
				TenantFirstName: "Tom",
				TenantLastName:  "Tenant",
				PropertyTitle:   "Garden flat",
				PropertyRentFee: 1200,
			}}, nil
		},
	}
	h := New(mock, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/landlords/requests_to_approve", nil)
	req = withActor(req, landlordID, platformauth.RoleLandlord)

	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, "Tom", items[0]["tenant_first_name"])
	require.Equal(t, "Tenant", items[0]["tenant_last_name"])
	require.Equal(t, "Garden flat", items[0]["property_title"])
}

func TestListHandlersReturnEmptyArrayNotNull(t *testing.T) {
	t.Parallel()

	mock := &mockService{
		approvedForLandlordFn: func(ctx context.Context, landlordID uuid.UUID) ([]service.LandlordTenancy, error) {
			return nil, nil
		},
	}
	h := New(mock, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/landlords/approved_requests", nil)
	req = withActor(req, uuid.New(), platformauth.RoleLandlord)

	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}
