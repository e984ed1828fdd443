package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lettify/lettify/domains/tenancies/be/service"
	platformauth "github.com/lettify/lettify/platform/go/auth"
	platformlogging "github.com/lettify/lettify/platform/go/logging"
)

// Handler wires the tenancy workflow service to the HTTP routes.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("tenancies service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

// Request records the acting tenant's interest in a property.
func (h *Handler) Request(w http.ResponseWriter, r *http.Request) {
	actor, ok := platformauth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, platformauth.ErrMissingToken.Error())
		return
	}

	propertyID, err := propertyIDParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, service.ErrPropertyNotFound.Error())
		return
	}

	if err := h.svc.Request(r.Context(), actor.ID, propertyID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "Request sent successfully"})
}

type approveRequest struct {
	TenantID string `json:"tenant_id"`
}

// Approve converts a pending request on an owned property into a tenancy.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := platformauth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, platformauth.ErrMissingToken.Error())
		return
	}

	propertyID, err := propertyIDParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, service.ErrPropertyNotFound.Error())
		return
	}

	var body approveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tenantID, err := uuid.Parse(body.TenantID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "tenant_id is required")
		return
	}

	if err := h.svc.Approve(r.Context(), propertyID, tenantID, actor.ID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "Request approved successfully"})
}

type tenantTenancyResponse struct {
	ID                   string `json:"id"`
	TenantID             string `json:"tenant_id"`
	PropertyID           string `json:"property_id"`
	PropertyTitle        string `json:"property_title"`
	PropertyDescription  string `json:"property_description"`
	PropertyAddress      string `json:"property_address"`
	PropertyRentFee      int64  `json:"property_rent_fee"`
	PropertyAvailability bool   `json:"property_availability"`
	LandlordFirstName    string `json:"landlord_first_name"`
	LandlordLastName     string `json:"landlord_last_name"`
}

// ApprovedProperties lists the acting tenant's active tenancies.
func (h *Handler) ApprovedProperties(w http.ResponseWriter, r *http.Request) {
	actor, ok := platformauth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, platformauth.ErrMissingToken.Error())
		return
	}

	tenancies, err := h.svc.ApprovedForTenant(r.Context(), actor.ID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	items := make([]tenantTenancyResponse, 0, len(tenancies))
	for _, tenancy := range tenancies {
		items = append(items, tenantTenancyResponse{
			ID:                   tenancy.ID.String(),
			TenantID:             tenancy.TenantID.String(),
			PropertyID:           tenancy.PropertyID.String(),
			PropertyTitle:        tenancy.PropertyTitle,
			PropertyDescription:  tenancy.PropertyDesc,
			PropertyAddress:      tenancy.PropertyAddress,
			PropertyRentFee:      tenancy.PropertyRentFee,
			PropertyAvailability: tenancy.PropertyAvailable,
			LandlordFirstName:    tenancy.LandlordFirstName,
			LandlordLastName:     tenancy.LandlordLastName,
		})
	}
	respondJSON(w, http.StatusOK, items)
}

type pendingRequestResponse struct {
	ID                   string `json:"id"`
	TenantID             string `json:"tenant_id"`
	PropertyID           string `json:"property_id"`
	TenantFirstName      string `json:"tenant_first_name"`
	TenantLastName       string `json:"tenant_last_name"`
	PropertyTitle        string `json:"property_title"`
	PropertyDescription  string `json:"property_description"`
	PropertyAddress      string `json:"property_address"`
	PropertyRentFee      int64  `json:"property_rent_fee"`
	PropertyAvailability bool   `json:"property_availability"`
}

// RequestsToApprove lists pending requests across the acting landlord's properties.
func (h *Handler) RequestsToApprove(w http.ResponseWriter, r *http.Request) {
	actor, ok := platformauth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, platformauth.ErrMissingToken.Error())
		return
	}

	requests, err := h.svc.PendingForLandlord(r.Context(), actor.ID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	items := make([]pendingRequestResponse, 0, len(requests))
	for _, request := range requests {
		items = append(items, pendingRequestResponse{
			ID:                   request.ID.String(),
			TenantID:             request.TenantID.String(),
			PropertyID:           request.PropertyID.String(),
			TenantFirstName:      request.TenantFirstName,
			TenantLastName:       request.TenantLastName,
			PropertyTitle:        request.PropertyTitle,
			PropertyDescription:  request.PropertyDesc,
			PropertyAddress:      request.PropertyAddress,
			PropertyRentFee:      request.PropertyRentFee,
			PropertyAvailability: request.PropertyAvailable,
		})
	}
	respondJSON(w, http.StatusOK, items)
}

// ApprovedRequests lists active tenancies across the acting landlord's properties.
func (h *Handler) ApprovedRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := platformauth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, platformauth.ErrMissingToken.Error())
		return
	}

	tenancies, err := h.svc.ApprovedForLandlord(r.Context(), actor.ID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	items := make([]pendingRequestResponse, 0, len(tenancies))
	for _, tenancy := range tenancies {
		items = append(items, pendingRequestResponse{
			ID:                   tenancy.ID.String(),
			TenantID:             tenancy.TenantID.String(),
			PropertyID:           tenancy.PropertyID.String(),
			TenantFirstName:      tenancy.TenantFirstName,
			TenantLastName:       tenancy.TenantLastName,
			PropertyTitle:        tenancy.PropertyTitle,
			PropertyDescription:  tenancy.PropertyDesc,
			PropertyAddress:      tenancy.PropertyAddress,
			PropertyRentFee:      tenancy.PropertyRentFee,
			PropertyAvailability: tenancy.PropertyAvailable,
		})
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classifyError(err)

	logger := platformlogging.FromRequest(r, h.logger)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("tenancies operation failed", zap.Int("status", status), zap.Error(err))
	case status == http.StatusNotFound:
		logger.Info("tenancies resource not found", zap.Int("status", status), zap.Error(err))
	default:
		logger.Warn("tenancies request rejected", zap.Int("status", status), zap.Error(err))
	}

	respondError(w, status, message)
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrPropertyNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrRequestNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrNotOwner):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrDuplicateRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrAlreadyApproved):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "an error occurred"
	}
}

func propertyIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "propertyID"))
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
