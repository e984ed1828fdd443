package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lettify/lettify/domains/properties/be/service"
	platformauth "github.com/lettify/lettify/platform/go/auth"
	platformlogging "github.com/lettify/lettify/platform/go/logging"
)

// Handler wires the properties service to the HTTP routes.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("properties service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

type listingRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	RentFee      int64  `json:"rent_fee"`
	Availability bool   `json:"availability"`
	Image        string `json:"image"`
}

type propertyResponse struct {
	ID           string    `json:"id"`
	LandlordID   string    `json:"landlord_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Address      string    `json:"address"`
	RentFee      int64     `json:"rent_fee"`
	Availability bool      `json:"availability"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Create registers a new listing owned by the acting landlord.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := platformauth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, platformauth.ErrMissingToken.Error())
		return
	}

	var body listingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	property, err := h.svc.Create(r.Context(), actor.ID, toListingInput(body))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Property created successfully",
		"property_id": property.ID.String(),
	})
}

// Update replaces every listing field of a property owned by the acting landlord.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := platformauth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, platformauth.ErrMissingToken.Error())
		return
	}

	propertyID, err := propertyIDParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}

	var body listingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	property, err := h.svc.Update(r.Context(), propertyID, actor.ID, toListingInput(body))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Property updated successfully",
		"property_id": property.ID.String(),
	})
}

// Delete removes a property owned by the acting landlord.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := platformauth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, platformauth.ErrMissingToken.Error())
		return
	}

	propertyID, err := propertyIDParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), propertyID, actor.ID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Property deleted successfully",
		"property_id": propertyID.String(),
	})
}

// SetAvailable flips the availability flag to true for an owned property.
func (h *Handler) SetAvailable(w http.ResponseWriter, r *http.Request) {
	actor, ok := platformauth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, platformauth.ErrMissingToken.Error())
		return
	}

	propertyID, err := propertyIDParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}

	if err := h.svc.SetAvailable(r.Context(), propertyID, actor.ID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Property availability updated successfully",
		"property_id": propertyID.String(),
	})
}

// List returns every listing regardless of availability. Public.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	properties, err := h.svc.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	items := make([]propertyResponse, 0, len(properties))
	for _, property := range properties {
		items = append(items, toPropertyResponse(property))
	}
	respondJSON(w, http.StatusOK, items)
}

// GetAvailable returns a single listing only when its availability flag is
// set; missing and unavailable listings are reported identically. Public.
func (h *Handler) GetAvailable(w http.ResponseWriter, r *http.Request) {
	propertyID, err := propertyIDParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "property not found or not available")
		return
	}

	property, err := h.svc.GetAvailable(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(w, http.StatusNotFound, "property not found or not available")
			return
		}
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toPropertyResponse(property))
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classifyError(err)

	logger := platformlogging.FromRequest(r, h.logger)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("properties operation failed", zap.Int("status", status), zap.Error(err))
	case status == http.StatusNotFound:
		logger.Info("property not found", zap.Int("status", status), zap.Error(err))
	default:
		logger.Warn("properties request rejected", zap.Int("status", status), zap.Error(err))
	}

	respondError(w, status, message)
}

func classifyError(err error) (int, string) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationMessage(validationErr)
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrNotOwner):
		return http.StatusForbidden, err.Error()
	default:
		return http.StatusInternalServerError, "an error occurred"
	}
}

func validationMessage(err *service.ValidationError) string {
	for _, messages := range err.Fields {
		if len(messages) > 0 {
			return messages[0]
		}
	}
	return err.Error()
}

func propertyIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "propertyID"))
}

func toListingInput(body listingRequest) service.ListingInput {
	return service.ListingInput{
		Title:        body.Title,
		Description:  body.Description,
		Address:      body.Address,
		RentFee:      body.RentFee,
		Availability: body.Availability,
		Image:        body.Image,
	}
}

func toPropertyResponse(property service.Property) propertyResponse {
	return propertyResponse{
		ID:           property.ID.String(),
		LandlordID:   property.LandlordID.String(),
		Title:        property.Title,
		Description:  property.Description,
		Address:      property.Address,
		RentFee:      property.RentFee,
		Availability: property.Availability,
		Image:        property.Image,
		CreatedAt:    property.CreatedAt,
		UpdatedAt:    property.UpdatedAt,
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
