package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lettify/lettify/domains/accounts/be/service"
	platformauth "github.com/lettify/lettify/platform/go/auth"
	platformlogging "github.com/lettify/lettify/platform/go/logging"
)

// Handler wires the accounts service to the HTTP routes. Each handler is
// constructed for a specific role so the landlord and tenant route trees share
// one implementation.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("accounts service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

type credentialsRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type profileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type accountResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SignUp registers a new account for the given role and returns a session token.
func (h *Handler) SignUp(role platformauth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := h.svc.SignUp(r.Context(), role, service.SignUpInput{
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Email:     body.Email,
			Password:  body.Password,
		})
		if err != nil {
			h.respondServiceError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message":     roleNoun(role) + " signed up successfully",
			idField(role): result.AccountID.String(),
			"token":       result.Token,
		})
	}
}

// LogIn authenticates an account and returns a fresh session token.
func (h *Handler) LogIn(role platformauth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := h.svc.LogIn(r.Context(), role, body.Email, body.Password)
		if err != nil {
			h.respondServiceError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message":     roleNoun(role) + " logged in successfully",
			idField(role): result.AccountID.String(),
			"token":       result.Token,
		})
	}
}

// Profile returns the acting identity's own record.
func (h *Handler) Profile(role platformauth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := platformauth.ActorFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, platformauth.ErrMissingToken.Error())
			return
		}

		account, err := h.svc.Profile(r.Context(), role, actor.ID)
		if err != nil {
			h.respondServiceError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, toAccountResponse(account))
	}
}

// UpdateProfile replaces the acting identity's profile fields.
func (h *Handler) UpdateProfile(role platformauth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := platformauth.ActorFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, platformauth.ErrMissingToken.Error())
			return
		}

		var body profileRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if _, err := h.svc.UpdateProfile(r.Context(), role, actor.ID, service.UpdateProfileInput{
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Email:     body.Email,
		}); err != nil {
			h.respondServiceError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message": roleNoun(role) + " profile updated successfully",
		})
	}
}

// DeleteProfile hard-deletes the acting identity's account.
func (h *Handler) DeleteProfile(role platformauth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := platformauth.ActorFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, platformauth.ErrMissingToken.Error())
			return
		}

		if err := h.svc.DeleteProfile(r.Context(), role, actor.ID); err != nil {
			h.respondServiceError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message": roleNoun(role) + " profile deleted successfully",
		})
	}
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classifyError(err)

	logger := platformlogging.FromRequest(r, h.logger)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("accounts operation failed", zap.Int("status", status), zap.Error(err))
	case status == http.StatusNotFound:
		logger.Info("account not found", zap.Int("status", status), zap.Error(err))
	default:
		logger.Warn("accounts request rejected", zap.Int("status", status), zap.Error(err))
	}

	respondError(w, status, message)
}

func classifyError(err error) (int, string) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationMessage(validationErr)
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
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

func toAccountResponse(account service.Account) accountResponse {
	return accountResponse{
		ID:        account.ID.String(),
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

func roleNoun(role platformauth.Role) string {
	if role == platformauth.RoleTenant {
		return "Tenant"
	}
	return "Landlord"
}

func idField(role platformauth.Role) string {
	if role == platformauth.RoleTenant {
		return "tenant_id"
	}
	return "landlord_id"
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
