package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Role identifies which side of the marketplace an account belongs to.
type Role string

const (
	RoleLandlord Role = "landlord"
	RoleTenant   Role = "tenant"
)

// Valid reports whether the role is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleLandlord || r == RoleTenant
}

// Actor is the authenticated identity bound to a request. Exactly one role is
// set per request; route groups still gate on the role they expect.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

var (
	// ErrMissingToken indicates the Authorization header was absent or malformed.
	ErrMissingToken = errors.New("authentication required")
	// ErrInvalidToken indicates the bearer token failed verification or expired.
	ErrInvalidToken = errors.New("invalid token")
	// ErrRoleNotAllowed indicates a valid claim whose role does not match the
	// route. Still reported as 401, but logged distinctly from a missing token.
	ErrRoleNotAllowed = errors.New("not authorized for this role")
)

type ctxKey struct{}

// WithActor stores the acting identity on the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

// ActorFromContext retrieves the acting identity, if present.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(ctxKey{}).(Actor)
	return actor, ok
}

// ExtractBearerToken pulls the token out of the Authorization header.
func ExtractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	// Case-insensitive prefix match.
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// Middleware verifies the bearer token and binds the actor into the request
// context. Requests without a valid claim are rejected with 401.
func Middleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	if issuer == nil {
		panic("auth.Middleware: issuer is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := ExtractBearerToken(r)
			if !found {
				unauthorized(w, ErrMissingToken)
				return
			}

			actor, err := issuer.Verify(token)
			if err != nil {
				unauthorized(w, ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireRole rejects requests whose actor does not carry the expected role.
// Role mismatches report 401, matching the behavior of the original API.
func RequireRole(role Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				unauthorized(w, ErrMissingToken)
				return
			}
			if actor.Role != role {
				unauthorized(w, ErrRoleNotAllowed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + err.Error() + `"}`))
}
