package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	accountshandler "github.com/lettify/lettify/domains/accounts/be/handler"
	propertieshandler "github.com/lettify/lettify/domains/properties/be/handler"
	tenancieshandler "github.com/lettify/lettify/domains/tenancies/be/handler"
	platformauth "github.com/lettify/lettify/platform/go/auth"
	platformlogging "github.com/lettify/lettify/platform/go/logging"
	platformmiddleware "github.com/lettify/lettify/platform/go/middleware"
)

type routerDeps struct {
	logger         *zap.Logger
	issuer         *platformauth.TokenIssuer
	accounts       *accountshandler.Handler
	properties     *propertieshandler.Handler
	tenancies      *tenancieshandler.Handler
	requestTimeout time.Duration
}

// newRouter assembles the full route tree. Public routes skip authentication;
// the landlord and tenant groups verify the bearer claim and gate on role.
func newRouter(deps routerDeps) *chi.Mux {
	router := chi.NewRouter()

	router.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		chimw.Timeout(deps.requestTimeout),
		platformmiddleware.DefaultCORS(),
	)
	router.Use(platformlogging.RequestLogger(deps.logger))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api", func(api chi.Router) {
		// Public: signup, login, and property browsing.
		api.Post("/landlords/signup", deps.accounts.SignUp(platformauth.RoleLandlord))
		api.Post("/landlords/login", deps.accounts.LogIn(platformauth.RoleLandlord))
		api.Post("/tenants/signup", deps.accounts.SignUp(platformauth.RoleTenant))
		api.Post("/tenants/login", deps.accounts.LogIn(platformauth.RoleTenant))
		api.Get("/properties", deps.properties.List)
		api.Get("/properties/{propertyID}", deps.properties.GetAvailable)

		// Landlord operations.
		api.Group(func(r chi.Router) {
			r.Use(platformauth.Middleware(deps.issuer))
			r.Use(platformauth.RequireRole(platformauth.RoleLandlord))

			r.Post("/properties", deps.properties.Create)
			r.Put("/properties/{propertyID}", deps.properties.Update)
			r.Delete("/properties/{propertyID}", deps.properties.Delete)
			r.Put("/properties/{propertyID}/availability", deps.properties.SetAvailable)
			r.Post("/properties/{propertyID}/approve", deps.tenancies.Approve)
			r.Get("/landlords/requests_to_approve", deps.tenancies.RequestsToApprove)
			r.Get("/landlords/approved_requests", deps.tenancies.ApprovedRequests)
			r.Get("/landlords/profile", deps.accounts.Profile(platformauth.RoleLandlord))
			r.Put("/landlords/update_profile", deps.accounts.UpdateProfile(platformauth.RoleLandlord))
			r.Delete("/landlords/delete_profile", deps.accounts.DeleteProfile(platformauth.RoleLandlord))
		})

		// Tenant operations.
		api.Group(func(r chi.Router) {
			r.Use(platformauth.Middleware(deps.issuer))
			r.Use(platformauth.RequireRole(platformauth.RoleTenant))

			r.Post("/properties/{propertyID}/request", deps.tenancies.Request)
			r.Get("/tenants/approved_properties", deps.tenancies.ApprovedProperties)
			r.Get("/tenants/profile", deps.accounts.Profile(platformauth.RoleTenant))
			r.Put("/tenants/update_profile", deps.accounts.UpdateProfile(platformauth.RoleTenant))
			r.Delete("/tenants/delete_profile", deps.accounts.DeleteProfile(platformauth.RoleTenant))
		})
	})

	return router
}
