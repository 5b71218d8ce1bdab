package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/opsdeck/opsdeck/internal/accounts"
	"github.com/opsdeck/opsdeck/internal/auth"
	"github.com/opsdeck/opsdeck/internal/observability"
	"github.com/opsdeck/opsdeck/internal/platform/httpx"
	"github.com/opsdeck/opsdeck/internal/rbac"
	"github.com/opsdeck/opsdeck/internal/requests"
	"github.com/opsdeck/opsdeck/internal/roles"
	"github.com/opsdeck/opsdeck/internal/sales"
	"github.com/opsdeck/opsdeck/internal/shared"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthHandler     *auth.Handler
	AccountsHandler *accounts.Handler
	SalesHandler    *sales.Handler
	RequestsHandler *requests.Handler
	RolesHandler    *roles.Handler
	RBACMiddleware  rbac.Middleware
	Audit           *shared.AuditLogger
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with Opsdeck defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		RBAC:    params.RBACMiddleware,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)
		r.Route("/users", params.AccountsHandler.MountRoutes)
		r.Route("/sales", params.SalesHandler.MountRoutes)
		r.Route("/requests", params.RequestsHandler.MountRoutes)
		r.Route("/roles", params.RolesHandler.MountRoutes)
		if params.Audit != nil {
			r.Group(func(r chi.Router) {
				r.Use(params.RBACMiddleware.Require(rbac.CapAuditView))
				r.Get("/audit", func(w http.ResponseWriter, req *http.Request) {
					httpx.JSON(w, http.StatusOK, params.Audit.Entries())
				})
			})
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
