package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/montero2/HERFISH-PROJECT/internal/auth"
	"github.com/montero2/HERFISH-PROJECT/internal/fulfillment"
	"github.com/montero2/HERFISH-PROJECT/internal/inventory"
	"github.com/montero2/HERFISH-PROJECT/internal/notify"
	"github.com/montero2/HERFISH-PROJECT/internal/observability"
	"github.com/montero2/HERFISH-PROJECT/internal/orders"
	"github.com/montero2/HERFISH-PROJECT/internal/payments"
	"github.com/montero2/HERFISH-PROJECT/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	Guard              *auth.Middleware
	AuthHandler        *auth.Handler
	InventoryHandler   *inventory.Handler
	CustomerHandler    *orders.Handler
	FulfillmentHandler *fulfillment.Handler
	FinanceHandler     *payments.Handler
	NotifyHandler      *notify.Handler
	JobsHandler        *jobs.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with the API surface the clients
// consume under /api/v1.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
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

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/customer", params.CustomerHandler.MountRoutes)
		r.Route("/notifications", params.NotifyHandler.MountRoutes)
		r.Route("/inventory", func(r chi.Router) {
			r.Use(params.Guard.RequireOperator)
			params.InventoryHandler.MountRoutes(r)
		})
		r.Route("/sales", params.FulfillmentHandler.MountSalesRoutes)
		r.Route("/distributor", params.FulfillmentHandler.MountDistributorRoutes)
		r.Route("/finance", params.FinanceHandler.MountRoutes)
	})

	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
