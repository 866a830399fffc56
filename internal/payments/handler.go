package payments

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/montero2/HERFISH-PROJECT/internal/auth"
	"github.com/montero2/HERFISH-PROJECT/internal/platform/httpx"
)

// Handler serves the operator-facing finance listings.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   *auth.Middleware
}

// NewHandler constructs the finance handler.
func NewHandler(logger *slog.Logger, service *Service, guard *auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes attaches the finance routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.guard.RequireOperator)
	r.Get("/invoices", h.invoices)
	r.Get("/payments", h.payments)
}

func (h *Handler) invoices(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListInvoices(r.Context())
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.OK(w, list, "Invoices")
}

func (h *Handler) payments(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListPayments(r.Context())
	if err != nil {
		h.logger.Error("list payments", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.OK(w, list, "Payments")
}
