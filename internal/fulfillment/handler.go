package fulfillment

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/montero2/HERFISH-PROJECT/internal/auth"
	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
	"github.com/montero2/HERFISH-PROJECT/internal/orders"
	"github.com/montero2/HERFISH-PROJECT/internal/platform/httpx"
)

// Handler serves the operator-facing sales routes and the
// distributor-facing fulfillment queue.
type Handler struct {
	logger      *slog.Logger
	fulfillment *Service
	orders      *orders.Service
	guard       *auth.Middleware
	validate    *validator.Validate
}

// NewHandler constructs the fulfillment handler.
func NewHandler(logger *slog.Logger, svc *Service, orderSvc *orders.Service, guard *auth.Middleware) *Handler {
	return &Handler{
		logger:      logger,
		fulfillment: svc,
		orders:      orderSvc,
		guard:       guard,
		validate:    validator.New(),
	}
}

// MountSalesRoutes attaches the operator routes.
func (h *Handler) MountSalesRoutes(r chi.Router) {
	r.Use(h.guard.RequireOperator)
	r.Get("/orders", h.listAll)
	r.Patch("/orders/{orderID}/status", h.operatorStatus)
}

// MountDistributorRoutes attaches the distributor routes.
func (h *Handler) MountDistributorRoutes(r chi.Router) {
	r.Use(h.guard.RequireDistributor)
	r.Get("/orders", h.queue)
	r.Patch("/orders/{orderID}/status", h.distributorStatus)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.orders.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.OK(w, list, "Sales orders")
}

func (h *Handler) queue(w http.ResponseWriter, r *http.Request) {
	list, err := h.fulfillment.DispatchQueue(r.Context())
	if err != nil {
		h.logger.Error("dispatch queue", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.OK(w, list, "Distributor fulfillment queue")
}

// operatorStatus accepts any status in the chain; the state machine
// decides legality.
func (h *Handler) operatorStatus(w http.ResponseWriter, r *http.Request) {
	next, ok := h.decodeStatus(w, r)
	if !ok {
		return
	}
	h.advance(w, r, next, "Order status updated.")
}

// distributorStatus only forwards the subset of targets the
// distributor role may request; the engine itself does not know about
// roles.
func (h *Handler) distributorStatus(w http.ResponseWriter, r *http.Request) {
	next, ok := h.decodeStatus(w, r)
	if !ok {
		return
	}
	if !DistributorStatuses[next] {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed",
			"Distributor status must be one of: Packed, Out for Delivery, Delivered.")
		return
	}
	h.advance(w, r, next, "Distributor status updated.")
}

func (h *Handler) decodeStatus(w http.ResponseWriter, r *http.Request) (ledger.SalesOrderStatus, bool) {
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return "", false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return "", false
	}
	next := ledger.SalesOrderStatus(req.Status)
	if !KnownStatus(next) {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "Unknown order status: "+req.Status)
		return "", false
	}
	return next, true
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request, next ledger.SalesOrderStatus, message string) {
	order, err := h.fulfillment.Advance(r.Context(), chi.URLParam(r, "orderID"), next)
	if err != nil {
		httpx.RespondError(w, err,
			httpx.Mapping{Err: ledger.ErrNotFound, Status: http.StatusNotFound, Title: "Not Found"},
			httpx.Mapping{Err: ErrInvalidTransition, Status: http.StatusConflict, Title: "Invalid Transition"},
		)
		return
	}
	httpx.OK(w, order, message)
}
