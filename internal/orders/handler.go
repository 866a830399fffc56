package orders

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/montero2/HERFISH-PROJECT/internal/auth"
	"github.com/montero2/HERFISH-PROJECT/internal/inventory"
	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
	"github.com/montero2/HERFISH-PROJECT/internal/payments"
	"github.com/montero2/HERFISH-PROJECT/internal/platform/httpx"
)

// Handler serves the customer-facing shop routes: catalog, order
// creation and payment.
type Handler struct {
	logger    *slog.Logger
	orders    *Service
	payments  *payments.Service
	inventory *inventory.Service
	guard     *auth.Middleware
	validate  *validator.Validate
}

// NewHandler constructs the customer handler.
func NewHandler(logger *slog.Logger, orders *Service, pay *payments.Service, inv *inventory.Service, guard *auth.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		orders:    orders,
		payments:  pay,
		inventory: inv,
		guard:     guard,
		validate:  validator.New(),
	}
}

// MountRoutes attaches the customer routes. The catalog is public;
// everything else requires a customer session.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/catalog", h.catalog)
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireCustomer)
		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.createOrder)
		r.Post("/orders/{orderID}/payments", h.payOrder)
	})
}

type orderLineRequest struct {
	InventoryID string `json:"inventoryId" validate:"required"`
	Qty         int    `json:"qty" validate:"required"`
}

type createOrderRequest struct {
	PickupPoint string             `json:"pickupPoint" validate:"required,max=200"`
	Items       []orderLineRequest `json:"items" validate:"required,min=1,dive"`
}

type paymentRequest struct {
	Method string `json:"method" validate:"omitempty,max=40"`
}

func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.inventory.Catalog(r.Context())
	if err != nil {
		h.logger.Error("load catalog", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.OK(w, catalog, "Customer catalog")
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	customer, _ := auth.CustomerFromContext(r.Context())
	list, err := h.orders.ListForCustomer(r.Context(), customer.ID)
	if err != nil {
		h.logger.Error("list customer orders", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.OK(w, list, "Customer orders")
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	customer, _ := auth.CustomerFromContext(r.Context())

	var req createOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	lines := make([]LineInput, len(req.Items))
	for i, item := range req.Items {
		lines[i] = LineInput{InventoryID: item.InventoryID, Qty: item.Qty}
	}
	order, invoice, err := h.orders.Create(r.Context(), CreateInput{
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		PickupPoint:   req.PickupPoint,
		Items:         lines,
	})
	if err != nil {
		httpx.RespondError(w, err,
			httpx.Mapping{Err: ledger.ErrNotFound, Status: http.StatusNotFound, Title: "Not Found"},
			httpx.Mapping{Err: ErrInvalidQuantity, Status: http.StatusBadRequest, Title: "Invalid Quantity"},
			httpx.Mapping{Err: ErrInsufficientStock, Status: http.StatusBadRequest, Title: "Insufficient Stock"},
			httpx.Mapping{Err: ErrEmptyOrder, Status: http.StatusBadRequest, Title: "Validation Failed"},
		)
		return
	}
	httpx.Created(w, map[string]any{"order": order, "invoice": invoice}, "Order created successfully.")
}

func (h *Handler) payOrder(w http.ResponseWriter, r *http.Request) {
	customer, _ := auth.CustomerFromContext(r.Context())
	orderID := chi.URLParam(r, "orderID")

	var req paymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	payment, invoice, order, err := h.payments.Pay(r.Context(), orderID, customer.ID, req.Method)
	if err != nil {
		httpx.RespondError(w, err,
			httpx.Mapping{Err: ledger.ErrNotFound, Status: http.StatusNotFound, Title: "Not Found"},
			httpx.Mapping{Err: payments.ErrForbidden, Status: http.StatusForbidden, Title: "Forbidden"},
			httpx.Mapping{Err: payments.ErrAlreadyPaid, Status: http.StatusConflict, Title: "Already Paid"},
		)
		return
	}
	httpx.Created(w, map[string]any{"payment": payment, "invoice": invoice, "order": order}, "Payment recorded successfully.")
}
