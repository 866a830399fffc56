package notify

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/montero2/HERFISH-PROJECT/internal/auth"
	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
	"github.com/montero2/HERFISH-PROJECT/internal/platform/httpx"
)

// Handler serves the per-audience notification routes.
type Handler struct {
	dispatcher *Dispatcher
	guard      *auth.Middleware
}

// NewHandler constructs the notifications handler.
func NewHandler(dispatcher *Dispatcher, guard *auth.Middleware) *Handler {
	return &Handler{dispatcher: dispatcher, guard: guard}
}

// MountRoutes attaches one list + mark-read pair per audience.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireCustomer)
		r.Get("/customer", h.listCustomer)
		r.Patch("/customer/read", h.readCustomer)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireOperator)
		r.Get("/operator", h.listFixed(ledger.AudienceOperator, ledger.OperatorID))
		r.Patch("/operator/read", h.readFixed(ledger.AudienceOperator, ledger.OperatorID))
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireDistributor)
		r.Get("/distributor", h.listFixed(ledger.AudienceDistributor, ledger.DistributorID))
		r.Patch("/distributor/read", h.readFixed(ledger.AudienceDistributor, ledger.DistributorID))
	})
}

type markReadRequest struct {
	NotificationID string `json:"notificationId"`
}

func (h *Handler) listCustomer(w http.ResponseWriter, r *http.Request) {
	customer, _ := auth.CustomerFromContext(r.Context())
	h.list(w, r, ledger.AudienceCustomer, customer.ID)
}

func (h *Handler) readCustomer(w http.ResponseWriter, r *http.Request) {
	customer, _ := auth.CustomerFromContext(r.Context())
	h.markRead(w, r, ledger.AudienceCustomer, customer.ID)
}

func (h *Handler) listFixed(audience ledger.Audience, audienceID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.list(w, r, audience, audienceID)
	}
}

func (h *Handler) readFixed(audience ledger.Audience, audienceID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.markRead(w, r, audience, audienceID)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, audience ledger.Audience, audienceID string) {
	items, err := h.dispatcher.ListForAudience(r.Context(), audience, audienceID)
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.OK(w, items, "")
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request, audience ledger.Audience, audienceID string) {
	var req markReadRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	item, err := h.dispatcher.MarkRead(r.Context(), req.NotificationID, audience, audienceID)
	if err != nil {
		httpx.RespondError(w, err,
			httpx.Mapping{Err: ledger.ErrNotFound, Status: http.StatusNotFound, Title: "Not Found"},
		)
		return
	}
	httpx.OK(w, item, "")
}
