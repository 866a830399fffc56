package inventory

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/montero2/HERFISH-PROJECT/internal/platform/httpx"
)

// Handler serves the operator-facing inventory routes.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the inventory handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes attaches inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.add)
}

type addItemRequest struct {
	Product  string `json:"product" validate:"required,max=200"`
	Category string `json:"category" validate:"required,max=100"`
	Qty      int    `json:"qty" validate:"gte=0"`
	Unit     string `json:"unit" validate:"required,max=20"`
	Reorder  int    `json:"reorder" validate:"gte=0"`
	Value    string `json:"value" validate:"required,max=50"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list inventory", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.OK(w, items, "Inventory list")
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	item, err := h.service.Add(r.Context(), AddItemInput{
		Product:  req.Product,
		Category: req.Category,
		Qty:      req.Qty,
		Unit:     req.Unit,
		Reorder:  req.Reorder,
		Value:    req.Value,
	})
	if err != nil {
		httpx.RespondError(w, err,
			httpx.Mapping{Err: ErrInvalidInput, Status: http.StatusBadRequest, Title: "Validation Failed"},
		)
		return
	}
	httpx.Created(w, item, "Product created")
}
