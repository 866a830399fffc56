package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/montero2/HERFISH-PROJECT/internal/platform/httpx"
)

// Handler serves the /auth routes.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the auth handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes attaches auth routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/operator/login", h.operatorLogin)
	r.Post("/distributor/login", h.distributorLogin)
	r.Post("/logout", h.logout)
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token   string `json:"token"`
	Account any    `json:"account,omitempty"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	acc, err := h.service.Register(r.Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		httpx.RespondError(w, err,
			httpx.Mapping{Err: ErrEmailTaken, Status: http.StatusConflict, Title: "Email Taken"},
			httpx.Mapping{Err: ErrInvalidInput, Status: http.StatusBadRequest, Title: "Validation Failed"},
		)
		return
	}
	httpx.Created(w, acc, "Account registered.")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	token, acc, err := h.service.CustomerLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, err,
			httpx.Mapping{Err: ErrInvalidCredentials, Status: http.StatusUnauthorized, Title: "Unauthorized"},
		)
		return
	}
	httpx.OK(w, sessionResponse{Token: token, Account: acc}, "Login successful.")
}

func (h *Handler) operatorLogin(w http.ResponseWriter, r *http.Request) {
	h.fixedLogin(w, r, h.service.OperatorLogin)
}

func (h *Handler) distributorLogin(w http.ResponseWriter, r *http.Request) {
	h.fixedLogin(w, r, h.service.DistributorLogin)
}

func (h *Handler) fixedLogin(w http.ResponseWriter, r *http.Request, login func(ctx context.Context, email, password string) (string, error)) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	token, err := login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, err,
			httpx.Mapping{Err: ErrInvalidCredentials, Status: http.StatusUnauthorized, Title: "Unauthorized"},
		)
		return
	}
	httpx.OK(w, sessionResponse{Token: token}, "Login successful.")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token == "" {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Provide a bearer token to log out.")
		return
	}
	if err := h.service.Logout(r.Context(), token); err != nil {
		h.logger.Error("logout", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.OK(w, nil, "Logged out.")
}
