package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
	"github.com/montero2/HERFISH-PROJECT/internal/platform/httpx"
)

type ctxKey int

const customerKey ctxKey = iota

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// ContextWithCustomer stores the authenticated customer on the context.
func ContextWithCustomer(ctx context.Context, acc ledger.CustomerAccount) context.Context {
	return context.WithValue(ctx, customerKey, acc)
}

// CustomerFromContext returns the authenticated customer, if any.
func CustomerFromContext(ctx context.Context) (ledger.CustomerAccount, bool) {
	acc, ok := ctx.Value(customerKey).(ledger.CustomerAccount)
	return acc, ok
}

// Middleware guards routes by session role.
type Middleware struct {
	service *Service
}

// NewMiddleware builds route guards over the session maps.
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireCustomer resolves the bearer token to a customer account and
// stores it on the request context.
func (m *Middleware) RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acc, ok := m.service.CustomerByToken(r.Context(), BearerToken(r))
		if !ok {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Provide a valid customer bearer token.")
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithCustomer(r.Context(), acc)))
	})
}

// RequireOperator admits only live operator sessions.
func (m *Middleware) RequireOperator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.service.IsOperatorToken(r.Context(), BearerToken(r)) {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Operator token is required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireDistributor admits only live distributor sessions.
func (m *Middleware) RequireDistributor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.service.IsDistributorToken(r.Context(), BearerToken(r)) {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Distributor token is required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
