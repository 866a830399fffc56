package app_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/montero2/HERFISH-PROJECT/internal/app"
	"github.com/montero2/HERFISH-PROJECT/internal/auth"
	"github.com/montero2/HERFISH-PROJECT/internal/fulfillment"
	"github.com/montero2/HERFISH-PROJECT/internal/inventory"
	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
	"github.com/montero2/HERFISH-PROJECT/internal/notify"
	"github.com/montero2/HERFISH-PROJECT/internal/orders"
	"github.com/montero2/HERFISH-PROJECT/internal/payments"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.Default()
	cfg := &app.Config{
		AppEnv:              "development",
		AppRequestTimeout:   10 * time.Second,
		OperatorEmail:       "ops@herfish.local",
		OperatorPassword:    "operator123",
		DistributorEmail:    "dispatch@herfish.local",
		DistributorPassword: "distributor123",
	}

	store := ledger.NewStore()
	require.NoError(t, app.SeedDemoData(store))

	dispatcher := notify.NewDispatcher(store, nil, notify.Contacts{}, logger, nil)

	authSvc := auth.NewService(store, auth.FixedCredentials{
		OperatorEmail:       cfg.OperatorEmail,
		OperatorPassword:    cfg.OperatorPassword,
		DistributorEmail:    cfg.DistributorEmail,
		DistributorPassword: cfg.DistributorPassword,
	})
	guard := auth.NewMiddleware(authSvc)

	inventorySvc := inventory.NewService(store)
	orderSvc := orders.NewService(store, dispatcher, nil)
	paymentSvc := payments.NewService(store, dispatcher)
	fulfillmentSvc := fulfillment.NewService(store, dispatcher)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Guard:              guard,
		AuthHandler:        auth.NewHandler(logger, authSvc),
		InventoryHandler:   inventory.NewHandler(logger, inventorySvc),
		CustomerHandler:    orders.NewHandler(logger, orderSvc, paymentSvc, inventorySvc, guard),
		FulfillmentHandler: fulfillment.NewHandler(logger, fulfillmentSvc, orderSvc, guard),
		FinanceHandler:     payments.NewHandler(logger, paymentSvc, guard),
		NotifyHandler:      notify.NewHandler(dispatcher, guard),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func doJSON(t *testing.T, method, url, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var env envelope
	_ = json.NewDecoder(res.Body).Decode(&env)
	return res.StatusCode, env
}

func loginToken(t *testing.T, srv *httptest.Server, path, email, password string) string {
	t.Helper()
	status, env := doJSON(t, http.MethodPost, srv.URL+path, "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	// The seeded demo buyer logs in.
	customerToken := loginToken(t, srv, "/api/v1/auth/login", "buyer@freshmart.com", "buyer123")
	operatorToken := loginToken(t, srv, "/api/v1/auth/operator/login", "ops@herfish.local", "operator123")
	distributorToken := loginToken(t, srv, "/api/v1/auth/distributor/login", "dispatch@herfish.local", "distributor123")

	// Catalog is public.
	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/customer/catalog", "", nil)
	require.Equal(t, http.StatusOK, status)
	var catalog []inventory.CatalogEntry
	require.NoError(t, json.Unmarshal(env.Data, &catalog))
	require.NotEmpty(t, catalog)
	require.Equal(t, "INV-001", catalog[0].ID)

	// Place an order.
	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/v1/customer/orders", customerToken, map[string]any{
		"pickupPoint": "Gikomba Market",
		"items":       []map[string]any{{"inventoryId": "INV-001", "qty": 4}},
	})
	require.Equal(t, http.StatusCreated, status)
	var created struct {
		Order   ledger.SalesOrder `json:"order"`
		Invoice ledger.Invoice    `json:"invoice"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Equal(t, ledger.OrderPendingPayment, created.Order.Status)
	require.Equal(t, created.Order.ID, created.Invoice.OrderID)
	// Invoices number on their own, untouched by the seeded catalog.
	require.Equal(t, "INV-001", created.Invoice.ID)

	// Pay it.
	status, _ = doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/customer/orders/%s/payments", srv.URL, created.Order.ID),
		customerToken, map[string]string{"method": "M-Pesa"})
	require.Equal(t, http.StatusCreated, status)

	// Paying twice conflicts.
	status, _ = doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/customer/orders/%s/payments", srv.URL, created.Order.ID),
		customerToken, map[string]string{})
	require.Equal(t, http.StatusConflict, status)

	// Operator walks the order to Ready for Dispatch.
	statusURL := fmt.Sprintf("%s/api/v1/sales/orders/%s/status", srv.URL, created.Order.ID)
	status, _ = doJSON(t, http.MethodPatch, statusURL, operatorToken, map[string]string{"status": "Ready for Dispatch"})
	require.Equal(t, http.StatusOK, status)

	// Skipping a step conflicts.
	status, _ = doJSON(t, http.MethodPatch, statusURL, operatorToken, map[string]string{"status": "Delivered"})
	require.Equal(t, http.StatusConflict, status)

	// The order is now visible on the distributor queue.
	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/distributor/orders", distributorToken, nil)
	require.Equal(t, http.StatusOK, status)
	var queue []ledger.SalesOrder
	require.NoError(t, json.Unmarshal(env.Data, &queue))
	require.Len(t, queue, 1)

	// Distributor drives the delivery legs.
	distURL := fmt.Sprintf("%s/api/v1/distributor/orders/%s/status", srv.URL, created.Order.ID)
	for _, next := range []string{"Packed", "Out for Delivery", "Delivered"} {
		status, _ = doJSON(t, http.MethodPatch, distURL, distributorToken, map[string]string{"status": next})
		require.Equal(t, http.StatusOK, status, next)
	}

	// Completion is not a distributor target.
	status, _ = doJSON(t, http.MethodPatch, distURL, distributorToken, map[string]string{"status": "Completed"})
	require.Equal(t, http.StatusBadRequest, status)

	// The operator completes it.
	status, env = doJSON(t, http.MethodPatch, statusURL, operatorToken, map[string]string{"status": "Completed"})
	require.Equal(t, http.StatusOK, status)
	var done ledger.SalesOrder
	require.NoError(t, json.Unmarshal(env.Data, &done))
	require.Equal(t, ledger.OrderCompleted, done.Status)

	// The customer saw the lifecycle as notifications.
	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/notifications/customer", customerToken, nil)
	require.Equal(t, http.StatusOK, status)
	var notes []ledger.NotificationItem
	require.NoError(t, json.Unmarshal(env.Data, &notes))
	require.NotEmpty(t, notes)
	require.Equal(t, "Confirm pickup", notes[0].Title)
}

func TestRoleGuardsOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	// No token.
	status, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/customer/orders", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/inventory/", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/distributor/orders", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	// A customer token does not open operator routes.
	customerToken := loginToken(t, srv, "/api/v1/auth/login", "buyer@freshmart.com", "buyer123")
	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/sales/orders", customerToken, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/finance/invoices", customerToken, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	// Logout invalidates the token.
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/logout", customerToken, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/customer/orders", customerToken, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestOperatorInventoryOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	operatorToken := loginToken(t, srv, "/api/v1/auth/operator/login", "ops@herfish.local", "operator123")

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/inventory/", operatorToken, map[string]any{
		"product":  "Octopus",
		"category": "Shellfish",
		"qty":      40,
		"unit":     "kg",
		"reorder":  60,
		"value":    "KSh 88,000",
	})
	require.Equal(t, http.StatusCreated, status)
	var item ledger.InventoryItem
	require.NoError(t, json.Unmarshal(env.Data, &item))
	require.Equal(t, "INV-006", item.ID)
	require.Equal(t, ledger.StatusLowStock, item.Status)

	// New items appear at the head of the list.
	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/inventory/", operatorToken, nil)
	require.Equal(t, http.StatusOK, status)
	var items []ledger.InventoryItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Equal(t, "INV-006", items[0].ID)
}
