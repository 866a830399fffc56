// Package orders implements the order engine: validating a customer
// request against live stock, reserving quantity, pricing the lines
// and emitting the order together with its invoice.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/montero2/HERFISH-PROJECT/internal/inventory"
	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
	"github.com/montero2/HERFISH-PROJECT/internal/observability"
)

var (
	// ErrInvalidQuantity indicates a requested line qty <= 0.
	ErrInvalidQuantity = errors.New("orders: quantity must be greater than zero")
	// ErrInsufficientStock indicates a requested qty above remaining stock.
	ErrInsufficientStock = errors.New("orders: not enough stock")
	// ErrEmptyOrder indicates a request without lines.
	ErrEmptyOrder = errors.New("orders: at least one order item is required")
)

const invoiceDueDays = 7

// LineInput is one requested order line.
type LineInput struct {
	InventoryID string
	Qty         int
}

// CreateInput carries everything the engine needs to build an order.
type CreateInput struct {
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	PickupPoint   string
	Items         []LineInput
}

// Notifier fans a business event out to an audience. Delivery failures
// never surface here.
type Notifier interface {
	Notify(ctx context.Context, audience ledger.Audience, audienceID, title, message string)
}

// Service is the order engine.
type Service struct {
	store    *ledger.Store
	notifier Notifier
	metrics  *observability.Metrics
}

// NewService builds the order engine. metrics may be nil.
func NewService(store *ledger.Store, notifier Notifier, metrics *observability.Metrics) *Service {
	return &Service{store: store, notifier: notifier, metrics: metrics}
}

// Create validates every requested line against live stock, then
// reserves all of them in one critical section. Validation runs over
// the whole request before any stock is touched, so a failing line
// leaves the inventory exactly as it was.
func (s *Service) Create(ctx context.Context, input CreateInput) (ledger.SalesOrder, ledger.Invoice, error) {
	if len(input.Items) == 0 {
		return ledger.SalesOrder{}, ledger.Invoice{}, ErrEmptyOrder
	}

	var (
		order   ledger.SalesOrder
		invoice ledger.Invoice
	)
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		stocks := make([]*ledger.InventoryItem, len(input.Items))
		reserved := make(map[string]int)
		for i, req := range input.Items {
			stock, ok := tx.InventoryByID(req.InventoryID)
			if !ok {
				return fmt.Errorf("%w: inventory item %s", ledger.ErrNotFound, req.InventoryID)
			}
			if req.Qty <= 0 {
				return fmt.Errorf("%w: %s", ErrInvalidQuantity, req.InventoryID)
			}
			available := stock.Qty - reserved[stock.ID]
			if req.Qty > available {
				return fmt.Errorf("%w for %s, available: %d", ErrInsufficientStock, stock.Product, available)
			}
			reserved[stock.ID] += req.Qty
			stocks[i] = stock
		}

		lines := make([]ledger.SalesOrderItem, len(input.Items))
		var subtotal float64
		for i, req := range input.Items {
			stock := stocks[i]
			unitPrice := inventory.UnitPriceFromValue(stock.Value, stock.Qty)
			lineTotal := inventory.Round2(unitPrice * float64(req.Qty))

			stock.Qty -= req.Qty
			stock.Status = inventory.ComputeStatus(stock.Qty, stock.Reorder)

			lines[i] = ledger.SalesOrderItem{
				InventoryID: stock.ID,
				Product:     stock.Product,
				Qty:         req.Qty,
				UnitPrice:   unitPrice,
				LineTotal:   lineTotal,
			}
			subtotal += lineTotal
		}
		subtotal = inventory.Round2(subtotal)

		now := time.Now()
		issued := now.Format("2006-01-02")
		o := &ledger.SalesOrder{
			ID:            tx.NextID("SO"),
			CustomerID:    input.CustomerID,
			CustomerName:  input.CustomerName,
			CustomerEmail: input.CustomerEmail,
			PickupPoint:   input.PickupPoint,
			Date:          issued,
			Status:        ledger.OrderPendingPayment,
			Items:         lines,
			Currency:      "KES",
			Subtotal:      subtotal,
			PaymentStatus: ledger.PaymentPending,
		}
		inv := &ledger.Invoice{
			ID:            tx.NextIDFor("INVOICE", "INV"),
			OrderID:       o.ID,
			CustomerID:    input.CustomerID,
			CustomerName:  input.CustomerName,
			CustomerEmail: input.CustomerEmail,
			Amount:        subtotal,
			Currency:      "KES",
			Status:        ledger.PaymentPending,
			DueDate:       now.AddDate(0, 0, invoiceDueDays).Format("2006-01-02"),
			IssuedDate:    issued,
		}
		tx.PrependOrder(o)
		tx.PrependInvoice(inv)
		order = o.Clone()
		invoice = inv.Clone()
		return nil
	})
	if err != nil {
		return ledger.SalesOrder{}, ledger.Invoice{}, err
	}
	s.metrics.OrderCreated()

	s.notifier.Notify(ctx, ledger.AudienceCustomer, order.CustomerID,
		"Order placed",
		fmt.Sprintf("Order %s was placed for %s. Complete payment to start fulfillment.", order.ID, inventory.FormatValue(order.Subtotal)))
	s.notifier.Notify(ctx, ledger.AudienceOperator, ledger.OperatorID,
		"New order",
		fmt.Sprintf("Order %s from %s is awaiting payment.", order.ID, order.CustomerName))

	return order, invoice, nil
}

// Get resolves a single order by id.
func (s *Service) Get(ctx context.Context, orderID string) (ledger.SalesOrder, error) {
	var order ledger.SalesOrder
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		o, ok := tx.OrderByID(orderID)
		if !ok {
			return fmt.Errorf("%w: order %s", ledger.ErrNotFound, orderID)
		}
		order = o.Clone()
		return nil
	})
	return order, err
}

// ListForCustomer returns the customer's orders, most recent first.
func (s *Service) ListForCustomer(ctx context.Context, customerID string) ([]ledger.SalesOrder, error) {
	var out []ledger.SalesOrder
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		for _, o := range tx.Orders() {
			if o.CustomerID == customerID {
				out = append(out, o.Clone())
			}
		}
		return nil
	})
	return out, err
}

// ListAll returns every order, most recent first.
func (s *Service) ListAll(ctx context.Context) ([]ledger.SalesOrder, error) {
	var out []ledger.SalesOrder
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		for _, o := range tx.Orders() {
			out = append(out, o.Clone())
		}
		return nil
	})
	return out, err
}
