// Package payments matches a customer payment to an order's open
// invoice, enforces one-successful-payment-per-invoice and flips the
// order and invoice into their paid states.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/montero2/HERFISH-PROJECT/internal/inventory"
	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
)

var (
	// ErrForbidden indicates the paying customer does not own the order.
	ErrForbidden = errors.New("payments: customer is not authorized to pay for this order")
	// ErrAlreadyPaid indicates a double-payment attempt against a settled invoice.
	ErrAlreadyPaid = errors.New("payments: invoice is already paid")
)

const defaultMethod = "Card"

// Notifier fans a business event out to an audience.
type Notifier interface {
	Notify(ctx context.Context, audience ledger.Audience, audienceID, title, message string)
}

// Service is the payment engine.
type Service struct {
	store    *ledger.Store
	notifier Notifier
}

// NewService builds the payment engine.
func NewService(store *ledger.Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Pay settles the open invoice of an order. The invoice status guard
// makes the operation idempotent in the failure direction: a second
// call always returns ErrAlreadyPaid and appends nothing to the log.
func (s *Service) Pay(ctx context.Context, orderID, customerID, method string) (ledger.Payment, ledger.Invoice, ledger.SalesOrder, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		method = defaultMethod
	}

	var (
		payment ledger.Payment
		invoice ledger.Invoice
		order   ledger.SalesOrder
	)
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		o, ok := tx.OrderByID(orderID)
		if !ok {
			return fmt.Errorf("%w: order %s", ledger.ErrNotFound, orderID)
		}
		if o.CustomerID != customerID {
			return ErrForbidden
		}
		inv, ok := tx.InvoiceByOrderID(o.ID)
		if !ok {
			return fmt.Errorf("%w: invoice for order %s", ledger.ErrNotFound, o.ID)
		}
		if inv.Status == ledger.PaymentPaid {
			return ErrAlreadyPaid
		}

		p := &ledger.Payment{
			ID:         tx.NextID("PAY"),
			OrderID:    o.ID,
			InvoiceID:  inv.ID,
			CustomerID: customerID,
			Amount:     inv.Amount,
			Currency:   inv.Currency,
			Method:     method,
			Status:     ledger.PaymentCompleted,
			PaidAt:     time.Now(),
		}
		tx.PrependPayment(p)
		inv.Status = ledger.PaymentPaid
		o.PaymentStatus = ledger.PaymentPaid
		o.Status = ledger.OrderPaid

		payment = p.Clone()
		invoice = inv.Clone()
		order = o.Clone()
		return nil
	})
	if err != nil {
		return ledger.Payment{}, ledger.Invoice{}, ledger.SalesOrder{}, err
	}

	s.notifier.Notify(ctx, ledger.AudienceCustomer, order.CustomerID,
		"Payment received",
		fmt.Sprintf("Payment of %s for order %s was received. Your order is now being prepared.", inventory.FormatValue(payment.Amount), order.ID))
	s.notifier.Notify(ctx, ledger.AudienceOperator, ledger.OperatorID,
		"Payment recorded",
		fmt.Sprintf("Order %s was paid via %s.", order.ID, payment.Method))

	return payment, invoice, order, nil
}

// ListInvoices returns every invoice, most recent first.
func (s *Service) ListInvoices(ctx context.Context) ([]ledger.Invoice, error) {
	var out []ledger.Invoice
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		for _, inv := range tx.Invoices() {
			out = append(out, inv.Clone())
		}
		return nil
	})
	return out, err
}

// ListPayments returns the payment log, most recent first.
func (s *Service) ListPayments(ctx context.Context) ([]ledger.Payment, error) {
	var out []ledger.Payment
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		for _, p := range tx.Payments() {
			out = append(out, p.Clone())
		}
		return nil
	})
	return out, err
}
