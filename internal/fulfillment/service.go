// Package fulfillment enforces the legal order-status chain and fires
// the audience-targeted notifications attached to each transition.
package fulfillment

import (
	"context"
	"errors"
	"fmt"

	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
)

// ErrInvalidTransition indicates a status change outside the chain.
var ErrInvalidTransition = errors.New("fulfillment: invalid status transition")

// successor is the strict linear chain; Completed is terminal and has
// no entry. Every status other than Completed accepts exactly one
// target.
var successor = map[ledger.SalesOrderStatus]ledger.SalesOrderStatus{
	ledger.OrderPendingPayment:   ledger.OrderPaid,
	ledger.OrderPaid:             ledger.OrderReadyForDispatch,
	ledger.OrderReadyForDispatch: ledger.OrderPacked,
	ledger.OrderPacked:           ledger.OrderOutForDelivery,
	ledger.OrderOutForDelivery:   ledger.OrderDelivered,
	ledger.OrderDelivered:        ledger.OrderCompleted,
}

// DistributorStatuses are the only targets the distributor-facing
// route may request. The engine itself does not check caller roles;
// this restriction belongs to the HTTP collaborator.
var DistributorStatuses = map[ledger.SalesOrderStatus]bool{
	ledger.OrderPacked:         true,
	ledger.OrderOutForDelivery: true,
	ledger.OrderDelivered:      true,
}

// KnownStatus reports whether s is part of the fulfillment chain.
func KnownStatus(s ledger.SalesOrderStatus) bool {
	if s == ledger.OrderCompleted {
		return true
	}
	_, ok := successor[s]
	return ok
}

// Notifier fans a business event out to an audience.
type Notifier interface {
	Notify(ctx context.Context, audience ledger.Audience, audienceID, title, message string)
}

// Service is the fulfillment state machine.
type Service struct {
	store    *ledger.Store
	notifier Notifier
}

// NewService builds the state machine.
func NewService(store *ledger.Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Advance moves an order to next, which must be the unique successor
// of its current status. Advancing to Paid also settles the payment
// state on the order and its invoice, keeping the operator-driven path
// consistent with the customer-driven payment engine.
func (s *Service) Advance(ctx context.Context, orderID string, next ledger.SalesOrderStatus) (ledger.SalesOrder, error) {
	var order ledger.SalesOrder
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		o, ok := tx.OrderByID(orderID)
		if !ok {
			return fmt.Errorf("%w: order %s", ledger.ErrNotFound, orderID)
		}
		allowed, ok := successor[o.Status]
		if !ok || next != allowed {
			return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, o.Status, next)
		}
		o.Status = next
		if next == ledger.OrderPaid {
			o.PaymentStatus = ledger.PaymentPaid
			if inv, ok := tx.InvoiceByOrderID(o.ID); ok {
				inv.Status = ledger.PaymentPaid
			}
		}
		order = o.Clone()
		return nil
	})
	if err != nil {
		return ledger.SalesOrder{}, err
	}

	s.fanOut(ctx, order)
	return order, nil
}

// fanOut fires the per-transition notifications.
func (s *Service) fanOut(ctx context.Context, order ledger.SalesOrder) {
	switch order.Status {
	case ledger.OrderReadyForDispatch:
		s.notifier.Notify(ctx, ledger.AudienceDistributor, ledger.DistributorID,
			"Dispatch assigned",
			fmt.Sprintf("Order %s is ready for dispatch to %s.", order.ID, order.PickupPoint))
		s.notifier.Notify(ctx, ledger.AudienceCustomer, order.CustomerID,
			"Order confirmed",
			fmt.Sprintf("Order %s is confirmed and being prepared for dispatch.", order.ID))
	case ledger.OrderPacked:
		s.notifier.Notify(ctx, ledger.AudienceCustomer, order.CustomerID,
			"Order packed",
			fmt.Sprintf("Order %s has been packed and will ship shortly.", order.ID))
	case ledger.OrderOutForDelivery:
		s.notifier.Notify(ctx, ledger.AudienceCustomer, order.CustomerID,
			"Order in transit",
			fmt.Sprintf("Order %s is out for delivery to %s.", order.ID, order.PickupPoint))
	case ledger.OrderDelivered:
		s.notifier.Notify(ctx, ledger.AudienceCustomer, order.CustomerID,
			"Confirm pickup",
			fmt.Sprintf("Order %s was delivered to %s. Please confirm pickup.", order.ID, order.PickupPoint))
	case ledger.OrderCompleted:
		s.notifier.Notify(ctx, ledger.AudienceOperator, ledger.OperatorID,
			"Order completed",
			fmt.Sprintf("Order %s has been completed.", order.ID))
		s.notifier.Notify(ctx, ledger.AudienceDistributor, ledger.DistributorID,
			"Order completed",
			fmt.Sprintf("Fulfillment of order %s is complete.", order.ID))
	}
}

// DispatchQueue returns the orders visible to the distributor: those
// at or past Ready for Dispatch, most recent first.
func (s *Service) DispatchQueue(ctx context.Context) ([]ledger.SalesOrder, error) {
	visible := map[ledger.SalesOrderStatus]bool{
		ledger.OrderReadyForDispatch: true,
		ledger.OrderPacked:           true,
		ledger.OrderOutForDelivery:   true,
		ledger.OrderDelivered:        true,
		ledger.OrderCompleted:        true,
	}
	var out []ledger.SalesOrder
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		for _, o := range tx.Orders() {
			if visible[o.Status] {
				out = append(out, o.Clone())
			}
		}
		return nil
	})
	return out, err
}
