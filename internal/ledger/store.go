package ledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNotFound indicates an entity id could not be resolved.
var ErrNotFound = errors.New("ledger: not found")

// Store is the authoritative aggregate of all entities. The original
// backend relied on a single-threaded event loop for atomicity; here a
// single mutex gives the same guarantee: every business mutation runs
// as one critical section, so concurrent order creation can never
// double-sell stock.
type Store struct {
	mu sync.Mutex

	inventory     []*InventoryItem
	accounts      []*CustomerAccount
	orders        []*SalesOrder
	invoices      []*Invoice
	payments      []*Payment
	notifications []*NotificationItem

	customerSessions    map[string]string
	operatorSessions    map[string]struct{}
	distributorSessions map[string]struct{}

	seq map[string]int
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		customerSessions:    make(map[string]string),
		operatorSessions:    make(map[string]struct{}),
		distributorSessions: make(map[string]struct{}),
		seq:                 make(map[string]int),
	}
}

// Tx exposes the collections to a function running under the store
// lock. It is only valid for the duration of the WithLock callback.
type Tx struct {
	s *Store
}

// WithLock runs fn as a single critical section over the whole store.
func (s *Store) WithLock(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{s: s})
}

// NextID returns the next identifier for the prefix, formatted as
// PREFIX-001, PREFIX-002, ... The counter is monotonic per prefix and
// independent of collection length, so it stays unique even if
// deletion support is ever added.
func (tx *Tx) NextID(prefix string) string {
	return tx.NextIDFor(prefix, prefix)
}

// NextIDFor draws from the named sequence but renders with prefix.
// Inventory items and invoices both render INV- yet number
// independently, so they cannot share a counter key.
func (tx *Tx) NextIDFor(seq, prefix string) string {
	tx.s.seq[seq]++
	return fmt.Sprintf("%s-%03d", prefix, tx.s.seq[seq])
}

// SeedSequence advances a prefix counter, used when loading seed data
// with pre-assigned ids.
func (tx *Tx) SeedSequence(prefix string, n int) {
	if tx.s.seq[prefix] < n {
		tx.s.seq[prefix] = n
	}
}

// Inventory

// InventoryByID resolves an item for in-place mutation.
func (tx *Tx) InventoryByID(id string) (*InventoryItem, bool) {
	for _, item := range tx.s.inventory {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// Inventory returns the live item list, most recent first.
func (tx *Tx) Inventory() []*InventoryItem {
	return tx.s.inventory
}

// PrependInventory inserts a new item at the head of the list.
func (tx *Tx) PrependInventory(item *InventoryItem) {
	tx.s.inventory = append([]*InventoryItem{item}, tx.s.inventory...)
}

// AppendInventory adds an item at the tail, used for seed data so the
// catalog keeps its authored order.
func (tx *Tx) AppendInventory(item *InventoryItem) {
	tx.s.inventory = append(tx.s.inventory, item)
}

// Accounts

// AccountByEmail looks up an account case-insensitively.
func (tx *Tx) AccountByEmail(email string) (*CustomerAccount, bool) {
	for _, acc := range tx.s.accounts {
		if strings.EqualFold(acc.Email, email) {
			return acc, true
		}
	}
	return nil, false
}

// AccountByID resolves a customer account.
func (tx *Tx) AccountByID(id string) (*CustomerAccount, bool) {
	for _, acc := range tx.s.accounts {
		if acc.ID == id {
			return acc, true
		}
	}
	return nil, false
}

// AppendAccount stores a newly registered account.
func (tx *Tx) AppendAccount(acc *CustomerAccount) {
	tx.s.accounts = append(tx.s.accounts, acc)
}

// Orders

// OrderByID resolves a sales order for mutation.
func (tx *Tx) OrderByID(id string) (*SalesOrder, bool) {
	for _, o := range tx.s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Orders returns the live order list, most recent first.
func (tx *Tx) Orders() []*SalesOrder {
	return tx.s.orders
}

// PrependOrder inserts a new order at the head of the list.
func (tx *Tx) PrependOrder(o *SalesOrder) {
	tx.s.orders = append([]*SalesOrder{o}, tx.s.orders...)
}

// Invoices

// InvoiceByOrderID resolves the invoice issued for an order.
func (tx *Tx) InvoiceByOrderID(orderID string) (*Invoice, bool) {
	for _, inv := range tx.s.invoices {
		if inv.OrderID == orderID {
			return inv, true
		}
	}
	return nil, false
}

// Invoices returns the live invoice list, most recent first.
func (tx *Tx) Invoices() []*Invoice {
	return tx.s.invoices
}

// PrependInvoice inserts a new invoice at the head of the list.
func (tx *Tx) PrependInvoice(inv *Invoice) {
	tx.s.invoices = append([]*Invoice{inv}, tx.s.invoices...)
}

// Payments

// Payments returns the append-only payment log, most recent first.
func (tx *Tx) Payments() []*Payment {
	return tx.s.payments
}

// PrependPayment records a payment at the head of the log.
func (tx *Tx) PrependPayment(p *Payment) {
	tx.s.payments = append([]*Payment{p}, tx.s.payments...)
}

// Notifications

// Notifications returns the live notification list, most recent first.
func (tx *Tx) Notifications() []*NotificationItem {
	return tx.s.notifications
}

// PrependNotification records a notification at the head of the list.
func (tx *Tx) PrependNotification(n *NotificationItem) {
	tx.s.notifications = append([]*NotificationItem{n}, tx.s.notifications...)
}

// Sessions. Tokens are opaque strings with no expiry; deletion is
// explicit logout. Customer tokens map to an account id, operator and
// distributor tokens only prove the role.

// PutCustomerSession binds a token to a customer account.
func (tx *Tx) PutCustomerSession(token, accountID string) {
	tx.s.customerSessions[token] = accountID
}

// CustomerSessionAccount resolves a customer token to an account id.
func (tx *Tx) CustomerSessionAccount(token string) (string, bool) {
	id, ok := tx.s.customerSessions[token]
	return id, ok
}

// PutOperatorSession records an operator token.
func (tx *Tx) PutOperatorSession(token string) {
	tx.s.operatorSessions[token] = struct{}{}
}

// HasOperatorSession reports whether the token is a live operator session.
func (tx *Tx) HasOperatorSession(token string) bool {
	_, ok := tx.s.operatorSessions[token]
	return ok
}

// PutDistributorSession records a distributor token.
func (tx *Tx) PutDistributorSession(token string) {
	tx.s.distributorSessions[token] = struct{}{}
}

// HasDistributorSession reports whether the token is a live distributor session.
func (tx *Tx) HasDistributorSession(token string) bool {
	_, ok := tx.s.distributorSessions[token]
	return ok
}

// DeleteSession removes a token from every role map.
func (tx *Tx) DeleteSession(token string) {
	delete(tx.s.customerSessions, token)
	delete(tx.s.operatorSessions, token)
	delete(tx.s.distributorSessions, token)
}
