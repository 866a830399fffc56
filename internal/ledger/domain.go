// Package ledger owns the authoritative in-memory collections for the
// fish-trading backend: inventory, customer accounts, sessions, sales
// orders, invoices, payments and notifications. All state is
// process-lifetime only; a restart loses everything.
package ledger

import "time"

// InventoryStatus grades stock level against the reorder point.
type InventoryStatus string

const (
	StatusOptimal  InventoryStatus = "Optimal"
	StatusLowStock InventoryStatus = "Low Stock"
	StatusCritical InventoryStatus = "Critical"
)

// InventoryItem is a stocked product. Status is always a function of
// (Qty, Reorder); mutate Qty only through the order engine, which
// recomputes it.
type InventoryItem struct {
	ID       string          `json:"id"`
	Product  string          `json:"product"`
	Category string          `json:"category"`
	Qty      int             `json:"qty"`
	Unit     string          `json:"unit"`
	Reorder  int             `json:"reorder"`
	Status   InventoryStatus `json:"status"`
	Value    string          `json:"value"`
}

// CustomerAccount is created at registration and immutable afterwards.
// PasswordHash holds a bcrypt hash, never the raw password.
type CustomerAccount struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SalesOrderStatus walks a strict linear chain; see fulfillment.Transitions.
type SalesOrderStatus string

const (
	OrderPendingPayment   SalesOrderStatus = "Pending Payment"
	OrderPaid             SalesOrderStatus = "Paid"
	OrderReadyForDispatch SalesOrderStatus = "Ready for Dispatch"
	OrderPacked           SalesOrderStatus = "Packed"
	OrderOutForDelivery   SalesOrderStatus = "Out for Delivery"
	OrderDelivered        SalesOrderStatus = "Delivered"
	OrderCompleted        SalesOrderStatus = "Completed"
)

// PaymentState tracks whether an order or invoice has been settled.
type PaymentState string

const (
	PaymentPending PaymentState = "Pending"
	PaymentPaid    PaymentState = "Paid"
)

// SalesOrderItem snapshots product name and unit price at order time;
// later inventory edits do not flow back into it.
type SalesOrderItem struct {
	InventoryID string  `json:"inventoryId"`
	Product     string  `json:"product"`
	Qty         int     `json:"qty"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// SalesOrder is created by the order engine and mutated only by the
// payment engine and the fulfillment state machine. Never deleted.
type SalesOrder struct {
	ID            string           `json:"id"`
	CustomerID    string           `json:"customerId"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail"`
	PickupPoint   string           `json:"pickupPoint"`
	Date          string           `json:"date"`
	Status        SalesOrderStatus `json:"status"`
	Items         []SalesOrderItem `json:"items"`
	Currency      string           `json:"currency"`
	Subtotal      float64          `json:"subtotal"`
	PaymentStatus PaymentState     `json:"paymentStatus"`
}

// Invoice is issued 1:1 with every order; its status flips to Paid
// exactly once.
type Invoice struct {
	ID            string       `json:"id"`
	OrderID       string       `json:"orderId"`
	CustomerID    string       `json:"customerId"`
	CustomerName  string       `json:"customerName"`
	CustomerEmail string       `json:"customerEmail"`
	Amount        float64      `json:"amount"`
	Currency      string       `json:"currency"`
	Status        PaymentState `json:"status"`
	DueDate       string       `json:"dueDate"`
	IssuedDate    string       `json:"issuedDate"`
}

// PaymentResult is the terminal status of a payment attempt.
type PaymentResult string

const (
	PaymentCompleted PaymentResult = "Completed"
	PaymentFailed    PaymentResult = "Failed"
)

// Payment is an append-only log entry; one successful payment per
// invoice is enforced by the invoice status guard.
type Payment struct {
	ID         string        `json:"id"`
	OrderID    string        `json:"orderId"`
	InvoiceID  string        `json:"invoiceId"`
	CustomerID string        `json:"customerId"`
	Amount     float64       `json:"amount"`
	Currency   string        `json:"currency"`
	Method     string        `json:"method"`
	Status     PaymentResult `json:"status"`
	PaidAt     time.Time     `json:"paidAt"`
}

// Audience is the notification routing dimension.
type Audience string

const (
	AudienceCustomer    Audience = "customer"
	AudienceOperator    Audience = "operator"
	AudienceDistributor Audience = "distributor"
)

// Channel names a delivery medium for a notification.
type Channel string

const (
	ChannelInApp Channel = "in_app"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// NotificationItem is an in-app notification; mutated only by marking
// read, never deleted.
type NotificationItem struct {
	ID         string    `json:"id"`
	Audience   Audience  `json:"audience"`
	AudienceID string    `json:"audienceId"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Channels   []Channel `json:"channels"`
	CreatedAt  time.Time `json:"createdAt"`
	Read       bool      `json:"read"`
}

// Fixed principal IDs for the single operator and distributor identities.
const (
	OperatorID    = "OP-001"
	DistributorID = "DIST-001"
)
