package ledger

// Clone returns a value copy safe to hand out after the store lock is
// released.
func (o *SalesOrder) Clone() SalesOrder {
	cp := *o
	cp.Items = make([]SalesOrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	return cp
}

// Clone returns a value copy of the item.
func (i *InventoryItem) Clone() InventoryItem {
	return *i
}

// Clone returns a value copy of the invoice.
func (inv *Invoice) Clone() Invoice {
	return *inv
}

// Clone returns a value copy of the payment.
func (p *Payment) Clone() Payment {
	return *p
}

// Clone returns a value copy of the notification.
func (n *NotificationItem) Clone() NotificationItem {
	cp := *n
	cp.Channels = make([]Channel, len(n.Channels))
	copy(cp.Channels, n.Channels)
	return cp
}

// Clone returns a value copy of the account.
func (a *CustomerAccount) Clone() CustomerAccount {
	return *a
}
