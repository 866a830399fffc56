package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextID(t *testing.T) {
	store := NewStore()
	err := store.WithLock(func(tx *Tx) error {
		require.Equal(t, "SO-001", tx.NextID("SO"))
		require.Equal(t, "SO-002", tx.NextID("SO"))
		// Prefixes count independently.
		require.Equal(t, "INV-001", tx.NextID("INV"))
		require.Equal(t, "SO-003", tx.NextID("SO"))
		return nil
	})
	require.NoError(t, err)
}

func TestNextIDForKeepsSequencesApart(t *testing.T) {
	store := NewStore()
	err := store.WithLock(func(tx *Tx) error {
		// Inventory items and invoices share the INV- rendering but
		// must number independently.
		require.Equal(t, "INV-001", tx.NextID("INV"))
		require.Equal(t, "INV-002", tx.NextID("INV"))
		require.Equal(t, "INV-001", tx.NextIDFor("INVOICE", "INV"))
		require.Equal(t, "INV-002", tx.NextIDFor("INVOICE", "INV"))
		require.Equal(t, "INV-003", tx.NextID("INV"))
		return nil
	})
	require.NoError(t, err)
}

func TestNextIDPadsToThreeDigits(t *testing.T) {
	store := NewStore()
	err := store.WithLock(func(tx *Tx) error {
		tx.SeedSequence("PAY", 99)
		require.Equal(t, "PAY-100", tx.NextID("PAY"))
		tx.SeedSequence("PAY", 999)
		require.Equal(t, "PAY-1000", tx.NextID("PAY"))
		return nil
	})
	require.NoError(t, err)
}

func TestSeedSequenceNeverRewinds(t *testing.T) {
	store := NewStore()
	err := store.WithLock(func(tx *Tx) error {
		tx.SeedSequence("INV", 5)
		tx.SeedSequence("INV", 2)
		require.Equal(t, "INV-006", tx.NextID("INV"))
		return nil
	})
	require.NoError(t, err)
}

func TestPrependOrdering(t *testing.T) {
	store := NewStore()
	err := store.WithLock(func(tx *Tx) error {
		tx.PrependOrder(&SalesOrder{ID: "SO-001"})
		tx.PrependOrder(&SalesOrder{ID: "SO-002"})
		orders := tx.Orders()
		require.Equal(t, "SO-002", orders[0].ID)
		require.Equal(t, "SO-001", orders[1].ID)

		tx.PrependInventory(&InventoryItem{ID: "INV-002"})
		tx.AppendInventory(&InventoryItem{ID: "INV-003"})
		items := tx.Inventory()
		require.Equal(t, "INV-002", items[0].ID)
		require.Equal(t, "INV-003", items[1].ID)
		return nil
	})
	require.NoError(t, err)
}

func TestAccountLookup(t *testing.T) {
	store := NewStore()
	err := store.WithLock(func(tx *Tx) error {
		tx.AppendAccount(&CustomerAccount{ID: "CUST-001", Email: "Buyer@FreshMart.com"})

		acc, ok := tx.AccountByEmail("buyer@freshmart.com")
		require.True(t, ok)
		require.Equal(t, "CUST-001", acc.ID)

		_, ok = tx.AccountByEmail("other@freshmart.com")
		require.False(t, ok)

		_, ok = tx.AccountByID("CUST-001")
		require.True(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestSessionsAreRoleScoped(t *testing.T) {
	store := NewStore()
	err := store.WithLock(func(tx *Tx) error {
		tx.PutCustomerSession("tok-c", "CUST-001")
		tx.PutOperatorSession("tok-o")
		tx.PutDistributorSession("tok-d")

		id, ok := tx.CustomerSessionAccount("tok-c")
		require.True(t, ok)
		require.Equal(t, "CUST-001", id)
		require.False(t, tx.HasOperatorSession("tok-c"))
		require.True(t, tx.HasOperatorSession("tok-o"))
		require.True(t, tx.HasDistributorSession("tok-d"))
		require.False(t, tx.HasDistributorSession("tok-o"))

		tx.DeleteSession("tok-o")
		require.False(t, tx.HasOperatorSession("tok-o"))
		return nil
	})
	require.NoError(t, err)
}

func TestCloneIsolatesSlices(t *testing.T) {
	original := &SalesOrder{
		ID:    "SO-001",
		Items: []SalesOrderItem{{InventoryID: "INV-001", Qty: 2}},
	}
	clone := original.Clone()
	clone.Items[0].Qty = 99
	require.Equal(t, 2, original.Items[0].Qty)

	n := &NotificationItem{ID: "NTF-001", Channels: []Channel{ChannelInApp}}
	cn := n.Clone()
	cn.Channels[0] = ChannelSMS
	require.Equal(t, ChannelInApp, n.Channels[0])
}
