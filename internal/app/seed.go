package app

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/montero2/HERFISH-PROJECT/internal/inventory"
	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
)

// SeedDemoData loads the development catalog and demo buyer account so
// the app is usable immediately after boot. Production deployments
// disable it via SEED_DEMO_DATA=false.
func SeedDemoData(store *ledger.Store) error {
	type seedItem struct {
		product  string
		category string
		qty      int
		unit     string
		reorder  int
		value    string
	}
	items := []seedItem{
		{"Atlantic Salmon", "Fresh Fish", 450, "kg", 200, "KSh 1,125,000"},
		{"Tilapia Fillet", "Fresh Fish", 120, "kg", 300, "KSh 48,000"},
		{"Shrimp Premium", "Shellfish", 85, "kg", 150, "KSh 153,000"},
		{"Crab Meat", "Shellfish", 320, "kg", 100, "KSh 384,000"},
		{"Sardine Whole", "Fresh Fish", 650, "kg", 400, "KSh 227,500"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("buyer123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return store.WithLock(func(tx *ledger.Tx) error {
		for _, it := range items {
			tx.AppendInventory(&ledger.InventoryItem{
				ID:       tx.NextID("INV"),
				Product:  it.product,
				Category: it.category,
				Qty:      it.qty,
				Unit:     it.unit,
				Reorder:  it.reorder,
				Status:   inventory.ComputeStatus(it.qty, it.reorder),
				Value:    it.value,
			})
		}
		tx.AppendAccount(&ledger.CustomerAccount{
			ID:           tx.NextID("CUST"),
			Name:         "Fresh Mart",
			Email:        "buyer@freshmart.com",
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		})
		return nil
	})
}
