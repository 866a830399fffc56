package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
)

// ErrInvalidInput indicates a malformed or missing required field.
var ErrInvalidInput = errors.New("inventory: invalid input")

// AddItemInput describes a new product entered by the operator. Value
// keeps the currency-formatted label as entered, matching the catalog
// display contract.
type AddItemInput struct {
	Product  string
	Category string
	Qty      int
	Unit     string
	Reorder  int
	Value    string
}

// CatalogEntry is the customer-facing view of an inventory item with
// the derived unit price.
type CatalogEntry struct {
	ID           string  `json:"id"`
	Product      string  `json:"product"`
	Category     string  `json:"category"`
	AvailableQty int     `json:"availableQty"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unitPrice"`
	Currency     string  `json:"currency"`
	ValueLabel   string  `json:"valueLabel"`
}

// Service exposes inventory operations over the ledger store.
type Service struct {
	store *ledger.Store
}

// NewService builds an inventory Service.
func NewService(store *ledger.Store) *Service {
	return &Service{store: store}
}

// List returns all inventory items, most recent first.
func (s *Service) List(ctx context.Context) ([]ledger.InventoryItem, error) {
	var out []ledger.InventoryItem
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		for _, item := range tx.Inventory() {
			out = append(out, item.Clone())
		}
		return nil
	})
	return out, err
}

// Add validates and stores a new item. Status is computed from the
// initial qty and reorder point, never taken from the caller.
func (s *Service) Add(ctx context.Context, input AddItemInput) (ledger.InventoryItem, error) {
	input.Product = strings.TrimSpace(input.Product)
	input.Category = strings.TrimSpace(input.Category)
	input.Unit = strings.TrimSpace(input.Unit)
	input.Value = strings.TrimSpace(input.Value)
	if input.Product == "" || input.Category == "" || input.Unit == "" || input.Value == "" {
		return ledger.InventoryItem{}, ErrInvalidInput
	}
	if input.Qty < 0 || input.Reorder < 0 {
		return ledger.InventoryItem{}, ErrInvalidInput
	}

	var created ledger.InventoryItem
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		item := &ledger.InventoryItem{
			ID:       tx.NextID("INV"),
			Product:  input.Product,
			Category: input.Category,
			Qty:      input.Qty,
			Unit:     input.Unit,
			Reorder:  input.Reorder,
			Status:   ComputeStatus(input.Qty, input.Reorder),
			Value:    input.Value,
		}
		tx.PrependInventory(item)
		created = item.Clone()
		return nil
	})
	return created, err
}

// Catalog projects the inventory into the customer-facing catalog with
// the derived unit price per remaining qty.
func (s *Service) Catalog(ctx context.Context) ([]CatalogEntry, error) {
	var out []CatalogEntry
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		for _, item := range tx.Inventory() {
			out = append(out, CatalogEntry{
				ID:           item.ID,
				Product:      item.Product,
				Category:     item.Category,
				AvailableQty: item.Qty,
				Unit:         item.Unit,
				UnitPrice:    Round2(UnitPriceFromValue(item.Value, item.Qty)),
				Currency:     "KES",
				ValueLabel:   item.Value,
			})
		}
		return nil
	})
	return out, err
}
