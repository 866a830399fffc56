// Package inventory derives stock status and pricing from raw item
// fields and exposes the operator-facing inventory operations.
package inventory

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
)

// ComputeStatus grades remaining qty against the reorder point:
// Critical when qty <= floor(reorder*0.5), Low Stock when qty <=
// reorder, otherwise Optimal.
func ComputeStatus(qty, reorder int) ledger.InventoryStatus {
	if qty <= int(math.Floor(float64(reorder)*0.5)) {
		return ledger.StatusCritical
	}
	if qty <= reorder {
		return ledger.StatusLowStock
	}
	return ledger.StatusOptimal
}

// UnitPriceFromValue strips non-numeric characters from a
// currency-formatted value label ("KSh 1,125,000") and divides by qty.
// Returns 0 when qty <= 0 or the parsed amount is not finite and
// positive. The division uses the *current* qty, so the derived price
// drifts as stock depletes; the drift is part of the costing contract
// and must not be "fixed" here.
func UnitPriceFromValue(value string, qty int) float64 {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	numeric, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsInf(numeric, 0) || math.IsNaN(numeric) || numeric <= 0 || qty <= 0 {
		return 0
	}
	return numeric / float64(qty)
}

// Round2 rounds to two decimal places, the precision used for all line
// totals and subtotals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var kesPrinter = message.NewPrinter(language.English)

// FormatValue renders an amount as the KSh value label used across the
// catalog and notifications, e.g. "KSh 1,125,000".
func FormatValue(amount float64) string {
	if amount == math.Trunc(amount) {
		return kesPrinter.Sprintf("KSh %d", int64(amount))
	}
	return kesPrinter.Sprintf("KSh %.2f", amount)
}
