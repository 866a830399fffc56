package inventory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
)

func TestComputeStatus(t *testing.T) {
	cases := []struct {
		name    string
		qty     int
		reorder int
		want    ledger.InventoryStatus
	}{
		{"well stocked", 450, 200, ledger.StatusOptimal},
		{"just above reorder", 201, 200, ledger.StatusOptimal},
		{"at reorder point", 200, 200, ledger.StatusLowStock},
		{"below reorder", 250, 300, ledger.StatusLowStock},
		{"under half of a large reorder", 120, 300, ledger.StatusCritical},
		{"at half reorder", 100, 200, ledger.StatusCritical},
		{"below half reorder", 45, 100, ledger.StatusCritical},
		{"odd reorder floors the half", 7, 15, ledger.StatusCritical},
		{"just above floored half", 8, 15, ledger.StatusLowStock},
		{"zero qty", 0, 10, ledger.StatusCritical},
		{"zero reorder zero qty", 0, 0, ledger.StatusCritical},
		{"zero reorder with stock", 5, 0, ledger.StatusOptimal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ComputeStatus(tc.qty, tc.reorder))
		})
	}
}

func TestComputeStatusSpecScenarios(t *testing.T) {
	// 10 on hand, reorder 8: selling 5 leaves 5, which is above
	// floor(8*0.5)=4 but at most 8.
	require.Equal(t, ledger.StatusLowStock, ComputeStatus(5, 8))

	// 100 on hand, reorder 50: selling 51 leaves 49, above
	// floor(50*0.5)=25 but at most 50.
	require.Equal(t, ledger.StatusLowStock, ComputeStatus(49, 50))
}

func TestUnitPriceFromValue(t *testing.T) {
	require.InDelta(t, 2500.0, UnitPriceFromValue("KSh 1,125,000", 450), 0.0001)
	require.InDelta(t, 400.0, UnitPriceFromValue("KSh 48,000", 120), 0.0001)
	require.InDelta(t, 12.5, UnitPriceFromValue("KSh 125", 10), 0.0001)

	// The derived price uses the remaining qty, so it rises as stock
	// depletes.
	require.Greater(t, UnitPriceFromValue("KSh 48,000", 60), UnitPriceFromValue("KSh 48,000", 120))
}

func TestUnitPriceFromValueZeroCases(t *testing.T) {
	require.Zero(t, UnitPriceFromValue("KSh 1,000", 0))
	require.Zero(t, UnitPriceFromValue("KSh 1,000", -3))
	require.Zero(t, UnitPriceFromValue("", 10))
	require.Zero(t, UnitPriceFromValue("free", 10))
	require.Zero(t, UnitPriceFromValue("KSh 0", 10))
}

func TestRound2(t *testing.T) {
	require.Equal(t, 12.35, Round2(12.345))
	require.Equal(t, 12.34, Round2(12.344))
	require.Equal(t, 0.0, Round2(0))
}

func TestFormatValue(t *testing.T) {
	require.Equal(t, "KSh 1,125,000", FormatValue(1125000))
	require.Equal(t, "KSh 4,500", FormatValue(4500))
	require.Equal(t, "KSh 1,250.50", FormatValue(1250.5))
	require.Equal(t, "KSh 0", FormatValue(0))
}
