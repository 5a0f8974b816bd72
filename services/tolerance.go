package services

import "math"

// MaxQty returns the tolerance-adjusted ceiling on total receivable quantity
// for a PO line: floor(ordered + ordered*tolerance/100). Truncation toward
// zero, never rounding; ordered_qty=10 with 12.5% tolerance gives 11, not 11.3.
// A missing or invalid tolerance counts as 0.
func MaxQty(orderedQty int, tolerancePct float64) int {
	if orderedQty <= 0 {
		return 0
	}
	if tolerancePct < 0 || math.IsNaN(tolerancePct) || math.IsInf(tolerancePct, 0) {
		tolerancePct = 0
	}
	raw := float64(orderedQty) + float64(orderedQty)*tolerancePct/100
	return int(raw)
}

// RemainingQty clamps max_qty minus cumulative received at zero.
func RemainingQty(maxQty, totalReceived int) int {
	remaining := maxQty - totalReceived
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ItemStatus derives the per-line snapshot status from the cumulative total
// after the line is applied. "pending" stays in the enum for zero totals but
// is unreachable from receiving, which requires received_qty > 0.
func ItemStatus(newTotal, maxQty int) string {
	switch {
	case newTotal <= 0:
		return "pending"
	case newTotal >= maxQty:
		return "received"
	default:
		return "partial"
	}
}

// BatchStatus derives the GRN header status. A batch is completed only when
// every SKU it touches is cumulatively fully received once the batch's own
// lines are counted in; anything short on any SKU leaves the header partial.
func BatchStatus(newTotals map[string]int, maxQtys map[string]int) string {
	if len(newTotals) == 0 {
		return "partial"
	}
	for sku, total := range newTotals {
		if total < maxQtys[sku] {
			return "partial"
		}
	}
	return "completed"
}
