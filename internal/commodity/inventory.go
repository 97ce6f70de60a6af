package commodity

import (
	"errors"
	"fmt"
)

// ErrNegativeQuantity is returned when an inventory mutation would take a
// commodity quantity below zero.
var ErrNegativeQuantity = errors.New("inventory quantity below zero")

// Inventory maps commodities to whole-unit quantities. Keys are present
// only for positive quantities; a missing key means zero.
type Inventory map[Commodity]int

// Qty returns the quantity on hand, zero for absent keys.
func (inv Inventory) Qty(c Commodity) int {
	return inv[c]
}

// TotalWeight sums the shipping weight of everything in the inventory.
func (inv Inventory) TotalWeight() Weight {
	var total Weight
	for c, qty := range inv {
		total = total.Plus(UnitWeight(c).Times(float64(qty)))
	}
	return total
}

// Apply adds a map of signed per-commodity deltas to the inventory.
// Every delta is validated against current stock before anything is
// written, so a failing map leaves the inventory untouched. Quantities
// that reach zero have their key removed.
func (inv Inventory) Apply(deltas Inventory) error {
	for c, delta := range deltas {
		if inv[c]+delta < 0 {
			return fmt.Errorf("%w: %s would reach %d", ErrNegativeQuantity, c, inv[c]+delta)
		}
	}
	for c, delta := range deltas {
		next := inv[c] + delta
		if next == 0 {
			delete(inv, c)
			continue
		}
		inv[c] = next
	}
	return nil
}

// Clone returns an independent copy of the inventory.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for c, qty := range inv {
		out[c] = qty
	}
	return out
}
