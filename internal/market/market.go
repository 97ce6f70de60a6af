// Package market provides per-town commodity markets: randomized stock,
// fixed price deviations, and all-or-nothing inventory mutation.
package market

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/talgya/silt-road/internal/commodity"
)

// ErrUnknownTown is returned when a market lookup names a town that is not
// on the world map.
var ErrUnknownTown = errors.New("unknown town")

// maxDeviation bounds price deviations to ±30% of base price.
const maxDeviation = 0.30

// Market holds one town's stock and its price deviations. Deviations are
// rolled once at generation time and never re-rolled on view.
type Market struct {
	Name            string                          `json:"name"`
	Inventory       commodity.Inventory             `json:"inventory"`
	PriceDeviations map[commodity.Commodity]float64 `json:"price_deviations"`
}

// All maps town names to their markets.
type All map[string]*Market

// Generate rolls a new market for a town. For each commodity a price
// deviation is drawn as (2u³−1)·0.30, biasing toward small magnitudes.
// With probability 0.65 the commodity is absent from stock; otherwise the
// stock's total dollar value is drawn as u³·995+5 and converted to units
// at the commodity's base price.
func Generate(town string, rng *rand.Rand) *Market {
	inventory := make(commodity.Inventory)
	deviations := make(map[commodity.Commodity]float64, commodity.Count)

	for _, comm := range commodity.All() {
		u := rng.Float64()
		deviations[comm] = (2*u*u*u - 1) * maxDeviation

		// 65% chance this commodity is not carried here.
		if rng.Float64() < 0.65 {
			continue
		}

		v := rng.Float64()
		totalValue := v*v*v*995.00 + 5.00

		qty := int(totalValue / commodity.BasePrice1860(comm))
		if qty > 0 {
			inventory[comm] = qty
		}
	}

	return &Market{
		Name:            marketName(town, rng),
		Inventory:       inventory,
		PriceDeviations: deviations,
	}
}

// UnitPrice returns the displayed unit price: base price scaled by the
// stored deviation. Pure with respect to market state.
func (m *Market) UnitPrice(c commodity.Commodity) float64 {
	return commodity.BasePrice1860(c) * (1.0 + m.PriceDeviations[c])
}

// ChangeInventory applies a signed per-commodity delta map. The whole map
// is validated before any quantity is written; a delta that would take
// stock below zero rejects the entire change.
func (m *Market) ChangeInventory(deltas commodity.Inventory) error {
	if err := m.Inventory.Apply(deltas); err != nil {
		return fmt.Errorf("market %q: %w", m.Name, err)
	}
	return nil
}

// Get returns the market for a town.
func (a All) Get(town string) (*Market, error) {
	m, ok := a[town]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTown, town)
	}
	return m, nil
}
