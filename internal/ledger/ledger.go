// Package ledger provides the trade ledger: weighted-average acquisition
// cost per commodity, and market snapshots of visited towns.
package ledger

import (
	"errors"
	"fmt"

	"github.com/talgya/silt-road/internal/commodity"
	"github.com/talgya/silt-road/internal/market"
)

// ErrNoCostBasis is returned when a sale names a commodity with no
// average-price record and the ledger policy is PolicyReject.
var ErrNoCostBasis = errors.New("no cost basis record for sale")

// Policy decides how a sale of a commodity with no purchase record is
// booked. The original game fabricated a zero-cost record; that stays the
// default.
type Policy uint8

const (
	// PolicyZeroCost books the sale against a fabricated $0.00 record.
	PolicyZeroCost Policy = iota
	// PolicyMarketRate books the sale against a record priced at the
	// sale's own unit price.
	PolicyMarketRate
	// PolicyReject refuses the sale.
	PolicyReject
)

// ParsePolicy resolves a config string to a policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "zero-cost":
		return PolicyZeroCost, nil
	case "market-rate":
		return PolicyMarketRate, nil
	case "reject":
		return PolicyReject, nil
	}
	return 0, fmt.Errorf("unknown sale-without-cost-basis policy %q", s)
}

// AvgPrice is the running weighted-average acquisition cost of the
// player's holdings of one commodity, and the quantity that cost basis
// covers.
type AvgPrice struct {
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// SnapshotEntry freezes one commodity's market state at visit time.
type SnapshotEntry struct {
	UnitPrice float64 `json:"unit_price"`
	QtyOnHand int     `json:"qty_on_hand"`
}

// MarketSnapshot maps commodities present in a market to their frozen
// price and stock.
type MarketSnapshot map[commodity.Commodity]SnapshotEntry

// TownVisit records when a town was last left and what its market looked
// like at departure.
type TownVisit struct {
	LastVisitedDate int            `json:"last_visited_date"`
	MarketSnapshot  MarketSnapshot `json:"market_snapshot"`
}

// Line is one commodity's part of a transaction. Negative Qty means the
// player is selling; Price is the unit price the line traded at.
type Line struct {
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// Transaction maps commodities to their transaction lines.
type Transaction map[commodity.Commodity]Line

// TradeLedger tracks cost bases and town-visit snapshots for the life of
// a save.
type TradeLedger struct {
	InventoryAvgPrices map[commodity.Commodity]AvgPrice `json:"inventory_avg_prices"`
	TownVisits         map[string]TownVisit             `json:"town_visits"`
}

// Seed builds a fresh ledger that books the starting inventory at base
// prices, so the dashboard has a cost basis from day one.
func Seed(startingInventory commodity.Inventory) *TradeLedger {
	avg := make(map[commodity.Commodity]AvgPrice, len(startingInventory))
	for comm, qty := range startingInventory {
		avg[comm] = AvgPrice{
			Price: commodity.BasePrice1860(comm),
			Qty:   qty,
		}
	}
	return &TradeLedger{
		InventoryAvgPrices: avg,
		TownVisits:         make(map[string]TownVisit),
	}
}

// RecordTransaction books every line of a transaction. Zero-quantity
// lines are per-commodity no-ops; the remaining lines are still
// processed. Sales decrement the cost-basis quantity and leave the
// average price untouched. Purchases fold into the exact moving average:
//
//	newAvg = (price*qty + oldAvg.price*oldAvg.qty) / (qty + oldAvg.qty)
func (l *TradeLedger) RecordTransaction(txn Transaction, policy Policy) error {
	for comm, line := range txn {
		switch {
		case line.Qty == 0:
			continue
		case line.Qty < 0:
			if err := l.recordSale(comm, line, policy); err != nil {
				return err
			}
		default:
			l.recordPurchase(comm, line)
		}
	}
	return nil
}

func (l *TradeLedger) recordPurchase(comm commodity.Commodity, line Line) {
	oldAvg := l.InventoryAvgPrices[comm]

	totalCost := line.Price*float64(line.Qty) + oldAvg.Price*float64(oldAvg.Qty)
	totalQty := line.Qty + oldAvg.Qty

	l.InventoryAvgPrices[comm] = AvgPrice{
		Price: totalCost / float64(totalQty),
		Qty:   totalQty,
	}
}

func (l *TradeLedger) recordSale(comm commodity.Commodity, line Line, policy Policy) error {
	oldAvg, ok := l.InventoryAvgPrices[comm]
	if !ok {
		// Selling something never purchased.
		switch policy {
		case PolicyReject:
			return fmt.Errorf("%w: %s", ErrNoCostBasis, comm)
		case PolicyMarketRate:
			l.InventoryAvgPrices[comm] = AvgPrice{Price: line.Price, Qty: 0}
		default:
			l.InventoryAvgPrices[comm] = AvgPrice{Price: 0, Qty: 0}
		}
		return nil
	}

	oldAvg.Qty += line.Qty // Qty is negative for a sale.
	l.InventoryAvgPrices[comm] = oldAvg
	return nil
}

// RecordTownVisit snapshots a town's market as the player departs, keyed
// by town name. Any prior snapshot for the town is overwritten.
func (l *TradeLedger) RecordTownVisit(town string, m *market.Market, currentDate int) {
	snapshot := make(MarketSnapshot, len(m.Inventory))
	for comm, qty := range m.Inventory {
		snapshot[comm] = SnapshotEntry{
			UnitPrice: m.UnitPrice(comm),
			QtyOnHand: qty,
		}
	}

	if l.TownVisits == nil {
		l.TownVisits = make(map[string]TownVisit)
	}
	l.TownVisits[town] = TownVisit{
		LastVisitedDate: currentDate,
		MarketSnapshot:  snapshot,
	}
}

// DeviationPct returns the percentage by which a local price undercuts a
// remote snapshot price. Display only.
func DeviationPct(snapshotPrice, localPrice float64) float64 {
	return 100 * (snapshotPrice - localPrice) / snapshotPrice
}
