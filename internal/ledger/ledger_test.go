package ledger

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/talgya/silt-road/internal/commodity"
	"github.com/talgya/silt-road/internal/market"
)

func newLedger() *TradeLedger {
	return Seed(commodity.Inventory{})
}

func TestRecordTransaction_FirstPurchase(t *testing.T) {
	l := newLedger()

	err := l.RecordTransaction(Transaction{
		commodity.Grain: {Qty: 10, Price: 1.32},
	}, PolicyZeroCost)
	assert.NoError(t, err)

	avg := l.InventoryAvgPrices[commodity.Grain]
	assert.Equal(t, 10, avg.Qty)
	assert.True(t, math.Abs(avg.Price-1.32) < 1e-9)
}

func TestRecordTransaction_MovingAverage(t *testing.T) {
	l := newLedger()

	assert.NoError(t, l.RecordTransaction(Transaction{
		commodity.Grain: {Qty: 10, Price: 1.32},
	}, PolicyZeroCost))
	assert.NoError(t, l.RecordTransaction(Transaction{
		commodity.Grain: {Qty: 5, Price: 1.50},
	}, PolicyZeroCost))

	// (1.32*10 + 1.50*5) / 15 = 1.38
	avg := l.InventoryAvgPrices[commodity.Grain]
	assert.Equal(t, 15, avg.Qty)
	assert.True(t, math.Abs(avg.Price-1.38) < 1e-9)
}

func TestRecordTransaction_SaleLeavesCostBasisUnchanged(t *testing.T) {
	l := newLedger()

	assert.NoError(t, l.RecordTransaction(Transaction{
		commodity.Grain: {Qty: 10, Price: 1.32},
	}, PolicyZeroCost))
	assert.NoError(t, l.RecordTransaction(Transaction{
		commodity.Grain: {Qty: 5, Price: 1.50},
	}, PolicyZeroCost))
	assert.NoError(t, l.RecordTransaction(Transaction{
		commodity.Grain: {Qty: -6, Price: 2.10},
	}, PolicyZeroCost))

	avg := l.InventoryAvgPrices[commodity.Grain]
	assert.Equal(t, 9, avg.Qty)
	assert.True(t, math.Abs(avg.Price-1.38) < 1e-9, "sale must not move the average")
}

// A zero-quantity line is a per-commodity no-op; the rest of the
// transaction must still be recorded.
func TestRecordTransaction_ZeroQtyDoesNotShortCircuit(t *testing.T) {
	l := newLedger()

	err := l.RecordTransaction(Transaction{
		commodity.Feed:  {Qty: 0, Price: 0.50},
		commodity.Grain: {Qty: 10, Price: 1.32},
		commodity.Salt:  {Qty: 3, Price: 0.04},
		commodity.Coal:  {Qty: 0, Price: 3.00},
		commodity.Wool:  {Qty: 2, Price: 0.25},
	}, PolicyZeroCost)
	assert.NoError(t, err)

	_, feedRecorded := l.InventoryAvgPrices[commodity.Feed]
	assert.False(t, feedRecorded, "zero-qty line must not create a record")
	assert.Equal(t, 10, l.InventoryAvgPrices[commodity.Grain].Qty)
	assert.Equal(t, 3, l.InventoryAvgPrices[commodity.Salt].Qty)
	assert.Equal(t, 2, l.InventoryAvgPrices[commodity.Wool].Qty)
}

// The stored average must equal sum(price*qty)/sum(qty) for any sequence
// of purchases, regardless of interleaved unrelated commodities.
func TestRecordTransaction_WeightedAverageProperty(t *testing.T) {
	l := newLedger()
	rng := rand.New(rand.NewSource(7))

	totalCost := 0.0
	totalQty := 0
	for i := 0; i < 50; i++ {
		qty := 1 + rng.Intn(40)
		price := 0.10 + rng.Float64()*5
		totalCost += price * float64(qty)
		totalQty += qty

		// Interleave an unrelated purchase.
		assert.NoError(t, l.RecordTransaction(Transaction{
			commodity.Grain: {Qty: qty, Price: price},
			commodity.Coal:  {Qty: 1 + rng.Intn(3), Price: rng.Float64() * 4},
		}, PolicyZeroCost))
	}

	avg := l.InventoryAvgPrices[commodity.Grain]
	assert.Equal(t, totalQty, avg.Qty)
	assert.True(t, math.Abs(avg.Price-totalCost/float64(totalQty)) < 1e-9)
}

func TestRecordSale_NoCostBasisPolicies(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantErr bool
		check   func(*testing.T, *TradeLedger)
	}{
		{
			name:   "zero-cost fabricates an empty record",
			policy: PolicyZeroCost,
			check: func(t *testing.T, l *TradeLedger) {
				avg, ok := l.InventoryAvgPrices[commodity.Coal]
				assert.True(t, ok)
				assert.Equal(t, AvgPrice{Price: 0, Qty: 0}, avg)
			},
		},
		{
			name:   "market-rate prices the record from the sale",
			policy: PolicyMarketRate,
			check: func(t *testing.T, l *TradeLedger) {
				avg := l.InventoryAvgPrices[commodity.Coal]
				assert.True(t, math.Abs(avg.Price-2.80) < 1e-9)
				assert.Equal(t, 0, avg.Qty)
			},
		},
		{
			name:    "reject refuses the sale",
			policy:  PolicyReject,
			wantErr: true,
			check: func(t *testing.T, l *TradeLedger) {
				_, ok := l.InventoryAvgPrices[commodity.Coal]
				assert.False(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger()
			err := l.RecordTransaction(Transaction{
				commodity.Coal: {Qty: -4, Price: 2.80},
			}, tt.policy)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrNoCostBasis))
			} else {
				assert.NoError(t, err)
			}
			tt.check(t, l)
		})
	}
}

func TestSeed_BooksStartingInventoryAtBasePrices(t *testing.T) {
	l := Seed(commodity.Inventory{
		commodity.Feed:     3,
		commodity.Textiles: 20,
	})

	feed := l.InventoryAvgPrices[commodity.Feed]
	assert.Equal(t, 3, feed.Qty)
	assert.True(t, math.Abs(feed.Price-commodity.BasePrice1860(commodity.Feed)) < 1e-9)
	assert.Equal(t, 20, l.InventoryAvgPrices[commodity.Textiles].Qty)
}

func TestRecordTownVisit(t *testing.T) {
	l := newLedger()
	m := &market.Market{
		Name: "Rattsville Plaza",
		Inventory: commodity.Inventory{
			commodity.Coal:  40,
			commodity.Grain: 12,
		},
		PriceDeviations: map[commodity.Commodity]float64{
			commodity.Coal:  -0.10,
			commodity.Grain: 0.05,
		},
	}

	l.RecordTownVisit("Rattsville", m, 17)

	visit, ok := l.TownVisits["Rattsville"]
	assert.True(t, ok)
	assert.Equal(t, 17, visit.LastVisitedDate)
	assert.Equal(t, 2, len(visit.MarketSnapshot))

	coal := visit.MarketSnapshot[commodity.Coal]
	assert.Equal(t, 40, coal.QtyOnHand)
	wantPrice := commodity.BasePrice1860(commodity.Coal) * 0.90
	assert.True(t, math.Abs(coal.UnitPrice-wantPrice) < 1e-9)

	// A later visit overwrites the snapshot.
	m.Inventory[commodity.Coal] = 5
	l.RecordTownVisit("Rattsville", m, 23)
	assert.Equal(t, 23, l.TownVisits["Rattsville"].LastVisitedDate)
	assert.Equal(t, 5, l.TownVisits["Rattsville"].MarketSnapshot[commodity.Coal].QtyOnHand)
}

func TestDeviationPct(t *testing.T) {
	// Local price $90 against a $100 snapshot: 10% under.
	assert.True(t, math.Abs(DeviationPct(100, 90)-10) < 1e-9)
	assert.True(t, math.Abs(DeviationPct(50, 75)-(-50)) < 1e-9)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, PolicyZeroCost, p)

	p, err = ParsePolicy("market-rate")
	assert.NoError(t, err)
	assert.Equal(t, PolicyMarketRate, p)

	p, err = ParsePolicy("reject")
	assert.NoError(t, err)
	assert.Equal(t, PolicyReject, p)

	_, err = ParsePolicy("fifo")
	assert.Error(t, err)
}
