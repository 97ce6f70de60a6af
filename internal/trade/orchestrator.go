// Package trade provides the transaction orchestrator: the single writer
// that touches the bank, player inventory, market inventory, and trade
// ledger together. Every entity is read, mutated in memory, and persisted
// as one unit; any validation failure leaves the save untouched.
package trade

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/talgya/silt-road/internal/bank"
	"github.com/talgya/silt-road/internal/clock"
	"github.com/talgya/silt-road/internal/commodity"
	"github.com/talgya/silt-road/internal/ledger"
	"github.com/talgya/silt-road/internal/market"
	"github.com/talgya/silt-road/internal/persistence"
	"github.com/talgya/silt-road/internal/player"
	"github.com/talgya/silt-road/internal/roster"
	"github.com/talgya/silt-road/internal/world"
)

var (
	// ErrOverCapacity is returned when a purchase would push the
	// caravan's cargo past what its wagons can haul.
	ErrOverCapacity = errors.New("cargo over caravan capacity")

	// ErrBillMismatch is returned when the bill the caller computed does
	// not match current market prices (stale UI state).
	ErrBillMismatch = errors.New("total bill does not match market prices")
)

// Orchestrator coordinates all cross-entity game state transitions. It is
// constructed once at startup and handed to the API by reference; nothing
// else writes to the store.
type Orchestrator struct {
	store  *persistence.Store
	policy ledger.Policy
	genCfg world.GenConfig
	rng    *rand.Rand
}

// New builds an orchestrator over a store. The generation config seeds
// the world map and markets on a fresh save; the policy governs sales
// with no cost basis.
func New(store *persistence.Store, policy ledger.Policy, genCfg world.GenConfig) *Orchestrator {
	seed := genCfg.Seed
	if seed == 0 {
		seed = rand.Int63()
		genCfg.Seed = seed
	}
	return &Orchestrator{
		store:  store,
		policy: policy,
		genCfg: genCfg,
		rng:    rand.New(rand.NewSource(seed + 100)),
	}
}

// ── Reads ─────────────────────────────────────────────────────────────

// WorldMap returns the overland map, generating it on first read.
func (o *Orchestrator) WorldMap() (*world.Map, error) {
	return persistence.Get(o.store, persistence.KeyWorldMap, func() (*world.Map, error) {
		return world.Generate(o.genCfg), nil
	})
}

// Markets returns every town's market, generating them all on first read.
func (o *Orchestrator) Markets() (market.All, error) {
	return persistence.Get(o.store, persistence.KeyMarkets, func() (market.All, error) {
		worldMap, err := o.WorldMap()
		if err != nil {
			return nil, err
		}
		markets := make(market.All, len(worldMap.Towns))
		for _, town := range worldMap.Towns {
			markets[town.Name] = market.Generate(town.Name, o.rng)
		}
		return markets, nil
	})
}

// Market returns one town's market.
func (o *Orchestrator) Market(town string) (*market.Market, error) {
	markets, err := o.Markets()
	if err != nil {
		return nil, err
	}
	return markets.Get(town)
}

// Bank returns the bank's accounts.
func (o *Orchestrator) Bank() (bank.Bank, error) {
	return persistence.Get(o.store, persistence.KeyBank, func() (bank.Bank, error) {
		return bank.Seed(), nil
	})
}

// PlayerBalance returns the player's account balance.
func (o *Orchestrator) PlayerBalance() (float64, error) {
	b, err := o.Bank()
	if err != nil {
		return 0, err
	}
	return b.Balance(bank.PlayerAccount)
}

// PlayerInventory returns the player's cargo.
func (o *Orchestrator) PlayerInventory() (commodity.Inventory, error) {
	return persistence.Get(o.store, persistence.KeyPlayerInventory, func() (commodity.Inventory, error) {
		return player.SeedInventory(), nil
	})
}

// Caravan returns the player's caravan.
func (o *Orchestrator) Caravan() (*player.Caravan, error) {
	return persistence.Get(o.store, persistence.KeyPlayerCaravan, func() (*player.Caravan, error) {
		return player.SeedCaravan(), nil
	})
}

// PlayerInfo returns the player's identity.
func (o *Orchestrator) PlayerInfo() (player.Info, error) {
	return persistence.Get(o.store, persistence.KeyPlayerInfo, func() (player.Info, error) {
		return player.SeedInfo(), nil
	})
}

// Ledger returns the trade ledger, seeding cost bases from the starting
// inventory at base prices.
func (o *Orchestrator) Ledger() (*ledger.TradeLedger, error) {
	return persistence.Get(o.store, persistence.KeyTradeLedger, func() (*ledger.TradeLedger, error) {
		inv, err := o.PlayerInventory()
		if err != nil {
			return nil, err
		}
		return ledger.Seed(inv), nil
	})
}

// Date returns the game clock.
func (o *Orchestrator) Date() (clock.Time, error) {
	return persistence.Get(o.store, persistence.KeyDate, func() (clock.Time, error) {
		return clock.Seed(), nil
	})
}

// Roster returns the outfit's employees.
func (o *Orchestrator) Roster() (*roster.Roster, error) {
	return persistence.Get(o.store, persistence.KeyEmployees, func() (*roster.Roster, error) {
		return roster.Seed(o.rng), nil
	})
}

// Applicants rolls a fresh pool of job-seekers. Not persisted; each
// visit to the hiring office sees new faces.
func (o *Orchestrator) Applicants(n int) []roster.Applicant {
	out := make([]roster.Applicant, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, roster.GenerateApplicant(o.rng))
	}
	return out
}

// ── Mutations ─────────────────────────────────────────────────────────

// Confirm applies a pending transaction at a town. txn maps commodities
// to signed quantities: positive means the player is buying, negative
// selling. totalBill is the bill the caller showed the player; it must
// match current market prices to the cent.
//
// The sequence is: validate capacity, transfer funds, apply the player
// inventory delta, apply the market inventory delta, record the ledger
// lines, persist. Any failure returns before persistence, so the pending
// transaction stays editable and no state moves.
func (o *Orchestrator) Confirm(txn commodity.Inventory, totalBill float64, town string) (*Receipt, error) {
	markets, err := o.Markets()
	if err != nil {
		return nil, err
	}
	m, err := markets.Get(town)
	if err != nil {
		return nil, err
	}

	// Price every line at the stored deviation and recompute the bill.
	lines := make(ledger.Transaction, len(txn))
	bill := 0.0
	for comm, qty := range txn {
		price := m.UnitPrice(comm)
		lines[comm] = ledger.Line{Qty: qty, Price: price}
		bill += price * float64(qty)
	}
	if math.Abs(bill-totalBill) >= 0.005 {
		return nil, fmt.Errorf("%w: displayed $%.2f, current $%.2f", ErrBillMismatch, totalBill, bill)
	}

	playerInv, err := o.PlayerInventory()
	if err != nil {
		return nil, err
	}
	caravan, err := o.Caravan()
	if err != nil {
		return nil, err
	}

	// Capacity is a pre-commit check here, not just a UI affordance.
	txnWeight := commodity.Weight{}
	for comm, qty := range txn {
		txnWeight = txnWeight.Plus(commodity.UnitWeight(comm).Times(float64(qty)))
	}
	loaded := playerInv.TotalWeight().Plus(txnWeight)
	if capacity := caravan.CargoCapacity(); loaded.InLbs() > capacity.InLbs() {
		return nil, fmt.Errorf("%w: %s loaded, %s capacity", ErrOverCapacity, loaded, capacity)
	}

	b, err := o.Bank()
	if err != nil {
		return nil, err
	}

	// Money first: a purchase pays into SINK, a sale draws on SOURCE.
	// A zero bill moves nothing.
	switch {
	case bill > 0:
		if err := b.Transfer(bank.PlayerAccount, bank.Sink, bill); err != nil {
			return nil, err
		}
	case bill < 0:
		if err := b.Transfer(bank.Source, bank.PlayerAccount, -bill); err != nil {
			return nil, err
		}
	}

	if err := playerInv.Apply(txn); err != nil {
		return nil, err
	}

	marketDeltas := make(commodity.Inventory, len(txn))
	for comm, qty := range txn {
		marketDeltas[comm] = -qty
	}
	if err := m.ChangeInventory(marketDeltas); err != nil {
		return nil, err
	}

	led, err := o.Ledger()
	if err != nil {
		return nil, err
	}
	if err := led.RecordTransaction(lines, o.policy); err != nil {
		return nil, err
	}

	// Everything validated and applied in memory; persist as one unit.
	if err := persistence.Replace(o.store, persistence.KeyBank, b); err != nil {
		return nil, err
	}
	if err := persistence.Replace(o.store, persistence.KeyPlayerInventory, playerInv); err != nil {
		return nil, err
	}
	if err := persistence.Replace(o.store, persistence.KeyMarkets, markets); err != nil {
		return nil, err
	}
	if err := persistence.Replace(o.store, persistence.KeyTradeLedger, led); err != nil {
		return nil, err
	}

	date, err := o.Date()
	if err != nil {
		return nil, err
	}

	receipt := newReceipt(m, town, date, lines, bill)
	slog.Info("transaction confirmed",
		"town", town,
		"market", m.Name,
		"lines", len(lines),
		"total_bill", fmt.Sprintf("$%.2f", bill),
		"receipt", receipt.Serial,
	)
	return receipt, nil
}

// Depart freezes the current town's market into the ledger, moves the
// player to dest, and walks the clock forward a dawn per travel day.
func (o *Orchestrator) Depart(dest string) (clock.Time, error) {
	worldMap, err := o.WorldMap()
	if err != nil {
		return clock.Time{}, err
	}
	from, ok := worldMap.Town(worldMap.PlayerLocation)
	if !ok {
		return clock.Time{}, fmt.Errorf("%w: %q", market.ErrUnknownTown, worldMap.PlayerLocation)
	}
	to, ok := worldMap.Town(dest)
	if !ok {
		return clock.Time{}, fmt.Errorf("%w: %q", market.ErrUnknownTown, dest)
	}

	m, err := o.Market(from.Name)
	if err != nil {
		return clock.Time{}, err
	}
	led, err := o.Ledger()
	if err != nil {
		return clock.Time{}, err
	}
	date, err := o.Date()
	if err != nil {
		return clock.Time{}, err
	}

	// The snapshot freezes the market as the player last saw it.
	led.RecordTownVisit(from.Name, m, date.DayOrdinal)

	if err := worldMap.SetPlayerLocation(dest); err != nil {
		return clock.Time{}, err
	}

	days := world.TravelDays(world.Distance(from, to))
	for i := 0; i < days; i++ {
		date.AdvanceUntil(clock.Dawn)
	}

	if err := persistence.Replace(o.store, persistence.KeyTradeLedger, led); err != nil {
		return clock.Time{}, err
	}
	if err := persistence.Replace(o.store, persistence.KeyWorldMap, worldMap); err != nil {
		return clock.Time{}, err
	}
	if err := persistence.Replace(o.store, persistence.KeyDate, date); err != nil {
		return clock.Time{}, err
	}

	slog.Info("departed town", "from", from.Name, "to", dest, "days_on_trail", days, "arrive", date.String())
	return date, nil
}

// AdvanceTime moves the clock to the next time of day and persists it.
func (o *Orchestrator) AdvanceTime() (clock.Time, error) {
	date, err := o.Date()
	if err != nil {
		return clock.Time{}, err
	}
	date.Advance()
	if err := persistence.Replace(o.store, persistence.KeyDate, date); err != nil {
		return clock.Time{}, err
	}
	return date, nil
}

// Hire signs an applicant onto the roster.
func (o *Orchestrator) Hire(a roster.Applicant) (*roster.Roster, error) {
	r, err := o.Roster()
	if err != nil {
		return nil, err
	}
	r.Hire(a)
	if err := persistence.Replace(o.store, persistence.KeyEmployees, r); err != nil {
		return nil, err
	}
	slog.Info("hired hand", "name", a.Employee.FirstName+" "+a.Employee.LastName, "wage", a.Employee.HourlyWage)
	return r, nil
}
