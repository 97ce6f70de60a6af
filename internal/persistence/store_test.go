package persistence

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/talgya/silt-road/internal/bank"
	"github.com/talgya/silt-road/internal/commodity"
	"github.com/talgya/silt-road/internal/ledger"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	assert.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGet_SeedsOnFirstRead(t *testing.T) {
	s := openStore(t)

	calls := 0
	seed := func() (bank.Bank, error) {
		calls++
		return bank.Seed(), nil
	}

	b, err := Get(s, KeyBank, seed)
	assert.NoError(t, err)
	assert.Equal(t, bank.Seed(), b)
	assert.Equal(t, 1, calls)

	// Second read comes from storage, not the seed callback.
	b, err = Get(s, KeyBank, seed)
	assert.NoError(t, err)
	assert.Equal(t, bank.Seed(), b)
	assert.Equal(t, 1, calls)
}

func TestGet_SeedFailure(t *testing.T) {
	s := openStore(t)

	boom := errors.New("boom")
	_, err := Get(s, KeyDate, func() (int, error) { return 0, boom })
	assert.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestReplaceRoundTrip(t *testing.T) {
	s := openStore(t)

	inv := commodity.Inventory{
		commodity.Grain:      12,
		commodity.SaltedMeat: 4,
	}
	assert.NoError(t, Replace(s, KeyPlayerInventory, inv))

	got, err := Get(s, KeyPlayerInventory, func() (commodity.Inventory, error) {
		t.Fatal("seed must not run for a written key")
		return nil, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, inv, got)
}

func TestReplaceOverwrites(t *testing.T) {
	s := openStore(t)

	assert.NoError(t, Replace(s, KeyDate, 3))
	assert.NoError(t, Replace(s, KeyDate, 9))

	got, err := Get(s, KeyDate, func() (int, error) { return 0, nil })
	assert.NoError(t, err)
	assert.Equal(t, 9, got)
}

func TestLedgerRoundTrip(t *testing.T) {
	s := openStore(t)

	l := ledger.Seed(commodity.Inventory{commodity.Feed: 3})
	assert.NoError(t, l.RecordTransaction(ledger.Transaction{
		commodity.Grain: {Qty: 10, Price: 1.32},
	}, ledger.PolicyZeroCost))
	assert.NoError(t, Replace(s, KeyTradeLedger, l))

	got, err := Get(s, KeyTradeLedger, func() (*ledger.TradeLedger, error) { return nil, nil })
	assert.NoError(t, err)
	assert.Equal(t, l.InventoryAvgPrices, got.InventoryAvgPrices)
}

func TestReset(t *testing.T) {
	s := openStore(t)

	assert.NoError(t, Replace(s, KeyDate, 42))
	assert.NoError(t, s.Reset())

	got, err := Get(s, KeyDate, func() (int, error) { return 0, nil })
	assert.NoError(t, err)
	assert.Equal(t, 0, got, "reset must drop the stored value")
}
