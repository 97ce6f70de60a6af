package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/talgya/silt-road/internal/bank"
	"github.com/talgya/silt-road/internal/clock"
	"github.com/talgya/silt-road/internal/commodity"
	"github.com/talgya/silt-road/internal/ledger"
	"github.com/talgya/silt-road/internal/market"
	"github.com/talgya/silt-road/internal/persistence"
	"github.com/talgya/silt-road/internal/player"
	"github.com/talgya/silt-road/internal/trade"
	"github.com/talgya/silt-road/internal/world"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	store, err := persistence.OpenInMemory()
	assert.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	assert.NoError(t, persistence.Replace(store, persistence.KeyWorldMap, world.Seed()))
	assert.NoError(t, persistence.Replace(store, persistence.KeyMarkets, market.All{
		"Rattsville": {
			Name: "Rattsville Plaza",
			Inventory: commodity.Inventory{
				commodity.Grain: 100,
				commodity.Gold:  10,
			},
			PriceDeviations: map[commodity.Commodity]float64{
				commodity.Grain: -0.10,
			},
		},
		"Fodder Crick":     {Name: "Fodder Crick General Store", Inventory: commodity.Inventory{}},
		"Damnation":        {Name: "Damnation Trading Post", Inventory: commodity.Inventory{}},
		"Cornucopia Falls": {Name: "Cornucopia Falls Mercantile", Inventory: commodity.Inventory{}},
		"Langston":         {Name: "Langston & Co.", Inventory: commodity.Inventory{}},
	}))
	assert.NoError(t, persistence.Replace(store, persistence.KeyBank, bank.Bank{bank.PlayerAccount: 100.00}))
	assert.NoError(t, persistence.Replace(store, persistence.KeyPlayerInventory, commodity.Inventory{}))
	assert.NoError(t, persistence.Replace(store, persistence.KeyPlayerCaravan, player.SeedCaravan()))
	assert.NoError(t, persistence.Replace(store, persistence.KeyTradeLedger, ledger.Seed(commodity.Inventory{})))
	assert.NoError(t, persistence.Replace(store, persistence.KeyDate, clock.Seed()))

	cfg := world.DefaultGenConfig()
	cfg.Seed = 1
	return &Server{Orc: trade.New(store, ledger.PolicyZeroCost, cfg), Port: 0}
}

func TestHandleStatus(t *testing.T) {
	s := newServer(t)

	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Player   string  `json:"player"`
		Location string  `json:"location"`
		Balance  float64 `json:"balance"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Homer S. McCoy", body.Player)
	assert.Equal(t, "Rattsville", body.Location)
	assert.Equal(t, 100.00, body.Balance)
}

func TestHandleMarket(t *testing.T) {
	s := newServer(t)

	rec := httptest.NewRecorder()
	s.handleMarket(rec, httptest.NewRequest(http.MethodGet, "/api/v1/market", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Town   string      `json:"town"`
		Market string      `json:"market"`
		Rows   []marketRow `json:"rows"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Rattsville", body.Town)
	assert.Equal(t, "Rattsville Plaza", body.Market)

	// Rows sort by commodity name: gold before grain.
	assert.Equal(t, 2, len(body.Rows))
	assert.Equal(t, 10, body.Rows[0].MarketQty)
	assert.Equal(t, 100, body.Rows[1].MarketQty)
	assert.Contains(t, body.Rows[1].PriceDisplay, "/bsh")
}

func TestHandleMarket_NamedTown(t *testing.T) {
	s := newServer(t)

	rec := httptest.NewRecorder()
	s.handleMarket(rec, httptest.NewRequest(http.MethodGet, "/api/v1/market/Langston", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.handleMarket(rec, httptest.NewRequest(http.MethodGet, "/api/v1/market/Tombstone", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleTransaction(t *testing.T) {
	s := newServer(t)

	bill := commodity.BasePrice1860(commodity.Grain) * 0.90 * 10
	payload, err := json.Marshal(map[string]any{
		"txn":        map[string]int{"grain": 10},
		"total_bill": bill,
		"town":       "Rattsville",
	})
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transaction", bytes.NewReader(payload))
	s.handleTransaction(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var receipt trade.Receipt
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.NotZero(t, receipt.Serial)
	assert.Equal(t, 1, len(receipt.Lines))
}

func TestHandleTransaction_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		txn        map[string]int
		bill       float64
		town       string
		wantStatus int
	}{
		{
			name:       "insufficient funds",
			txn:        map[string]int{"gold": 10},
			bill:       commodity.BasePrice1860(commodity.Gold) * 10,
			town:       "Rattsville",
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name:       "unknown town",
			txn:        map[string]int{"grain": 1},
			bill:       1,
			town:       "Tombstone",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "stale bill",
			txn:        map[string]int{"grain": 10},
			bill:       999.99,
			town:       "Rattsville",
			wantStatus: http.StatusConflict,
		},
		{
			name:       "selling unheld cargo",
			txn:        map[string]int{"grain": -5},
			bill:       commodity.BasePrice1860(commodity.Grain) * 0.90 * -5,
			town:       "Rattsville",
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)

			payload, err := json.Marshal(map[string]any{
				"txn":        tt.txn,
				"total_bill": tt.bill,
				"town":       tt.town,
			})
			assert.NoError(t, err)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/transaction", bytes.NewReader(payload))
			s.handleTransaction(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandleTransaction_MethodAndBody(t *testing.T) {
	s := newServer(t)

	rec := httptest.NewRecorder()
	s.handleTransaction(rec, httptest.NewRequest(http.MethodGet, "/api/v1/transaction", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transaction", bytes.NewReader([]byte("{nope")))
	s.handleTransaction(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTravel(t *testing.T) {
	s := newServer(t)

	payload := []byte(`{"dest": "Damnation"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/travel", bytes.NewReader(payload))
	s.handleTravel(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Location string     `json:"location"`
		Date     clock.Time `json:"date"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Damnation", body.Location)
	// Rattsville to Damnation is 40 units: three dawns on the trail.
	assert.Equal(t, 3, body.Date.DayOrdinal)
}

func TestHandleInventory(t *testing.T) {
	s := newServer(t)

	rec := httptest.NewRecorder()
	s.handleInventory(rec, httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		CargoCapacity string  `json:"cargo_capacity"`
		CapacityUsed  float64 `json:"capacity_used"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "12.0 tn", body.CargoCapacity)
	assert.Equal(t, 0.0, body.CapacityUsed)
}

func TestHandleLedger(t *testing.T) {
	s := newServer(t)

	// Visit snapshot first, so the ledger view has a deviation to show.
	payload := []byte(`{"dest": "Langston"}`)
	rec := httptest.NewRecorder()
	s.handleTravel(rec, httptest.NewRequest(http.MethodPost, "/api/v1/travel", bytes.NewReader(payload)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.handleLedger(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledger", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TownVisits map[string]struct {
			LastVisitedDate int `json:"last_visited_date"`
			Lines           []struct {
				Commodity string  `json:"commodity"`
				QtyOnHand int     `json:"qty_on_hand"`
				Deviation float64 `json:"deviation_pct"`
			} `json:"lines"`
		} `json:"town_visits"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	visit, ok := body.TownVisits["Rattsville"]
	assert.True(t, ok)
	assert.Equal(t, 0, visit.LastVisitedDate)
	assert.Equal(t, 2, len(visit.Lines))
	assert.Equal(t, "grain", visit.Lines[1].Commodity)
	assert.Equal(t, 100, visit.Lines[1].QtyOnHand)
}

func TestCORSMiddleware(t *testing.T) {
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/status", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
