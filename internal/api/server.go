// Package api provides the HTTP API the game UI talks to.
// GET endpoints are read-only views of the save; POST endpoints are the
// side-effecting entry points (confirm transaction, travel, hire).
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/silt-road/internal/bank"
	"github.com/talgya/silt-road/internal/commodity"
	"github.com/talgya/silt-road/internal/ledger"
	"github.com/talgya/silt-road/internal/market"
	"github.com/talgya/silt-road/internal/roster"
	"github.com/talgya/silt-road/internal/trade"
)

// Server serves the game state over HTTP.
type Server struct {
	Orc  *trade.Orchestrator
	Port int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	// Read-only views.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/map", s.handleMap)
	mux.HandleFunc("/api/v1/market", s.handleMarket)
	mux.HandleFunc("/api/v1/market/", s.handleMarket)
	mux.HandleFunc("/api/v1/inventory", s.handleInventory)
	mux.HandleFunc("/api/v1/bank", s.handleBank)
	mux.HandleFunc("/api/v1/ledger", s.handleLedger)
	mux.HandleFunc("/api/v1/caravan", s.handleCaravan)
	mux.HandleFunc("/api/v1/employees", s.handleEmployees)
	mux.HandleFunc("/api/v1/applicants", s.handleApplicants)

	// Side-effecting entry points.
	mux.HandleFunc("/api/v1/transaction", s.handleTransaction)
	mux.HandleFunc("/api/v1/travel", s.handleTravel)
	mux.HandleFunc("/api/v1/time/advance", s.handleAdvanceTime)
	mux.HandleFunc("/api/v1/hire", s.handleHire)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware allows the local UI dev servers; extra origins come from
// CORS_ORIGINS (comma-separated).
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	worldMap, err := s.Orc.WorldMap()
	if err != nil {
		httpError(w, err)
		return
	}
	info, err := s.Orc.PlayerInfo()
	if err != nil {
		httpError(w, err)
		return
	}
	date, err := s.Orc.Date()
	if err != nil {
		httpError(w, err)
		return
	}
	balance, err := s.Orc.PlayerBalance()
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"player":       info.PlayerName,
		"company":      info.CompanyName,
		"location":     worldMap.PlayerLocation,
		"date":         date,
		"date_display": date.String(),
		"balance":      balance,
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	worldMap, err := s.Orc.WorldMap()
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, worldMap)
}

// handleMarket serves the current town's market, or a named town's via
// /api/v1/market/{town}.
func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	town := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/api/v1/market"), "/")
	if town == "" {
		worldMap, err := s.Orc.WorldMap()
		if err != nil {
			httpError(w, err)
			return
		}
		town = worldMap.PlayerLocation
	}

	m, err := s.Orc.Market(town)
	if err != nil {
		httpError(w, err)
		return
	}
	playerInv, err := s.Orc.PlayerInventory()
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"town":   town,
		"market": m.Name,
		"rows":   marketRows(m, playerInv),
	})
}

// marketRow is one line of the market table: player holdings beside the
// market's stock and its deviated unit price.
type marketRow struct {
	Commodity    commodity.Commodity `json:"commodity"`
	Abbrev       string              `json:"abbrev"`
	Unit         string              `json:"unit"`
	PlayerQty    int                 `json:"player_qty"`
	MarketQty    int                 `json:"market_qty"`
	MarketQtyStr string              `json:"market_qty_display"`
	UnitPrice    float64             `json:"unit_price"`
	PriceDisplay string              `json:"price_display"`
}

func marketRows(m *market.Market, playerInv commodity.Inventory) []marketRow {
	rows := make([]marketRow, 0, commodity.Count)
	for _, comm := range commodity.All() {
		playerQty := playerInv.Qty(comm)
		marketQty := m.Inventory.Qty(comm)
		if playerQty == 0 && marketQty == 0 {
			continue
		}
		price := m.UnitPrice(comm)
		rows = append(rows, marketRow{
			Commodity:    comm,
			Abbrev:       commodity.Abbrev(comm),
			Unit:         commodity.UnitOf(comm).Short,
			PlayerQty:    playerQty,
			MarketQty:    marketQty,
			MarketQtyStr: humanize.Comma(int64(marketQty)),
			UnitPrice:    price,
			PriceDisplay: commodity.FormatUnitPrice(comm, price),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Commodity.String() < rows[j].Commodity.String()
	})
	return rows
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	inv, err := s.Orc.PlayerInventory()
	if err != nil {
		httpError(w, err)
		return
	}
	caravan, err := s.Orc.Caravan()
	if err != nil {
		httpError(w, err)
		return
	}

	cargo := inv.TotalWeight()
	capacity := caravan.CargoCapacity()
	used := 0.0
	if capacity.InLbs() > 0 {
		used = cargo.InLbs() / capacity.InLbs()
	}

	writeJSON(w, map[string]any{
		"inventory":      inv,
		"cargo_weight":   cargo.String(),
		"cargo_capacity": capacity.String(),
		"capacity_used":  used,
	})
}

func (s *Server) handleBank(w http.ResponseWriter, r *http.Request) {
	balance, err := s.Orc.PlayerBalance()
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"account": bank.PlayerAccount,
		"balance": balance,
	})
}

// handleLedger serves cost bases and town snapshots; each snapshot line
// carries its deviation versus the current local market for display.
func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	led, err := s.Orc.Ledger()
	if err != nil {
		httpError(w, err)
		return
	}
	worldMap, err := s.Orc.WorldMap()
	if err != nil {
		httpError(w, err)
		return
	}
	local, err := s.Orc.Market(worldMap.PlayerLocation)
	if err != nil {
		httpError(w, err)
		return
	}

	type snapshotLine struct {
		Commodity    commodity.Commodity `json:"commodity"`
		UnitPrice    float64             `json:"unit_price"`
		QtyOnHand    int                 `json:"qty_on_hand"`
		DeviationPct float64             `json:"deviation_pct"`
	}
	type visitView struct {
		LastVisitedDate int            `json:"last_visited_date"`
		Lines           []snapshotLine `json:"lines"`
	}

	visits := make(map[string]visitView, len(led.TownVisits))
	for town, visit := range led.TownVisits {
		lines := make([]snapshotLine, 0, len(visit.MarketSnapshot))
		for comm, entry := range visit.MarketSnapshot {
			lines = append(lines, snapshotLine{
				Commodity:    comm,
				UnitPrice:    entry.UnitPrice,
				QtyOnHand:    entry.QtyOnHand,
				DeviationPct: ledger.DeviationPct(entry.UnitPrice, local.UnitPrice(comm)),
			})
		}
		sort.Slice(lines, func(i, j int) bool {
			return lines[i].Commodity.String() < lines[j].Commodity.String()
		})
		visits[town] = visitView{
			LastVisitedDate: visit.LastVisitedDate,
			Lines:           lines,
		}
	}

	writeJSON(w, map[string]any{
		"inventory_avg_prices": led.InventoryAvgPrices,
		"town_visits":          visits,
	})
}

func (s *Server) handleCaravan(w http.ResponseWriter, r *http.Request) {
	caravan, err := s.Orc.Caravan()
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"caravan":        caravan,
		"cargo_capacity": caravan.CargoCapacity().String(),
	})
}

func (s *Server) handleEmployees(w http.ResponseWriter, r *http.Request) {
	r2, err := s.Orc.Roster()
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, r2)
}

func (s *Server) handleApplicants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"applicants": s.Orc.Applicants(4),
	})
}

// handleTransaction is the confirm-transaction entry point. The body
// carries the pending transaction, the bill the player saw, and the
// town. On any failure the pending transaction stays with the caller.
func (s *Server) handleTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Txn       commodity.Inventory `json:"txn"`
		TotalBill float64             `json:"total_bill"`
		Town      string              `json:"town"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	receipt, err := s.Orc.Confirm(body.Txn, body.TotalBill, body.Town)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, receipt)
}

func (s *Server) handleTravel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Dest string `json:"dest"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	arrived, err := s.Orc.Depart(body.Dest)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"location": body.Dest,
		"date":     arrived,
	})
}

func (s *Server) handleAdvanceTime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	date, err := s.Orc.AdvanceTime()
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, map[string]any{"date": date, "date_display": date.String()})
}

func (s *Server) handleHire(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Applicant roster.Applicant `json:"applicant"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	r2, err := s.Orc.Hire(body.Applicant)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, r2)
}

// httpError maps domain errors onto HTTP statuses.
func httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, bank.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, market.ErrUnknownTown):
		status = http.StatusNotFound
	case errors.Is(err, commodity.ErrNegativeQuantity),
		errors.Is(err, trade.ErrOverCapacity),
		errors.Is(err, trade.ErrBillMismatch),
		errors.Is(err, ledger.ErrNoCostBasis),
		errors.Is(err, bank.ErrInvalidAccount):
		status = http.StatusConflict
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
