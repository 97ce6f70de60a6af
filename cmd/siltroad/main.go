// Command siltroad runs the Silt Road game service: it owns the save
// database and serves the game state and transaction entry points over a
// local HTTP API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/silt-road/internal/api"
	"github.com/talgya/silt-road/internal/config"
	"github.com/talgya/silt-road/internal/ledger"
	"github.com/talgya/silt-road/internal/persistence"
	"github.com/talgya/silt-road/internal/trade"
	"github.com/talgya/silt-road/internal/world"
)

func main() {
	configPath := flag.String("config", "siltroad.toml", "path to TOML config")
	resetSave := flag.Bool("reset", false, "wipe the save and start a new game")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     cfg.Log.Level,
		AddSource: cfg.Log.AddSource,
	}))
	slog.SetDefault(logger)

	slog.Info("Silt Road, a frontier trading simulation")

	policy, err := ledger.ParsePolicy(cfg.Ledger.SaleWithoutCostBasis)
	if err != nil {
		slog.Error("bad ledger policy", "error", err)
		os.Exit(1)
	}

	if dir := filepath.Dir(cfg.Game.DBPath); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	store, err := persistence.Open(cfg.Game.DBPath)
	if err != nil {
		slog.Error("failed to open save", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("save opened", "path", cfg.Game.DBPath)

	if *resetSave {
		if err := store.Reset(); err != nil {
			slog.Error("failed to reset save", "error", err)
			os.Exit(1)
		}
		slog.Info("save wiped, starting fresh")
	}

	genCfg := world.DefaultGenConfig()
	genCfg.Seed = cfg.Game.Seed
	if cfg.Game.Towns > 0 {
		genCfg.Towns = cfg.Game.Towns
	}

	orc := trade.New(store, policy, genCfg)

	// First reads seed a fresh world; loaded saves come back as stored.
	worldMap, err := orc.WorldMap()
	if err != nil {
		slog.Error("failed to load world", "error", err)
		os.Exit(1)
	}
	if _, err := orc.Markets(); err != nil {
		slog.Error("failed to load markets", "error", err)
		os.Exit(1)
	}
	date, err := orc.Date()
	if err != nil {
		slog.Error("failed to load clock", "error", err)
		os.Exit(1)
	}
	slog.Info("world ready",
		"towns", len(worldMap.Towns),
		"location", worldMap.PlayerLocation,
		"date", date.String(),
	)

	server := &api.Server{
		Orc:  orc,
		Port: cfg.Server.Port,
	}
	server.Start()

	fmt.Printf("\nSilt Road is open for business in %s.\n", worldMap.PlayerLocation)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.Server.Port)
	fmt.Println("Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)
}
