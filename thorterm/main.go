package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"rhystmorgan/thorDeck/internal/blockchain"
	"rhystmorgan/thorDeck/internal/config"
	"rhystmorgan/thorDeck/internal/history"
	"rhystmorgan/thorDeck/internal/logging"
	"rhystmorgan/thorDeck/internal/registry"
	"rhystmorgan/thorDeck/internal/storage"
	"rhystmorgan/thorDeck/internal/views"
)

const (
	appVersion  = "0.1.0"
	historyFile = "history.db"
)

func main() {
	var (
		cfgFile     = flag.String("config", "", "path to config file (default ~/.thordeck/config.toml)")
		dataDir     = flag.String("data-dir", "", "override the data directory")
		nodeURL     = flag.String("node-url", "", "override the VeChain node URL")
		network     = flag.String("network", "", "network to use (mainnet or testnet)")
		debug       = flag.Bool("debug", false, "enable debug logging")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("thorterm %s\n", appVersion)
		return
	}

	cfg, err := config.Load(*cfgFile, *dataDir)
	if err != nil {
		fatal("Error loading configuration", err)
	}

	// Flags win over file and env.
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *nodeURL != "" {
		cfg.NodeURL = *nodeURL
	}
	if *network != "" {
		cfg.Network = *network
	}
	if *debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		fatal("Invalid configuration", err)
	}

	logger, logCloser, err := logging.New(cfg.DataDir, cfg.Debug)
	if err != nil {
		fatal("Error opening log file", err)
	}
	defer logCloser.Close()

	store, err := storage.NewStorageAt(cfg.DataDir)
	if err != nil {
		fatal("Error initializing storage", err)
	}

	reg, err := registry.Load(store)
	if err != nil {
		fatal("Error loading registry", err)
	}

	hist, err := history.Open(filepath.Join(cfg.DataDir, historyFile))
	if err != nil {
		fatal("Error opening balance history", err)
	}
	defer hist.Close()

	// Snapshots older than a year no longer chart; drop them.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if pruned, err := hist.PruneOlderThan(ctx, time.Now().AddDate(-1, 0, 0)); err != nil {
		logger.Warn("failed to prune balance history", "err", err)
	} else if pruned > 0 {
		logger.Info("pruned old balance snapshots", "rows", pruned)
	}
	cancel()

	chain, err := blockchain.NewClient(cfg.ToBlockchainConfig(), logger)
	if err != nil {
		fatal("Error connecting to VeChain", err)
	}
	defer chain.Close()

	logger.Info("starting thorterm", "version", appVersion, "network", cfg.Network)

	app := views.NewAppModel(cfg, logger, reg, chain, hist)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fatal("Error running application", err)
	}
}

func fatal(msg string, err error) {
	fmt.Printf("%s: %v\n", msg, err)
	os.Exit(1)
}
