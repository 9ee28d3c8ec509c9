package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/chronostore/chronostore/internal/logger"
	"github.com/chronostore/chronostore/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/chronostore/config.yaml)")
	logLevel := flag.String("log-level", "", "Log level override (DEBUG, INFO, WARN, ERROR)")
	seed := flag.Bool("seed", false, "Load demo data into the store on startup")
	initConfig := flag.Bool("init-config", false, "Write the default config file and exit")
	force := flag.Bool("force", false, "Overwrite an existing config file (with -init-config)")
	flag.Parse()

	// Write the default config file and exit when asked
	if *initConfig {
		runInitConfig(*configPath, *force)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// A CLI override beats the configured level
	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	logger.SetLevel(level)

	fmt.Println("ChronoStore - Temporal File Store")
	logger.Info("Log level set to: %s", level)
	logger.Info("Store type: %s", cfg.Store.Type)

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bring metrics up before the store so store metrics bind to the
	// live registry
	metricsServer := config.InitializeMetrics(cfg)
	metricsDone := make(chan error, 1)
	if metricsServer != nil {
		go func() { metricsDone <- metricsServer.Start(ctx) }()
		logger.Info("Metrics enabled on port %d", metricsServer.Port())
	}

	store, err := config.CreateStore(ctx, &cfg.Store)
	if err != nil {
		log.Fatalf("Failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	if *seed {
		if err := seedStore(ctx, store); err != nil {
			log.Fatalf("Failed to seed store: %v", err)
		}
		logger.Info("Demo data loaded")
	}

	// Run the shell in the background so signals interrupt cleanly
	sh := newShell(store, os.Stdin, os.Stdout)
	shellDone := make(chan error, 1)
	go func() { shellDone <- sh.run(ctx) }()

	// Wait for the shell to finish or an interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received, shutting down...")
	case err := <-shellDone:
		if err != nil {
			logger.Error("Shell error: %v", err)
		}
	}

	cancel()

	// Let the metrics server drain before closing the store
	if metricsServer != nil {
		if err := <-metricsDone; err != nil {
			logger.Error("Metrics server error: %v", err)
		}
	}
}

// runInitConfig writes the default configuration file and reports where
// it landed.
func runInitConfig(path string, force bool) {
	if path != "" {
		if err := config.InitConfigToPath(path, force); err != nil {
			log.Fatalf("Failed to write config file: %v", err)
		}
		fmt.Printf("Wrote config file to %s\n", path)
		return
	}

	written, err := config.InitConfig(force)
	if err != nil {
		log.Fatalf("Failed to write config file: %v", err)
	}
	fmt.Printf("Wrote config file to %s\n", written)
}
