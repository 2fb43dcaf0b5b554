package main

import (
	"fmt"
	"os"

	"github.com/lenshub-dev/lenshub/internal/config"
	"github.com/lenshub-dev/lenshub/internal/logger"
	"github.com/lenshub-dev/lenshub/internal/server"
)

var version = "dev" // Will be set during build with -ldflags

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	srv, err := server.New(cfg, log, version)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	log.Info().
		Str("version", version).
		Str("backend_url", cfg.Backend.URL).
		Msg("Starting Lenshub gateway...")

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
