package main

import (
	"fmt"
	"os"

	"github.com/hrdesk-dev/hrdesk/internal/config"
	"github.com/hrdesk-dev/hrdesk/internal/logger"
	"github.com/hrdesk-dev/hrdesk/internal/server"
)

var version = "dev" // set with -ldflags "-X main.version=..."

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)

	if cfg.Auth.AdminInviteToken == "" {
		log.Warn().Msg("AUTH_ADMIN_INVITE_TOKEN is not set, signups can only create regular users")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Info().Msg("AUTH_JWT_SECRET is not set, using the secret stored in the database")
	}

	srv, err := server.New(cfg, log, version)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	log.Info().
		Str("version", version).
		Str("database", cfg.Database.URL).
		Str("uploads", cfg.Uploads.Dir).
		Msg("Starting hrdesk API server")

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
}
