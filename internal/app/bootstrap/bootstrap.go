package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	publishingservice "plume/contexts/content-sharing/publishing-service"
	"plume/contexts/content-sharing/publishing-service/adapters/hash"
	postgresadapter "plume/contexts/content-sharing/publishing-service/adapters/postgres"
	"plume/contexts/content-sharing/publishing-service/adapters/token"
	"plume/internal/platform/config"
	"plume/internal/platform/db"
	"plume/internal/platform/httpserver"
	"plume/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(postgresadapter.Models()...); err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	module := publishingservice.NewModule(publishingservice.Dependencies{
		Users:    repo,
		Posts:    repo,
		Comments: repo,
		Bus:      messaging.NewBus(logger),
		Hasher:   hash.Bcrypt{Cost: cfg.BcryptCost},
		Tokens:   token.NewJWT([]byte(cfg.JWTSecret), cfg.TokenTTL),
		Clock:    postgresadapter.SystemClock{},
		IDGen:    postgresadapter.UUIDGenerator{},
		Logger:   logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
