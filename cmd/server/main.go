package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"button-game-backend/internal/config"
	"button-game-backend/internal/httpapi"
	"button-game-backend/internal/hub"
	"button-game-backend/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	h := hub.NewHub(ctx, session.Options{
		Clock:            clockwork.NewRealClock(),
		Logger:           logger,
		CountdownSeconds: cfg.CountdownSeconds,
		PickCooldown:     time.Duration(cfg.PickCooldownMS) * time.Millisecond,
	}, logger)
	reg := hub.NewConnRegistry()

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, reg, logger, cfg.AllowedOrigins)

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}
