package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/api"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/infrastructure/backend"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/infrastructure/config"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/infrastructure/session"
	"github.com/Victorhugosouza42/portal-banco-horas/pkg/logger"
)

// @title Portal Banco de Horas
// @version 1.0
// @description Painel administrativo do banco de horas: requisições, desafios e moderação.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session id.

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	gateway := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger.Component("backend"))

	var (
		store ports.SessionStore
		rdb   *redis.Client
	)
	switch cfg.Session.Store {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := session.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB, 5*time.Second)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connection failed")
		}
		rdb = client
		store = session.NewRedisStore(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions stored in redis")
	default:
		memory := session.NewMemoryStore()
		store = memory

		sweeper := session.NewSweeper(memory, cfg.Session.SweepEvery, logger.Component("sessions"))
		sweeper.Start()
		defer sweeper.Stop()
		log.Info().Dur("sweep_every", cfg.Session.SweepEvery).Msg("sessions stored in memory")
	}

	e := api.NewRouter(cfg, gateway, store, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server stopped gracefully")
}
