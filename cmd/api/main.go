package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pintunes/pintunes-api/internal/api"
	"github.com/pintunes/pintunes-api/internal/infrastructure/config"
	redisdb "github.com/pintunes/pintunes-api/internal/infrastructure/db/redis"
	"github.com/pintunes/pintunes-api/internal/infrastructure/gemini"
	"github.com/pintunes/pintunes-api/internal/infrastructure/pinata"
	"github.com/pintunes/pintunes-api/internal/infrastructure/spotify"
	"github.com/pintunes/pintunes-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "pintunes-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := pinata.New(pinata.Config{
		APIKey:     cfg.Pinata.APIKey,
		SecretKey:  cfg.Pinata.SecretKey,
		BaseURL:    cfg.Pinata.BaseURL,
		GatewayURL: cfg.Pinata.GatewayURL,
		Timeout:    cfg.Pinata.Timeout,
	})
	if !store.Configured() {
		log.Warn().Msg("pinning gateway credentials unset, store-backed endpoints will fail fast")
	}

	generator := gemini.New(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	})
	if !generator.Enabled() {
		log.Warn().Msg("language-API key unset, assistant endpoint will fail fast")
	}

	deps := api.Deps{
		Store:     store,
		Generator: generator,
		History:   spotify.NewMockProvider(),
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	}

	// The email directory is optional; without it login requires the
	// client-held CID.
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		deps.Redis = rdb
		deps.Directory = redisdb.NewEmailDirectory(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("email directory enabled")
	}

	e := api.NewRouter(deps)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("pintunes api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
