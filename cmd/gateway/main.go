package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/premiumerp/dashboard-gateway/internal/api"
	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
	"github.com/premiumerp/dashboard-gateway/internal/core/service"
	"github.com/premiumerp/dashboard-gateway/internal/infrastructure/config"
	mongodb "github.com/premiumerp/dashboard-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/premiumerp/dashboard-gateway/internal/infrastructure/db/redis"
	"github.com/premiumerp/dashboard-gateway/internal/infrastructure/queue"
	"github.com/premiumerp/dashboard-gateway/internal/upstream"
	"github.com/premiumerp/dashboard-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Premium ERP Dashboard Gateway API
// @version 1.0
// @description Session, authorization and product-configurator gateway for the Premium ERP dashboard.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	catalog := mongodb.NewCatalogRepository(db)
	if err := catalog.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("catalog seed failed")
	}

	var identity ports.IdentityProvider
	switch cfg.AuthMode {
	case "local":
		users := mongodb.NewUserRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("user index creation failed")
		}
		identity = service.NewLocalIdentity(users)
		log.Info().Msg("using local identity provider")
	default:
		identity = upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
		log.Info().Str("base_url", cfg.Upstream.BaseURL).Msg("using upstream identity provider")
	}

	sessionRepo := redisdb.NewSessionRepository(rdb, cfg.SessionTTL)
	sessions := service.NewSessionService(identity, sessionRepo, cfg.JWTSecret, cfg.SessionTTL, log)

	orders := service.NewOrderService(mongodb.NewOrderRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.QueueWorkers, orders, log)
	dispatcher.Start(ctx)

	configurator := service.NewConfiguratorService(catalog, dispatcher, log)

	e := api.NewRouter(cfg, sessions, configurator, catalog, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
