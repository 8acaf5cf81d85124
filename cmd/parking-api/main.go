package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/parkit/parking-system/internal/api"
	"github.com/parkit/parking-system/internal/core/service"
	"github.com/parkit/parking-system/internal/infrastructure/config"
	mongodb "github.com/parkit/parking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/parkit/parking-system/internal/infrastructure/db/redis"
	"github.com/parkit/parking-system/internal/infrastructure/queue"
	"github.com/parkit/parking-system/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	gateWorkers     = 4
	shutdownTimeout = 10 * time.Second
)

// @title Parking Facility API
// @version 1.0
// @description Parking session lifecycle, fare settlement, and gate event ingestion.
// @BasePath /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Repositories ---
	spotRepo := mongodb.NewSpotRepository(db)
	ticketRepo := mongodb.NewTicketRepository(db)
	gateEventRepo := mongodb.NewGateEventRepository(db)
	authRepo := mongodb.NewAuthRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"spots":   spotRepo.EnsureIndexes,
		"tickets": ticketRepo.EnsureIndexes,
		"users":   authRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	if err := spotRepo.Seed(ctx, cfg.Facility.CarSpots, cfg.Facility.BikeSpots); err != nil {
		log.Fatal().Err(err).Msg("spot seeding failed")
	}

	// --- Services ---
	allocator := service.NewSpotAllocator(spotRepo, logger.With("allocator"))
	fares := service.NewFareCalculator(cfg.Fare.CarRatePerHour, cfg.Fare.BikeRatePerHour)
	parkingSvc := service.NewParkingService(allocator, fares, spotRepo, ticketRepo, logger.With("parking"))
	authSvc := service.NewAuthService(authRepo, cfg.JWTSecret, tokenTTL)
	dedup := redisdb.NewDedupChecker(rdb)
	gateSvc := service.NewGateEventService(parkingSvc, gateEventRepo, dedup, logger.With("gate-events"))

	dispatcher := queue.NewDispatcher(gateWorkers, gateSvc, logger.With("dispatcher"))
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.RouterDeps{
		DB:         db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		Parking:    parkingSvc,
		Auth:       authSvc,
		Dispatcher: dispatcher,
		Logger:     logger.With("http"),
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
