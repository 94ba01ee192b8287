package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/monsite/console-api/internal/api"
	"github.com/monsite/console-api/internal/infrastructure/config"
	mongodb "github.com/monsite/console-api/internal/infrastructure/db/mongo"
	"github.com/monsite/console-api/internal/infrastructure/db/postgres"
	redisdb "github.com/monsite/console-api/internal/infrastructure/db/redis"
	"github.com/monsite/console-api/internal/infrastructure/queue"
	"github.com/monsite/console-api/pkg/logger"

	_ "github.com/monsite/console-api/docs"
)

const shutdownTimeout = 10 * time.Second

// @title           Console API
// @version         1.0
// @description     Administration console backend: sessions, role directory, dashboards and visualizations.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Analytics database (optional) ---
	var analytics *pgxpool.Pool
	if cfg.Analytics.DSN != "" {
		analytics, err = postgres.Connect(ctx, cfg.Analytics.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("analytics database connection failed")
		}
		defer analytics.Close()
	} else {
		log.Warn().Msg("ANALYTICS_DSN not set, schema introspection disabled")
	}

	// --- Audit trail dispatcher ---
	dispatcher := queue.NewAuditDispatcher(0, mongodb.NewAuditRepository(db), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Config:    cfg,
		Mongo:     db,
		Redis:     rdb,
		Analytics: analytics,
		Recorder:  dispatcher,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
