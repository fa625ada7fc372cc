// Package main is the entry point for the road trip planner API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/config"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/engine"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/handler"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/middleware"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/places"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/repo"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/service"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/session"
	"github.com/chicaron82/roadtrip-planner-sub003/migrations"
)

// placesCacheTTL bounds how long provider responses are served from Redis.
// Places data drifts slowly; fifteen minutes keeps repeat edits of the same
// route off the provider without serving stale openings for long.
const placesCacheTTL = 15 * time.Minute

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a developer convenience; in production the variables come from
	// the environment and the file simply does not exist.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// goose walks the embedded SQL files on every boot; already-applied
	// versions are skipped, so this is a no-op against a current schema.
	// The database/sql handle is borrowed from the pgx pool and released
	// once the migrations have run.
	sqldb := stdlib.OpenDBFromPool(pool)
	migrator, err := goose.NewProvider(goose.DialectPostgres, sqldb, migrations.FS)
	if err != nil {
		slog.Error("failed to create migrator", "error", err)
		os.Exit(1)
	}
	applied, err := migrator.Up(context.Background())
	if err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	if err := sqldb.Close(); err != nil {
		slog.Error("failed to release migration connection", "error", err)
		os.Exit(1)
	}
	if len(applied) > 0 {
		slog.Info("migrations applied", "count", len(applied))
	}

	// --- Cache ------------------------------------------------------------
	// Redis is optional. Without it the planner still works; discovery
	// requests just hit the places provider every time.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Warn("redis not reachable at startup; discovery cache degraded", "error", err)
		} else {
			slog.Info("redis cache connected", "addr", cfg.RedisAddr)
		}
	}

	// --- Places provider --------------------------------------------------
	// Nil provider is a supported mode: discovery then classifies only the
	// candidates each request carries inline.
	var placesProvider places.Provider
	if cfg.PlacesBaseURL != "" {
		httpProvider := places.NewHTTPProvider(cfg.PlacesBaseURL, cfg.PlacesAPIKey)
		if rdb != nil {
			placesProvider = places.NewCachedProvider(httpProvider, rdb, placesCacheTTL, logger)
		} else {
			placesProvider = httpProvider
		}
	} else {
		slog.Info("no places provider configured; discovery uses caller candidates only")
	}

	// --- Engine and services ----------------------------------------------
	eng := engine.New(engine.DefaultPolicy())

	planRepo := repo.NewPlanRepo(pool)
	vehicleRepo := repo.NewVehicleRepo(pool)
	favoriteRepo := repo.NewFavoriteRepo(pool)

	itineraries := service.NewItineraryService(eng, vehicleRepo, planRepo)
	plans := service.NewPlanService(planRepo)
	vehicles := service.NewVehicleService(vehicleRepo)
	favorites := service.NewFavoriteService(favoriteRepo)
	discovery := service.NewDiscoveryService(eng, placesProvider, logger)
	adventures := service.NewAdventureService(eng, placesProvider, logger)
	exports := service.NewExportService(itineraries)

	sessions := session.NewManager(func(_ context.Context, in engine.Input) (domain.Itinerary, error) {
		return eng.BuildItinerary(in)
	}, session.DefaultDebounce, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	api := handler.NewServer(handler.Deps{
		Plans:       plans,
		Vehicles:    vehicles,
		Favorites:   favorites,
		Itineraries: itineraries,
		Discovery:   discovery,
		Adventures:  adventures,
		Exports:     exports,
		Sessions:    sessions,
		DBCheck:     pool.Ping,
		CacheCheck:  cacheCheck(rdb),
		Log:         logger,
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", api.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// cacheCheck adapts the redis client to a health CheckFunc. A nil client
// reports the cache as disabled rather than broken.
func cacheCheck(rdb *redis.Client) handler.CheckFunc {
	if rdb == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
