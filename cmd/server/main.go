package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/adapter/api"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/adapter/metrics"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/adapter/repository/postgres"
	redisrepo "github.com/nkaka-t/Simple-House-Rent-Management-System/internal/adapter/repository/redis"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/pkg/config"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/pkg/logger"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/usecase"

	_ "github.com/lib/pq" // Keep for postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.NewRentMetrics()

	// --- Start Admin and Metrics Server ---
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())

	adminServer := &http.Server{
		Addr:    cfg.AdminAddr,
		Handler: adminMux,
	}

	go func() {
		logger.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database and Redis Connections ---
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Error("postgres is unreachable", "error", err)
		os.Exit(1)
	}

	// The summary cache is optional; without Redis every aggregation reads
	// straight from postgres.
	var summaryCache domain.SummaryCache
	if cfg.RedisAddr != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisAddr)
		if err != nil {
			logger.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("could not connect to redis, summary caching disabled", "error", err)
		} else {
			summaryCache = redisrepo.NewSummaryCache(redisClient, logger, cfg.SummaryCacheTTL)
		}
	}

	// --- Initialize Repositories ---
	ownerRepo := postgres.NewOwnerRepository(db)
	houseRepo := postgres.NewHouseRepository(db)
	tenantRepo := postgres.NewTenantRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	occupancyRepo := postgres.NewOccupancyRepository(db, logger)

	// --- Initialize Use Cases ---
	ownerService := usecase.NewOwnerService(ownerRepo, houseRepo, logger)
	houseService := usecase.NewHouseService(houseRepo, ownerRepo, tenantRepo, occupancyRepo, m, logger)
	tenantService := usecase.NewTenantService(tenantRepo, houseRepo, occupancyRepo, m, logger)
	paymentService := usecase.NewPaymentService(paymentRepo, tenantRepo, houseRepo, summaryCache, m, logger)

	// --- Initialize API Server ---
	router := api.NewRouter(cfg, logger, ownerService, houseService, tenantService, paymentService)
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting rent management server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown failed", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
