package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"apartmentbooking/internal/config"
	"apartmentbooking/internal/database"
	"apartmentbooking/internal/jobs"
	"apartmentbooking/internal/pkg/blobstore"
	"apartmentbooking/internal/pkg/cache"
	"apartmentbooking/internal/pkg/jwt"
	"apartmentbooking/internal/pkg/logger"
	"apartmentbooking/internal/server"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.AppEnv, ServiceName: "apartments-api"})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{MaxOpenConns: cfg.DBMaxOpenConns})
	if err != nil {
		zl.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		zl.Fatal("uploads dir", zap.Error(err))
	}

	srv := server.New(server.Deps{
		DB:                   db,
		JWT:                  jwt.New(cfg.JWTSecret, cfg.JWTTTL),
		Logger:               zl,
		Blobs:                blobstore.NewLocal(cfg.UploadsDir),
		ListingCache:         listingCache(cfg, zl),
		ListingCacheTTL:      cfg.ListingCacheTTL,
		CancellationLeadTime: cfg.CancellationLeadTime,
		CORSOrigins:          cfg.CORSAllowedOrigins,
	})

	scheduler := cron.New()
	if err := jobs.ScheduleStayCompletion(scheduler, cfg.StayCompletionCron, srv.Bookings, zl); err != nil {
		zl.Fatal("invalid STAY_COMPLETION_CRON", zap.Error(err))
	}
	if err := jobs.ScheduleTokenCleanup(scheduler, cfg.TokenCleanupCron, srv.Tokens, zl); err != nil {
		zl.Fatal("invalid TOKEN_CLEANUP_CRON", zap.Error(err))
	}
	scheduler.Start()

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	zl.Info("shutting down")
	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zl.Error("http shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// listingCache uses Redis when REDIS_ADDR is set and reachable, otherwise an
// in-process cache.
func listingCache(cfg *config.Config, zl *zap.Logger) cache.ListingCache {
	if cfg.RedisAddr == "" {
		return cache.NewMemory()
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		zl.Warn("redis unreachable, listing cache stays in process", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = rdb.Close()
		return cache.NewMemory()
	}
	zl.Info("listing cache on redis", zap.String("addr", cfg.RedisAddr))
	return cache.NewRedis(rdb)
}
