// cmd/api/main.go
// Main entry point for the matchmaker API
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/activity"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/database"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/logger"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/config"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/matching"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/members"
)

func main() {
	started := time.Now()

	// Configuration comes first so the logger can honor it
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("❌ Failed to load configuration", zap.Error(err))
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	log.Info("🚀 Starting Kiekky Matchmaker API", zap.String("environment", cfg.Environment))

	// 1. Validate configuration
	log.Info("✔️  Step 1: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Connect to PostgreSQL
	log.Info("🗄️  Step 2: Connecting to PostgreSQL...", zap.Any("database", cfg.Database.Redacted()))
	manager, err := database.NewManager(ctx, cfg.Database, nil, log)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer manager.Close()
	log.Info("✅ Connected to PostgreSQL")

	if cfg.Database.AutoMigrate {
		log.Info("🧱 Step 2b: Running migrations...")
		if err := database.RunMigrations(ctx, manager.DB(), log); err != nil {
			log.Fatal("❌ Migrations failed", zap.Error(err))
		}
	}

	// 3. Connect to Redis (optional)
	redisClient := connectRedis(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// 4. Initialize services
	log.Info("🔧 Step 4: Initializing services...")
	memberRepo := members.NewPostgresRepository(manager)

	activityService := activity.NewService(
		activity.NewPostgresRepository(manager),
		memberRepo,
		cfg.Database.QueryTimeout,
		cfg.Activity.Retention,
		log.Named("activity"),
	)

	matchingService := matching.NewService(
		memberRepo,
		cfg.Database.QueryTimeout,
		log.Named("matching"),
		matching.WithCache(matching.NewRedisCache(redisClient, cfg.Matching.CacheTTL, log.Named("cache"))),
		matching.WithViewRecorder(activityService),
	)

	// 5. Start background jobs
	log.Info("⏰ Step 5: Starting scheduler...", zap.Int("cleanup_hour", cfg.Activity.CleanupHour))
	scheduler := activity.NewScheduler(activityService, cfg.Activity.CleanupHour, log.Named("scheduler"))
	scheduler.Start(ctx)

	// 6. Routes and server
	log.Info("🛣️  Step 6: Setting up routes...")
	router := newRouter(routerDeps{
		db:       manager,
		members:  memberRepo,
		matching: matchingService,
		activity: activityService,
		limits:   matching.Limits{Default: cfg.Matching.DefaultLimit, Max: cfg.Matching.MaxLimit},
		timeout:  cfg.Database.QueryTimeout,
		started:  started,
		logger:   log.Named("http"),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("🌐 Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for running := true; running; {
		select {
		case err := <-serverErr:
			log.Error("❌ Server failed", zap.Error(err))
			running = false
		case sig := <-signals:
			if sig == syscall.SIGHUP {
				reloadDatabase(ctx, manager, log)
				continue
			}
			log.Info("🛑 Shutting down server...", zap.String("signal", sig.String()))
			running = false
		}
	}

	cancel()
	scheduler.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("❌ Server forced to shutdown", zap.Error(err))
	}

	log.Info("👋 Server exited")
}

// connectRedis returns nil when Redis is not configured or unreachable;
// the match cache is disabled in that case.
func connectRedis(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) *redis.Client {
	log.Info("📮 Step 3: Connecting to Redis...")
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := database.NewRedisClient(pingCtx, cfg)
	switch {
	case errors.Is(err, database.ErrRedisDisabled):
		log.Info("ℹ️  Redis not configured, match cache disabled")
		return nil
	case err != nil:
		log.Warn("⚠️  Redis unavailable, match cache disabled", zap.Error(err))
		return nil
	}
	log.Info("✅ Connected to Redis")
	return client
}

// reloadDatabase re-reads configuration and swaps the pool. On any failure the old pool stays.
func reloadDatabase(ctx context.Context, manager *database.Manager, log *zap.Logger) {
	log.Info("🔄 Reloading database configuration...")

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		log.Error("❌ Reload rejected, keeping current pool", zap.Error(err))
		return
	}

	if err := manager.Reconfigure(ctx, cfg.Database); err != nil {
		log.Error("❌ Reconfigure failed, keeping current pool", zap.Error(err))
		return
	}
	log.Info("✅ Database configuration reloaded", zap.Any("database", cfg.Database.Redacted()))
}
