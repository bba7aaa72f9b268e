package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/furniture-storefront/internal/auth"
	"github.com/rogerio-castellano/furniture-storefront/internal/config"
	"github.com/rogerio-castellano/furniture-storefront/internal/db"
	"github.com/rogerio-castellano/furniture-storefront/internal/http/ban"
	"github.com/rogerio-castellano/furniture-storefront/internal/http/handlers"
	rl "github.com/rogerio-castellano/furniture-storefront/internal/http/rate_limiter"
	"github.com/rogerio-castellano/furniture-storefront/internal/http/router"
	"github.com/rogerio-castellano/furniture-storefront/internal/logger"
	"github.com/rogerio-castellano/furniture-storefront/internal/redissvc"
	"github.com/rogerio-castellano/furniture-storefront/internal/repo"
	"github.com/rogerio-castellano/furniture-storefront/internal/storage"
)

// @title Furniture Storefront API
// @version 1.0
// @description Catalog, taxonomy and content API of the furniture storefront.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("could not load .env: %v", err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.Auth.JWTSecret == "" {
		zapLogger.Warn("JWT_SECRET is not set, using the development secret")
	}
	auth.Configure(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	database, err := db.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}
	defer database.Close()
	if err := db.Migrate(ctx, database); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	dbx := db.Wrap(database)

	handlers.SetLogger(zapLogger)
	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	handlers.SetTaxonomyRepo(repo.NewPostgresTaxonomyRepository(dbx))
	handlers.SetSlideRepo(repo.NewPostgresSlideRepository(dbx))
	handlers.SetTranslationRepo(repo.NewPostgresTranslationRepository(dbx))
	handlers.SetMaxUploadSize(cfg.Storage.MaxUploadSize)

	var redisService *redissvc.RedisService
	if cfg.Redis.URL != "" {
		redisService, err = redissvc.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer redisService.Close()
	}

	opts := router.Options{Logger: zapLogger}
	if redisService != nil {
		handlers.SetRefreshStore(auth.NewRedisRefreshStore(redisService.Rdb(), cfg.Auth.RefreshTokenTTL))
		opts.Recorder = ban.NewRedisRecorder(redisService.Rdb())
	} else {
		refresh := auth.NewMemoryRefreshStore(cfg.Auth.RefreshTokenTTL)
		go refresh.StartCleaner(ctx, 30*time.Minute)
		handlers.SetRefreshStore(refresh)
		opts.Recorder = ban.NewMemoryRecorder()
	}
	go ban.StartDailySummary(ctx, opts.Recorder, zapLogger)

	if cfg.RateLimit.Backend == "redis" {
		opts.ReadLimiter = rl.NewRedisWindowLimiter(redisService.Rdb(), cfg.RateLimit.ReadLimit, cfg.RateLimit.Window)
		opts.WriteLimiter = rl.NewRedisWindowLimiter(redisService.Rdb(), cfg.RateLimit.WriteLimit, cfg.RateLimit.Window)
	} else {
		read := rl.NewWindowLimiter(cfg.RateLimit.ReadLimit, cfg.RateLimit.Window)
		write := rl.NewWindowLimiter(cfg.RateLimit.WriteLimit, cfg.RateLimit.Window)
		go read.StartCleanupLoop(ctx, cfg.RateLimit.Window)
		go write.StartCleanupLoop(ctx, cfg.RateLimit.Window)
		opts.ReadLimiter, opts.WriteLimiter = read, write
	}
	upload := rl.NewTokenBucketLimiter(cfg.RateLimit.UploadRate, cfg.RateLimit.UploadBurst)
	go upload.StartVisitorCleanupLoop(ctx, time.Minute, 3*time.Minute)
	opts.UploadLimiter = upload

	if cfg.Storage.CloudinaryURL != "" {
		store, err := storage.NewCloudinaryStore(cfg.Storage.CloudinaryURL)
		if err != nil {
			return err
		}
		handlers.SetObjectStore(store)
	} else {
		zapLogger.Warn("CLOUDINARY_URL is not set, uploads are kept in memory")
		handlers.SetObjectStore(storage.NewMemoryStore(fmt.Sprintf("http://localhost:%d/uploads", cfg.Server.Port)))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router.NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zapLogger.Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case <-quit:
		zapLogger.Info("received shutdown signal")
	}

	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	zapLogger.Info("server stopped")
	return nil
}
