package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"loadboard/internal/app"
	"loadboard/internal/auth"
	"loadboard/internal/config"
	"loadboard/internal/handler"
	internalRedis "loadboard/internal/redis"
	"loadboard/internal/repository/postgres"
	"loadboard/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Initialize database.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Apply pending migrations.
	if err := app.RunMigrations(db, cfg.Database); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Println("Migrations applied")

	// Initialize Redis.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	trackingStore := internalRedis.NewTrackingStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	loadRepo := postgres.NewLoadRepository(db)
	bidRepo := postgres.NewBidRepository(db)
	benefitRepo := postgres.NewBenefitRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	// Initialize services.
	tokenManager := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	notificationService := service.NewNotificationService()
	userService := service.NewUserService(userRepo, tokenManager)
	loadService := service.NewLoadService(loadRepo, userRepo, trackingStore, cacheStore, notificationService)
	bidService := service.NewBidService(db, bidRepo, loadRepo, userRepo, lockStore, cacheStore, notificationService)
	benefitService := service.NewBenefitService(benefitRepo, userRepo, cacheStore)
	transactionService := service.NewTransactionService(db, transactionRepo, userRepo)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(userService)
	loadHandler := handler.NewLoadHandler(loadService, bidService)
	bidHandler := handler.NewBidHandler(bidService)
	benefitHandler := handler.NewBenefitHandler(benefitService)
	transactionHandler := handler.NewTransactionHandler(transactionService, loadService)
	adminHandler := handler.NewAdminHandler(userService, transactionService, userRepo, loadRepo, bidRepo)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:        authHandler,
		LoadHandler:        loadHandler,
		BidHandler:         bidHandler,
		BenefitHandler:     benefitHandler,
		TransactionHandler: transactionHandler,
		AdminHandler:       adminHandler,
		TokenManager:       tokenManager,
		RedisClient:        redisClient,
		NewRelicApp:        nrApp,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
