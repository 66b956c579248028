package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/config"
	"github.com/applianceiq/consumables-engine/pkg/database"
	"github.com/applianceiq/consumables-engine/pkg/handlers"
	"github.com/applianceiq/consumables-engine/pkg/logging"
	"github.com/applianceiq/consumables-engine/pkg/middleware"
	"github.com/applianceiq/consumables-engine/pkg/repositories"
	"github.com/applianceiq/consumables-engine/pkg/retry"
	"github.com/applianceiq/consumables-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure at exit is harmless

	// Log startup configuration
	log.Printf("Configuration loaded:")
	log.Printf("  Environment: %s", cfg.Env)
	log.Printf("  Base URL: %s", cfg.BaseURL)
	log.Printf("  Database: %s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	log.Printf("  Redis: %s:%d", cfg.Redis.Host, cfg.Redis.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The database may still be starting when this process comes up, so
	// connect with backoff before giving up.
	db, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*database.DB, error) {
		return database.NewConnection(ctx, &cfg.Database)
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database.ConnectionString(), cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Repositories
	catalogRepo := repositories.NewCatalogRepository(db)
	contractorRepo := repositories.NewContractorRepository(db)

	// Services. The suggestion cache stays nil when Redis is not configured.
	var suggestionCache services.SuggestionCache
	if redisClient != nil {
		suggestionCache = services.NewRedisSuggestionCache(redisClient, cfg.Redis.SuggestionTTL(), logger)
	}
	catalogService := services.NewCatalogService(catalogRepo, logger)
	suggestService := services.NewSuggestService(catalogRepo, suggestionCache, &cfg.Search, logger)
	contractorService := services.NewContractorService(contractorRepo, logger)
	contactService := services.NewContactService(logger)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewConsumablesHandler(catalogService, logger).RegisterRoutes(mux)
	handlers.NewSuggestionsHandler(suggestService, cfg.Search.DefaultLimit, logger).RegisterRoutes(mux)
	handlers.NewCategoriesHandler(catalogService, logger).RegisterRoutes(mux)
	handlers.NewContractorHandler(contractorService, logger).RegisterRoutes(mux)
	handlers.NewContactHandler(contactService, logger).RegisterRoutes(mux)
	handlers.NewConfigJSHandler(cfg.BaseURL).RegisterRoutes(mux)
	handlers.NewStaticHandler(&cfg.HTTP, logger).RegisterRoutes(mux)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.HTTP.CORSAllowedOrigins)(handler)
	handler = middleware.RequestLogger(logger)(handler)
	handler = middleware.RequestID()(handler)

	server := &http.Server{
		Addr:    cfg.BindAddr + ":" + cfg.Port,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting consumables-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down", zap.Duration("timeout", cfg.ShutdownTimeout()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}
}
