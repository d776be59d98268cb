package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leanlee/shopchat/internal/api"
	"github.com/leanlee/shopchat/internal/api/handlers"
	"github.com/leanlee/shopchat/internal/nlp"
	"github.com/leanlee/shopchat/internal/repository"
	"github.com/leanlee/shopchat/internal/service"
	"github.com/leanlee/shopchat/pkg/config"
	"github.com/leanlee/shopchat/pkg/logger"
	"github.com/leanlee/shopchat/pkg/postgres"

	"go.uber.org/zap"
)

// requiredTables are the backing tables the bot reads or writes; a missing
// one is a provisioning problem the operator has to fix before startup.
var requiredTables = []string{
	"patterns", "answers", "products", "orders", "order_items", "feedback", "user_profile",
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting shopchat service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.CheckSchema(ctx, db, requiredTables...); err != nil {
		appLogger.Fatal("Schema check failed", zap.Error(err))
	}

	// Initialize store and dialogue engine
	store := repository.NewStore(db, appLogger)

	normalizer, err := nlp.NewNormalizer()
	if err != nil {
		appLogger.Fatal("Failed to load lemmatizer dictionary", zap.Error(err))
	}
	scorer := nlp.NewScorer(normalizer, appLogger)
	chatService := service.NewChatService(store, scorer, &cfg.Chat, appLogger)

	// Initialize handlers and router
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	app := api.SetupRouter(chatHandler, &cfg.CORS)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
