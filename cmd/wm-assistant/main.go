package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wm-assistant/internal/api"
	"wm-assistant/internal/api/handlers"
	"wm-assistant/internal/llm"
	"wm-assistant/internal/repository"
	"wm-assistant/internal/service"
	"wm-assistant/pkg/config"
	"wm-assistant/pkg/logger"

	"go.uber.org/zap"
)

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
	appLogger.Info("Starting WM Assistant service")

	// Load the support knowledge base; a corrupt or missing database is
	// fatal at startup.
	store := repository.NewKnowledgeStore(appLogger)
	if err := store.Initialize(cfg.Knowledge.DatabasePath); err != nil {
		appLogger.Fatal("Failed to initialize support database", zap.Error(err))
	}

	// Select the answer-generation provider
	ctx := context.Background()
	var provider llm.Provider
	switch cfg.LLM.Provider {
	case "gigachat":
		gigaChat, err := llm.NewGigaChat(ctx, &cfg.GigaChat, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize GigaChat provider", zap.Error(err))
		}
		defer gigaChat.Close()
		provider = gigaChat
	default:
		provider = llm.NewOpenAI(&cfg.OpenAI, appLogger)
	}
	appLogger.Info("Answer generation provider ready", zap.String("provider", provider.Name()))

	// Initialize services
	searchService := service.NewSearchService(store, appLogger)
	sessionService := service.NewSessionService(appLogger)
	assistantService := service.NewAssistantService(searchService, provider, &cfg.RAG, &cfg.LLM, appLogger)

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(assistantService, sessionService, appLogger)
	healthHandler := handlers.NewHealthHandler(store, provider, sessionService, cfg.Server.Environment, appLogger)
	knowledgeHandler := handlers.NewKnowledgeHandler(store, searchService, cfg.RAG.SearchLimit, appLogger)

	// Setup router
	app := api.SetupRouter(chatHandler, healthHandler, knowledgeHandler, appLogger)

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
