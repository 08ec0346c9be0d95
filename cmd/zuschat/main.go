package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/agent"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/classifier"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/extractor"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/server"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/storage"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/telegram"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the catalog
	var catalog storage.CatalogStore
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory catalog")
		catalog = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL catalog")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		catalog, err = storage.NewPostgresStorage(dbConfig)
		if err != nil {
			logger.Fatal("Failed to initialize catalog", zap.Error(err))
		}
	}
	defer catalog.Close()

	sessions := storage.NewMemorySessionStore(
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		cfg.Session.MaxMessages,
	)

	// The rule classifier always runs; OpenAI only assists on unknowns
	// when a key is configured.
	rules := classifier.NewRuleClassifier()
	var clf classifier.Classifier = rules
	if cfg.OpenAI.APIKey != "" {
		logger.Info("OpenAI assist enabled", zap.String("model", cfg.OpenAI.Model))
		clf = classifier.NewAssistClassifier(
			rules,
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Temperature,
			logger,
		)
	}

	ext := extractor.New(cfg.Chat.SSTRate)
	logger.Info("SST rate configured", zap.Float64("rate", ext.SSTRate()))

	ag := agent.New(
		agent.Config{MaxResults: cfg.Chat.MaxResults},
		catalog,
		catalog,
		sessions,
		clf,
		ext,
		logger,
	)

	srv := server.New(
		server.Config{
			Port:         cfg.Server.Port,
			HistoryLimit: cfg.Chat.HistoryLimit,
		},
		ag,
		catalog,
		ext,
		logger,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	if cfg.Telegram.Enabled && cfg.Telegram.Token != "" {
		bot, err := telegram.New(cfg.Telegram.Token, ag, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram bot", zap.Error(err))
		}
		go func() {
			if err := bot.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("Telegram bot stopped", zap.Error(err))
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err := <-errCh:
		logger.Error("Server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}
