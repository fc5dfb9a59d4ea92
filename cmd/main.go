package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sellerbot/config"
	"sellerbot/internal/generator"
	"sellerbot/internal/handler"
	"sellerbot/internal/repository"
	"sellerbot/traits/database"
	"sellerbot/traits/logger"

	"github.com/go-telegram/bot"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	zapLogger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		zapLogger.Error("error init config", zap.Error(err))
		return
	}

	// Validate configuration
	if err := cfg.ValidateConfig(); err != nil {
		zapLogger.Error("invalid configuration", zap.Error(err))
		return
	}

	zapLogger.Info("Starting seller assistant bot",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("model", cfg.Model),
	)

	// Initialize journal database
	db, err := database.InitDatabase(cfg, zapLogger)
	if err != nil {
		zapLogger.Error("failed to initialize database", zap.Error(err))
		return
	}
	defer db.Close()

	if err := database.CreateTables(db, zapLogger); err != nil {
		zapLogger.Error("failed to create tables", zap.Error(err))
		return
	}

	// Initialize repositories
	users, err := repository.NewUserStore(cfg.UsersFile, zapLogger)
	if err != nil {
		zapLogger.Error("failed to initialize user store", zap.Error(err))
		return
	}
	journal := repository.NewJournalRepository(db, zapLogger)

	// Initialize generation client
	var gen generator.Generator
	if cfg.OpenAIKey == "" {
		zapLogger.Warn("OPENAI_API_KEY is not set, using mock generator")
		gen = generator.MockGenerator{}
	} else {
		gen, err = generator.NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.Model, cfg.GenerateTimeout, zapLogger)
		if err != nil {
			zapLogger.Error("failed to initialize generator", zap.Error(err))
			return
		}
	}

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create handler
	handl := handler.NewHandler(cfg, zapLogger, users, journal, gen)

	// Create bot instance
	opts := []bot.Option{
		bot.WithDefaultHandler(handl.DefaultHandler),
	}
	if cfg.WebhookSecret != "" {
		opts = append(opts, bot.WithWebhookSecretToken(cfg.WebhookSecret))
	}

	b, err := bot.New(cfg.Token, opts...)
	if err != nil {
		zapLogger.Error("error creating bot", zap.Error(err))
		return
	}

	// Set up graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-stop
		zapLogger.Info("Shutdown signal received")
		cancel()
	}()

	// Start web server (webhook endpoint, health check, admin API)
	go handl.StartWebServer(ctx, b)
	zapLogger.Info("Web server started", zap.String("address", cfg.GetServerAddress()))

	if cfg.UseWebhook() {
		if _, err := b.SetWebhook(ctx, &bot.SetWebhookParams{
			URL:         cfg.WebhookURL,
			SecretToken: cfg.WebhookSecret,
		}); err != nil {
			zapLogger.Error("failed to set webhook", zap.Error(err))
			return
		}
		zapLogger.Info("Bot started in webhook mode", zap.String("url", cfg.WebhookURL))
		b.StartWebhook(ctx)
	} else {
		zapLogger.Info("Bot started in long polling mode")
		b.Start(ctx)
	}

	zapLogger.Info("Application stopped successfully")
}
