package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-sous-chef/internal/app"
	"ai-sous-chef/internal/chef"
	"ai-sous-chef/internal/config"
	"ai-sous-chef/internal/database"
	"ai-sous-chef/internal/ghost"
	"ai-sous-chef/internal/imagegen"
	"ai-sous-chef/internal/importer"
	"ai-sous-chef/internal/llm"
	"ai-sous-chef/internal/metrics"
	"ai-sous-chef/internal/recipe"
	"ai-sous-chef/internal/telegram"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramWebhookURL == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_WEBHOOK_URL must be set")
	}

	ctx := context.Background()

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer geminiClient.Close()

	db, err := database.NewDB(cfg.KitchenDBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	recipeRepo := recipe.NewRepository(db.SQL)
	vectorRepo := llm.NewVectorRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	chefSvc := chef.New(geminiClient, geminiClient)

	var imageFallback imagegen.Backend
	if cfg.ImageFallbackURL != "" {
		imageFallback = imagegen.NewFallbackBackend(cfg.ImageFallbackURL, cfg.ImageFallbackToken)
	}
	images := imagegen.NewChain(imagegen.NewPrimaryBackend(cfg.ImagePrimaryURL), imageFallback)

	var publisher *ghost.Publisher
	if cfg.GhostEnabled() {
		publisher = ghost.NewPublisher(ghost.NewClient(cfg))
	}

	application := app.NewApp(
		chefSvc,
		images,
		importer.New(chefSvc),
		publisher,
		geminiClient,
		recipeRepo,
		vectorRepo,
		metricsStore,
		cfg,
	)

	bot, err := telegram.NewBot(cfg, application)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
