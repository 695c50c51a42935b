package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultTextModel      = "gemini-2.0-flash"
	defaultVisionModel    = "gemini-2.0-flash"
	defaultEmbeddingModel = "text-embedding-004"
	defaultPrimaryURL     = "https://image.pollinations.ai/prompt"
	defaultDBPath         = "data/kitchen.db"
)

// Config holds the configuration for the application.
type Config struct {
	GeminiAPIKey   string
	TextModel      string
	VisionModel    string
	EmbeddingModel string

	// Image generation backends. The fallback tier is skipped entirely
	// when ImageFallbackURL is empty.
	ImagePrimaryURL    string
	ImageFallbackURL   string
	ImageFallbackToken string

	KitchenDBPath  string
	DefaultPersona string

	// Ghost publishing (optional)
	GhostURL      string
	GhostAdminKey string

	// Telegram Config (optional for CLI, required for Bot)
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	cfg := &Config{
		GeminiAPIKey:   geminiAPIKey,
		TextModel:      envOrDefault("GEMINI_TEXT_MODEL", defaultTextModel),
		VisionModel:    envOrDefault("GEMINI_VISION_MODEL", defaultVisionModel),
		EmbeddingModel: envOrDefault("GEMINI_EMBEDDING_MODEL", defaultEmbeddingModel),

		ImagePrimaryURL:    envOrDefault("IMAGE_PRIMARY_URL", defaultPrimaryURL),
		ImageFallbackURL:   os.Getenv("IMAGE_FALLBACK_URL"),
		ImageFallbackToken: os.Getenv("IMAGE_FALLBACK_TOKEN"),

		KitchenDBPath:  envOrDefault("KITCHEN_DB_PATH", defaultDBPath),
		DefaultPersona: os.Getenv("DEFAULT_PERSONA"),

		GhostURL:      strings.TrimRight(os.Getenv("GHOST_API_URL"), "/"),
		GhostAdminKey: os.Getenv("GHOST_ADMIN_API_KEY"),

		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
	}

	if idStr := os.Getenv("TELEGRAM_ALLOW_USER_ID"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_ID %q: %w", idStr, err)
		}
		cfg.TelegramAllowUserID = id
	}

	return cfg, nil
}

// GhostEnabled reports whether publishing to Ghost is configured.
func (c *Config) GhostEnabled() bool {
	return c.GhostURL != "" && c.GhostAdminKey != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
