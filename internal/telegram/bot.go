// Package telegram runs the sous-chef as a webhook-driven Telegram bot.
package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"ai-sous-chef/internal/app"
	"ai-sous-chef/internal/chef"
	"ai-sous-chef/internal/config"
	"ai-sous-chef/internal/llm"
	"ai-sous-chef/internal/metrics"
	"ai-sous-chef/internal/recipe"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API and the sous-chef application.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api: bot,
		app: application,
		cfg: cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.From.ID != b.cfg.TelegramAllowUserID {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	// Photo messages are treated as a fridge snapshot to identify.
	if len(msg.Photo) > 0 {
		b.handlePhoto(msg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	switch {
	case text == "/metrics":
		b.handleMetricsCommand(msg.Chat.ID)
	case strings.HasPrefix(text, "/reinvent"):
		b.handleReinvent(msg, strings.TrimSpace(strings.TrimPrefix(text, "/reinvent")))
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleImport(msg)
	default:
		b.handleCook(msg)
	}
}

func (b *Bot) handleCook(msg *tgbotapi.Message) {
	sentMsg, ok := b.sendStatus(msg.Chat.ID, "🧑‍🍳 *Thinking...* \n(Composing recipes from your ingredients)")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ingredients := splitIngredients(msg.Text)
	recipes, err := b.app.Cook(ctx, chef.RecipeRequest{Ingredients: ingredients})
	if err != nil {
		b.editError(msg.Chat.ID, sentMsg.MessageID, "generating recipes", err)
		return
	}

	b.sendRecipes(ctx, msg.Chat.ID, sentMsg.MessageID, recipes)
}

func (b *Bot) handleReinvent(msg *tgbotapi.Message, dishName string) {
	if dishName == "" {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Usage: /reinvent <dish name>"))
		return
	}

	sentMsg, ok := b.sendStatus(msg.Chat.ID, fmt.Sprintf("🎨 *Reinventing %s...*", dishName))
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	recipes, err := b.app.Reinvent(ctx, chef.ReinventRequest{DishName: dishName})
	if err != nil {
		b.editError(msg.Chat.ID, sentMsg.MessageID, "reinventing dish", err)
		return
	}

	b.sendRecipes(ctx, msg.Chat.ID, sentMsg.MessageID, recipes)
}

func (b *Bot) handleImport(msg *tgbotapi.Message) {
	sentMsg, ok := b.sendStatus(msg.Chat.ID, "✂️ *Reading recipe page...*")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	names, err := b.app.Import(ctx, msg.Text)
	if err != nil {
		b.editError(msg.Chat.ID, sentMsg.MessageID, "importing page", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("🧺 *Ingredients found*\n\n")
	if len(names) == 0 {
		sb.WriteString("_Nothing recognizable on that page._")
	}
	for _, n := range names {
		sb.WriteString(fmt.Sprintf("• %s\n", n))
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, sb.String())
	edit.ParseMode = "Markdown"
	b.send(edit)
}

func (b *Bot) handlePhoto(msg *tgbotapi.Message) {
	sentMsg, ok := b.sendStatus(msg.Chat.ID, "📸 *Looking at your photo...*")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Largest size is last in the slice.
	fileID := msg.Photo[len(msg.Photo)-1].FileID
	data, err := b.downloadFile(fileID)
	if err != nil {
		b.editError(msg.Chat.ID, sentMsg.MessageID, "downloading photo", err)
		return
	}

	names := b.app.IdentifyPhoto(ctx, llm.ImageInput{Format: "jpeg", Data: data})

	var sb strings.Builder
	sb.WriteString("🧺 *Ingredients spotted*\n\n")
	if len(names) == 0 {
		sb.WriteString("_Couldn't make out any ingredients. Try a clearer shot._")
	}
	for _, n := range names {
		sb.WriteString(fmt.Sprintf("• %s\n", n))
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, sb.String())
	edit.ParseMode = "Markdown"
	b.send(edit)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usage, err := b.app.DailyUsage(ctx, 7)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "❌ Error fetching metrics."))
		return
	}

	health := metrics.GetSysHealth("data")

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d calls)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Heap) / %dMB (Sys)\n", health.HeapMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataSize))

	reply := tgbotapi.NewMessage(chatID, sb.String())
	reply.ParseMode = "Markdown"
	b.send(reply)
}

// sendRecipes replaces the status message with the recipe text, then
// sends each recipe's generated image as a photo.
func (b *Bot) sendRecipes(ctx context.Context, chatID int64, messageID int, recipes []recipe.Recipe) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, formatRecipesMarkdown(recipes))
	edit.ParseMode = "Markdown"
	b.send(edit)

	for _, rec := range recipes {
		img, _, err := b.app.Image(ctx, rec.ID)
		if err != nil {
			log.Printf("Warning: no image for recipe %q: %v", rec.Name, err)
			continue
		}
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
			Name:  rec.Name,
			Bytes: img.Data,
		})
		photo.Caption = rec.Name
		b.send(photo)
	}
}

func formatRecipesMarkdown(recipes []recipe.Recipe) string {
	var sb strings.Builder
	sb.WriteString("🍽 *Your Recipes*\n\n")

	for i, r := range recipes {
		sb.WriteString(fmt.Sprintf("*%d. %s*\n", i+1, r.Name))
		sb.WriteString(fmt.Sprintf("_%s · %d min · %d kcal_\n\n", r.Difficulty, r.TotalTimeMinutes, r.Calories))

		sb.WriteString("*Ingredients:*\n")
		for _, ing := range r.Ingredients {
			sb.WriteString(fmt.Sprintf("• %s\n", ing))
		}

		sb.WriteString("\n*Instructions:*\n")
		for j, step := range r.Instructions {
			sb.WriteString(fmt.Sprintf("%d. %s\n", j+1, step))
		}

		if len(r.PersonaTips) > 0 {
			sb.WriteString("\n*Tips:*\n")
			for _, tip := range r.PersonaTips {
				sb.WriteString(fmt.Sprintf("💡 %s\n", tip))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func splitIngredients(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}

	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download failed: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (b *Bot) sendStatus(chatID int64, text string) (tgbotapi.Message, bool) {
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(reply)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return tgbotapi.Message{}, false
	}
	return sentMsg, true
}

func (b *Bot) editError(chatID int64, messageID int, action string, err error) {
	log.Printf("Error %s: %v", action, err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	edit := tgbotapi.NewEditMessageText(chatID, messageID, fmt.Sprintf("❌ *Error %s:*\n```\n%v\n```", action, safeErr))
	edit.ParseMode = "Markdown"
	b.send(edit)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Failed to send telegram message: %v", err)
	}
}
