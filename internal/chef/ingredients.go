package chef

import (
	"context"
	_ "embed"
	"encoding/json"
	"log"
	"time"

	"ai-sous-chef/internal/llm"
	"ai-sous-chef/internal/shared"
)

//go:embed ingredients_prompt.md
var ingredientsPrompt string

//go:embed extract_prompt.md
var extractPrompt string

// IdentifyIngredients names the food ingredients visible in a photo.
// Ingredient identification is best-effort: transport errors and
// malformed responses both degrade to an empty list, never an error.
func (c *Chef) IdentifyIngredients(ctx context.Context, img llm.ImageInput) ([]string, shared.CallMeta) {
	const op = "IdentifyIngredients"
	start := time.Now()

	resp, err := c.vision.DescribeImage(ctx, img, ingredientsPrompt, ingredientsResponseSchema)
	if err != nil {
		log.Printf("[%s] vision call failed, returning no ingredients: %v", op, err)
		return []string{}, shared.CallMeta{Operation: op, Latency: time.Since(start)}
	}

	meta := shared.CallMeta{
		Operation: op,
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	var parsed struct {
		Ingredients []string `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
		log.Printf("[%s] unparseable response, returning no ingredients: %v", op, err)
		return []string{}, meta
	}

	if parsed.Ingredients == nil {
		return []string{}, meta
	}
	return parsed.Ingredients, meta
}

// ExtractIngredients names the ingredients used by a recipe in free
// web-page text. Like photo identification it is best-effort: any
// failure degrades to an empty list.
func (c *Chef) ExtractIngredients(ctx context.Context, pageText string) ([]string, shared.CallMeta) {
	const op = "ExtractIngredients"
	start := time.Now()

	prompt, err := buildPrompt("extract", extractPrompt, struct{ Content string }{Content: pageText})
	if err != nil {
		log.Printf("[%s] failed to build prompt: %v", op, err)
		return []string{}, shared.CallMeta{Operation: op}
	}

	resp, err := c.textGen.GenerateJSON(ctx, prompt, ingredientsResponseSchema)
	if err != nil {
		log.Printf("[%s] generation failed, returning no ingredients: %v", op, err)
		return []string{}, shared.CallMeta{Operation: op, Latency: time.Since(start)}
	}

	meta := shared.CallMeta{
		Operation: op,
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	var parsed struct {
		Ingredients []string `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
		log.Printf("[%s] unparseable response, returning no ingredients: %v", op, err)
		return []string{}, meta
	}

	if parsed.Ingredients == nil {
		return []string{}, meta
	}
	return parsed.Ingredients, meta
}
