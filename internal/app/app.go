// Package app wires the sous-chef services together and exposes the
// high-level operations shared by the CLI and the Telegram bot.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"ai-sous-chef/internal/chef"
	"ai-sous-chef/internal/config"
	"ai-sous-chef/internal/ghost"
	"ai-sous-chef/internal/imagegen"
	"ai-sous-chef/internal/importer"
	"ai-sous-chef/internal/llm"
	"ai-sous-chef/internal/metrics"
	"ai-sous-chef/internal/recipe"
	"ai-sous-chef/internal/shared"
)

// App holds the application's dependencies.
type App struct {
	chef         *chef.Chef
	images       *imagegen.Chain
	importer     *importer.Importer
	publisher    *ghost.Publisher
	embedGen     llm.EmbeddingGenerator
	recipeRepo   *recipe.Repository
	vectorRepo   *llm.VectorRepository
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewApp creates and initializes a new App instance. The publisher may
// be nil when Ghost is not configured.
func NewApp(
	chefSvc *chef.Chef,
	images *imagegen.Chain,
	imp *importer.Importer,
	publisher *ghost.Publisher,
	embedGen llm.EmbeddingGenerator,
	recipeRepo *recipe.Repository,
	vectorRepo *llm.VectorRepository,
	metricsStore *metrics.Store,
	cfg *config.Config,
) *App {
	return &App{
		chef:         chefSvc,
		images:       images,
		importer:     imp,
		publisher:    publisher,
		embedGen:     embedGen,
		recipeRepo:   recipeRepo,
		vectorRepo:   vectorRepo,
		metricsStore: metricsStore,
		cfg:          cfg,
	}
}

// Cook generates recipes for the request, stores them and indexes
// their embeddings for later search.
func (a *App) Cook(ctx context.Context, req chef.RecipeRequest) ([]recipe.Recipe, error) {
	if req.PersonaID == "" {
		req.PersonaID = a.cfg.DefaultPersona
	}

	recipes, meta, err := a.chef.GenerateRecipes(ctx, req)
	a.recordMeta(ctx, meta)
	if err != nil {
		return nil, err
	}

	a.saveAndIndex(ctx, recipes)
	return recipes, nil
}

// Reinvent generates creative variations of a known dish.
func (a *App) Reinvent(ctx context.Context, req chef.ReinventRequest) ([]recipe.Recipe, error) {
	if req.PersonaID == "" {
		req.PersonaID = a.cfg.DefaultPersona
	}

	recipes, meta, err := a.chef.ReinventRecipe(ctx, req)
	a.recordMeta(ctx, meta)
	if err != nil {
		return nil, err
	}

	a.saveAndIndex(ctx, recipes)
	return recipes, nil
}

// Schedule builds a combined cooking timeline for saved recipes.
func (a *App) Schedule(ctx context.Context, recipeIDs []string, constraints chef.KitchenConstraints) (*recipe.CookingSchedule, error) {
	recipes, err := a.recipeRepo.GetByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	if len(recipes) == 0 {
		return nil, fmt.Errorf("no saved recipes match the given ids")
	}

	schedule, meta, err := a.chef.GenerateCookingSchedule(ctx, recipes, constraints)
	a.recordMeta(ctx, meta)
	return schedule, err
}

// Identify names the ingredients visible in the image file. It never
// fails: unusable photos yield an empty list.
func (a *App) Identify(ctx context.Context, imagePath string) ([]string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	names, meta := a.chef.IdentifyIngredients(ctx, llm.ImageInput{
		Format: formatFromPath(imagePath),
		Data:   data,
	})
	a.recordMeta(ctx, meta)
	return names, nil
}

// IdentifyPhoto names the ingredients visible in already-loaded image
// bytes. Like Identify it never fails.
func (a *App) IdentifyPhoto(ctx context.Context, img llm.ImageInput) []string {
	names, meta := a.chef.IdentifyIngredients(ctx, img)
	a.recordMeta(ctx, meta)
	return names
}

// DailyUsage reports per-day token consumption for the last N days.
func (a *App) DailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error) {
	return a.metricsStore.GetDailyUsage(ctx, days)
}

// Image produces a presentation image for a saved recipe. Generation
// never fails; the worst case is a locally rendered placeholder.
func (a *App) Image(ctx context.Context, recipeID string) (imagegen.EncodedImage, *recipe.Recipe, error) {
	rec, err := a.recipeRepo.Get(ctx, recipeID)
	if err != nil {
		return imagegen.EncodedImage{}, nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	if rec == nil {
		return imagegen.EncodedImage{}, nil, fmt.Errorf("recipe %q not found", recipeID)
	}

	return a.images.Generate(ctx, *rec), rec, nil
}

// Import extracts ingredient names from a cooking web page.
func (a *App) Import(ctx context.Context, url string) ([]string, error) {
	names, meta, err := a.importer.ImportIngredients(ctx, url)
	a.recordMeta(ctx, meta)
	return names, err
}

// SearchSaved finds stored recipes semantically similar to the query.
func (a *App) SearchSaved(ctx context.Context, query string, limit int) ([]recipe.Recipe, error) {
	embedding, err := a.embedGen.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	ids, err := a.vectorRepo.FindSimilar(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	return a.recipeRepo.GetByIDs(ctx, ids)
}

// Publish renders a saved recipe with a generated image and posts it
// to the configured Ghost blog.
func (a *App) Publish(ctx context.Context, recipeID string, publish bool) (*ghost.Post, error) {
	if a.publisher == nil {
		return nil, fmt.Errorf("ghost publishing is not configured")
	}

	img, rec, err := a.Image(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	return a.publisher.PublishRecipe(*rec, img, publish)
}

// saveAndIndex stores recipes and their embeddings. Persistence is
// best-effort: the recipes were already generated and belong to the
// caller regardless.
func (a *App) saveAndIndex(ctx context.Context, recipes []recipe.Recipe) {
	for _, rec := range recipes {
		if err := a.recipeRepo.Save(ctx, rec); err != nil {
			log.Printf("Warning: failed to save recipe %q: %v", rec.Name, err)
			continue
		}

		embedding, err := a.embedGen.GenerateEmbedding(ctx, rec.ToEmbeddingText())
		if err != nil {
			log.Printf("Warning: failed to embed recipe %q: %v", rec.Name, err)
			continue
		}
		if err := a.vectorRepo.Save(ctx, rec.ID, embedding); err != nil {
			log.Printf("Warning: failed to index recipe %q: %v", rec.Name, err)
		}
	}
}

func (a *App) recordMeta(ctx context.Context, meta shared.CallMeta) {
	if a.metricsStore == nil {
		return
	}
	if err := a.metricsStore.RecordMeta(ctx, meta); err != nil {
		log.Printf("Warning: failed to record metrics for %s: %v", meta.Operation, err)
	}
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".webp":
		return "webp"
	default:
		return "jpeg"
	}
}
