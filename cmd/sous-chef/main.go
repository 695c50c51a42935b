package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

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
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
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

	var fallback imagegen.Backend
	if cfg.ImageFallbackURL != "" {
		fallback = imagegen.NewFallbackBackend(cfg.ImageFallbackURL, cfg.ImageFallbackToken)
	}
	images := imagegen.NewChain(imagegen.NewPrimaryBackend(cfg.ImagePrimaryURL), fallback)

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

	switch os.Args[1] {
	case "cook":
		runCook(ctx, application, os.Args[2:])
	case "reinvent":
		runReinvent(ctx, application, os.Args[2:])
	case "schedule":
		runSchedule(ctx, application, os.Args[2:])
	case "identify":
		runIdentify(ctx, application, os.Args[2:])
	case "image":
		runImage(ctx, application, os.Args[2:])
	case "import":
		runImport(ctx, application, os.Args[2:])
	case "search":
		runSearch(ctx, application, os.Args[2:])
	case "publish":
		runPublish(ctx, application, os.Args[2:])
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(ctx, *days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runCook(ctx context.Context, application *app.App, args []string) {
	cmd := flag.NewFlagSet("cook", flag.ExitOnError)
	ingredients := cmd.String("ingredients", "", "Comma-separated ingredients (required)")
	preference := cmd.String("preference", "", "Dietary preference, e.g. vegetarian")
	exclusions := cmd.String("exclusions", "", "Ingredients to avoid")
	flavor := cmd.String("flavor", "", "Flavor direction, e.g. spicy")
	style := cmd.String("style", "", "Cuisine style, e.g. Italian")
	personaID := cmd.String("persona", "", "Chef persona id")
	count := cmd.Int("count", 0, "Number of recipes to generate")
	cmd.Parse(args)

	if *ingredients == "" {
		log.Fatal("cook requires -ingredients")
	}

	recipes, err := application.Cook(ctx, chef.RecipeRequest{
		Ingredients: splitList(*ingredients),
		Preference:  *preference,
		Exclusions:  *exclusions,
		Flavor:      *flavor,
		Style:       *style,
		PersonaID:   *personaID,
		Count:       *count,
	})
	if err != nil {
		log.Fatalf("Recipe generation failed: %v", err)
	}
	printJSON(recipes)
}

func runReinvent(ctx context.Context, application *app.App, args []string) {
	cmd := flag.NewFlagSet("reinvent", flag.ExitOnError)
	dish := cmd.String("dish", "", "Dish to reinvent (required)")
	preference := cmd.String("preference", "", "Dietary preference")
	exclusions := cmd.String("exclusions", "", "Ingredients to avoid")
	flavor := cmd.String("flavor", "", "Flavor direction")
	style := cmd.String("style", "", "Cuisine style")
	personaID := cmd.String("persona", "", "Chef persona id")
	count := cmd.Int("count", 0, "Number of variations")
	cmd.Parse(args)

	if *dish == "" {
		log.Fatal("reinvent requires -dish")
	}

	recipes, err := application.Reinvent(ctx, chef.ReinventRequest{
		DishName:   *dish,
		Preference: *preference,
		Exclusions: *exclusions,
		Flavor:     *flavor,
		Style:      *style,
		PersonaID:  *personaID,
		Count:      *count,
	})
	if err != nil {
		log.Fatalf("Reinvention failed: %v", err)
	}
	printJSON(recipes)
}

func runSchedule(ctx context.Context, application *app.App, args []string) {
	cmd := flag.NewFlagSet("schedule", flag.ExitOnError)
	ids := cmd.String("recipes", "", "Comma-separated saved recipe ids (required)")
	servingTime := cmd.String("serve-at", "", "Target serving time, e.g. 19:30")
	cooks := cmd.Int("cooks", 1, "Number of cooks")
	burners := cmd.Int("burners", 4, "Number of stove burners")
	ovens := cmd.Int("ovens", 1, "Number of ovens")
	appliances := cmd.String("appliances", "", "Comma-separated extra appliances")
	cmd.Parse(args)

	if *ids == "" {
		log.Fatal("schedule requires -recipes")
	}

	schedule, err := application.Schedule(ctx, splitList(*ids), chef.KitchenConstraints{
		TargetServingTime: *servingTime,
		CookCount:         *cooks,
		BurnerCount:       *burners,
		OvenCount:         *ovens,
		Appliances:        splitList(*appliances),
	})
	if err != nil {
		log.Fatalf("Schedule generation failed: %v", err)
	}
	printJSON(schedule)
}

func runIdentify(ctx context.Context, application *app.App, args []string) {
	cmd := flag.NewFlagSet("identify", flag.ExitOnError)
	path := cmd.String("photo", "", "Path to an image file (required)")
	cmd.Parse(args)

	if *path == "" {
		log.Fatal("identify requires -photo")
	}

	names, err := application.Identify(ctx, *path)
	if err != nil {
		log.Fatalf("Identification failed: %v", err)
	}
	for _, n := range names {
		fmt.Println(n)
	}
}

func runImage(ctx context.Context, application *app.App, args []string) {
	cmd := flag.NewFlagSet("image", flag.ExitOnError)
	id := cmd.String("recipe", "", "Saved recipe id (required)")
	out := cmd.String("out", "", "Output file (defaults to stdout as a data URI)")
	cmd.Parse(args)

	if *id == "" {
		log.Fatal("image requires -recipe")
	}

	img, rec, err := application.Image(ctx, *id)
	if err != nil {
		log.Fatalf("Image generation failed: %v", err)
	}

	if *out == "" {
		fmt.Println(img.DataURI())
		return
	}
	if err := os.WriteFile(*out, img.Data, 0o644); err != nil {
		log.Fatalf("Failed to write image: %v", err)
	}
	fmt.Printf("Wrote %s image for %q to %s\n", img.MIMEType, rec.Name, *out)
}

func runImport(ctx context.Context, application *app.App, args []string) {
	cmd := flag.NewFlagSet("import", flag.ExitOnError)
	url := cmd.String("url", "", "Recipe page URL (required)")
	cmd.Parse(args)

	if *url == "" {
		log.Fatal("import requires -url")
	}

	names, err := application.Import(ctx, *url)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	for _, n := range names {
		fmt.Println(n)
	}
}

func runSearch(ctx context.Context, application *app.App, args []string) {
	cmd := flag.NewFlagSet("search", flag.ExitOnError)
	query := cmd.String("query", "", "Free-text search query (required)")
	limit := cmd.Int("limit", 5, "Maximum results")
	cmd.Parse(args)

	if *query == "" {
		log.Fatal("search requires -query")
	}

	recipes, err := application.SearchSaved(ctx, *query, *limit)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	printJSON(recipes)
}

func runPublish(ctx context.Context, application *app.App, args []string) {
	cmd := flag.NewFlagSet("publish", flag.ExitOnError)
	id := cmd.String("recipe", "", "Saved recipe id (required)")
	live := cmd.Bool("live", false, "Publish immediately instead of saving a draft")
	cmd.Parse(args)

	if *id == "" {
		log.Fatal("publish requires -recipe")
	}

	post, err := application.Publish(ctx, *id, *live)
	if err != nil {
		log.Fatalf("Publishing failed: %v", err)
	}
	fmt.Printf("Created post %q (%s)\n", post.Title, post.ID)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}

func printUsage() {
	fmt.Println("Usage: sous-chef <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  cook             Generate recipes from ingredients")
	fmt.Println("  reinvent         Generate creative variations of a dish")
	fmt.Println("  schedule         Build a combined cooking timeline for saved recipes")
	fmt.Println("  identify         Name the ingredients visible in a photo")
	fmt.Println("  image            Generate a presentation image for a saved recipe")
	fmt.Println("  import           Extract ingredients from a recipe web page")
	fmt.Println("  search           Find saved recipes by semantic similarity")
	fmt.Println("  publish          Post a saved recipe to the configured Ghost blog")
	fmt.Println("  metrics-cleanup  Remove old metric records")
}
