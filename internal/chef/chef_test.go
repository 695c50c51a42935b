package chef

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-sous-chef/internal/llm"
	"ai-sous-chef/internal/shared"

	"github.com/google/generative-ai-go/genai"
)

// mockGenerator is a mock implementation of the llm generator
// interfaces for testing. It records the last prompt it received.
type mockGenerator struct {
	response    string
	shouldError bool
	lastPrompt  string
	lastSchema  *genai.Schema
}

func (m *mockGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (llm.ContentResponse, error) {
	m.lastPrompt = prompt
	m.lastSchema = schema
	if m.shouldError {
		return llm.ContentResponse{}, errors.New("LLM error")
	}
	return llm.ContentResponse{
		Content: m.response,
		Usage:   shared.TokenUsage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30, Model: "mock"},
	}, nil
}

func (m *mockGenerator) DescribeImage(ctx context.Context, img llm.ImageInput, prompt string, schema *genai.Schema) (llm.ContentResponse, error) {
	return m.GenerateJSON(ctx, prompt, schema)
}

const validRecipesJSON = `{
	"recipes": [
		{
			"name": "Roasted Tomato Pasta",
			"ingredients": ["200g pasta", "4 tomatoes"],
			"total_time_minutes": 35,
			"prep_time_minutes": 10,
			"cook_time_minutes": 25,
			"difficulty": "Easy",
			"instructions": ["Roast the tomatoes.", "Boil the pasta.", "Toss together."],
			"calories": 520,
			"serving_size": "2 servings",
			"nutrition": {"protein": "15g", "carbs": "80g", "fat": "12g", "fiber": "6g", "sodium": "300mg"},
			"persona_tips": ["Salt the water well."]
		}
	]
}`

func TestGenerateRecipes(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock := &mockGenerator{response: validRecipesJSON}
		c := New(mock, mock)

		recipes, meta, err := c.GenerateRecipes(ctx, RecipeRequest{
			Ingredients: []string{"pasta", "tomatoes"},
			PersonaID:   "flash",
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(recipes) != 1 {
			t.Fatalf("Expected 1 recipe, got %d", len(recipes))
		}
		if recipes[0].Name != "Roasted Tomato Pasta" {
			t.Errorf("Expected recipe name 'Roasted Tomato Pasta', got %q", recipes[0].Name)
		}
		if recipes[0].ID == "" {
			t.Error("Expected a generated recipe ID")
		}
		if meta.Usage.TotalTokens != 30 {
			t.Errorf("Expected usage to be propagated, got %+v", meta.Usage)
		}
	})

	t.Run("PersonaStamping", func(t *testing.T) {
		mock := &mockGenerator{response: validRecipesJSON}
		c := New(mock, mock)

		recipes, _, err := c.GenerateRecipes(ctx, RecipeRequest{
			Ingredients: []string{"pasta"},
			PersonaID:   "nonna-rosa",
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if recipes[0].PersonaID != "nonna-rosa" {
			t.Errorf("Expected recipe stamped with persona 'nonna-rosa', got %q", recipes[0].PersonaID)
		}
	})

	t.Run("UnknownPersonaStampsDefault", func(t *testing.T) {
		mock := &mockGenerator{response: validRecipesJSON}
		c := New(mock, mock)

		recipes, _, err := c.GenerateRecipes(ctx, RecipeRequest{
			Ingredients: []string{"pasta"},
			PersonaID:   "someone-else",
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if recipes[0].PersonaID != "alex" {
			t.Errorf("Expected default persona stamp, got %q", recipes[0].PersonaID)
		}
	})

	t.Run("MissingRecipesKey", func(t *testing.T) {
		raw := `{"dishes": []}`
		mock := &mockGenerator{response: raw}
		c := New(mock, mock)

		_, _, err := c.GenerateRecipes(ctx, RecipeRequest{Ingredients: []string{"pasta"}})
		var parseErr *ResponseParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Expected *ResponseParseError, got %v", err)
		}
		if parseErr.Raw != raw {
			t.Errorf("Expected error to carry the raw payload, got %q", parseErr.Raw)
		}
		if !strings.Contains(err.Error(), raw) {
			t.Errorf("Expected error text to contain the raw payload, got %q", err.Error())
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		mock := &mockGenerator{response: "this is not json"}
		c := New(mock, mock)

		_, _, err := c.GenerateRecipes(ctx, RecipeRequest{Ingredients: []string{"pasta"}})
		var parseErr *ResponseParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Expected *ResponseParseError, got %v", err)
		}
	})

	t.Run("IncompleteRecipe", func(t *testing.T) {
		mock := &mockGenerator{response: `{"recipes": [{"name": "Mystery Dish"}]}`}
		c := New(mock, mock)

		_, _, err := c.GenerateRecipes(ctx, RecipeRequest{Ingredients: []string{"pasta"}})
		var parseErr *ResponseParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Expected *ResponseParseError for recipe missing required fields, got %v", err)
		}
	})

	t.Run("GeneratorError", func(t *testing.T) {
		mock := &mockGenerator{shouldError: true}
		c := New(mock, mock)

		_, _, err := c.GenerateRecipes(ctx, RecipeRequest{Ingredients: []string{"pasta"}})
		if err == nil {
			t.Fatal("Expected an error from the generator, got nil")
		}
		var parseErr *ResponseParseError
		if errors.As(err, &parseErr) {
			t.Error("Transport failures must not be reported as parse errors")
		}
	})
}

func TestPromptComposition(t *testing.T) {
	ctx := context.Background()

	t.Run("ExclusionClauseOmittedWhenEmpty", func(t *testing.T) {
		mock := &mockGenerator{response: validRecipesJSON}
		c := New(mock, mock)

		_, _, _ = c.GenerateRecipes(ctx, RecipeRequest{Ingredients: []string{"pasta"}})
		if strings.Contains(mock.lastPrompt, "exclude") {
			t.Errorf("Expected no exclusion clause, prompt was:\n%s", mock.lastPrompt)
		}
	})

	t.Run("ExclusionClauseVerbatim", func(t *testing.T) {
		mock := &mockGenerator{response: validRecipesJSON}
		c := New(mock, mock)

		_, _, _ = c.GenerateRecipes(ctx, RecipeRequest{
			Ingredients: []string{"pasta"},
			Exclusions:  "peanuts, shellfish",
		})
		if got := strings.Count(mock.lastPrompt, "peanuts, shellfish"); got != 1 {
			t.Errorf("Expected exactly one exclusion clause with the verbatim text, found %d in:\n%s", got, mock.lastPrompt)
		}
	})

	t.Run("NoPreferenceSentinelOmitted", func(t *testing.T) {
		mock := &mockGenerator{response: validRecipesJSON}
		c := New(mock, mock)

		_, _, _ = c.GenerateRecipes(ctx, RecipeRequest{
			Ingredients: []string{"pasta"},
			Flavor:      "No Preference",
			Style:       "no preference",
		})
		if strings.Contains(mock.lastPrompt, "flavor profile") {
			t.Error("Expected no flavor clause for the sentinel value")
		}
		if strings.Contains(mock.lastPrompt, "cuisine style") {
			t.Error("Expected no style clause for the sentinel value")
		}
	})

	t.Run("DirectivePrecedesTaskInstructions", func(t *testing.T) {
		mock := &mockGenerator{response: validRecipesJSON}
		c := New(mock, mock)

		_, _, _ = c.GenerateRecipes(ctx, RecipeRequest{
			Ingredients: []string{"pasta"},
			PersonaID:   "chef-auguste",
		})
		directiveAt := strings.Index(mock.lastPrompt, "Chef Auguste")
		taskAt := strings.Index(mock.lastPrompt, "Create 3 complete recipes")
		if directiveAt < 0 || taskAt < 0 || directiveAt > taskAt {
			t.Errorf("Expected persona directive before task instructions in:\n%s", mock.lastPrompt)
		}
	})

	t.Run("SchemaBoundToRequest", func(t *testing.T) {
		mock := &mockGenerator{response: validRecipesJSON}
		c := New(mock, mock)

		_, _, _ = c.GenerateRecipes(ctx, RecipeRequest{Ingredients: []string{"pasta"}})
		if mock.lastSchema != recipesResponseSchema {
			t.Error("Expected the recipes response schema to be declared with the request")
		}
	})
}

func TestReinventRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock := &mockGenerator{response: validRecipesJSON}
		c := New(mock, mock)

		recipes, _, err := c.ReinventRecipe(ctx, ReinventRequest{
			DishName:  "lasagna",
			PersonaID: "flash",
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if recipes[0].PersonaID != "flash" {
			t.Errorf("Expected persona stamp 'flash', got %q", recipes[0].PersonaID)
		}
		if !strings.Contains(mock.lastPrompt, `"lasagna"`) {
			t.Errorf("Expected dish name in prompt:\n%s", mock.lastPrompt)
		}
	})

	t.Run("MissingRecipesKey", func(t *testing.T) {
		mock := &mockGenerator{response: `{}`}
		c := New(mock, mock)

		_, _, err := c.ReinventRecipe(ctx, ReinventRequest{DishName: "lasagna"})
		var parseErr *ResponseParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Expected *ResponseParseError, got %v", err)
		}
	})
}
