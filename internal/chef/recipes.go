package chef

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"
	"time"

	"ai-sous-chef/internal/persona"
	"ai-sous-chef/internal/recipe"
	"ai-sous-chef/internal/shared"

	"github.com/google/uuid"
)

//go:embed recipes_prompt.md
var recipesPrompt string

//go:embed reinvent_prompt.md
var reinventPrompt string

const defaultRecipeCount = 3

type recipesPromptData struct {
	Directive   string
	TipCount    int
	Count       int
	Ingredients string
	Preference  string
	Exclusions  string
	Flavor      string
	Style       string
}

type reinventPromptData struct {
	Directive  string
	TipCount   int
	Count      int
	DishName   string
	Preference string
	Exclusions string
	Flavor     string
	Style      string
}

// GenerateRecipes asks the model for recipes built from the given
// ingredients. A malformed response surfaces as *ResponseParseError.
func (c *Chef) GenerateRecipes(ctx context.Context, req RecipeRequest) ([]recipe.Recipe, shared.CallMeta, error) {
	start := time.Now()
	p := persona.Lookup(req.PersonaID)

	count := req.Count
	if count <= 0 {
		count = defaultRecipeCount
	}

	prompt, err := buildPrompt("recipes", recipesPrompt, recipesPromptData{
		Directive:   p.Text,
		TipCount:    p.TipCount,
		Count:       count,
		Ingredients: strings.Join(req.Ingredients, ", "),
		Preference:  normalizeFilter(req.Preference),
		Exclusions:  strings.TrimSpace(req.Exclusions),
		Flavor:      normalizeFilter(req.Flavor),
		Style:       normalizeFilter(req.Style),
	})
	if err != nil {
		return nil, shared.CallMeta{Operation: "GenerateRecipes"}, err
	}

	return c.completeRecipes(ctx, "GenerateRecipes", prompt, p.ID, start)
}

// ReinventRecipe asks the model for creative variations of a known
// dish. The response contract is identical to GenerateRecipes.
func (c *Chef) ReinventRecipe(ctx context.Context, req ReinventRequest) ([]recipe.Recipe, shared.CallMeta, error) {
	start := time.Now()
	p := persona.Lookup(req.PersonaID)

	count := req.Count
	if count <= 0 {
		count = defaultRecipeCount
	}

	prompt, err := buildPrompt("reinvent", reinventPrompt, reinventPromptData{
		Directive:  p.Text,
		TipCount:   p.TipCount,
		Count:      count,
		DishName:   req.DishName,
		Preference: normalizeFilter(req.Preference),
		Exclusions: strings.TrimSpace(req.Exclusions),
		Flavor:     normalizeFilter(req.Flavor),
		Style:      normalizeFilter(req.Style),
	})
	if err != nil {
		return nil, shared.CallMeta{Operation: "ReinventRecipe"}, err
	}

	return c.completeRecipes(ctx, "ReinventRecipe", prompt, p.ID, start)
}

func (c *Chef) completeRecipes(ctx context.Context, op, prompt, personaID string, start time.Time) ([]recipe.Recipe, shared.CallMeta, error) {
	resp, err := c.textGen.GenerateJSON(ctx, prompt, recipesResponseSchema)
	if err != nil {
		return nil, shared.CallMeta{Operation: op}, err
	}

	meta := shared.CallMeta{
		Operation: op,
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	recipes, err := parseRecipes(op, resp.Content, personaID)
	if err != nil {
		return nil, meta, err
	}
	return recipes, meta, nil
}

// parseRecipes validates the raw payload against the recipe contract:
// the top-level "recipes" key must be present and every recipe must
// carry a name, ingredients and instructions. Each parsed recipe is
// stamped with the requesting persona ID.
func parseRecipes(op, raw, personaID string) ([]recipe.Recipe, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, &ResponseParseError{Op: op, Raw: raw, Err: err}
	}

	recipesRaw, ok := envelope["recipes"]
	if !ok {
		return nil, &ResponseParseError{Op: op, Raw: raw, Err: errMissingKey("recipes")}
	}

	var recipes []recipe.Recipe
	if err := json.Unmarshal(recipesRaw, &recipes); err != nil {
		return nil, &ResponseParseError{Op: op, Raw: raw, Err: err}
	}

	for i := range recipes {
		if recipes[i].Name == "" || len(recipes[i].Ingredients) == 0 || len(recipes[i].Instructions) == 0 {
			return nil, &ResponseParseError{Op: op, Raw: raw, Err: errIncompleteRecipe(i)}
		}
		if recipes[i].ID == "" {
			recipes[i].ID = uuid.New().String()
		}
		recipes[i].PersonaID = personaID
	}

	return recipes, nil
}

func buildPrompt(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
