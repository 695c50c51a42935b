package imagegen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-sous-chef/internal/recipe"
)

// mockBackend is a mock image backend that records the prompt it was
// called with.
type mockBackend struct {
	image       EncodedImage
	shouldError bool
	calls       int
	lastPrompt  string
}

func (m *mockBackend) Generate(ctx context.Context, prompt string) (EncodedImage, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.shouldError {
		return EncodedImage{}, errors.New("backend down")
	}
	return m.image, nil
}

func testRecipe() recipe.Recipe {
	return recipe.Recipe{
		Name:         "Lemon Herb Chicken",
		Ingredients:  []string{"2 chicken breasts", "1 lemon", "fresh thyme"},
		Instructions: []string{"Season the chicken.", "Roast at 200C for 25 minutes."},
	}
}

func TestChainGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("PrimarySucceeds", func(t *testing.T) {
		primary := &mockBackend{image: EncodedImage{MIMEType: "image/png", Data: []byte("primary")}}
		fallback := &mockBackend{image: EncodedImage{MIMEType: "image/png", Data: []byte("fallback")}}
		chain := NewChain(primary, fallback)

		img := chain.Generate(ctx, testRecipe())
		if string(img.Data) != "primary" {
			t.Errorf("Expected primary tier image, got %q", img.Data)
		}
		if fallback.calls != 0 {
			t.Error("Fallback tier must not run when the primary succeeds")
		}
	})

	t.Run("PrimaryFailsFallbackSucceeds", func(t *testing.T) {
		primary := &mockBackend{shouldError: true}
		fallback := &mockBackend{image: EncodedImage{MIMEType: "image/png", Data: []byte("fallback")}}
		chain := NewChain(primary, fallback)

		img := chain.Generate(ctx, testRecipe())
		if string(img.Data) != "fallback" {
			t.Errorf("Expected fallback tier image, got %q", img.Data)
		}
		if primary.calls != 1 {
			t.Errorf("Expected exactly one primary attempt, got %d", primary.calls)
		}
	})

	t.Run("BothFailPlaceholder", func(t *testing.T) {
		primary := &mockBackend{shouldError: true}
		fallback := &mockBackend{shouldError: true}
		chain := NewChain(primary, fallback)

		img := chain.Generate(ctx, testRecipe())
		if img.MIMEType != "image/svg+xml" {
			t.Fatalf("Expected a placeholder image, got MIME %q", img.MIMEType)
		}
		if len(img.Data) == 0 {
			t.Fatal("Expected a non-empty placeholder")
		}
		if !strings.Contains(string(img.Data), "Lemon Herb Chicken") {
			t.Error("Expected the placeholder to carry the recipe name")
		}
	})

	t.Run("NilBackendsStillProduceImage", func(t *testing.T) {
		chain := NewChain(nil, nil)
		img := chain.Generate(ctx, testRecipe())
		if len(img.Data) == 0 {
			t.Fatal("Expected a placeholder even with no backends configured")
		}
	})

	t.Run("FallbackGetsShorterPrompt", func(t *testing.T) {
		primary := &mockBackend{shouldError: true}
		fallback := &mockBackend{image: EncodedImage{MIMEType: "image/png", Data: []byte("x")}}
		chain := NewChain(primary, fallback)

		chain.Generate(ctx, testRecipe())
		if len(fallback.lastPrompt) >= len(primary.lastPrompt) {
			t.Errorf("Expected a shorter fallback prompt; primary=%d fallback=%d",
				len(primary.lastPrompt), len(fallback.lastPrompt))
		}
	})
}

func TestBuildPromptKeywords(t *testing.T) {
	t.Run("BakeSelectsBaked", func(t *testing.T) {
		rec := testRecipe()
		rec.Instructions = []string{"Bake at 180C until golden."}
		if prompt := BuildPrompt(rec); !strings.Contains(prompt, "baked") {
			t.Errorf("Expected 'baked' phrase, got: %s", prompt)
		}
	})

	t.Run("NoKeywordSelectsDefault", func(t *testing.T) {
		rec := testRecipe()
		rec.Instructions = []string{"Assemble everything on a plate."}
		if prompt := BuildPrompt(rec); !strings.Contains(prompt, "expertly prepared") {
			t.Errorf("Expected default phrase, got: %s", prompt)
		}
	})

	t.Run("PriorityOrderFirstMatchWins", func(t *testing.T) {
		rec := testRecipe()
		rec.Instructions = []string{"Grill the vegetables, then bake the whole dish."}
		prompt := BuildPrompt(rec)
		if !strings.Contains(prompt, "baked") {
			t.Errorf("Expected 'baked' to win over 'grilled', got: %s", prompt)
		}
		if strings.Contains(prompt, "grilled") {
			t.Errorf("Expected only the first matching phrase, got: %s", prompt)
		}
	})

	t.Run("PresentationFromName", func(t *testing.T) {
		rec := testRecipe()
		rec.Name = "Hearty Lentil Soup"
		if prompt := BuildPrompt(rec); !strings.Contains(prompt, "steaming in a deep bowl") {
			t.Errorf("Expected soup presentation, got: %s", prompt)
		}
	})

	t.Run("PresentationDefault", func(t *testing.T) {
		rec := testRecipe()
		rec.Name = "Savory Galette"
		rec.Ingredients = []string{"flour", "butter"}
		if prompt := BuildPrompt(rec); !strings.Contains(prompt, "artisanal presentation") {
			t.Errorf("Expected default presentation, got: %s", prompt)
		}
	})
}

func TestPlaceholder(t *testing.T) {
	t.Run("CarriesWrappedName", func(t *testing.T) {
		img := Placeholder("A Very Long Recipe Name That Needs Wrapping Across Lines")
		svg := string(img.Data)
		if !strings.Contains(svg, "<tspan") {
			t.Fatal("Expected wrapped text spans")
		}
		if strings.Count(svg, "<tspan") < 2 {
			t.Error("Expected the long name to wrap onto multiple lines")
		}
	})

	t.Run("EscapesMarkup", func(t *testing.T) {
		img := Placeholder(`Mac & Cheese <deluxe>`)
		svg := string(img.Data)
		if strings.Contains(svg, "<deluxe>") {
			t.Error("Expected markup in the recipe name to be escaped")
		}
		if !strings.Contains(svg, "&amp;") {
			t.Error("Expected ampersand to be escaped")
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		a := Placeholder("Tomato Tart")
		b := Placeholder("Tomato Tart")
		if string(a.Data) != string(b.Data) {
			t.Error("Expected identical placeholders for the same name")
		}
	})

	t.Run("EmptyName", func(t *testing.T) {
		img := Placeholder("")
		if len(img.Data) == 0 {
			t.Fatal("Expected a placeholder even for an empty name")
		}
	})
}
