package chef

import (
	"context"
	"testing"

	"ai-sous-chef/internal/llm"
)

func TestIdentifyIngredients(t *testing.T) {
	ctx := context.Background()
	img := llm.ImageInput{Format: "jpeg", Data: []byte{0xff, 0xd8}}

	t.Run("Success", func(t *testing.T) {
		mock := &mockGenerator{response: `{"ingredients": ["eggs", "red bell pepper"]}`}
		c := New(mock, mock)

		names, meta := c.IdentifyIngredients(ctx, img)
		if len(names) != 2 {
			t.Fatalf("Expected 2 ingredients, got %d", len(names))
		}
		if names[0] != "eggs" {
			t.Errorf("Expected first ingredient 'eggs', got %q", names[0])
		}
		if meta.Usage.TotalTokens == 0 {
			t.Error("Expected usage metadata to be populated")
		}
	})

	t.Run("UnparseableReturnsEmpty", func(t *testing.T) {
		mock := &mockGenerator{response: "not json at all"}
		c := New(mock, mock)

		names, _ := c.IdentifyIngredients(ctx, img)
		if names == nil {
			t.Fatal("Expected an empty slice, got nil")
		}
		if len(names) != 0 {
			t.Errorf("Expected no ingredients, got %v", names)
		}
	})

	t.Run("GeneratorErrorReturnsEmpty", func(t *testing.T) {
		mock := &mockGenerator{shouldError: true}
		c := New(mock, mock)

		names, _ := c.IdentifyIngredients(ctx, img)
		if len(names) != 0 {
			t.Errorf("Expected no ingredients on backend failure, got %v", names)
		}
	})

	t.Run("MissingKeyReturnsEmpty", func(t *testing.T) {
		mock := &mockGenerator{response: `{"items": ["eggs"]}`}
		c := New(mock, mock)

		names, _ := c.IdentifyIngredients(ctx, img)
		if len(names) != 0 {
			t.Errorf("Expected no ingredients for missing key, got %v", names)
		}
	})
}
