package telegram

import (
	"reflect"
	"strings"
	"testing"

	"ai-sous-chef/internal/recipe"
)

func TestFormatRecipesMarkdown(t *testing.T) {
	recipes := []recipe.Recipe{
		{
			Name:             "Garlic Pasta",
			Difficulty:       recipe.DifficultyEasy,
			TotalTimeMinutes: 25,
			Calories:         500,
			Ingredients:      []string{"pasta", "garlic"},
			Instructions:     []string{"Boil", "Toss"},
			PersonaTips:      []string{"Save pasta water"},
		},
		{
			Name:             "Tomato Soup",
			Difficulty:       recipe.DifficultyMedium,
			TotalTimeMinutes: 40,
			Calories:         210,
			Ingredients:      []string{"tomatoes"},
			Instructions:     []string{"Simmer"},
		},
	}

	output := formatRecipesMarkdown(recipes)

	if !strings.Contains(output, "🍽 *Your Recipes*") {
		t.Error("Missing header")
	}
	if !strings.Contains(output, "*1. Garlic Pasta*") {
		t.Error("Missing first recipe title")
	}
	if !strings.Contains(output, "_Easy · 25 min · 500 kcal_") {
		t.Error("Missing recipe summary line")
	}
	if !strings.Contains(output, "• pasta") {
		t.Error("Missing ingredient")
	}
	if !strings.Contains(output, "1. Boil") {
		t.Error("Missing numbered instruction")
	}
	if !strings.Contains(output, "💡 Save pasta water") {
		t.Error("Missing persona tip")
	}
	if !strings.Contains(output, "*2. Tomato Soup*") {
		t.Error("Missing second recipe title")
	}
	// Second recipe has no tips, so only one tips section
	if strings.Count(output, "*Tips:*") != 1 {
		t.Error("Expected exactly one tips section")
	}
}

func TestSplitIngredients(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"Commas", "eggs, flour, milk", []string{"eggs", "flour", "milk"}},
		{"Newlines", "eggs\nflour", []string{"eggs", "flour"}},
		{"MixedWithBlanks", "eggs,, flour ;  ", []string{"eggs", "flour"}},
		{"SingleItem", "chicken breast", []string{"chicken breast"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := splitIngredients(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("splitIngredients(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
