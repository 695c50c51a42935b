package imagegen

import (
	"fmt"
	"strings"

	"ai-sous-chef/internal/recipe"
)

// phraseRule maps a set of trigger keywords to a descriptive phrase.
// Rules are evaluated in order; the first match wins.
type phraseRule struct {
	keywords []string
	phrase   string
}

var cookingMethodRules = []phraseRule{
	{[]string{"bake"}, "baked"},
	{[]string{"fry", "pan"}, "pan-fried"},
	{[]string{"grill"}, "grilled"},
	{[]string{"boil", "simmer"}, "simmered"},
	{[]string{"steam"}, "steamed"},
	{[]string{"roast"}, "roasted"},
	{[]string{"sauté", "saute"}, "sautéed"},
	{[]string{"mix", "toss"}, "combined"},
}

const defaultCookingMethod = "expertly prepared"

var presentationRules = []phraseRule{
	{[]string{"salad"}, "fresh greens arranged in a wide ceramic bowl"},
	{[]string{"soup", "broth"}, "served steaming in a deep bowl with a garnish"},
	{[]string{"pasta", "noodle"}, "twirled high on a warm plate with a sauce sheen"},
	{[]string{"steak", "chicken", "fish"}, "sliced and plated as a seared centerpiece"},
	{[]string{"curry", "stew"}, "ladled into a rustic bowl with rich glossy sauce"},
	{[]string{"sandwich", "burger"}, "stacked tall on a wooden serving board"},
	{[]string{"pizza"}, "stone-baked with blistered edges on a peel"},
	{[]string{"dessert", "cake", "sugar"}, "delicately plated with a dusting of garnish"},
	{[]string{"rice"}, "mounded neatly with scattered fresh herbs"},
	{[]string{"smoothie", "drink"}, "poured into a tall glass with fresh garnish"},
}

const defaultPresentation = "artisanal presentation"

// selectPhrase scans the rules in priority order and returns the
// phrase of the first rule with any keyword present in text.
func selectPhrase(rules []phraseRule, text, fallback string) string {
	lower := strings.ToLower(text)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.phrase
			}
		}
	}
	return fallback
}

// BuildPrompt derives a food-photography prompt from a recipe: the
// cooking-method phrase comes from the instructions, the presentation
// phrase from the recipe name and ingredient text.
func BuildPrompt(rec recipe.Recipe) string {
	method := selectPhrase(cookingMethodRules, strings.Join(rec.Instructions, " "), defaultCookingMethod)
	presentation := selectPhrase(presentationRules,
		rec.Name+" "+strings.Join(rec.Ingredients, " "), defaultPresentation)

	featured := rec.Ingredients
	if len(featured) > 3 {
		featured = featured[:3]
	}

	return fmt.Sprintf(
		"A professional food photography shot of %s, %s, featuring %s, %s, "+
			"natural lighting, shallow depth of field, appetizing colors, restaurant quality plating",
		rec.Name, method, strings.Join(featured, ", "), presentation)
}

// buildShortPrompt is the compact variant handed to the fallback
// backend, which accepts far shorter inputs than the primary.
func buildShortPrompt(rec recipe.Recipe) string {
	method := selectPhrase(cookingMethodRules, strings.Join(rec.Instructions, " "), defaultCookingMethod)
	return fmt.Sprintf("professional food photo of %s, %s, appetizing", rec.Name, method)
}
