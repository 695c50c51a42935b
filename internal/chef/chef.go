// Package chef turns domain parameters into model prompts, declares
// the expected response shapes, and parses the raw JSON payloads back
// into typed recipes and schedules.
package chef

import (
	"strings"

	"ai-sous-chef/internal/llm"
)

// NoPreference is the sentinel filter value treated the same as an
// absent filter: no clause is emitted for it.
const NoPreference = "No Preference"

// Chef composes prompts and validates structured responses. It holds
// no state beyond the generator handles and is safe for concurrent use.
type Chef struct {
	textGen llm.TextGenerator
	vision  llm.VisionGenerator
}

// New creates a Chef on top of the given generators.
func New(textGen llm.TextGenerator, vision llm.VisionGenerator) *Chef {
	return &Chef{textGen: textGen, vision: vision}
}

// RecipeRequest describes a recipe-generation call. Optional filters
// left empty (or set to NoPreference) are omitted from the prompt.
type RecipeRequest struct {
	Ingredients []string
	Preference  string
	Exclusions  string
	Flavor      string
	Style       string
	PersonaID   string
	Count       int
}

// ReinventRequest describes a reinvention call for a known dish.
type ReinventRequest struct {
	DishName   string
	Preference string
	Exclusions string
	Flavor     string
	Style      string
	PersonaID  string
	Count      int
}

// KitchenConstraints describes the kitchen a schedule must fit into.
type KitchenConstraints struct {
	TargetServingTime string
	CookCount         int
	BurnerCount       int
	OvenCount         int
	Appliances        []string
}

// normalizeFilter collapses absent and sentinel filter values to "".
func normalizeFilter(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, NoPreference) {
		return ""
	}
	return v
}
