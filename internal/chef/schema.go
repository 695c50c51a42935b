package chef

import (
	"github.com/google/generative-ai-go/genai"
)

// Response schemas declared to the model alongside each request kind.
// They describe the expected JSON shape for the backend; required-field
// enforcement on the way back in happens in the validators.

var nutritionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"protein": {Type: genai.TypeString, Description: "grams per serving, e.g. \"23g\""},
		"carbs":   {Type: genai.TypeString},
		"fat":     {Type: genai.TypeString},
		"fiber":   {Type: genai.TypeString},
		"sodium":  {Type: genai.TypeString, Description: "milligrams per serving, e.g. \"450mg\""},
	},
	Required: []string{"protein", "carbs", "fat", "fiber", "sodium"},
}

var recipeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":               {Type: genai.TypeString},
		"ingredients":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"total_time_minutes": {Type: genai.TypeInteger},
		"prep_time_minutes":  {Type: genai.TypeInteger},
		"cook_time_minutes":  {Type: genai.TypeInteger},
		"difficulty":         {Type: genai.TypeString, Enum: []string{"Easy", "Medium", "Hard"}},
		"instructions":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"calories":           {Type: genai.TypeInteger},
		"serving_size":       {Type: genai.TypeString},
		"nutrition":          nutritionSchema,
		"persona_tips":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{
		"name", "ingredients", "total_time_minutes", "prep_time_minutes",
		"cook_time_minutes", "difficulty", "instructions", "calories",
		"serving_size", "nutrition", "persona_tips",
	},
}

var recipesResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recipes": {Type: genai.TypeArray, Items: recipeSchema},
	},
	Required: []string{"recipes"},
}

var stepSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"id":                   {Type: genai.TypeString},
		"recipe_id":            {Type: genai.TypeString},
		"recipe_name":          {Type: genai.TypeString},
		"description":          {Type: genai.TypeString},
		"start_offset_minutes": {Type: genai.TypeInteger},
		"duration_minutes":     {Type: genai.TypeInteger},
		"kind":                 {Type: genai.TypeString, Enum: []string{"prep", "active", "passive"}},
		"priority":             {Type: genai.TypeString, Enum: []string{"high", "medium", "low"}},
		"equipment":            {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"tip":                  {Type: genai.TypeString},
	},
	Required: []string{
		"id", "recipe_id", "recipe_name", "description",
		"start_offset_minutes", "duration_minutes", "kind", "priority",
	},
}

var scheduleResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"total_time_minutes":  {Type: genai.TypeInteger},
		"target_serving_time": {Type: genai.TypeString},
		"steps":               {Type: genai.TypeArray, Items: stepSchema},
		"recipe_completions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"recipe_id":          {Type: genai.TypeString},
					"recipe_name":        {Type: genai.TypeString},
					"completion_minutes": {Type: genai.TypeInteger},
				},
				Required: []string{"recipe_id", "recipe_name", "completion_minutes"},
			},
		},
		"efficiency_tips": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"summary":         {Type: genai.TypeString},
	},
	Required: []string{"total_time_minutes", "steps", "recipe_completions", "summary"},
}

var ingredientsResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"ingredients": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"ingredients"},
}
