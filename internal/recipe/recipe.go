package recipe

// Difficulty rates how demanding a recipe is to cook.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Nutrition holds a per-serving macro breakdown. Quantities are
// free-form strings ("23g", "450mg") as returned by the model.
type Nutrition struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fat     string `json:"fat"`
	Fiber   string `json:"fiber"`
	Sodium  string `json:"sodium"`
}

// Recipe is a single generated recipe. PersonaID is stamped locally
// from the request; the model does not round-trip it.
type Recipe struct {
	ID               string     `json:"id,omitempty"`
	Name             string     `json:"name"`
	Ingredients      []string   `json:"ingredients"`
	TotalTimeMinutes int        `json:"total_time_minutes"`
	PrepTimeMinutes  int        `json:"prep_time_minutes"`
	CookTimeMinutes  int        `json:"cook_time_minutes"`
	Difficulty       Difficulty `json:"difficulty"`
	Instructions     []string   `json:"instructions"`
	Calories         int        `json:"calories"`
	ServingSize      string     `json:"serving_size"`
	Nutrition        Nutrition  `json:"nutrition"`
	PersonaID        string     `json:"persona_id,omitempty"`
	PersonaTips      []string   `json:"persona_tips,omitempty"`
}

// StepKind classifies a schedule step by the attention it demands.
type StepKind string

const (
	StepPrep    StepKind = "prep"
	StepActive  StepKind = "active"
	StepPassive StepKind = "passive"
)

// StepPriority ranks how critical a step's timing is.
type StepPriority string

const (
	PriorityHigh   StepPriority = "high"
	PriorityMedium StepPriority = "medium"
	PriorityLow    StepPriority = "low"
)

// Step is one entry in a cooking schedule timeline.
type Step struct {
	ID                 string       `json:"id"`
	RecipeID           string       `json:"recipe_id"`
	RecipeName         string       `json:"recipe_name"`
	Description        string       `json:"description"`
	StartOffsetMinutes int          `json:"start_offset_minutes"`
	DurationMinutes    int          `json:"duration_minutes"`
	Kind               StepKind     `json:"kind"`
	Priority           StepPriority `json:"priority"`
	Equipment          []string     `json:"equipment,omitempty"`
	Tip                string       `json:"tip,omitempty"`
}

// RecipeCompletion estimates when a single recipe finishes within a
// combined schedule.
type RecipeCompletion struct {
	RecipeID          string `json:"recipe_id"`
	RecipeName        string `json:"recipe_name"`
	CompletionMinutes int    `json:"completion_minutes"`
}

// CookingSchedule interleaves the steps of several recipes into one
// timeline ending at the target serving time.
type CookingSchedule struct {
	TotalTimeMinutes  int                `json:"total_time_minutes"`
	TargetServingTime string             `json:"target_serving_time"`
	Steps             []Step             `json:"steps"`
	RecipeCompletions []RecipeCompletion `json:"recipe_completions"`
	EfficiencyTips    []string           `json:"efficiency_tips"`
	Summary           string             `json:"summary"`
}

// ToEmbeddingText builds the semantic string representation used to
// embed a recipe for similarity search.
func (r Recipe) ToEmbeddingText() string {
	text := "Name: " + r.Name
	for _, ing := range r.Ingredients {
		text += "\nIngredient: " + ing
	}
	return text
}
