package chef

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"time"

	"ai-sous-chef/internal/recipe"
	"ai-sous-chef/internal/shared"
)

//go:embed schedule_prompt.md
var schedulePrompt string

type schedulePromptData struct {
	Recipes           []recipe.Recipe
	CookCount         int
	BurnerCount       int
	OvenCount         int
	Appliances        string
	TargetServingTime string
}

// GenerateCookingSchedule interleaves the given recipes into a single
// timeline honoring the kitchen constraints. A malformed response
// surfaces as *ResponseParseError.
func (c *Chef) GenerateCookingSchedule(ctx context.Context, recipes []recipe.Recipe, constraints KitchenConstraints) (*recipe.CookingSchedule, shared.CallMeta, error) {
	const op = "GenerateCookingSchedule"
	start := time.Now()

	cooks := constraints.CookCount
	if cooks <= 0 {
		cooks = 1
	}
	burners := constraints.BurnerCount
	if burners <= 0 {
		burners = 4
	}
	ovens := constraints.OvenCount
	if ovens <= 0 {
		ovens = 1
	}

	prompt, err := buildPrompt("schedule", schedulePrompt, schedulePromptData{
		Recipes:           recipes,
		CookCount:         cooks,
		BurnerCount:       burners,
		OvenCount:         ovens,
		Appliances:        strings.Join(constraints.Appliances, ", "),
		TargetServingTime: strings.TrimSpace(constraints.TargetServingTime),
	})
	if err != nil {
		return nil, shared.CallMeta{Operation: op}, err
	}

	resp, err := c.textGen.GenerateJSON(ctx, prompt, scheduleResponseSchema)
	if err != nil {
		return nil, shared.CallMeta{Operation: op}, err
	}

	meta := shared.CallMeta{
		Operation: op,
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	schedule, err := parseSchedule(op, resp.Content)
	if err != nil {
		return nil, meta, err
	}
	return schedule, meta, nil
}

// parseSchedule requires the top-level "steps" key and a non-empty
// timeline; anything less is a parse failure.
func parseSchedule(op, raw string) (*recipe.CookingSchedule, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, &ResponseParseError{Op: op, Raw: raw, Err: err}
	}

	if _, ok := envelope["steps"]; !ok {
		return nil, &ResponseParseError{Op: op, Raw: raw, Err: errMissingKey("steps")}
	}

	var schedule recipe.CookingSchedule
	if err := json.Unmarshal([]byte(raw), &schedule); err != nil {
		return nil, &ResponseParseError{Op: op, Raw: raw, Err: err}
	}

	if len(schedule.Steps) == 0 {
		return nil, &ResponseParseError{Op: op, Raw: raw, Err: errMissingKey("steps")}
	}

	return &schedule, nil
}
