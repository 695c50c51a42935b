// Package imagegen generates recipe images through an ordered chain
// of external backends with a local placeholder as the terminal tier.
package imagegen

import (
	"context"
	"log"

	"ai-sous-chef/internal/recipe"
)

// Chain tries each image backend in priority order and synthesizes a
// placeholder when every external tier fails. Tiers run strictly in
// sequence; a tier's failure is the trigger for the next.
type Chain struct {
	primary  Backend
	fallback Backend
}

// NewChain creates a fallback chain. Either backend may be nil, in
// which case its tier is skipped.
func NewChain(primary, fallback Backend) *Chain {
	return &Chain{primary: primary, fallback: fallback}
}

// Generate returns an encoded image for the recipe. It never fails:
// the placeholder tier always produces a result, and callers cannot
// tell which tier produced the image.
func (c *Chain) Generate(ctx context.Context, rec recipe.Recipe) EncodedImage {
	if c.primary != nil {
		img, err := c.primary.Generate(ctx, BuildPrompt(rec))
		if err == nil {
			return img
		}
		log.Printf("[imagegen] primary backend failed for %q, trying fallback: %v", rec.Name, err)
	}

	if c.fallback != nil {
		img, err := c.fallback.Generate(ctx, buildShortPrompt(rec))
		if err == nil {
			return img
		}
		log.Printf("[imagegen] fallback backend failed for %q, using placeholder: %v", rec.Name, err)
	}

	return Placeholder(rec.Name)
}
