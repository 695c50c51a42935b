package llm

import (
	"context"

	"ai-sous-chef/internal/shared"

	"github.com/google/generative-ai-go/genai"
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// ImageInput is a raw image payload handed to a vision model. Format
// is the bare subtype ("jpeg", "png"), not a full MIME type.
type ImageInput struct {
	Format string
	Data   []byte
}

// TextGenerator is an interface for generating a JSON document from a
// prompt bound to a response schema. Any backend that accepts an
// instruction plus a schema and returns a text payload can satisfy it.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (ContentResponse, error)
}

// VisionGenerator is an interface for describing an image as a JSON
// document bound to a response schema.
type VisionGenerator interface {
	DescribeImage(ctx context.Context, img ImageInput, prompt string, schema *genai.Schema) (ContentResponse, error)
}

// EmbeddingGenerator is an interface for generating vector embeddings from text.
type EmbeddingGenerator interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
