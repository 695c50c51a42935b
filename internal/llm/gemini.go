package llm

import (
	"context"
	"fmt"

	"ai-sous-chef/internal/config"
	"ai-sous-chef/internal/shared"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is a client for the Google Gemini API implementing the
// text, vision and embedding generator interfaces.
type GeminiClient struct {
	client         *genai.Client
	textModel      string
	visionModel    string
	embeddingModel string
}

// NewGeminiClient creates a new Gemini API client.
func NewGeminiClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{
		client:         client,
		textModel:      cfg.TextModel,
		visionModel:    cfg.VisionModel,
		embeddingModel: cfg.EmbeddingModel,
	}, nil
}

// GenerateJSON sends a prompt to the text model, declaring the expected
// response shape, and returns the raw JSON text.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (ContentResponse, error) {
	model := c.jsonModel(c.textModel, schema)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to generate content: %w", err)
	}
	return c.extract(resp, c.textModel)
}

// DescribeImage sends an image plus a prompt to the vision model,
// declaring the expected response shape, and returns the raw JSON text.
func (c *GeminiClient) DescribeImage(ctx context.Context, img ImageInput, prompt string, schema *genai.Schema) (ContentResponse, error) {
	model := c.jsonModel(c.visionModel, schema)
	resp, err := model.GenerateContent(ctx, genai.ImageData(img.Format, img.Data), genai.Text(prompt))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to describe image: %w", err)
	}
	return c.extract(resp, c.visionModel)
}

// GenerateEmbedding returns the embedding vector for the given text.
func (c *GeminiClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	em := c.client.EmbeddingModel(c.embeddingModel)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding generated")
	}
	return res.Embedding.Values, nil
}

// Close closes the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) jsonModel(name string, schema *genai.Schema) *genai.GenerativeModel {
	model := c.client.GenerativeModel(name)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema
	return model
}

func (c *GeminiClient) extract(resp *genai.GenerateContentResponse, modelName string) (ContentResponse, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return ContentResponse{}, fmt.Errorf("generated content is not text")
	}

	usage := shared.TokenUsage{Model: modelName}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return ContentResponse{Content: string(text), Usage: usage}, nil
}
