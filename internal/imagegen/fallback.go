package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// fallbackBackend calls a diffusion inference endpoint that takes a
// JSON body with generation parameters and returns the image bytes.
type fallbackBackend struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewFallbackBackend creates the second-tier image backend.
func NewFallbackBackend(endpoint, token string) Backend {
	return &fallbackBackend{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

type fallbackRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters fallbackParameters `json:"parameters"`
}

type fallbackParameters struct {
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
}

func (b *fallbackBackend) Generate(ctx context.Context, prompt string) (EncodedImage, error) {
	reqBody := fallbackRequest{
		Inputs: prompt,
		Parameters: fallbackParameters{
			NumInferenceSteps: 30,
			GuidanceScale:     7.5,
			Width:             768,
			Height:            768,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", b.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return EncodedImage{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return EncodedImage{}, fmt.Errorf("fallback image backend error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("failed to read image body: %w", err)
	}
	if len(data) == 0 {
		return EncodedImage{}, fmt.Errorf("fallback image backend returned an empty body")
	}

	mime := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/png"
	}

	return EncodedImage{MIMEType: mime, Data: data}, nil
}
