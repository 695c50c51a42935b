package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// primaryBackend calls an image service that takes the prompt in the
// URL path and returns the rendered image directly.
type primaryBackend struct {
	baseURL    string
	httpClient *http.Client
}

// NewPrimaryBackend creates the first-tier image backend.
func NewPrimaryBackend(baseURL string) Backend {
	return &primaryBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (b *primaryBackend) Generate(ctx context.Context, prompt string) (EncodedImage, error) {
	reqURL := fmt.Sprintf("%s/%s?width=1024&height=1024&nologo=true", b.baseURL, url.PathEscape(prompt))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return EncodedImage{}, fmt.Errorf("primary image backend error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("failed to read image body: %w", err)
	}
	if len(data) == 0 {
		return EncodedImage{}, fmt.Errorf("primary image backend returned an empty body")
	}

	mime := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(mime, "image/") {
		return EncodedImage{}, fmt.Errorf("primary image backend returned non-image content type %q", mime)
	}

	return EncodedImage{MIMEType: mime, Data: data}, nil
}
