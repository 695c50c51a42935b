// Package importer pulls ingredient lists out of cooking web pages so
// they can be fed straight into recipe generation.
package importer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ai-sous-chef/internal/chef"
	"ai-sous-chef/internal/shared"

	"github.com/PuerkitoBio/goquery"
)

// maxPageRunes caps how much page text is handed to the model.
const maxPageRunes = 20000

// Importer fetches recipe pages and extracts their ingredients.
type Importer struct {
	chef       *chef.Chef
	httpClient *http.Client
}

// New creates a new Importer.
func New(c *chef.Chef) *Importer {
	return &Importer{
		chef: c,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ImportIngredients fetches the URL, strips page noise and extracts
// the recipe's ingredient names. Extraction itself is best-effort; only
// fetch failures are reported as errors.
func (i *Importer) ImportIngredients(ctx context.Context, pageURL string) ([]string, shared.CallMeta, error) {
	content, err := i.fetchAndCleanHTML(ctx, pageURL)
	if err != nil {
		return nil, shared.CallMeta{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	names, meta := i.chef.ExtractIngredients(ctx, content)
	return names, meta, nil
}

func (i *Importer) fetchAndCleanHTML(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save model tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	text := doc.Find("body").Text()
	if runes := []rune(text); len(runes) > maxPageRunes {
		text = string(runes[:maxPageRunes])
	}
	return text, nil
}
