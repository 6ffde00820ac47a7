// Foreign platform oEmbed implementation of [EmbedFetcher]
//
// The embed surface is public and needs no credentials, which makes it the
// cheapest first step of the share-link fallback chain.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// EmbedService implements [EmbedFetcher] against a foreign platform's oEmbed endpoint.
type EmbedService struct {
	baseURL    string
	httpClient *http.Client
}

// NewEmbedService creates an embed metadata client for the given oEmbed endpoint.
func NewEmbedService(baseURL string) *EmbedService {
	return &EmbedService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchEmbed retrieves title/artist (and ISRC when the surface exposes one)
// for a foreign share-link.
func (e *EmbedService) FetchEmbed(ctx context.Context, foreignURL string) (*EmbedMetadata, error) {
	if e.baseURL == "" {
		return nil, fmt.Errorf("no embed endpoint configured")
	}

	endpoint := fmt.Sprintf("%s?url=%s&format=json", e.baseURL, url.QueryEscape(foreignURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("embed API error: status %d", resp.StatusCode)
	}

	var meta EmbedMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Some surfaces pack "Title - Artist" into the title field.
	if meta.Artist == "" {
		if before, after, found := strings.Cut(meta.Title, " - "); found {
			meta.Title = strings.TrimSpace(before)
			meta.Artist = strings.TrimSpace(after)
		}
	}

	if meta.Title == "" {
		return nil, fmt.Errorf("embed metadata missing title")
	}
	return &meta, nil
}
