// song.link implementation of [CrossResolver]
//
// The /v1-alpha.1/links endpoint answers with every platform's entity for a
// given URL; only the entry for our own platform is consumed.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultSonglinkURL = "https://api.song.link"

// SonglinkService implements [CrossResolver] against the song.link API.
type SonglinkService struct {
	baseURL    string
	platform   string
	httpClient *http.Client
}

// NewSonglinkService creates a cross-platform resolver client. platform is the
// song.link key of our own catalog.
func NewSonglinkService(baseURL, platform string) *SonglinkService {
	if baseURL == "" {
		baseURL = defaultSonglinkURL
	}

	return &SonglinkService{
		baseURL:    baseURL,
		platform:   platform,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Resolve maps a foreign URL to our catalog's entity, or (nil, nil) when the
// service knows no mapping for our platform.
func (s *SonglinkService) Resolve(ctx context.Context, foreignURL string) (*ResolvedLink, error) {
	endpoint := fmt.Sprintf("%s/v1-alpha.1/links?url=%s", s.baseURL, url.QueryEscape(foreignURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("songlink API error: status %d", resp.StatusCode)
	}

	var body struct {
		EntitiesByUniqueID map[string]struct {
			ID           string `json:"id"`
			Title        string `json:"title"`
			ArtistName   string `json:"artistName"`
			ThumbnailURL string `json:"thumbnailUrl"`
		} `json:"entitiesByUniqueId"`
		LinksByPlatform map[string]struct {
			EntityUniqueID string `json:"entityUniqueId"`
		} `json:"linksByPlatform"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	link, ok := body.LinksByPlatform[s.platform]
	if !ok {
		return nil, nil
	}
	entity, ok := body.EntitiesByUniqueID[link.EntityUniqueID]
	if !ok {
		return nil, nil
	}

	return &ResolvedLink{
		OwnID:  entity.ID,
		Title:  entity.Title,
		Artist: entity.ArtistName,
		Cover:  entity.ThumbnailURL,
	}, nil
}
