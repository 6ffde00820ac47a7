// Catalog backend implementation of [Catalog]
//
// Talks to the streaming catalog's REST API. Responses for search and album
// track listings are passed through raw for the scanner.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/zekog/hipotify-sub000/internal/shared"
	"golang.org/x/oauth2"
)

const defaultCatalogTimeout = 15 * time.Second

// CatalogService implements [Catalog] against the remote catalog REST API.
type CatalogService struct {
	baseURL    string
	country    string
	httpClient *http.Client
}

// NewCatalogService creates a catalog client from configuration.
//
// A missing base URL is the one precondition this subsystem refuses to
// degrade on and surfaces as [shared.ErrNoEndpoint].
func NewCatalogService(cfg shared.CatalogConfig) (*CatalogService, error) {
	if cfg.BaseURL == "" {
		return nil, shared.ErrNoEndpoint
	}

	timeout := defaultCatalogTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	client := &http.Client{Timeout: timeout}
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		client = oauth2.NewClient(context.Background(), src)
		client.Timeout = timeout
	}

	country := cfg.CountryCode
	if country == "" {
		country = "US"
	}

	return &CatalogService{
		baseURL:    cfg.BaseURL,
		country:    country,
		httpClient: client,
	}, nil
}

func (c *CatalogService) doRequest(ctx context.Context, endpoint string, result any) error {
	apiURL := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: catalog status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchFacet performs a single-kind search and returns the raw document.
func (c *CatalogService) SearchFacet(ctx context.Context, query string, facet Facet, offset, limit int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	endpoint := fmt.Sprintf("/v1/search/%ss?query=%s&offset=%d&limit=%d&countryCode=%s",
		facet, url.QueryEscape(query), offset, limit, url.QueryEscape(c.country))

	var doc json.RawMessage
	if err := c.doRequest(ctx, endpoint, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// AlbumTracks retrieves an album's full track list as a raw document.
func (c *CatalogService) AlbumTracks(ctx context.Context, albumID string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("/v1/albums/%s/tracks?countryCode=%s", url.PathEscape(albumID), url.QueryEscape(c.country))

	var doc json.RawMessage
	if err := c.doRequest(ctx, endpoint, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// StreamMetadata resolves playback info for a track.
func (c *CatalogService) StreamMetadata(ctx context.Context, trackID string) (*StreamInfo, error) {
	endpoint := fmt.Sprintf("/v1/tracks/%s/playbackinfo?countryCode=%s", url.PathEscape(trackID), url.QueryEscape(c.country))

	var info StreamInfo
	if err := c.doRequest(ctx, endpoint, &info); err != nil {
		return nil, err
	}
	if info.URL == "" {
		return nil, fmt.Errorf("%w: track %s", shared.ErrStreamUnavailable, trackID)
	}
	info.TrackID = trackID
	return &info, nil
}
