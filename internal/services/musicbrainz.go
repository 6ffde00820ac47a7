// MusicBrainz implementation of [Translator]
//
// Artist search via the /ws/2 JSON web service. Only the candidate names and
// match scores are consumed.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultMusicBrainzURL = "https://musicbrainz.org"

// MusicBrainzService implements [Translator] against the MusicBrainz API.
type MusicBrainzService struct {
	baseURL    string
	httpClient *http.Client
}

// NewMusicBrainzService creates a MusicBrainz client. An empty baseURL falls
// back to the public instance.
func NewMusicBrainzService(baseURL string) *MusicBrainzService {
	if baseURL == "" {
		baseURL = defaultMusicBrainzURL
	}

	return &MusicBrainzService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchArtist queries the artist index and returns candidates in server
// order with their match confidence.
func (m *MusicBrainzService) SearchArtist(ctx context.Context, name string) ([]ArtistCandidate, error) {
	endpoint := fmt.Sprintf("%s/ws/2/artist?query=%s&fmt=json&limit=5", m.baseURL, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "hipotify/1.0")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("musicbrainz API error: status %d", resp.StatusCode)
	}

	var body struct {
		Artists []struct {
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		} `json:"artists"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	candidates := make([]ArtistCandidate, len(body.Artists))
	for i, a := range body.Artists {
		candidates[i] = ArtistCandidate{Name: a.Name, Score: a.Score}
	}
	return candidates, nil
}
