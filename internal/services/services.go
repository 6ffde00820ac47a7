// package services defines interfaces for the remote collaborators of the
// resolution engine and their HTTP implementations.
//
// Catalog backend, MusicBrainz, song.link, foreign embed surface.
package services

import (
	"context"
	"encoding/json"
)

// Facet scopes a catalog search to a single entity kind.
type Facet string

const (
	FacetTrack    Facet = "track"
	FacetArtist   Facet = "artist"
	FacetAlbum    Facet = "album"
	FacetPlaylist Facet = "playlist"
)

// Facets lists every facet in fan-out order.
var Facets = []Facet{FacetTrack, FacetArtist, FacetAlbum, FacetPlaylist}

// Catalog defines the surface consumed from the remote catalog backend.
//
// Search and album responses are semi-structured documents with wrapper
// objects and variable nesting depth; decoding them is the scanner's job,
// so they are returned raw.
type Catalog interface {
	// SearchFacet performs a search scoped to one entity kind.
	SearchFacet(ctx context.Context, query string, facet Facet, offset, limit int) (json.RawMessage, error)

	// AlbumTracks retrieves the full track list of an album.
	AlbumTracks(ctx context.Context, albumID string) (json.RawMessage, error)

	// StreamMetadata resolves playback info for a track. Fails for region
	// restricted or otherwise unplayable tracks.
	StreamMetadata(ctx context.Context, trackID string) (*StreamInfo, error)
}

// StreamInfo holds resolved playback metadata for a track.
type StreamInfo struct {
	TrackID string `json:"track_id"`
	URL     string `json:"url"`
	Quality string `json:"quality,omitempty"`
	Codec   string `json:"codec,omitempty"`
}

// ArtistCandidate is one hit from an external artist-name search.
type ArtistCandidate struct {
	Name  string
	Score float64 // match confidence, 0-100
}

// Translator defines the external artist-name search used for
// transliteration lookups.
type Translator interface {
	SearchArtist(ctx context.Context, name string) ([]ArtistCandidate, error)
}

// EmbedMetadata is the lightweight track metadata scraped from a foreign
// platform's public embed surface.
type EmbedMetadata struct {
	Title  string `json:"title"`
	Artist string `json:"author_name,omitempty"`
	ISRC   string `json:"isrc,omitempty"`
}

// EmbedFetcher fetches embed metadata for a foreign share-link.
type EmbedFetcher interface {
	FetchEmbed(ctx context.Context, foreignURL string) (*EmbedMetadata, error)
}

// ResolvedLink is a cross-platform resolution of a foreign URL into this
// catalog's namespace.
type ResolvedLink struct {
	OwnID  string
	Title  string
	Artist string
	Cover  string
}

// CrossResolver maps a foreign streaming platform URL to this catalog's
// equivalent entity. A nil result with nil error means no mapping exists.
type CrossResolver interface {
	Resolve(ctx context.Context, foreignURL string) (*ResolvedLink, error)
}
