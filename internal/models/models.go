package models

import "strings"

// Kind discriminates the catalog item union.
type Kind string

const (
	KindTrack    Kind = "track"
	KindArtist   Kind = "artist"
	KindAlbum    Kind = "album"
	KindPlaylist Kind = "playlist"
)

// KindFromString maps a backend type string to a [Kind], or "" when unknown.
func KindFromString(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "track", "song":
		return KindTrack
	case "artist":
		return KindArtist
	case "album":
		return KindAlbum
	case "playlist":
		return KindPlaylist
	default:
		return ""
	}
}

// Item is a typed catalog entity. Kind and ID are always set; the remaining
// fields are populated per kind (artist/album/duration/ISRC only for tracks,
// artist fields also for albums).
//
// Identity: two items are the same iff (Kind, ID) matches.
type Item struct {
	Kind       Kind    `json:"kind"`
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Popularity float64 `json:"popularity,omitempty"` // normalized to 0-100, 0 when absent
	Cover      string  `json:"cover,omitempty"`

	ArtistID   string `json:"artist_id,omitempty"`
	ArtistName string `json:"artist_name,omitempty"`
	AlbumID    string `json:"album_id,omitempty"`
	AlbumTitle string `json:"album_title,omitempty"`
	Duration   int    `json:"duration,omitempty"` // seconds
	ISRC       string `json:"isrc,omitempty"`
}

// Key returns the composite identity key "<kind>_<id>".
func (i Item) Key() string {
	return string(i.Kind) + "_" + i.ID
}

// HistorySnapshot is a point-in-time, read-only view of the user's recently
// played items. The store that produced it owns capacity and ordering
// (newest-first); consumers only read.
type HistorySnapshot struct {
	Tracks  []Item
	Artists []Item
	Albums  []Item
}

// SourceTrack describes one entry of an externally sourced playlist awaiting
// reconciliation against the catalog.
type SourceTrack struct {
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	Album    string `json:"album,omitempty"`
	Duration int    `json:"duration,omitempty"` // seconds
	ISRC     string `json:"isrc,omitempty"`
	IsRemix  bool   `json:"is_remix,omitempty"`
	IsCover  bool   `json:"is_cover,omitempty"`
}

// ConversionResult is the outcome for a single source track. Exactly one of
// Matched/Err is set once the entry has been processed; both empty means the
// entry was not processed (e.g. the batch was stopped).
type ConversionResult struct {
	Source  SourceTrack `json:"source"`
	Matched *Item       `json:"matched,omitempty"`
	Err     string      `json:"error,omitempty"`
}
