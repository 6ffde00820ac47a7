package search

import (
	"sort"
	"strings"

	"github.com/zekog/hipotify-sub000/internal/models"
)

// Weights holds the additive scoring constants. The absolute values are
// tunable; what matters is the relative ordering
// history > exact-title > exact-artist > prefix > substring > popularity.
type Weights struct {
	Base float64

	TitleExact     float64
	TitlePrefix    float64
	TitleSubstring float64

	ArtistExact     float64
	ArtistPrefix    float64
	ArtistSubstring float64

	AlbumExact     float64
	AlbumPrefix    float64
	AlbumSubstring float64

	ContextArtist float64
	ContextAlbum  float64

	Transliteration float64

	HistoryDirect float64
	HistoryArtist float64
	HistoryAlbum  float64

	PopularityFactor float64
	PlaylistBase     float64
}

// DefaultWeights returns the stock scoring constants.
func DefaultWeights() Weights {
	return Weights{
		Base:             1000,
		TitleExact:       3000,
		TitlePrefix:      1000,
		TitleSubstring:   500,
		ArtistExact:      2000,
		ArtistPrefix:     1000,
		ArtistSubstring:  500,
		AlbumExact:       1500,
		AlbumPrefix:      800,
		AlbumSubstring:   400,
		ContextArtist:    1000,
		ContextAlbum:     500,
		Transliteration:  2000,
		HistoryDirect:    10000,
		HistoryArtist:    3000,
		HistoryAlbum:     2000,
		PopularityFactor: 10,
		PlaylistBase:     1200,
	}
}

type matchTier int

const (
	tierNone matchTier = iota
	tierSubstring
	tierPrefix
	tierExact
)

// tierOf compares a normalized field against the normalized query.
func tierOf(field, query string) matchTier {
	field = Normalize(field)
	switch {
	case field == "" || query == "":
		return tierNone
	case field == query:
		return tierExact
	case strings.HasPrefix(field, query):
		return tierPrefix
	case strings.Contains(field, query):
		return tierSubstring
	default:
		return tierNone
	}
}

func tierBonus(t matchTier, exact, prefix, substring float64) float64 {
	switch t {
	case tierExact:
		return exact
	case tierPrefix:
		return prefix
	case tierSubstring:
		return substring
	default:
		return 0
	}
}

// historyIndex is the id lookup view of a snapshot, built once per ranking pass.
type historyIndex struct {
	tracks  map[string]struct{}
	artists map[string]struct{}
	albums  map[string]struct{}
}

func indexHistory(snap models.HistorySnapshot) historyIndex {
	idx := historyIndex{
		tracks:  make(map[string]struct{}, len(snap.Tracks)),
		artists: make(map[string]struct{}, len(snap.Artists)),
		albums:  make(map[string]struct{}, len(snap.Albums)),
	}
	for _, t := range snap.Tracks {
		idx.tracks[t.ID] = struct{}{}
	}
	for _, a := range snap.Artists {
		idx.artists[a.ID] = struct{}{}
	}
	for _, a := range snap.Albums {
		idx.albums[a.ID] = struct{}{}
	}
	return idx
}

// Score computes the ranking score of one item. Pure: same inputs, same score.
func Score(item models.Item, originalIndex int, query string, snap models.HistorySnapshot, w Weights) float64 {
	return scoreIndexed(item, originalIndex, query, indexHistory(snap), w)
}

func scoreIndexed(item models.Item, originalIndex int, query string, hist historyIndex, w Weights) float64 {
	q := Normalize(query)
	score := w.Base / float64(originalIndex+1)

	titleTier := tierOf(item.Title, q)
	artistTier := tierOf(item.ArtistName, q)
	albumTier := tierOf(item.AlbumTitle, q)

	score += tierBonus(titleTier, w.TitleExact, w.TitlePrefix, w.TitleSubstring)
	score += tierBonus(artistTier, w.ArtistExact, w.ArtistPrefix, w.ArtistSubstring)
	score += tierBonus(albumTier, w.AlbumExact, w.AlbumPrefix, w.AlbumSubstring)

	// Items whose container matches the query outrank items that merely
	// mention it.
	if item.Kind == models.KindTrack || item.Kind == models.KindAlbum {
		if artistTier == tierExact {
			score += w.ContextArtist
		}
		if albumTier == tierExact {
			score += w.ContextAlbum
		}
	}

	// A non-Latin result for a Latin query is trusted as a backend
	// transliteration rather than a spurious match.
	if IsLatin(query) && (HasCJK(item.Title) || HasCJK(item.ArtistName)) {
		score += w.Transliteration
	}

	switch item.Kind {
	case models.KindTrack:
		if _, ok := hist.tracks[item.ID]; ok {
			score += w.HistoryDirect
		}
		if _, ok := hist.artists[item.ArtistID]; ok && item.ArtistID != "" {
			score += w.HistoryArtist
		}
		if _, ok := hist.albums[item.AlbumID]; ok && item.AlbumID != "" {
			score += w.HistoryAlbum
		}
	case models.KindArtist:
		if _, ok := hist.artists[item.ID]; ok {
			score += w.HistoryDirect
		}
	case models.KindAlbum:
		if _, ok := hist.albums[item.ID]; ok {
			score += w.HistoryDirect
		}
	}

	if item.Kind == models.KindPlaylist {
		// No popularity signal exists for playlists; a flat boost keeps them
		// from being systematically starved.
		score += w.PlaylistBase
	} else {
		score += item.Popularity * w.PopularityFactor
	}

	return score
}

// Rank sorts items in place by descending score; ties keep their original
// relative order.
func Rank(items []models.Item, query string, snap models.HistorySnapshot, w Weights) {
	hist := indexHistory(snap)

	scores := make([]float64, len(items))
	for i, item := range items {
		scores[i] = scoreIndexed(item, i, query, hist, w)
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	ranked := make([]models.Item, len(items))
	for i, idx := range order {
		ranked[i] = items[idx]
	}
	copy(items, ranked)
}
