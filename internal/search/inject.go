package search

import (
	"strings"

	"github.com/zekog/hipotify-sub000/internal/models"
)

// InjectHistory appends history entries whose display text contains the query
// substring and whose identity is not already in the result set, so a user's
// own recently played items surface even when the backend's fuzzy search
// misses them. Injected items participate in ranking like any remote result.
//
// The deduper must be the one used while merging the remote results; it
// carries the keys already present.
func InjectHistory(query string, snap models.HistorySnapshot, items []models.Item, d *Deduper) []models.Item {
	q := Normalize(query)
	if q == "" {
		return items
	}

	for _, group := range [][]models.Item{snap.Tracks, snap.Artists, snap.Albums} {
		for _, entry := range group {
			if !strings.Contains(Normalize(entry.Title), q) &&
				!strings.Contains(Normalize(entry.ArtistName), q) {
				continue
			}
			if d.Admit(entry) {
				items = append(items, entry)
			}
		}
	}

	return items
}
