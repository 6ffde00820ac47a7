package search

import "github.com/zekog/hipotify-sub000/internal/models"

// Deduper suppresses duplicate catalog items across merged facet responses.
//
// Primary identity is the composite (kind, id) key, first occurrence kept.
// Albums and artists are additionally suppressed by normalized title/name
// even under a different id, because the backend may answer the same
// physical item from more than one facet or search variant. Tracks are
// exempt from the secondary rule: distinct recordings legitimately share
// titles.
type Deduper struct {
	keys   map[string]struct{}
	titles map[string]struct{}
}

func NewDeduper() *Deduper {
	return &Deduper{
		keys:   make(map[string]struct{}),
		titles: make(map[string]struct{}),
	}
}

// Admit reports whether the item is new, registering its keys when it is.
func (d *Deduper) Admit(item models.Item) bool {
	key := item.Key()
	if _, dup := d.keys[key]; dup {
		return false
	}

	if item.Kind == models.KindAlbum || item.Kind == models.KindArtist {
		titleKey := string(item.Kind) + "\x00" + Normalize(item.Title)
		if _, dup := d.titles[titleKey]; dup {
			return false
		}
		d.titles[titleKey] = struct{}{}
	}

	d.keys[key] = struct{}{}
	return true
}

// Dedupe filters a slice in arrival order with a fresh Deduper.
func Dedupe(items []models.Item) []models.Item {
	d := NewDeduper()
	out := items[:0:0]
	for _, item := range items {
		if d.Admit(item) {
			out = append(out, item)
		}
	}
	return out
}
