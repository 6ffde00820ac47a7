package search

import (
	"encoding/json"
	"strconv"

	"github.com/zekog/hipotify-sub000/internal/models"
)

// ScanDocument walks an arbitrarily nested search response and extracts every
// node that resolves to one of the four catalog kinds and carries an id.
//
// The backend answers with variable nesting: result envelopes, per-facet
// collections, wrapper objects of the form {"item": {...}}, and items that
// embed other items (a track carries its album and artists). The walk is
// depth-first; malformed nodes are skipped, never fatal.
func ScanDocument(doc []byte) []models.Item {
	if len(doc) == 0 {
		return nil
	}

	var root any
	if err := json.Unmarshal(doc, &root); err != nil {
		return nil
	}

	var items []models.Item
	walkNode(root, "", &items)
	return items
}

// walkNode visits one node carrying the inferred-type context of its
// enclosing collection.
func walkNode(node any, hint models.Kind, out *[]models.Item) {
	switch n := node.(type) {
	case []any:
		for _, child := range n {
			walkNode(child, hint, out)
		}
	case map[string]any:
		// Wrapper objects hold the real payload under "item"; the wrapper
		// itself is never an item.
		if inner, ok := n["item"].(map[string]any); ok {
			walkNode(inner, hint, out)
			return
		}

		kind := classifyObject(n, hint)
		if kind != "" {
			if item, ok := itemFromObject(kind, n); ok {
				*out = append(*out, item)
			}
		}

		for key, child := range n {
			switch child.(type) {
			case map[string]any, []any:
				walkNode(child, hintForKey(key, hint), out)
			}
		}
	}
}

// classifyObject infers the catalog kind of an object node. An explicit type
// field wins; otherwise field shape decides with precedence
// playlist > album > track > artist, because several marker fields co-occur
// (an album may carry a duration for total runtime). Objects without any
// marker inherit the container's inferred type.
func classifyObject(obj map[string]any, hint models.Kind) models.Kind {
	if t, ok := obj["type"].(string); ok {
		if kind := models.KindFromString(t); kind != "" {
			return kind
		}
	}

	switch {
	case hasField(obj, "uuid") || hasField(obj, "creator"):
		return models.KindPlaylist
	case hasField(obj, "cover") || hasField(obj, "releaseDate") || hasField(obj, "numberOfTracks"):
		return models.KindAlbum
	case hasField(obj, "duration"):
		return models.KindTrack
	case hasField(obj, "artistRoles") || hasField(obj, "artistTypes") || hasField(obj, "picture"):
		return models.KindArtist
	}

	return hint
}

// hintForKey maps a container key to the inferred type of its children,
// falling back to the inherited context.
func hintForKey(key string, inherited models.Kind) models.Kind {
	switch key {
	case "artists", "artist":
		return models.KindArtist
	case "albums", "album":
		return models.KindAlbum
	case "tracks", "songs":
		return models.KindTrack
	case "playlists":
		return models.KindPlaylist
	}
	return inherited
}

// itemFromObject builds a typed item from raw fields. Nodes without an id are
// dropped.
func itemFromObject(kind models.Kind, obj map[string]any) (models.Item, bool) {
	id := stringField(obj, "id", "uuid")
	if id == "" {
		return models.Item{}, false
	}

	item := models.Item{
		Kind:  kind,
		ID:    id,
		Title: stringField(obj, "title", "name"),
		Cover: stringField(obj, "cover", "picture", "image"),
	}

	if pop, ok := numberField(obj, "popularity"); ok {
		item.Popularity = normalizePopularity(pop)
	}

	switch kind {
	case models.KindTrack:
		item.ArtistID, item.ArtistName = refFields(obj, "artist", "artists")
		if album, ok := obj["album"].(map[string]any); ok {
			item.AlbumID = stringField(album, "id")
			item.AlbumTitle = stringField(album, "title", "name")
		}
		if dur, ok := numberField(obj, "duration"); ok {
			item.Duration = int(dur)
		}
		item.ISRC = stringField(obj, "isrc")
	case models.KindAlbum:
		item.ArtistID, item.ArtistName = refFields(obj, "artist", "artists")
	}

	return item, true
}

// normalizePopularity maps both source scales (fraction-of-one and 0-100) to 0-100.
func normalizePopularity(v float64) float64 {
	if v > 0 && v <= 1 {
		return v * 100
	}
	return v
}

// refFields extracts (id, name) from a singular reference object or the first
// entry of a plural collection.
func refFields(obj map[string]any, singular, plural string) (string, string) {
	if ref, ok := obj[singular].(map[string]any); ok {
		return stringField(ref, "id"), stringField(ref, "name", "title")
	}
	if list, ok := obj[plural].([]any); ok && len(list) > 0 {
		if ref, ok := list[0].(map[string]any); ok {
			return stringField(ref, "id"), stringField(ref, "name", "title")
		}
	}
	return "", ""
}

func hasField(obj map[string]any, key string) bool {
	v, ok := obj[key]
	return ok && v != nil
}

// stringField returns the first present key rendered as a string. Numeric ids
// are formatted without a fraction.
func stringField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := obj[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func numberField(obj map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := obj[key].(float64); ok {
			return v, true
		}
	}
	return 0, false
}
