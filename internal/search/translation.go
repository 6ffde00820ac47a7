package search

import (
	"context"

	"github.com/zekog/hipotify-sub000/internal/services"
)

// DefaultTranslationConfidence is the minimum match score (0-100) for
// accepting an external artist-name translation.
const DefaultTranslationConfidence = 90

// Translation wraps an external artist-name search into an advisory
// canonical-name lookup. It never fails: low confidence, empty results and
// transport errors all come back as "no translation".
type Translation struct {
	svc       services.Translator
	threshold float64
}

// NewTranslation creates a lookup over the given translator. A non-positive
// threshold falls back to [DefaultTranslationConfidence].
func NewTranslation(svc services.Translator, threshold float64) *Translation {
	if threshold <= 0 {
		threshold = DefaultTranslationConfidence
	}
	return &Translation{svc: svc, threshold: threshold}
}

// Translate returns the canonical name of the top candidate when its
// confidence exceeds the threshold, "" otherwise.
func (t *Translation) Translate(ctx context.Context, name string) string {
	if t == nil || t.svc == nil || name == "" {
		return ""
	}

	candidates, err := t.svc.SearchArtist(ctx, name)
	if err != nil || len(candidates) == 0 {
		return ""
	}

	top := candidates[0]
	if top.Score <= t.threshold {
		return ""
	}
	return top.Name
}
