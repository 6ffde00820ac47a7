package search

import (
	"context"
	"errors"
	"testing"

	"github.com/zekog/hipotify-sub000/internal/services"
	tu "github.com/zekog/hipotify-sub000/internal/testing"
)

func TestTranslation(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts the top candidate above the threshold", func(t *testing.T) {
		tr := NewTranslation(&tu.FakeTranslator{
			Candidates: []services.ArtistCandidate{
				{Name: "東京事変", Score: 95},
				{Name: "Tokyo Incidents", Score: 80},
			},
		}, 90)

		if got := tr.Translate(ctx, "tokyo jihen"); got != "東京事変" {
			t.Errorf("Translate() = %q, want top candidate", got)
		}
	})

	t.Run("rejects a score at or below the threshold", func(t *testing.T) {
		tr := NewTranslation(&tu.FakeTranslator{
			Candidates: []services.ArtistCandidate{{Name: "Maybe", Score: 90}},
		}, 90)

		if got := tr.Translate(ctx, "maybe"); got != "" {
			t.Errorf("Translate() = %q, want empty at threshold", got)
		}
	})

	t.Run("degrades on lookup error", func(t *testing.T) {
		tr := NewTranslation(&tu.FakeTranslator{Err: errors.New("503")}, 90)
		if got := tr.Translate(ctx, "anything"); got != "" {
			t.Errorf("Translate() = %q, want empty on error", got)
		}
	})

	t.Run("degrades on empty candidate list", func(t *testing.T) {
		tr := NewTranslation(&tu.FakeTranslator{}, 90)
		if got := tr.Translate(ctx, "anything"); got != "" {
			t.Errorf("Translate() = %q, want empty with no candidates", got)
		}
	})

	t.Run("nil receiver and empty name are safe", func(t *testing.T) {
		var tr *Translation
		if got := tr.Translate(ctx, "name"); got != "" {
			t.Errorf("nil receiver Translate() = %q, want empty", got)
		}

		tr = NewTranslation(&tu.FakeTranslator{
			Candidates: []services.ArtistCandidate{{Name: "X", Score: 99}},
		}, 90)
		if got := tr.Translate(ctx, ""); got != "" {
			t.Errorf("empty name Translate() = %q, want empty", got)
		}
	})

	t.Run("non-positive threshold falls back to default", func(t *testing.T) {
		tr := NewTranslation(&tu.FakeTranslator{
			Candidates: []services.ArtistCandidate{{Name: "Low", Score: 50}},
		}, 0)
		if got := tr.Translate(ctx, "low"); got != "" {
			t.Errorf("Translate() = %q, want empty below default confidence", got)
		}
	})
}
