package convert

import (
	"time"

	"github.com/zekog/hipotify-sub000/internal/models"
	"github.com/zekog/hipotify-sub000/internal/shared"
)

// Summary aggregates the outcome of a conversion batch.
type Summary struct {
	ID        string        // Unique run identifier
	Total     int           // Tracks in the batch
	Matched   int           // Tracks resolved to a catalog item
	Missed    int           // Tracks processed without a match
	Skipped   int           // Tracks never reached (cancelled run)
	MatchRate float64       // Matched / processed, 0-100
	Duration  time.Duration // Wall time of the batch
}

// Summarize tallies per-track results into a run summary.
func Summarize(results []models.ConversionResult, duration time.Duration) Summary {
	s := Summary{
		ID:       shared.GenerateID(),
		Total:    len(results),
		Duration: duration,
	}

	for _, res := range results {
		switch {
		case res.Matched != nil:
			s.Matched++
		case res.Err != "":
			s.Missed++
		default:
			s.Skipped++
		}
	}

	if processed := s.Matched + s.Missed; processed > 0 {
		s.MatchRate = float64(s.Matched) / float64(processed) * 100
	}
	return s
}
