package convert

import (
	"fmt"

	"github.com/zekog/hipotify-sub000/internal/models"
)

// Progress is a progress event emitted while a batch runs.
//
// Sent to the CLI layer for display; consumers that lag simply miss events.
type Progress struct {
	Phase   Phase  // Current matching phase
	Step    int    // 1-based track number within the batch
	Total   int    // Total tracks in the batch
	Message string // Human-readable message for display
}

// Matching phase enumeration
type Phase int

const (
	Searching Phase = iota
	Matched
	Missed
)

func (p Phase) String() string {
	switch p {
	case Searching:
		return "searching"
	case Matched:
		return "matched"
	case Missed:
		return "missed"
	default:
		return ""
	}
}

func searchingUpdate(step, total int, src models.SourceTrack) Progress {
	return Progress{
		Phase:   Searching,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, src.Artist, src.Title),
	}
}

func matchedUpdate(step, total int, item models.Item) Progress {
	return Progress{
		Phase:   Matched,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s - %s", step, total, item.ArtistName, item.Title),
	}
}

func missedUpdate(step, total int, src models.SourceTrack) Progress {
	return Progress{
		Phase:   Missed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s - %s", step, total, src.Artist, src.Title),
	}
}

func sendProgress(progress chan<- Progress, update Progress) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
