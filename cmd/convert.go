package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/zekog/hipotify-sub000/internal/convert"
	"github.com/zekog/hipotify-sub000/internal/formatter"
	"github.com/zekog/hipotify-sub000/internal/models"
	"github.com/zekog/hipotify-sub000/internal/shared"
)

// Convert matches a JSON-exported track list against the catalog and prints
// a per-track report.
func (r *Runner) Convert(ctx context.Context, cmd *cli.Command) error {
	if r.matcher == nil {
		return fmt.Errorf("%w: matcher not initialized", shared.ErrServiceUnavailable)
	}

	filePath := cmd.String("file")
	outputPath := cmd.String("output")
	writeCSV := cmd.Bool("csv") || outputPath != ""
	quiet := cmd.Bool("quiet")

	tracks, err := loadSourceTracks(filePath)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		return fmt.Errorf("%w: %s holds no tracks", shared.ErrInvalidInput, filePath)
	}

	r.logger.Info("starting conversion", "file", filePath, "tracks", len(tracks))
	r.writePlain("Converting %d tracks...\n\n", len(tracks))

	progressCh := make(chan convert.Progress, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if quiet || update.Phase == convert.Searching {
				continue
			}
			r.writePlain("  %s\n", update.Message)
		}
	}()

	start := time.Now()
	results := r.matcher.MatchBatch(ctx, tracks, progressCh)
	close(progressCh)
	<-done

	summary := convert.Summarize(results, time.Since(start))

	r.writePlain("\n%s", formatter.FormatConversionReport(results, summary))

	if writeCSV {
		if outputPath == "" {
			outputPath = strings.TrimSuffix(filePath, ".json") + "_report.csv"
		}
		path, err := formatter.WriteReportCSV(results, summary, outputPath)
		if err != nil {
			return err
		}
		r.writePlain("\nReport written to %s\n", path)
	}

	return nil
}

// loadSourceTracks reads a JSON file holding either a bare track array or a
// {"tracks": [...]} wrapper.
func loadSourceTracks(path string) ([]models.SourceTrack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read track list: %w", err)
	}

	var tracks []models.SourceTrack
	if err := json.Unmarshal(data, &tracks); err == nil {
		return tracks, nil
	}

	var wrapper struct {
		Tracks []models.SourceTrack `json:"tracks"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %s is not a valid track list: %v", shared.ErrInvalidInput, path, err)
	}
	return wrapper.Tracks, nil
}
