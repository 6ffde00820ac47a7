package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zekog/hipotify-sub000/internal/formatter"
	"github.com/zekog/hipotify-sub000/internal/resolve"
	"github.com/zekog/hipotify-sub000/internal/shared"
)

// Resolve turns a share link or free-text query into a playable resolution.
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	if r.resolver == nil {
		return fmt.Errorf("%w: resolver not initialized", shared.ErrServiceUnavailable)
	}

	input := cmd.StringArg("input")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if input == "" {
		return fmt.Errorf("%w: input argument is required", shared.ErrMissingArgument)
	}

	r.logger.Info("resolving input", "input", input)

	res, err := r.resolver.Resolve(ctx, input)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(res, pretty)
	}

	switch res.Action {
	case resolve.ActionPlay:
		r.writePlain("Now playing:\n\n")
		if res.Track != nil {
			if res.Track.Title != "" {
				r.writePlain("Title: %s\n", res.Track.Title)
			}
			if res.Track.ArtistName != "" {
				r.writePlain("Artist: %s\n", res.Track.ArtistName)
			}
			if res.Track.AlbumTitle != "" {
				r.writePlain("Album: %s\n", res.Track.AlbumTitle)
			}
		}
		r.writePlain("ID: %s\n", res.ID)
		if res.Stream != nil {
			r.writePlain("Stream: %s (%s/%s)\n", res.Stream.URL, res.Stream.Quality, res.Stream.Codec)
		}
	case resolve.ActionNavigate:
		r.writePlain("Open %s %s\n", res.Entity, res.ID)
	default:
		if res.Query != "" {
			r.writePlain("Results for %q:\n\n", res.Query)
		}
		r.writePlain("%s", formatter.FormatResults(res.Results))
	}

	return nil
}
