package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zekog/hipotify-sub000/internal/formatter"
	"github.com/zekog/hipotify-sub000/internal/shared"
)

// History prints the recently played lists.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	if r.history == nil {
		return fmt.Errorf("%w: history database not initialized, run 'hipotify setup' first", shared.ErrServiceUnavailable)
	}

	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	snap, err := r.history.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if useJSON {
		return r.writeJSON(snap, pretty)
	}

	return r.writePlain("%s", formatter.FormatHistory(snap))
}
