package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zekog/hipotify-sub000/internal/formatter"
	"github.com/zekog/hipotify-sub000/internal/shared"
)

// Search runs a ranked cross-facet catalog search.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if r.searcher == nil {
		return fmt.Errorf("%w: search pipeline not initialized", shared.ErrServiceUnavailable)
	}

	query := cmd.StringArg("query")
	limit := cmd.Int("limit")
	offset := cmd.Int("offset")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if query == "" {
		return fmt.Errorf("%w: query argument is required", shared.ErrMissingArgument)
	}

	r.logger.Info("searching catalog", "query", query, "limit", limit)

	items, err := r.searcher.Search(ctx, query, offset, limit)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(items, pretty)
	}

	return r.writePlain("%s", formatter.FormatResults(items))
}
