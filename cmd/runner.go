package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"github.com/zekog/hipotify-sub000/internal/convert"
	"github.com/zekog/hipotify-sub000/internal/models"
	"github.com/zekog/hipotify-sub000/internal/resolve"
	"github.com/zekog/hipotify-sub000/internal/search"
	"github.com/zekog/hipotify-sub000/internal/services"
	"github.com/zekog/hipotify-sub000/internal/shared"
)

// historyReader exposes the history lists the CLI displays.
type historyReader interface {
	Snapshot(ctx context.Context) (models.HistorySnapshot, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	catalog  services.Catalog
	searcher *search.Aggregator
	resolver *resolve.Resolver
	matcher  *convert.Matcher
	history  historyReader
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Catalog  services.Catalog
	Searcher *search.Aggregator
	Resolver *resolve.Resolver
	Matcher  *convert.Matcher
	History  historyReader
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:   opts.Config,
		catalog:  opts.Catalog,
		searcher: opts.Searcher,
		resolver: opts.Resolver,
		matcher:  opts.Matcher,
		history:  opts.History,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, searchCommand, resolveCommand, convertCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// rankingWeights maps the TOML tunables onto the scorer's weight set.
func rankingWeights(cfg shared.RankingConfig) search.Weights {
	return search.Weights{
		Base:             cfg.Base,
		TitleExact:       cfg.TitleExact,
		TitlePrefix:      cfg.TitlePrefix,
		TitleSubstring:   cfg.TitleSubstring,
		ArtistExact:      cfg.ArtistExact,
		ArtistPrefix:     cfg.ArtistPrefix,
		ArtistSubstring:  cfg.ArtistSubstring,
		AlbumExact:       cfg.AlbumExact,
		AlbumPrefix:      cfg.AlbumPrefix,
		AlbumSubstring:   cfg.AlbumSubstring,
		ContextArtist:    cfg.ContextArtist,
		ContextAlbum:     cfg.ContextAlbum,
		Transliteration:  cfg.Transliteration,
		HistoryDirect:    cfg.HistoryDirect,
		HistoryArtist:    cfg.HistoryArtist,
		HistoryAlbum:     cfg.HistoryAlbum,
		PopularityFactor: cfg.PopularityFactor,
		PlaylistBase:     cfg.PlaylistBase,
	}
}

// matcherTolerances maps the TOML tunables onto the matcher's constants.
func matcherTolerances(cfg shared.MatcherConfig) convert.Tolerances {
	tol := convert.DefaultTolerances()
	if cfg.DurationToleranceSec > 0 {
		tol.DurationStrict = cfg.DurationToleranceSec
	}
	if cfg.RelaxedDurationToleranceSec > 0 {
		tol.DurationRelaxed = cfg.RelaxedDurationToleranceSec
	}
	if cfg.RequestDelayMS > 0 {
		tol.RequestDelay = time.Duration(cfg.RequestDelayMS) * time.Millisecond
	}
	if cfg.SearchLimit > 0 {
		tol.SearchLimit = cfg.SearchLimit
	}
	return tol
}
