// Package resolve turns raw user input (share links or free text) into
// playable or navigable catalog entities.
//
// Own-platform links resolve directly. Foreign links run a short-circuiting
// fallback chain: embed metadata → ISRC search → cross-platform id
// resolution → ranked free-text search. Every step degrades to the next one;
// the caller only ever sees an empty result, not an error, when the whole
// chain comes up dry.
package resolve

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/zekog/hipotify-sub000/internal/models"
	"github.com/zekog/hipotify-sub000/internal/search"
	"github.com/zekog/hipotify-sub000/internal/services"
	"github.com/zekog/hipotify-sub000/internal/shared"
)

// Action tells the caller what to do with a resolution.
type Action int

const (
	// ActionPlay carries a single resolved track, with stream info when
	// playback metadata resolved.
	ActionPlay Action = iota
	// ActionNavigate carries an entity reference to open directly.
	ActionNavigate
	// ActionResults carries a ranked candidate list.
	ActionResults
)

// Resolution is the outcome of resolving one input.
type Resolution struct {
	Action  Action
	Entity  models.Kind
	ID      string
	Track   *models.Item
	Stream  *services.StreamInfo
	Results []models.Item
	Query   string // effective query for ActionResults
}

// Recorder receives played tracks for history bookkeeping.
type Recorder interface {
	RecordTrack(ctx context.Context, item models.Item) error
}

// Resolver is the share-link resolution state machine.
type Resolver struct {
	catalog  services.Catalog
	searcher *search.Aggregator
	embed    services.EmbedFetcher
	xplat    services.CrossResolver
	recorder Recorder
	ownHost  string
	logger   *log.Logger
}

// ResolverOpts contains the collaborators of a [Resolver]. Embed, xplat and
// recorder are optional; their steps are skipped when absent.
type ResolverOpts struct {
	Catalog  services.Catalog
	Searcher *search.Aggregator
	Embed    services.EmbedFetcher
	Xplat    services.CrossResolver
	Recorder Recorder
	OwnHost  string
	Logger   *log.Logger
}

// NewResolver creates a resolver from its collaborators.
func NewResolver(opts ResolverOpts) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		catalog:  opts.Catalog,
		searcher: opts.Searcher,
		embed:    opts.Embed,
		xplat:    opts.Xplat,
		recorder: opts.Recorder,
		ownHost:  opts.OwnHost,
		logger:   logger,
	}
}

// Resolve classifies the input and dispatches to the matching path. Every
// path needs the catalog backend, so a missing endpoint is surfaced here
// rather than deep in the chain.
func (r *Resolver) Resolve(ctx context.Context, input string) (*Resolution, error) {
	if r.catalog == nil {
		return nil, shared.ErrNoEndpoint
	}

	link := Classify(input, r.ownHost)

	switch link.Class {
	case ClassOwnLink:
		return r.resolveOwn(ctx, link)
	case ClassForeignLink:
		return r.resolveForeign(ctx, link)
	default:
		return r.searchFallback(ctx, input)
	}
}

// resolveOwn handles links into our own catalog: tracks resolve stream
// metadata and play, everything else is a direct navigation target.
func (r *Resolver) resolveOwn(ctx context.Context, link Link) (*Resolution, error) {
	if link.Entity != models.KindTrack {
		return &Resolution{Action: ActionNavigate, Entity: link.Entity, ID: link.ID}, nil
	}

	stream, err := r.catalog.StreamMetadata(ctx, link.ID)
	if err != nil {
		r.logger.Debug("stream metadata unavailable for own link", "id", link.ID, "error", err)
		return &Resolution{Action: ActionNavigate, Entity: models.KindTrack, ID: link.ID}, nil
	}
	return r.playTrack(ctx, models.Item{Kind: models.KindTrack, ID: link.ID}, stream), nil
}

// resolveForeign runs the multi-tier fallback chain for a competing
// platform's share link, short-circuiting at the first success.
func (r *Resolver) resolveForeign(ctx context.Context, link Link) (*Resolution, error) {
	var title, artist string

	// Step 1: lightweight metadata from the public embed surface.
	if r.embed != nil {
		if meta, err := r.embed.FetchEmbed(ctx, link.URL); err == nil && meta != nil {
			title, artist = meta.Title, meta.Artist

			// Step 2: ISRC is ground truth; any hit is accepted as-is.
			if meta.ISRC != "" {
				if hits := r.searcher.SearchFacet(ctx, meta.ISRC, services.FacetTrack, 0, 1); len(hits) > 0 {
					return r.playTrack(ctx, hits[0], nil), nil
				}
			}
		} else if err != nil {
			r.logger.Debug("embed metadata unavailable", "url", link.URL, "error", err)
		}
	}

	// Step 3: cross-platform id resolution. A playback failure here (region
	// restriction and the like) is not an error; the resolver's metadata is
	// typically cleaner than the embed's, so it feeds the final search.
	if r.xplat != nil {
		if resolved, err := r.xplat.Resolve(ctx, link.URL); err == nil && resolved != nil {
			if resolved.Title != "" {
				title, artist = resolved.Title, resolved.Artist
			}
			if resolved.OwnID != "" {
				if stream, err := r.catalog.StreamMetadata(ctx, resolved.OwnID); err == nil {
					track := models.Item{
						Kind:       models.KindTrack,
						ID:         resolved.OwnID,
						Title:      resolved.Title,
						ArtistName: resolved.Artist,
						Cover:      resolved.Cover,
					}
					return r.playTrack(ctx, track, stream), nil
				}
				r.logger.Debug("resolved track not playable, falling through", "id", resolved.OwnID)
			}
		} else if err != nil {
			r.logger.Debug("cross-platform resolution unavailable", "url", link.URL, "error", err)
		}
	}

	// Step 4: ranked free-text search over the best metadata we gathered.
	query := strings.TrimSpace(title + " " + artist)
	if query == "" {
		return &Resolution{Action: ActionResults, Query: ""}, nil
	}
	return r.searchFallback(ctx, query)
}

func (r *Resolver) searchFallback(ctx context.Context, query string) (*Resolution, error) {
	items, err := r.searcher.Search(ctx, query, 0, 20)
	if err != nil {
		return nil, err
	}
	return &Resolution{Action: ActionResults, Results: items, Query: query}, nil
}

// playTrack builds a play resolution and records the track into history.
// Stream resolution is attempted when not already supplied; a miss does not
// demote the match.
func (r *Resolver) playTrack(ctx context.Context, track models.Item, stream *services.StreamInfo) *Resolution {
	res := &Resolution{Action: ActionPlay, Entity: models.KindTrack, ID: track.ID, Track: &track, Stream: stream}

	if res.Stream == nil {
		if s, err := r.catalog.StreamMetadata(ctx, track.ID); err == nil {
			res.Stream = s
		}
	}

	if r.recorder != nil {
		if err := r.recorder.RecordTrack(ctx, track); err != nil {
			r.logger.Debug("failed to record track in history", "id", track.ID, "error", err)
		}
	}
	return res
}
