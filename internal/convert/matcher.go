// Package convert reconciles an externally sourced playlist's track list
// against the catalog, one track at a time.
//
// Each track walks a fixed tier ladder until one succeeds: ISRC lookup,
// album-scoped search, strict title/artist/duration matching, then relaxed
// keyword containment. The batch is deliberately sequential with a paced
// delay between remote calls, and honors cooperative cancellation between
// tracks (an in-flight call is allowed to complete).
package convert

import (
	"context"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zekog/hipotify-sub000/internal/models"
	"github.com/zekog/hipotify-sub000/internal/search"
	"github.com/zekog/hipotify-sub000/internal/services"
	"golang.org/x/time/rate"
)

// errNotFound is the per-track terminal error string; it marks an entry as
// processed-but-unmatched, distinct from not processed at all.
const errNotFound = "Not found"

// Tolerances holds the matcher's fixed-but-tunable constants.
type Tolerances struct {
	DurationStrict  int           // max |duration delta| in seconds for the strict tier
	DurationRelaxed int           // max delta for the relaxed tier's artist-mismatch escape
	RequestDelay    time.Duration // pacing between remote calls
	SearchLimit     int           // candidates fetched per query variant
	AlbumLimit      int           // album candidates considered in the album tier
}

// DefaultTolerances returns the stock matcher constants.
func DefaultTolerances() Tolerances {
	return Tolerances{
		DurationStrict:  5,
		DurationRelaxed: 10,
		RequestDelay:    120 * time.Millisecond,
		SearchLimit:     10,
		AlbumLimit:      5,
	}
}

// Matcher runs the per-track reconciliation pipeline.
type Matcher struct {
	catalog  services.Catalog
	searcher *search.Aggregator
	tol      Tolerances
	limiter  *rate.Limiter
	logger   *log.Logger
}

// NewMatcher creates a matcher over the catalog's scoped search primitive.
func NewMatcher(catalog services.Catalog, searcher *search.Aggregator, tol Tolerances, logger *log.Logger) *Matcher {
	def := DefaultTolerances()
	if tol.DurationStrict <= 0 {
		tol.DurationStrict = def.DurationStrict
	}
	if tol.DurationRelaxed <= 0 {
		tol.DurationRelaxed = def.DurationRelaxed
	}
	if tol.RequestDelay <= 0 {
		tol.RequestDelay = def.RequestDelay
	}
	if tol.SearchLimit <= 0 {
		tol.SearchLimit = def.SearchLimit
	}
	if tol.AlbumLimit <= 0 {
		tol.AlbumLimit = def.AlbumLimit
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Matcher{
		catalog:  catalog,
		searcher: searcher,
		tol:      tol,
		limiter:  rate.NewLimiter(rate.Every(tol.RequestDelay), 1),
		logger:   logger,
	}
}

// MatchBatch processes the source tracks sequentially. The stop check runs
// before each track; entries not reached keep a zero Matched/Err pair.
// Per-track misses are recorded on that entry and never abort the batch.
func (m *Matcher) MatchBatch(ctx context.Context, tracks []models.SourceTrack, progress chan<- Progress) []models.ConversionResult {
	results := make([]models.ConversionResult, len(tracks))
	for i := range tracks {
		results[i].Source = tracks[i]
	}

	for i, src := range tracks {
		if ctx.Err() != nil {
			m.logger.Info("conversion stopped", "processed", i, "total", len(tracks))
			break
		}

		sendProgress(progress, searchingUpdate(i+1, len(tracks), src))

		item, ok := m.matchOne(ctx, src)
		if ctx.Err() != nil && !ok {
			// Cancelled mid-track; leave the entry unprocessed rather than
			// reporting a spurious miss.
			break
		}

		if ok {
			results[i].Matched = &item
			sendProgress(progress, matchedUpdate(i+1, len(tracks), item))
		} else {
			results[i].Err = errNotFound
			sendProgress(progress, missedUpdate(i+1, len(tracks), src))
		}
	}

	return results
}

// matchOne walks the tier ladder for a single source track.
func (m *Matcher) matchOne(ctx context.Context, src models.SourceTrack) (models.Item, bool) {
	// Tier 1: ISRC is authoritative; any hit wins unconditionally.
	if src.ISRC != "" {
		if hits := m.searchTracks(ctx, src.ISRC, 1); len(hits) > 0 {
			return hits[0], true
		}
	}

	// Tier 2: album-scoped lookup when both album and artist are known.
	if src.Album != "" && src.Artist != "" {
		if item, ok := m.matchViaAlbum(ctx, src); ok {
			return item, true
		}
	}

	// Tiers 3 and 4 share one pass over the query variants: each variant's
	// candidates get a strict scan first, then a relaxed one.
	for _, variant := range queryVariants(src) {
		candidates := m.searchTracks(ctx, variant, m.tol.SearchLimit)

		if item, ok := strictPick(src, candidates, m.tol); ok {
			return item, true
		}
		if item, ok := relaxedPick(src, candidates, m.tol); ok {
			return item, true
		}
	}

	return models.Item{}, false
}

// matchViaAlbum searches albums for "<album> <artist>", and inside each
// album whose artist overlaps the source artist looks for a track whose
// title equals or contains/is contained by the source title.
func (m *Matcher) matchViaAlbum(ctx context.Context, src models.SourceTrack) (models.Item, bool) {
	m.wait(ctx)
	albums := filterKind(m.searcher.SearchFacet(ctx, src.Album+" "+src.Artist, services.FacetAlbum, 0, m.tol.AlbumLimit), models.KindAlbum)

	for _, album := range albums {
		if !search.KeywordsOverlap(album.ArtistName, src.Artist) {
			continue
		}

		m.wait(ctx)
		doc, err := m.catalog.AlbumTracks(ctx, album.ID)
		if err != nil {
			m.logger.Debug("album track listing degraded", "album", album.ID, "error", err)
			continue
		}

		for _, track := range filterKind(search.ScanDocument(doc), models.KindTrack) {
			if !titleMatches(track.Title, src.Title) {
				continue
			}
			if track.AlbumID == "" {
				track.AlbumID = album.ID
				track.AlbumTitle = album.Title
			}
			return track, true
		}
	}

	return models.Item{}, false
}

// strictPick accepts the first candidate passing every strict gate.
func strictPick(src models.SourceTrack, candidates []models.Item, tol Tolerances) (models.Item, bool) {
	for _, cand := range candidates {
		if !versionOK(src, cand) {
			continue
		}
		if src.Artist != "" && !search.KeywordsOverlap(cand.ArtistName, src.Artist) {
			continue
		}
		if src.Duration > 0 && cand.Duration > 0 && absInt(cand.Duration-src.Duration) > tol.DurationStrict {
			continue
		}
		if !titleMatches(cand.Title, src.Title) {
			continue
		}
		return cand, true
	}
	return models.Item{}, false
}

// relaxedPick accepts a candidate on keyword containment when the strict
// scan came up empty. The remix/cover gates still apply.
func relaxedPick(src models.SourceTrack, candidates []models.Item, tol Tolerances) (models.Item, bool) {
	for _, cand := range candidates {
		if !versionOK(src, cand) {
			continue
		}
		if search.ContainmentRatio(src.Title, cand.Title) < 0.5 {
			continue
		}

		switch {
		case src.Artist == "":
			return cand, true
		case search.KeywordsOverlap(cand.ArtistName, src.Artist):
			return cand, true
		case src.Duration > 0 && cand.Duration > 0 &&
			absInt(cand.Duration-src.Duration) <= tol.DurationRelaxed &&
			cand.Title == src.Title:
			// Artist mismatch escape: near-identical duration and the raw
			// titles agree exactly.
			return cand, true
		}
	}
	return models.Item{}, false
}

// versionOK rejects alternate-version candidates the source is not flagged as.
func versionOK(src models.SourceTrack, cand models.Item) bool {
	if search.IsRemixTitle(cand.Title) && !src.IsRemix {
		return false
	}
	if search.IsCoverTitle(cand.Title) && !src.IsCover {
		return false
	}
	return true
}

// titleMatches reports normalized equality or sub/super-string containment.
func titleMatches(candidate, source string) bool {
	c, s := search.Normalize(candidate), search.Normalize(source)
	if c == "" || s == "" {
		return false
	}
	return c == s || strings.Contains(c, s) || strings.Contains(s, c)
}

// queryVariants generates the search phrasings tried in order:
// title+artist, title alone, title+album.
func queryVariants(src models.SourceTrack) []string {
	var variants []string
	add := func(q string) {
		q = strings.TrimSpace(q)
		if q != "" && !slices.Contains(variants, q) {
			variants = append(variants, q)
		}
	}

	if src.Artist != "" {
		add(src.Title + " " + src.Artist)
	}
	add(src.Title)
	if src.Album != "" {
		add(src.Title + " " + src.Album)
	}
	return variants
}

// searchTracks runs a paced track-scoped search, keeping only track items.
func (m *Matcher) searchTracks(ctx context.Context, query string, limit int) []models.Item {
	m.wait(ctx)
	return filterKind(m.searcher.SearchFacet(ctx, query, services.FacetTrack, 0, limit), models.KindTrack)
}

// wait paces remote calls; a cancelled context falls through and the
// subsequent call degrades on its own.
func (m *Matcher) wait(ctx context.Context) {
	_ = m.limiter.Wait(ctx)
}

func filterKind(items []models.Item, kind models.Kind) []models.Item {
	out := items[:0:0]
	for _, item := range items {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
