package search

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/zekog/hipotify-sub000/internal/models"
	"github.com/zekog/hipotify-sub000/internal/services"
	"github.com/zekog/hipotify-sub000/internal/shared"
)

// HistorySource provides a point-in-time snapshot of recently played items.
type HistorySource interface {
	Snapshot(ctx context.Context) (models.HistorySnapshot, error)
}

// Aggregator composes facet fan-out, scanning, deduplication, history
// injection and ranking into the single search entry point.
type Aggregator struct {
	catalog    services.Catalog
	translator *Translation
	history    HistorySource
	weights    Weights
	logger     *log.Logger
}

// NewAggregator wires the search pipeline. translator and history may be nil;
// the corresponding passes are skipped.
func NewAggregator(catalog services.Catalog, translator *Translation, history HistorySource, weights Weights, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Aggregator{
		catalog:    catalog,
		translator: translator,
		history:    history,
		weights:    weights,
		logger:     logger,
	}
}

// Search fans the query out across all four facets in parallel, merges and
// deduplicates the scanned items, injects matching history entries and
// returns the set ranked by score.
//
// When the query is pure Latin script and the translation lookup produces a
// high-confidence different name, a second fan-out runs with the translated
// name and both contribute to the same aggregate.
//
// offset/limit bound each remote facet call, not the merged set, so the
// returned count can exceed limit. Per-facet failures degrade to zero items
// from that facet.
func (a *Aggregator) Search(ctx context.Context, query string, offset, limit int) ([]models.Item, error) {
	if a.catalog == nil {
		return nil, shared.ErrNoEndpoint
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, shared.ErrInvalidInput
	}

	batches := a.fanOut(ctx, query, offset, limit)

	if IsLatin(query) {
		if translated := a.translator.Translate(ctx, query); translated != "" && !strings.EqualFold(translated, query) {
			a.logger.Debug("running translated search pass", "query", query, "translated", translated)
			batches = append(batches, a.fanOut(ctx, translated, offset, limit)...)
		}
	}

	dedupe := NewDeduper()
	var merged []models.Item
	for _, batch := range batches {
		for _, item := range batch {
			if dedupe.Admit(item) {
				merged = append(merged, item)
			}
		}
	}

	snap := a.snapshot(ctx)
	merged = InjectHistory(query, snap, merged, dedupe)
	Rank(merged, query, snap, a.weights)

	return merged, nil
}

// SearchFacet is the scoped single-kind search primitive. Failures degrade to
// an empty result, never an error.
func (a *Aggregator) SearchFacet(ctx context.Context, query string, facet services.Facet, offset, limit int) []models.Item {
	if a.catalog == nil {
		return nil
	}

	doc, err := a.catalog.SearchFacet(ctx, query, facet, offset, limit)
	if err != nil {
		a.logger.Debug("facet search degraded", "facet", facet, "query", query, "error", err)
		return nil
	}
	return ScanDocument(doc)
}

// fanOut issues one search per facet concurrently and joins once all have
// settled. Each goroutine fills its own slot; the merge happens after the
// join, so no locking is needed.
func (a *Aggregator) fanOut(ctx context.Context, query string, offset, limit int) [][]models.Item {
	results := make([][]models.Item, len(services.Facets))

	var wg sync.WaitGroup
	for i, facet := range services.Facets {
		wg.Add(1)
		go func(slot int, facet services.Facet) {
			defer wg.Done()
			results[slot] = a.SearchFacet(ctx, query, facet, offset, limit)
		}(i, facet)
	}
	wg.Wait()

	return results
}

// snapshot reads the history collaborator, degrading to an empty snapshot.
func (a *Aggregator) snapshot(ctx context.Context) models.HistorySnapshot {
	if a.history == nil {
		return models.HistorySnapshot{}
	}
	snap, err := a.history.Snapshot(ctx)
	if err != nil {
		a.logger.Debug("history snapshot degraded", "error", err)
		return models.HistorySnapshot{}
	}
	return snap
}
