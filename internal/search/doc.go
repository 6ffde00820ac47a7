// Package search implements the catalog search pipeline: facet fan-out,
// response scanning, deduplication, history injection and ranking.
//
// # Pipeline
//
// [Aggregator.Search] composes the stages:
//
//  1. Four facet searches (track, artist, album, playlist) run in parallel;
//     each response is a semi-structured document consumed by [ScanDocument].
//  2. For pure Latin queries, a [Translation] lookup may trigger a second
//     fan-out with the translated artist name; both passes contribute.
//  3. [Deduper] suppresses (kind, id) duplicates, plus same-name albums and
//     artists under different ids.
//  4. [InjectHistory] force-includes recently played items matching the query.
//  5. [Rank] orders everything by the additive score in [Weights], stable on
//     ties.
//
// Every remote failure inside the pipeline degrades to fewer results; the
// only surfaced error is a missing catalog endpoint.
package search
