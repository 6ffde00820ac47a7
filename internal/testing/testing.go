// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/zekog/hipotify-sub000/internal/models"
	"github.com/zekog/hipotify-sub000/internal/services"
)

// FakeCatalog is a test double for [services.Catalog] serving canned raw
// documents keyed by "<facet>|<query>".
type FakeCatalog struct {
	Docs    map[string]json.RawMessage
	Albums  map[string]json.RawMessage
	Streams map[string]*services.StreamInfo
	Err     error

	mu    sync.Mutex
	calls []string
}

// DocKey builds the lookup key used by SearchFacet.
func DocKey(facet services.Facet, query string) string {
	return string(facet) + "|" + query
}

func (f *FakeCatalog) SearchFacet(ctx context.Context, query string, facet services.Facet, offset, limit int) (json.RawMessage, error) {
	f.record(DocKey(facet, query))
	if f.Err != nil {
		return nil, f.Err
	}
	if doc, ok := f.Docs[DocKey(facet, query)]; ok {
		return doc, nil
	}
	return json.RawMessage(`{"items": []}`), nil
}

func (f *FakeCatalog) AlbumTracks(ctx context.Context, albumID string) (json.RawMessage, error) {
	f.record("album|" + albumID)
	if f.Err != nil {
		return nil, f.Err
	}
	if doc, ok := f.Albums[albumID]; ok {
		return doc, nil
	}
	return nil, errors.New("album not found: " + albumID)
}

func (f *FakeCatalog) StreamMetadata(ctx context.Context, trackID string) (*services.StreamInfo, error) {
	f.record("stream|" + trackID)
	if f.Err != nil {
		return nil, f.Err
	}
	if info, ok := f.Streams[trackID]; ok {
		return info, nil
	}
	return nil, errors.New("stream unavailable: " + trackID)
}

func (f *FakeCatalog) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

// Calls returns the recorded call keys in order.
func (f *FakeCatalog) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many recorded calls match the given key.
func (f *FakeCatalog) CallCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if call == key {
			n++
		}
	}
	return n
}

// FakeTranslator is a test double for [services.Translator]
type FakeTranslator struct {
	Candidates []services.ArtistCandidate
	Err        error
}

func (f *FakeTranslator) SearchArtist(ctx context.Context, name string) ([]services.ArtistCandidate, error) {
	return f.Candidates, f.Err
}

// FakeEmbed is a test double for [services.EmbedFetcher] keyed by URL
type FakeEmbed struct {
	Meta map[string]*services.EmbedMetadata
	Err  error
}

func (f *FakeEmbed) FetchEmbed(ctx context.Context, url string) (*services.EmbedMetadata, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if meta, ok := f.Meta[url]; ok {
		return meta, nil
	}
	return nil, errors.New("no embed for " + url)
}

// FakeXplat is a test double for [services.CrossResolver] keyed by URL
type FakeXplat struct {
	Links map[string]*services.ResolvedLink
	Err   error
}

func (f *FakeXplat) Resolve(ctx context.Context, url string) (*services.ResolvedLink, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Links[url], nil
}

// FakeHistory serves a fixed snapshot
type FakeHistory struct {
	Snap models.HistorySnapshot
	Err  error
}

func (f *FakeHistory) Snapshot(ctx context.Context) (models.HistorySnapshot, error) {
	return f.Snap, f.Err
}

// FakeRecorder captures recorded track plays
type FakeRecorder struct {
	mu       sync.Mutex
	Recorded []models.Item
}

func (f *FakeRecorder) RecordTrack(ctx context.Context, item models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Recorded = append(f.Recorded, item)
	return nil
}

// TrackDoc builds a raw search document holding the given track objects.
// Each entry renders as {"id", "title", "duration", "artist": {...}}.
func TrackDoc(tracks ...models.Item) json.RawMessage {
	type ref struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	}
	type obj struct {
		ID         string  `json:"id"`
		Title      string  `json:"title"`
		Duration   int     `json:"duration"`
		ISRC       string  `json:"isrc,omitempty"`
		Popularity float64 `json:"popularity,omitempty"`
		Artist     *ref    `json:"artist,omitempty"`
		Album      *ref    `json:"album,omitempty"`
	}

	items := make([]obj, 0, len(tracks))
	for _, tr := range tracks {
		o := obj{ID: tr.ID, Title: tr.Title, Duration: tr.Duration, ISRC: tr.ISRC, Popularity: tr.Popularity}
		if tr.ArtistName != "" || tr.ArtistID != "" {
			o.Artist = &ref{ID: tr.ArtistID, Name: tr.ArtistName}
		}
		if tr.AlbumTitle != "" || tr.AlbumID != "" {
			o.Album = &ref{ID: tr.AlbumID, Name: tr.AlbumTitle}
		}
		items = append(items, o)
	}

	doc, _ := json.Marshal(map[string]any{"tracks": items})
	return doc
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
