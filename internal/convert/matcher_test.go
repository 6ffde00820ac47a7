package convert

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/zekog/hipotify-sub000/internal/models"
	"github.com/zekog/hipotify-sub000/internal/search"
	"github.com/zekog/hipotify-sub000/internal/services"
	tu "github.com/zekog/hipotify-sub000/internal/testing"
)

// fastTolerances keeps the pacing delay negligible in tests.
func fastTolerances() Tolerances {
	tol := DefaultTolerances()
	tol.RequestDelay = time.Millisecond
	return tol
}

func newTestMatcher(catalog *tu.FakeCatalog) *Matcher {
	searcher := search.NewAggregator(catalog, nil, nil, search.DefaultWeights(), nil)
	return NewMatcher(catalog, searcher, fastTolerances(), nil)
}

func TestMatchBatchTiers(t *testing.T) {
	ctx := context.Background()

	t.Run("isrc match short-circuits everything else", func(t *testing.T) {
		catalog := &tu.FakeCatalog{
			Docs: map[string]json.RawMessage{
				tu.DocKey(services.FacetTrack, "USRC17607839"): tu.TrackDoc(
					models.Item{Kind: models.KindTrack, ID: "t1", Title: "Completely Different Name", Duration: 200}),
			},
		}
		m := newTestMatcher(catalog)

		results := m.MatchBatch(ctx, []models.SourceTrack{
			{Title: "Song", Artist: "Band", ISRC: "USRC17607839"},
		}, nil)

		if results[0].Matched == nil || results[0].Matched.ID != "t1" {
			t.Fatalf("got %+v, want isrc hit t1", results[0])
		}
		if got := len(catalog.Calls()); got != 1 {
			t.Errorf("remote calls = %v, want only the isrc lookup", catalog.Calls())
		}
	})

	t.Run("album tier finds the track inside a matching album", func(t *testing.T) {
		catalog := &tu.FakeCatalog{
			Docs: map[string]json.RawMessage{
				tu.DocKey(services.FacetAlbum, "Great Album Band"): json.RawMessage(
					`{"albums": [{"id": "al1", "title": "Great Album", "cover": "c.jpg",
						"artist": {"id": "ar1", "name": "Band"}}]}`),
			},
			Albums: map[string]json.RawMessage{
				"al1": tu.TrackDoc(
					models.Item{Kind: models.KindTrack, ID: "t5", Title: "Wanted Song", Duration: 180},
					models.Item{Kind: models.KindTrack, ID: "t6", Title: "Other Song", Duration: 210},
				),
			},
		}
		m := newTestMatcher(catalog)

		results := m.MatchBatch(ctx, []models.SourceTrack{
			{Title: "Wanted Song", Artist: "Band", Album: "Great Album"},
		}, nil)

		got := results[0].Matched
		if got == nil || got.ID != "t5" {
			t.Fatalf("got %+v, want album track t5", results[0])
		}
		if got.AlbumID != "al1" || got.AlbumTitle != "Great Album" {
			t.Errorf("album context = (%q, %q), want backfilled from the album", got.AlbumID, got.AlbumTitle)
		}
	})

	t.Run("album tier skips albums by other artists", func(t *testing.T) {
		catalog := &tu.FakeCatalog{
			Docs: map[string]json.RawMessage{
				tu.DocKey(services.FacetAlbum, "Great Album Band"): json.RawMessage(
					`{"albums": [{"id": "al2", "title": "Great Album", "cover": "c.jpg",
						"artist": {"id": "ar9", "name": "Impostor"}}]}`),
			},
		}
		m := newTestMatcher(catalog)

		results := m.MatchBatch(ctx, []models.SourceTrack{
			{Title: "Wanted Song", Artist: "Band", Album: "Great Album"},
		}, nil)

		if results[0].Matched != nil {
			t.Fatalf("got %+v, want no match", results[0])
		}
		if catalog.CallCount("album|al2") != 0 {
			t.Error("album track listing should not be fetched for a mismatched artist")
		}
	})

	t.Run("strict tier needs artist overlap and close duration", func(t *testing.T) {
		catalog := &tu.FakeCatalog{
			Docs: map[string]json.RawMessage{
				tu.DocKey(services.FacetTrack, "Song Band"): tu.TrackDoc(
					models.Item{Kind: models.KindTrack, ID: "bad1", Title: "Song", ArtistID: "x1", ArtistName: "Nobody", Duration: 200},
					models.Item{Kind: models.KindTrack, ID: "bad2", Title: "Song", ArtistID: "x2", ArtistName: "Band", Duration: 260},
					models.Item{Kind: models.KindTrack, ID: "good", Title: "Song", ArtistID: "x3", ArtistName: "Band", Duration: 203},
				),
			},
		}
		m := newTestMatcher(catalog)

		results := m.MatchBatch(ctx, []models.SourceTrack{
			{Title: "Song", Artist: "Band", Duration: 200},
		}, nil)

		if results[0].Matched == nil || results[0].Matched.ID != "good" {
			t.Fatalf("got %+v, want the candidate passing all strict gates", results[0])
		}
	})

	t.Run("remix candidates are rejected for a plain source", func(t *testing.T) {
		catalog := &tu.FakeCatalog{
			Docs: map[string]json.RawMessage{
				tu.DocKey(services.FacetTrack, "Song Band"): tu.TrackDoc(
					models.Item{Kind: models.KindTrack, ID: "r1", Title: "Song (Club Remix)", ArtistID: "x1", ArtistName: "Band", Duration: 200}),
			},
		}
		m := newTestMatcher(catalog)

		results := m.MatchBatch(ctx, []models.SourceTrack{
			{Title: "Song", Artist: "Band", Duration: 200},
		}, nil)

		if results[0].Matched != nil {
			t.Fatalf("got %+v, want remix rejected", results[0])
		}
		if results[0].Err != "Not found" {
			t.Errorf("Err = %q, want terminal miss", results[0].Err)
		}
	})

	t.Run("remix source accepts a remix candidate", func(t *testing.T) {
		catalog := &tu.FakeCatalog{
			Docs: map[string]json.RawMessage{
				tu.DocKey(services.FacetTrack, "Song (Club Remix) Band"): tu.TrackDoc(
					models.Item{Kind: models.KindTrack, ID: "r1", Title: "Song (Club Remix)", ArtistID: "x1", ArtistName: "Band", Duration: 200}),
			},
		}
		m := newTestMatcher(catalog)

		results := m.MatchBatch(ctx, []models.SourceTrack{
			{Title: "Song (Club Remix)", Artist: "Band", Duration: 200, IsRemix: true},
		}, nil)

		if results[0].Matched == nil || results[0].Matched.ID != "r1" {
			t.Fatalf("got %+v, want remix accepted for remix source", results[0])
		}
	})

	t.Run("relaxed tier accepts keyword containment without artist", func(t *testing.T) {
		// Word order differs, so the strict tier's substring check fails and
		// only keyword-set containment can accept the candidate.
		catalog := &tu.FakeCatalog{
			Docs: map[string]json.RawMessage{
				tu.DocKey(services.FacetTrack, "Queen Dancing"): tu.TrackDoc(
					models.Item{Kind: models.KindTrack, ID: "rx1", Title: "Dancing Queen (2024 Remaster)", ArtistID: "a1", ArtistName: "ABBA", Duration: 231}),
			},
		}
		m := newTestMatcher(catalog)

		results := m.MatchBatch(ctx, []models.SourceTrack{
			{Title: "Queen Dancing"},
		}, nil)

		if results[0].Matched == nil || results[0].Matched.ID != "rx1" {
			t.Fatalf("got %+v, want relaxed containment match", results[0])
		}
	})

	t.Run("query variants are tried in order until one hits", func(t *testing.T) {
		catalog := &tu.FakeCatalog{
			Docs: map[string]json.RawMessage{
				// Only the bare-title variant has a usable candidate.
				tu.DocKey(services.FacetTrack, "Song"): tu.TrackDoc(
					models.Item{Kind: models.KindTrack, ID: "v1", Title: "Song", ArtistID: "x1", ArtistName: "Band", Duration: 200}),
			},
		}
		m := newTestMatcher(catalog)

		results := m.MatchBatch(ctx, []models.SourceTrack{
			{Title: "Song", Artist: "Band", Album: "Record", Duration: 200},
		}, nil)

		if results[0].Matched == nil || results[0].Matched.ID != "v1" {
			t.Fatalf("got %+v, want hit from the second variant", results[0])
		}
		if catalog.CallCount(tu.DocKey(services.FacetTrack, "Song Record")) != 0 {
			t.Error("later variants should not run after a hit")
		}
	})

	t.Run("total miss is recorded per track and the batch continues", func(t *testing.T) {
		catalog := &tu.FakeCatalog{
			Docs: map[string]json.RawMessage{
				tu.DocKey(services.FacetTrack, "Known Band"): tu.TrackDoc(
					models.Item{Kind: models.KindTrack, ID: "k1", Title: "Known", ArtistID: "x1", ArtistName: "Band", Duration: 100}),
			},
		}
		m := newTestMatcher(catalog)

		results := m.MatchBatch(ctx, []models.SourceTrack{
			{Title: "Unfindable", Artist: "Ghost"},
			{Title: "Known", Artist: "Band", Duration: 100},
		}, nil)

		if results[0].Err != "Not found" || results[0].Matched != nil {
			t.Errorf("first result = %+v, want miss", results[0])
		}
		if results[1].Matched == nil || results[1].Matched.ID != "k1" {
			t.Errorf("second result = %+v, want hit after a miss", results[1])
		}
	})
}

func TestMatchBatchIdempotence(t *testing.T) {
	ctx := context.Background()

	catalog := &tu.FakeCatalog{
		Docs: map[string]json.RawMessage{
			tu.DocKey(services.FacetTrack, "USRC17607839"): tu.TrackDoc(
				models.Item{Kind: models.KindTrack, ID: "t1", Title: "Song", ArtistID: "ar1", ArtistName: "Band", Duration: 200}),
			tu.DocKey(services.FacetTrack, "Other Song Band"): tu.TrackDoc(
				models.Item{Kind: models.KindTrack, ID: "t2", Title: "Other Song", ArtistID: "ar1", ArtistName: "Band", Duration: 180}),
		},
	}
	m := newTestMatcher(catalog)

	tracks := []models.SourceTrack{
		{Title: "Song", Artist: "Band", ISRC: "USRC17607839"},
		{Title: "Other Song", Artist: "Band", Duration: 182},
		{Title: "Ghost Song", Artist: "Nobody"},
	}

	first := m.MatchBatch(ctx, tracks, nil)
	second := m.MatchBatch(ctx, tracks, nil)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated batch diverged:\nfirst  = %+v\nsecond = %+v", first, second)
	}
	if first[0].Matched == nil || first[1].Matched == nil || first[2].Err == "" {
		t.Fatalf("unexpected outcomes: %+v", first)
	}
}

func TestMatchBatchCancellation(t *testing.T) {
	t.Run("cancelled context leaves tracks unprocessed", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		m := newTestMatcher(&tu.FakeCatalog{})
		tracks := []models.SourceTrack{
			{Title: "One"},
			{Title: "Two"},
		}

		results := m.MatchBatch(ctx, tracks, nil)
		if len(results) != 2 {
			t.Fatalf("got %d results, want one per source track", len(results))
		}
		for i, res := range results {
			if res.Matched != nil || res.Err != "" {
				t.Errorf("result %d = %+v, want untouched", i, res)
			}
			if res.Source.Title != tracks[i].Title {
				t.Errorf("result %d lost its source track", i)
			}
		}
	})
}

func TestMatchBatchProgress(t *testing.T) {
	catalog := &tu.FakeCatalog{
		Docs: map[string]json.RawMessage{
			tu.DocKey(services.FacetTrack, "Known Band"): tu.TrackDoc(
				models.Item{Kind: models.KindTrack, ID: "k1", Title: "Known", ArtistID: "x1", ArtistName: "Band", Duration: 100}),
		},
	}
	m := newTestMatcher(catalog)

	progress := make(chan Progress, 64)
	m.MatchBatch(context.Background(), []models.SourceTrack{
		{Title: "Known", Artist: "Band", Duration: 100},
	}, progress)
	close(progress)

	var phases []Phase
	for update := range progress {
		phases = append(phases, update.Phase)
	}

	if len(phases) != 2 || phases[0] != Searching || phases[1] != Matched {
		t.Errorf("phases = %v, want searching then matched", phases)
	}
}
