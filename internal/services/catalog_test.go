package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zekog/hipotify-sub000/internal/shared"
)

func testCatalogConfig(baseURL string) shared.CatalogConfig {
	return shared.CatalogConfig{BaseURL: baseURL, CountryCode: "DE", TimeoutSeconds: 5}
}

func TestNewCatalogService(t *testing.T) {
	t.Run("missing base url is refused", func(t *testing.T) {
		_, err := NewCatalogService(shared.CatalogConfig{})
		if !errors.Is(err, shared.ErrNoEndpoint) {
			t.Errorf("err = %v, want ErrNoEndpoint", err)
		}
	})

	t.Run("configured base url succeeds", func(t *testing.T) {
		svc, err := NewCatalogService(testCatalogConfig("https://api.example.com"))
		if err != nil || svc == nil {
			t.Errorf("got (%v, %v), want a client", svc, err)
		}
	})
}

func TestCatalogSearchFacet(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the facet endpoint and returns the raw document", func(t *testing.T) {
		var gotPath, gotQuery, gotCountry string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query().Get("query")
			gotCountry = r.URL.Query().Get("countryCode")
			w.Write([]byte(`{"items": [{"id": "t1", "title": "Song", "duration": 100}]}`))
		}))
		defer server.Close()

		svc, err := NewCatalogService(testCatalogConfig(server.URL))
		if err != nil {
			t.Fatalf("NewCatalogService() error = %v", err)
		}

		doc, err := svc.SearchFacet(ctx, "blue train", FacetTrack, 0, 10)
		if err != nil {
			t.Fatalf("SearchFacet() error = %v", err)
		}
		if len(doc) == 0 {
			t.Error("raw document missing")
		}

		if gotPath != "/v1/search/tracks" {
			t.Errorf("path = %q, want /v1/search/tracks", gotPath)
		}
		if gotQuery != "blue train" {
			t.Errorf("query = %q, want decoded search text", gotQuery)
		}
		if gotCountry != "DE" {
			t.Errorf("countryCode = %q, want DE", gotCountry)
		}
	})

	t.Run("bearer token is attached when configured", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		cfg := testCatalogConfig(server.URL)
		cfg.Token = "secret-token"
		svc, err := NewCatalogService(cfg)
		if err != nil {
			t.Fatalf("NewCatalogService() error = %v", err)
		}

		if _, err := svc.SearchFacet(ctx, "q", FacetAlbum, 0, 5); err != nil {
			t.Fatalf("SearchFacet() error = %v", err)
		}
		if gotAuth != "Bearer secret-token" {
			t.Errorf("Authorization = %q, want bearer token", gotAuth)
		}
	})

	t.Run("server errors surface as api request failures", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		svc, _ := NewCatalogService(testCatalogConfig(server.URL))
		if _, err := svc.SearchFacet(ctx, "q", FacetTrack, 0, 5); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("err = %v, want ErrAPIRequest", err)
		}
	})
}

func TestCatalogAlbumTracks(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"tracks": []}`))
	}))
	defer server.Close()

	svc, _ := NewCatalogService(testCatalogConfig(server.URL))
	if _, err := svc.AlbumTracks(context.Background(), "al99"); err != nil {
		t.Fatalf("AlbumTracks() error = %v", err)
	}
	if gotPath != "/v1/albums/al99/tracks" {
		t.Errorf("path = %q, want album track listing endpoint", gotPath)
	}
}

func TestCatalogStreamMetadata(t *testing.T) {
	ctx := context.Background()

	t.Run("playable track returns stream info", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"url": "https://cdn.example/t1.m4a", "quality": "HIGH", "codec": "aac"}`))
		}))
		defer server.Close()

		svc, _ := NewCatalogService(testCatalogConfig(server.URL))
		info, err := svc.StreamMetadata(ctx, "t1")
		if err != nil {
			t.Fatalf("StreamMetadata() error = %v", err)
		}
		if info.TrackID != "t1" || info.URL != "https://cdn.example/t1.m4a" {
			t.Errorf("info = %+v, want track id backfilled and url kept", info)
		}
	})

	t.Run("missing playback url means unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quality": "HIGH"}`))
		}))
		defer server.Close()

		svc, _ := NewCatalogService(testCatalogConfig(server.URL))
		if _, err := svc.StreamMetadata(ctx, "t1"); !errors.Is(err, shared.ErrStreamUnavailable) {
			t.Errorf("err = %v, want ErrStreamUnavailable", err)
		}
	})
}
