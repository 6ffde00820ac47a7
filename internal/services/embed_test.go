package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchEmbed(t *testing.T) {
	ctx := context.Background()

	t.Run("author_name field maps to artist", func(t *testing.T) {
		var gotURL string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.Query().Get("url")
			w.Write([]byte(`{"title": "Song Title", "author_name": "Band Name"}`))
		}))
		defer server.Close()

		svc := NewEmbedService(server.URL)
		meta, err := svc.FetchEmbed(ctx, "https://open.example.com/track/abc")
		if err != nil {
			t.Fatalf("FetchEmbed() error = %v", err)
		}

		if gotURL != "https://open.example.com/track/abc" {
			t.Errorf("url param = %q, want the foreign link", gotURL)
		}
		if meta.Title != "Song Title" || meta.Artist != "Band Name" {
			t.Errorf("meta = %+v", meta)
		}
	})

	t.Run("packed title splits into title and artist", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"title": "Song Title - Band Name"}`))
		}))
		defer server.Close()

		svc := NewEmbedService(server.URL)
		meta, err := svc.FetchEmbed(ctx, "https://open.example.com/track/abc")
		if err != nil {
			t.Fatalf("FetchEmbed() error = %v", err)
		}
		if meta.Title != "Song Title" || meta.Artist != "Band Name" {
			t.Errorf("meta = %+v, want split title", meta)
		}
	})

	t.Run("missing title is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"author_name": "Band"}`))
		}))
		defer server.Close()

		svc := NewEmbedService(server.URL)
		if _, err := svc.FetchEmbed(ctx, "https://open.example.com/track/abc"); err == nil {
			t.Error("expected error for empty title")
		}
	})

	t.Run("unconfigured endpoint is an error", func(t *testing.T) {
		svc := NewEmbedService("")
		if _, err := svc.FetchEmbed(ctx, "https://open.example.com/track/abc"); err == nil {
			t.Error("expected error without an endpoint")
		}
	})
}
