package search

import (
	"testing"

	"github.com/zekog/hipotify-sub000/internal/models"
)

func TestDeduper(t *testing.T) {
	t.Run("same kind and id admitted once", func(t *testing.T) {
		d := NewDeduper()
		item := models.Item{Kind: models.KindTrack, ID: "t1", Title: "Song"}
		if !d.Admit(item) {
			t.Fatal("first occurrence should be admitted")
		}
		if d.Admit(item) {
			t.Error("second occurrence should be suppressed")
		}
	})

	t.Run("same id under different kinds is distinct", func(t *testing.T) {
		d := NewDeduper()
		if !d.Admit(models.Item{Kind: models.KindTrack, ID: "1", Title: "Song"}) {
			t.Fatal("track should be admitted")
		}
		if !d.Admit(models.Item{Kind: models.KindArtist, ID: "1", Title: "Band"}) {
			t.Error("artist with same raw id should be admitted")
		}
	})

	t.Run("albums dedupe by normalized title across ids", func(t *testing.T) {
		d := NewDeduper()
		if !d.Admit(models.Item{Kind: models.KindAlbum, ID: "a1", Title: "Greatest Hits"}) {
			t.Fatal("first album should be admitted")
		}
		if d.Admit(models.Item{Kind: models.KindAlbum, ID: "a2", Title: "  greatest hits "}) {
			t.Error("same album under a different id should be suppressed")
		}
	})

	t.Run("artists dedupe by normalized name across ids", func(t *testing.T) {
		d := NewDeduper()
		if !d.Admit(models.Item{Kind: models.KindArtist, ID: "ar1", Title: "Daft Punk"}) {
			t.Fatal("first artist should be admitted")
		}
		if d.Admit(models.Item{Kind: models.KindArtist, ID: "ar2", Title: "daft punk"}) {
			t.Error("same artist under a different id should be suppressed")
		}
	})

	t.Run("tracks with equal titles are all kept", func(t *testing.T) {
		d := NewDeduper()
		if !d.Admit(models.Item{Kind: models.KindTrack, ID: "t1", Title: "Intro"}) {
			t.Fatal("first track should be admitted")
		}
		if !d.Admit(models.Item{Kind: models.KindTrack, ID: "t2", Title: "Intro"}) {
			t.Error("distinct track sharing a title should be admitted")
		}
	})

	t.Run("album and artist with equal names do not collide", func(t *testing.T) {
		d := NewDeduper()
		if !d.Admit(models.Item{Kind: models.KindAlbum, ID: "a1", Title: "Blur"}) {
			t.Fatal("album should be admitted")
		}
		if !d.Admit(models.Item{Kind: models.KindArtist, ID: "ar1", Title: "Blur"}) {
			t.Error("artist named like the album should be admitted")
		}
	})
}

func TestDedupe(t *testing.T) {
	items := []models.Item{
		{Kind: models.KindTrack, ID: "t1", Title: "Song"},
		{Kind: models.KindTrack, ID: "t1", Title: "Song"},
		{Kind: models.KindAlbum, ID: "a1", Title: "Record"},
		{Kind: models.KindAlbum, ID: "a2", Title: "record"},
		{Kind: models.KindTrack, ID: "t2", Title: "Song"},
	}

	got := Dedupe(items)
	if len(got) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(got), got)
	}
	if got[0].ID != "t1" || got[1].ID != "a1" || got[2].ID != "t2" {
		t.Errorf("arrival order not preserved: %+v", got)
	}
}
