// Package repositories provides the persistence layer for listening history.
//
// History is capped per kind (30 tracks, 20 artists, 20 albums); replaying
// an entry refreshes its timestamp instead of duplicating it, and inserts
// past capacity evict the oldest rows.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zekog/hipotify-sub000/internal/models"
)

const (
	trackCapacity  = 30
	artistCapacity = 20
	albumCapacity  = 20
)

// HistoryStore persists recently played tracks, artists, and albums.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore creates a [HistoryStore] with the given database connection
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// RecordTrack upserts a track play and trims the table to capacity.
func (s *HistoryStore) RecordTrack(ctx context.Context, item models.Item) error {
	if item.ID == "" {
		return fmt.Errorf("cannot record track without an id")
	}

	query := `
		INSERT OR REPLACE INTO recent_tracks
			(id, title, artist_id, artist_name, album_id, album_title, duration, isrc, popularity, cover, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		item.ID, item.Title, item.ArtistID, item.ArtistName,
		item.AlbumID, item.AlbumTitle, item.Duration, item.ISRC,
		item.Popularity, item.Cover, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record track: %w", err)
	}

	return s.trim(ctx, "recent_tracks", trackCapacity)
}

// RecordArtist upserts an artist play and trims the table to capacity.
func (s *HistoryStore) RecordArtist(ctx context.Context, item models.Item) error {
	if item.ID == "" {
		return fmt.Errorf("cannot record artist without an id")
	}

	query := `
		INSERT OR REPLACE INTO recent_artists (id, name, popularity, cover, played_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, item.ID, item.Title, item.Popularity, item.Cover, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record artist: %w", err)
	}

	return s.trim(ctx, "recent_artists", artistCapacity)
}

// RecordAlbum upserts an album play and trims the table to capacity.
func (s *HistoryStore) RecordAlbum(ctx context.Context, item models.Item) error {
	if item.ID == "" {
		return fmt.Errorf("cannot record album without an id")
	}

	query := `
		INSERT OR REPLACE INTO recent_albums
			(id, title, artist_id, artist_name, popularity, cover, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		item.ID, item.Title, item.ArtistID, item.ArtistName,
		item.Popularity, item.Cover, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record album: %w", err)
	}

	return s.trim(ctx, "recent_albums", albumCapacity)
}

// trim evicts the oldest rows beyond the table's capacity.
func (s *HistoryStore) trim(ctx context.Context, table string, capacity int) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id NOT IN (SELECT id FROM %s ORDER BY played_at DESC, id LIMIT ?)
	`, table, table)

	if _, err := s.db.ExecContext(ctx, query, capacity); err != nil {
		return fmt.Errorf("failed to trim %s: %w", table, err)
	}
	return nil
}

// RecentTracks returns recorded tracks, most recent first.
func (s *HistoryStore) RecentTracks(ctx context.Context) ([]models.Item, error) {
	query := `
		SELECT id, title, artist_id, artist_name, album_id, album_title, duration, isrc, popularity, cover
		FROM recent_tracks
		ORDER BY played_at DESC, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent tracks: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var (
			item       models.Item
			artistID   sql.NullString
			artistName sql.NullString
			albumID    sql.NullString
			albumTitle sql.NullString
			duration   sql.NullInt64
			isrc       sql.NullString
			popularity sql.NullFloat64
			cover      sql.NullString
		)

		err := rows.Scan(&item.ID, &item.Title, &artistID, &artistName,
			&albumID, &albumTitle, &duration, &isrc, &popularity, &cover)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent track: %w", err)
		}

		item.Kind = models.KindTrack
		item.ArtistID = artistID.String
		item.ArtistName = artistName.String
		item.AlbumID = albumID.String
		item.AlbumTitle = albumTitle.String
		item.Duration = int(duration.Int64)
		item.ISRC = isrc.String
		item.Popularity = popularity.Float64
		item.Cover = cover.String

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// RecentArtists returns recorded artists, most recent first.
func (s *HistoryStore) RecentArtists(ctx context.Context) ([]models.Item, error) {
	query := `
		SELECT id, name, popularity, cover
		FROM recent_artists
		ORDER BY played_at DESC, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent artists: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var (
			item       models.Item
			popularity sql.NullFloat64
			cover      sql.NullString
		)

		if err := rows.Scan(&item.ID, &item.Title, &popularity, &cover); err != nil {
			return nil, fmt.Errorf("failed to scan recent artist: %w", err)
		}

		item.Kind = models.KindArtist
		item.Popularity = popularity.Float64
		item.Cover = cover.String

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// RecentAlbums returns recorded albums, most recent first.
func (s *HistoryStore) RecentAlbums(ctx context.Context) ([]models.Item, error) {
	query := `
		SELECT id, title, artist_id, artist_name, popularity, cover
		FROM recent_albums
		ORDER BY played_at DESC, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent albums: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var (
			item       models.Item
			artistID   sql.NullString
			artistName sql.NullString
			popularity sql.NullFloat64
			cover      sql.NullString
		)

		err := rows.Scan(&item.ID, &item.Title, &artistID, &artistName, &popularity, &cover)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent album: %w", err)
		}

		item.Kind = models.KindAlbum
		item.ArtistID = artistID.String
		item.ArtistName = artistName.String
		item.Popularity = popularity.Float64
		item.Cover = cover.String

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// Snapshot loads all three history lists for ranking. Each list degrades
// independently; a failed query yields an empty slice for that kind.
func (s *HistoryStore) Snapshot(ctx context.Context) (models.HistorySnapshot, error) {
	var snap models.HistorySnapshot
	var firstErr error

	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	var err error
	snap.Tracks, err = s.RecentTracks(ctx)
	keep(err)
	snap.Artists, err = s.RecentArtists(ctx)
	keep(err)
	snap.Albums, err = s.RecentAlbums(ctx)
	keep(err)

	return snap, firstErr
}
