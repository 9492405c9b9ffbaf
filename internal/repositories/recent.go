package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/spotcli/internal/models"
)

// DefaultRecentCap bounds the recently-played cache.
const DefaultRecentCap = 50

// RecentTrackRepository persists the recently-played list to SQLite.
//
// The list is bounded and de-duplicated: recording a track that is already
// present bumps its played_at instead of inserting a second row, and rows
// beyond the cap are pruned oldest-first.
type RecentTrackRepository struct {
	db  *sql.DB
	cap int
}

// NewRecentTrackRepository creates a repository with the given bound.
//
// A non-positive cap falls back to [DefaultRecentCap].
func NewRecentTrackRepository(db *sql.DB, cap int) *RecentTrackRepository {
	if cap <= 0 {
		cap = DefaultRecentCap
	}
	return &RecentTrackRepository{db: db, cap: cap}
}

// Record notes that a track was played now.
func (r *RecentTrackRepository) Record(track models.Track) error {
	return r.RecordAt(track, time.Now().UTC())
}

// RecordAt notes that a track was played at the given time.
func (r *RecentTrackRepository) RecordAt(track models.Track, playedAt time.Time) error {
	if track.ID == "" {
		return fmt.Errorf("track ID is required")
	}

	query := `
		INSERT INTO recent_tracks (track_id, title, artist, album, duration_ms, uri, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(track_id) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			album = excluded.album,
			duration_ms = excluded.duration_ms,
			uri = excluded.uri,
			played_at = excluded.played_at
	`
	if _, err := r.db.Exec(query, track.ID, track.Title, track.Artist, track.Album, track.DurationMS, track.URI, playedAt); err != nil {
		return fmt.Errorf("failed to record track: %w", err)
	}

	return r.prune()
}

// Recent returns the most recently played tracks, newest first.
func (r *RecentTrackRepository) Recent(limit int) ([]models.RecentTrack, error) {
	if limit <= 0 || limit > r.cap {
		limit = r.cap
	}

	rows, err := r.db.Query(`
		SELECT track_id, title, artist, album, duration_ms, uri, played_at
		FROM recent_tracks
		ORDER BY played_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent tracks: %w", err)
	}
	defer rows.Close()

	var recent []models.RecentTrack
	for rows.Next() {
		var rt models.RecentTrack
		var uri sql.NullString
		var album sql.NullString
		if err := rows.Scan(&rt.Track.ID, &rt.Track.Title, &rt.Track.Artist, &album, &rt.Track.DurationMS, &uri, &rt.PlayedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent track: %w", err)
		}
		rt.Track.Album = album.String
		rt.Track.URI = uri.String
		recent = append(recent, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent tracks: %w", err)
	}

	return recent, nil
}

// Count returns the number of cached entries.
func (r *RecentTrackRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM recent_tracks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recent tracks: %w", err)
	}
	return count, nil
}

// Clear empties the cache.
func (r *RecentTrackRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM recent_tracks"); err != nil {
		return fmt.Errorf("failed to clear recent tracks: %w", err)
	}
	return nil
}

// prune drops the oldest rows beyond the cap.
func (r *RecentTrackRepository) prune() error {
	query := `
		DELETE FROM recent_tracks WHERE id NOT IN (
			SELECT id FROM recent_tracks ORDER BY played_at DESC LIMIT ?
		)
	`
	if _, err := r.db.Exec(query, r.cap); err != nil {
		return fmt.Errorf("failed to prune recent tracks: %w", err)
	}
	return nil
}
