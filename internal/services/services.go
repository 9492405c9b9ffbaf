// package services defines the authenticated HTTP wrappers around the
// Spotify Web API
package services

import (
	"context"

	"github.com/desertthunder/spotcli/internal/models"
)

// Catalog is the read-only metadata surface: search plus entity lookups.
type Catalog interface {
	// Search queries tracks, artists, albums, and playlists.
	Search(ctx context.Context, query string, limit int) (*models.SearchResults, error)

	// Track retrieves a single track by ID.
	Track(ctx context.Context, trackID string) (*models.Track, error)

	// Album retrieves an album by ID.
	Album(ctx context.Context, albumID string) (*models.Album, error)

	// Artist retrieves an artist by ID.
	Artist(ctx context.Context, artistID string) (*models.Artist, error)

	// Playlist retrieves a playlist by ID.
	Playlist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// NewReleases lists newly released albums.
	NewReleases(ctx context.Context, limit int) ([]models.Album, error)

	// FeaturedPlaylists lists the service's featured playlists.
	FeaturedPlaylists(ctx context.Context, limit int) ([]models.Playlist, error)

	// SavedTracks lists the user's saved library tracks.
	SavedTracks(ctx context.Context, limit int) ([]models.Track, error)
}

// Player controls playback on the user's active device.
type Player interface {
	// Now returns the current playback state, or nil when no device is active.
	Now(ctx context.Context) (*models.Playback, error)

	// Play starts playback of the given track URI on the active device.
	Play(ctx context.Context, trackURI string) error

	// Pause pauses playback.
	Pause(ctx context.Context) error

	// Resume resumes playback of the current context.
	Resume(ctx context.Context) error

	// Next skips to the next track.
	Next(ctx context.Context) error

	// Previous skips to the previous track.
	Previous(ctx context.Context) error

	// SetVolume sets the active device volume (0-100).
	SetVolume(ctx context.Context, percent int) error

	// Devices lists the user's available playback devices.
	Devices(ctx context.Context) ([]models.Device, error)
}
