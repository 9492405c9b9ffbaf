// package models defines the service-neutral data model shared by the UI,
// formatters, and the local cache
package models

import "time"

// Track represents a playable track.
type Track struct {
	ID         string
	Title      string
	Artist     string
	Album      string
	DurationMS int
	URI        string
	Popularity int
}

// Artist represents a music artist.
type Artist struct {
	ID     string
	Name   string
	Genres []string
}

// Album represents an album.
type Album struct {
	ID          string
	Name        string
	Artist      string
	ReleaseDate string
	TotalTracks int
	URI         string
}

// Playlist represents a playlist.
type Playlist struct {
	ID          string
	Name        string
	Description string
	Owner       string
	TrackCount  int
	Public      bool
	URI         string
}

// Device represents a playback device registered with the streaming service.
type Device struct {
	ID            string
	Name          string
	Type          string
	Active        bool
	VolumePercent int
}

// Playback is the current playback state on the user's active device.
type Playback struct {
	Track      *Track
	Device     *Device
	IsPlaying  bool
	ProgressMS int
	Shuffle    bool
}

// SearchResults groups results across entity types for a single query.
type SearchResults struct {
	Tracks    []Track
	Artists   []Artist
	Albums    []Album
	Playlists []Playlist
}

// RecentTrack is a track entry in the local recently-played cache.
type RecentTrack struct {
	Track    Track
	PlayedAt time.Time
}
