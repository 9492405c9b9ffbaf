package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotcli/internal/formatter"
	"github.com/desertthunder/spotcli/internal/shared"
	"github.com/urfave/cli/v3"
)

// BrowseReleases lists newly released albums.
func (r *Runner) BrowseReleases(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))
	useJSON := cmd.Bool("json")

	if err := r.requireSession(); err != nil {
		return err
	}

	albums, err := r.spotify.NewReleases(ctx, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(albums, true)
	}

	if len(albums) == 0 {
		r.writePlain("No new releases.\n")
		return nil
	}

	r.writePlain("New releases:\n\n")
	for i, album := range albums {
		r.writePlain("%2d. %s - %s (%s)\n", i+1, album.Name, album.Artist, album.ReleaseDate)
	}

	return nil
}

// BrowseFeatured lists featured playlists.
func (r *Runner) BrowseFeatured(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))
	useJSON := cmd.Bool("json")

	if err := r.requireSession(); err != nil {
		return err
	}

	playlists, err := r.spotify.FeaturedPlaylists(ctx, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(playlists, true)
	}

	if len(playlists) == 0 {
		r.writePlain("No featured playlists.\n")
		return nil
	}

	r.writePlain("Featured playlists:\n\n")
	for i, playlist := range playlists {
		r.writePlain("%2d. %s (%d tracks)\n", i+1, playlist.Name, playlist.TrackCount)
	}

	return nil
}

// LibraryTracks lists the user's saved tracks.
func (r *Runner) LibraryTracks(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))
	useJSON := cmd.Bool("json")

	if err := r.requireSession(); err != nil {
		return err
	}

	tracks, err := r.spotify.SavedTracks(ctx, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(tracks, true)
	}

	if len(tracks) == 0 {
		r.writePlain("No saved tracks.\n")
		return nil
	}

	r.writePlain("Saved tracks:\n\n")
	for i, track := range tracks {
		r.writePlain("%2d. %s (%s)\n", i+1, formatter.TrackLine(track), formatter.FormatDuration(track.DurationMS))
	}

	return nil
}
