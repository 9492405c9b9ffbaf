package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotcli/internal/formatter"
	"github.com/desertthunder/spotcli/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the catalog and prints tracks, albums, artists, and playlists.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	limit := int(cmd.Int("limit"))
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if err := r.requireSession(); err != nil {
		return err
	}

	r.logger.Infof("searching catalog for %q", query)

	results, err := r.spotify.Search(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(results, pretty)
	}

	if len(results.Tracks) > 0 {
		r.writePlain("Songs:\n")
		for i, track := range results.Tracks {
			r.writePlain("%2d. %s (%s)\n", i+1, formatter.TrackLine(track), formatter.FormatDuration(track.DurationMS))
		}
		r.writePlain("\n")
	}

	if len(results.Albums) > 0 {
		r.writePlain("Albums:\n")
		for i, album := range results.Albums {
			r.writePlain("%2d. %s - %s (%s)\n", i+1, album.Name, album.Artist, album.ReleaseDate)
		}
		r.writePlain("\n")
	}

	if len(results.Artists) > 0 {
		r.writePlain("Artists:\n")
		for i, artist := range results.Artists {
			r.writePlain("%2d. %s\n", i+1, artist.Name)
		}
		r.writePlain("\n")
	}

	if len(results.Playlists) > 0 {
		r.writePlain("Playlists:\n")
		for i, playlist := range results.Playlists {
			r.writePlain("%2d. %s (%d tracks)\n", i+1, playlist.Name, playlist.TrackCount)
		}
	}

	if len(results.Tracks)+len(results.Albums)+len(results.Artists)+len(results.Playlists) == 0 {
		r.writePlain("No results for %q\n", query)
	}

	return nil
}
