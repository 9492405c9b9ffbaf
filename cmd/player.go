package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spotcli/internal/formatter"
	"github.com/desertthunder/spotcli/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlayerNow shows the current playback state.
func (r *Runner) PlayerNow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	playback, err := r.spotify.Now(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if playback == nil || playback.Track == nil {
		r.writePlain("Nothing playing.\n")
		return nil
	}

	symbol := "▶"
	if !playback.IsPlaying {
		symbol = "⏸"
	}

	r.writePlain("%s %s\n", symbol, formatter.TrackLine(*playback.Track))
	if playback.Track.Album != "" {
		r.writePlain("   Album: %s\n", playback.Track.Album)
	}
	r.writePlain("   Position: %s / %s\n",
		formatter.FormatDuration(playback.ProgressMS),
		formatter.FormatDuration(playback.Track.DurationMS))
	if playback.Device != nil {
		r.writePlain("   Device: %s (%s) at %d%%\n", playback.Device.Name, playback.Device.Type, playback.Device.VolumePercent)
	}

	return nil
}

// PlayerPlay starts playback of a track given by ID or spotify: URI.
//
// Played tracks are recorded in the local recently-played cache.
func (r *Runner) PlayerPlay(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.StringArg("track")
	if arg == "" {
		return fmt.Errorf("%w: track ID or URI", shared.ErrMissingArgument)
	}

	if err := r.requireSession(); err != nil {
		return err
	}

	trackID := arg
	uri := arg
	if strings.HasPrefix(arg, "spotify:track:") {
		trackID = strings.TrimPrefix(arg, "spotify:track:")
	} else {
		uri = "spotify:track:" + arg
	}

	track, err := r.spotify.Track(ctx, trackID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTrackNotFound, err)
	}

	if err := r.spotify.Play(ctx, uri); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if db, recent, err := r.openRecent(); err != nil {
		r.logger.Warnf("failed to open recent cache %v", err)
	} else {
		defer db.Close()
		if err := recent.Record(*track); err != nil {
			r.logger.Warnf("failed to record track %v", err)
		}
	}

	r.writePlain("▶ %s\n", formatter.TrackLine(*track))
	return nil
}

// PlayerPause pauses playback.
func (r *Runner) PlayerPause(ctx context.Context, cmd *cli.Command) error {
	return r.playerControl(ctx, "⏸ Paused", r.spotify.Pause)
}

// PlayerResume resumes playback.
func (r *Runner) PlayerResume(ctx context.Context, cmd *cli.Command) error {
	return r.playerControl(ctx, "▶ Resumed", r.spotify.Resume)
}

// PlayerNext skips to the next track.
func (r *Runner) PlayerNext(ctx context.Context, cmd *cli.Command) error {
	return r.playerControl(ctx, "⏭ Skipped", r.spotify.Next)
}

// PlayerPrevious skips to the previous track.
func (r *Runner) PlayerPrevious(ctx context.Context, cmd *cli.Command) error {
	return r.playerControl(ctx, "⏮ Skipped back", r.spotify.Previous)
}

// PlayerVolume sets the active device volume.
func (r *Runner) PlayerVolume(ctx context.Context, cmd *cli.Command) error {
	percent := int(cmd.IntArg("percent"))
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume must be 0-100", shared.ErrInvalidArgument)
	}

	if err := r.requireSession(); err != nil {
		return err
	}

	if err := r.spotify.SetVolume(ctx, percent); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlain("🔊 Volume set to %d%%\n", percent)
	return nil
}

// PlayerDevices lists the user's available playback devices.
func (r *Runner) PlayerDevices(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	devices, err := r.spotify.Devices(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if len(devices) == 0 {
		r.writePlain("No devices available. Open Spotify on any device first.\n")
		return nil
	}

	r.writePlain("Found %d devices:\n\n", len(devices))
	for i, device := range devices {
		marker := " "
		if device.Active {
			marker = "*"
		}
		r.writePlain("%s %d. %s (%s) at %d%%\n", marker, i+1, device.Name, device.Type, device.VolumePercent)
	}

	return nil
}

func (r *Runner) playerControl(ctx context.Context, status string, action func(context.Context) error) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	if err := action(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlain("%s\n", status)
	return nil
}
