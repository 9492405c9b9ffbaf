package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/spotcli/internal/formatter"
	"github.com/desertthunder/spotcli/internal/shared"
	"github.com/urfave/cli/v3"
)

// RecentList prints or exports the recently-played cache.
func (r *Runner) RecentList(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))
	useJSON := cmd.Bool("json")
	export := strings.ToLower(cmd.String("export"))
	outputPath := cmd.String("output")

	db, recent, err := r.openRecent()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := recent.Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to read recent tracks: %w", err)
	}

	if export != "" {
		var data []byte
		switch export {
		case "csv":
			data, err = formatter.ExportRecentToCSV(entries)
			if err != nil {
				return err
			}
		case "markdown", "md":
			data = formatter.ExportRecentToMarkdown(entries)
		default:
			return fmt.Errorf("%w: export format must be csv or markdown", shared.ErrInvalidArgument)
		}

		if outputPath == "" {
			return r.writePlain("%s", string(data))
		}

		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		r.writePlain("✓ Exported %d tracks to %s\n", len(entries), outputPath)
		return nil
	}

	if useJSON {
		return r.writeJSON(entries, true)
	}

	if len(entries) == 0 {
		r.writePlain("No recently played tracks. Play something with 'spotcli player play'.\n")
		return nil
	}

	r.writePlain("Recently played:\n\n")
	for i, entry := range entries {
		r.writePlain("%2d. %s (%s) played %s\n",
			i+1,
			formatter.TrackLine(entry.Track),
			formatter.FormatDuration(entry.Track.DurationMS),
			entry.PlayedAt.Format("Jan 2 15:04"))
	}

	return nil
}

// RecentClear empties the recently-played cache.
func (r *Runner) RecentClear(ctx context.Context, cmd *cli.Command) error {
	db, recent, err := r.openRecent()
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := recent.Count()
	if err != nil {
		return fmt.Errorf("failed to count recent tracks: %w", err)
	}

	if err := recent.Clear(); err != nil {
		return fmt.Errorf("failed to clear recent tracks: %w", err)
	}

	r.writePlain("✓ Cleared %d tracks from the cache\n", count)
	return nil
}
