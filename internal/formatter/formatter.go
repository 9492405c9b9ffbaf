// package formatter renders listening data for terminal output and export (CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/desertthunder/spotcli/internal/models"
)

// FormatDuration renders a track duration in milliseconds as m:ss.
func FormatDuration(ms int) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// TrackLine renders a one-line "Title - Artist" summary for lists.
func TrackLine(t models.Track) string {
	if t.Artist == "" {
		return t.Title
	}
	return fmt.Sprintf("%s - %s", t.Title, t.Artist)
}

// ExportRecentToCSV converts recently played entries to CSV with columns:
// ID, Title, Artist, Album, Duration, PlayedAt
func ExportRecentToCSV(recent []models.RecentTrack) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration", "PlayedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range recent {
		record := []string{
			entry.Track.ID,
			entry.Track.Title,
			entry.Track.Artist,
			entry.Track.Album,
			strconv.Itoa(entry.Track.DurationMS / 1000),
			entry.PlayedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportRecentToMarkdown converts recently played entries to a Markdown table.
func ExportRecentToMarkdown(recent []models.RecentTrack) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Recently Played\n\n")
	buf.WriteString("| Title | Artist | Album | Duration | Played At |\n")
	buf.WriteString("|-------|--------|-------|----------|-----------|\n")

	for _, entry := range recent {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			entry.Track.Title,
			entry.Track.Artist,
			entry.Track.Album,
			FormatDuration(entry.Track.DurationMS),
			entry.PlayedAt.Format("2006-01-02 15:04"),
		))
	}

	return buf.Bytes()
}
