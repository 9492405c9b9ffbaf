package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/desertthunder/spotcli/internal/formatter"
)

func (m *Model) renderSearch() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Search"))
	b.WriteString("\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if m.hasResults {
		b.WriteString(m.resultList.View())
	} else {
		b.WriteString(styles.help.Render("Press / to search, enter to play the selected track."))
	}

	helpKeys := []key.Binding{m.keys.search, m.keys.enter, m.keys.recent, m.keys.player, m.keys.quit}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))

	return b.String()
}

func (m *Model) renderRecent() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.player, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.recentList.View(), helpView)
}

func (m *Model) renderPlayerDetail() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Player"))
	b.WriteString("\n")

	if m.playback == nil || m.playback.Track == nil {
		b.WriteString(styles.warn.Render("Nothing playing. Start playback on any device or pick a track from search."))
	} else {
		track := m.playback.Track
		b.WriteString(fmt.Sprintf("%s\n%s\n\n", styles.ok.Render(track.Title), track.Artist))
		if track.Album != "" {
			b.WriteString(fmt.Sprintf("Album: %s\n", track.Album))
		}
		b.WriteString(fmt.Sprintf("Position: %s / %s\n",
			formatter.FormatDuration(m.playback.ProgressMS),
			formatter.FormatDuration(track.DurationMS)))
		if m.playback.Device != nil {
			b.WriteString(fmt.Sprintf("Device: %s (%s)\n", m.playback.Device.Name, m.playback.Device.Type))
		}
	}

	helpKeys := []key.Binding{m.keys.toggle, m.keys.next, m.keys.previous, m.keys.volUp, m.keys.volDown, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))

	return b.String()
}

// renderStatusBar shows the now-playing line, last action, and any error.
func (m *Model) renderStatusBar() string {
	var parts []string

	if m.playback != nil && m.playback.Track != nil {
		symbol := "▶"
		if !m.playback.IsPlaying {
			symbol = "⏸"
		}
		parts = append(parts, fmt.Sprintf("%s %s", symbol, formatter.TrackLine(*m.playback.Track)))
	}

	if m.volume >= 0 {
		parts = append(parts, fmt.Sprintf("Vol %d%%", m.volume))
	}

	if m.status != "" {
		parts = append(parts, styles.help.Render(m.status))
	}

	if m.err != nil {
		parts = append(parts, styles.err.Render(fmt.Sprintf("error: %v", m.err)))
	}

	if len(parts) == 0 {
		return ""
	}

	return strings.Join(parts, "  |  ")
}
