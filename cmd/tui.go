package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotcli/internal/repositories"
	"github.com/desertthunder/spotcli/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal player.
//
// The local cache is best-effort here; playback still works when the
// database cannot be opened.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	var recent *repositories.RecentTrackRepository
	db, repo, err := r.openRecent()
	if err != nil {
		r.logger.Warnf("recent cache unavailable %v", err)
	} else {
		defer db.Close()
		recent = repo
	}

	model := ui.NewModel(ctx, r.spotify, r.spotify, recent)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run interactive player: %w", err)
	}

	return nil
}
