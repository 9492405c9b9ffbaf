package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/spotcli/internal/auth"
	"github.com/desertthunder/spotcli/internal/services"
	"github.com/desertthunder/spotcli/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	tokenClient := auth.NewTokenClient(
		config.Credentials.Spotify.ClientID,
		config.Credentials.Spotify.ClientSecret,
		config.Credentials.Spotify.RedirectURI,
		nil,
	)

	session := auth.NewSessionManager(config.SessionPath(), tokenClient, logger)
	session.Load()

	spotify := services.NewSpotifyClient(session, nil, logger)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Session: session,
		Spotify: spotify,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "spotcli",
		Usage:    "Control Spotify from your terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Error(err.Error())
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
