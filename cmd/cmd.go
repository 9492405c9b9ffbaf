// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with Spotify using OAuth2 + PKCE",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show current session state",
				Action: r.AuthStatus,
			},
			{
				Name:   "refresh",
				Usage:  "Force a token refresh using the stored refresh token",
				Action: r.AuthRefresh,
			},
			{
				Name:   "logout",
				Usage:  "Drop the current session and delete the session file",
				Action: r.AuthLogout,
			},
		},
	}
}

// searchCommand queries the Spotify catalog
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the Spotify catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results per type",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Search,
	}
}

// playerCommand controls playback on the active device
func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "player",
		Aliases: []string{"p"},
		Usage:   "Playback controls",
		Commands: []*cli.Command{
			{
				Name:   "now",
				Usage:  "Show current playback",
				Action: r.PlayerNow,
			},
			{
				Name:  "play",
				Usage: "Play a track by ID or spotify: URI",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "track"},
				},
				Action: r.PlayerPlay,
			},
			{
				Name:   "pause",
				Usage:  "Pause playback",
				Action: r.PlayerPause,
			},
			{
				Name:   "resume",
				Usage:  "Resume playback",
				Action: r.PlayerResume,
			},
			{
				Name:   "next",
				Usage:  "Skip to the next track",
				Action: r.PlayerNext,
			},
			{
				Name:    "prev",
				Aliases: []string{"previous"},
				Usage:   "Skip to the previous track",
				Action:  r.PlayerPrevious,
			},
			{
				Name:  "volume",
				Usage: "Set volume percent (0-100)",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "percent"},
				},
				Action: r.PlayerVolume,
			},
			{
				Name:   "devices",
				Usage:  "List available playback devices",
				Action: r.PlayerDevices,
			},
		},
	}
}

// browseCommand surfaces catalog discovery endpoints
func browseCommand(r *Runner) *cli.Command {
	limitFlag := func(usage string) cli.Flag {
		return &cli.IntFlag{Name: "limit", Usage: usage, Value: 20}
	}
	jsonFlag := &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}

	return &cli.Command{
		Name:  "browse",
		Usage: "Browse the Spotify catalog",
		Commands: []*cli.Command{
			{
				Name:   "releases",
				Usage:  "List new album releases",
				Flags:  []cli.Flag{limitFlag("Maximum number of albums"), jsonFlag},
				Action: r.BrowseReleases,
			},
			{
				Name:   "featured",
				Usage:  "List featured playlists",
				Flags:  []cli.Flag{limitFlag("Maximum number of playlists"), jsonFlag},
				Action: r.BrowseFeatured,
			},
		},
	}
}

// libraryCommand surfaces the user's saved library
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "library",
		Usage: "Your saved library",
		Commands: []*cli.Command{
			{
				Name:  "tracks",
				Usage: "List saved tracks",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of tracks", Value: 20},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.LibraryTracks,
			},
		},
	}
}

// recentCommand manages the local recently-played cache
func recentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "recent",
		Usage: "Recently played tracks (local cache)",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recently played tracks",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.StringFlag{
						Name:  "export",
						Usage: "Export format: csv or markdown",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path for exports",
					},
				},
				Action: r.RecentList,
			},
			{
				Name:   "clear",
				Usage:  "Empty the recently-played cache",
				Action: r.RecentClear,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write an example config.toml to the current directory",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the cache database and run migrations",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive player.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal player",
		Action:  r.TUI,
	}
}
