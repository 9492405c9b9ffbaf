package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/spotcli/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin performs the full OAuth2 authorization flow and persists the session.
//
// Starts a local callback listener, opens the browser for user authorization,
// exchanges the code for tokens, and saves them to the session file.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, statErr := os.Stat(configPath); statErr == nil {
		loaded, err := shared.LoadConfig(configPath)
		if err != nil {
			r.logger.Warnf("failed to load config, using defaults %v", err)
		} else {
			config = loaded
		}
	}

	if config.Credentials.Spotify.ClientID == "" || config.Credentials.Spotify.ClientSecret == "" {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in %s", shared.ErrMissingCredentials, configPath)
	}

	broker, err := r.newBroker(config)
	if err != nil {
		return err
	}

	tokens, err := broker.Authenticate(ctx)
	if err != nil {
		return err
	}

	if err := r.session.Install(tokens); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Session saved to %s\n\n", r.session.Path())
	r.writePlain("You can now use: spotcli search, spotcli player, spotcli tui\n")

	return nil
}

// AuthStatus reports whether a usable session exists.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if !r.session.Authenticated() {
		r.writePlain("Authentication: ✗ Not authenticated\n")
		r.writePlain("Run 'spotcli auth login' to sign in.\n")
		return nil
	}

	tokens := r.session.Tokens()

	r.writePlain("Authentication: ✓ Authenticated\n")
	r.writePlain("Session file: %s\n", r.session.Path())
	if tokens.Scope != "" {
		r.writePlain("Scope: %s\n", tokens.Scope)
	}
	if tokens.RefreshToken == "" {
		r.writePlain("⚠ No refresh token stored; you will need to log in again when the access token expires.\n")
	}

	return nil
}

// AuthRefresh forces a token refresh using the stored refresh token.
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	if err := r.session.Refresh(ctx); err != nil {
		return err
	}

	r.writePlainln("✓ Access token refreshed")
	return nil
}

// AuthLogout drops the session and deletes the session file.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.session.Clear(); err != nil {
		return err
	}

	r.logger.Info("session cleared")
	r.writePlainln("✓ Logged out")
	return nil
}
