package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/spotcli/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes an example configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("✓ Created %s\n\n", path)
	r.writePlain("Edit it with your Spotify client_id and client_secret, then run 'spotcli auth login'.\n")
	return nil
}

// SetupDatabase initializes the cache database, running or rolling back migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	rollback := cmd.Bool("rollback")

	config := r.config
	if _, statErr := os.Stat(configPath); statErr == nil {
		loaded, err := shared.LoadConfig(configPath)
		if err != nil {
			r.logger.Warnf("failed to load config, using defaults %v", err)
		} else {
			config = loaded
		}
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if rollback {
		if err := shared.RollbackMigration(db); err != nil {
			return err
		}
		r.writePlain("✓ Rolled back the most recent migration on %s\n", config.Database.Path)
		return nil
	}

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	r.writePlain("✓ Database ready at %s\n", config.Database.Path)
	return nil
}
