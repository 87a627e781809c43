package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytexport/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration to --config.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidConfig, err)
	}
	r.logger.Info("config file created", "path", configPath)

	if err := r.writePlain("%s\n", r.palette.OK("✓ Config written to "+configPath)); err != nil {
		return err
	}
	return r.writePlain("%s\n", r.palette.Help(fmt.Sprintf("Set youtube.api_key (or %s), then run: ytexport export <channel URL>", shared.APIKeyEnv)))
}

// SetupDatabase creates a SQLite file and runs the export schema migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")

	r.logger.Info("initializing database", "path", path)

	db, err := shared.NewDatabase(path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, 1, 1)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", path)

	return r.writePlain("%s\n", r.palette.OK("✓ Database ready at "+path))
}
