package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/ytexport/internal/repositories"
	"github.com/desertthunder/ytexport/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runs lists the export runs stored in a SQLite artifact.
func (r *Runner) Runs(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path to a SQLite export", shared.ErrMissingArgument)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return err
	}
	defer db.Close()

	ok, err := shared.HasTable(db, "exports")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s is not an export database", shared.ErrInvalidInput, path)
	}

	summaries, err := repositories.NewExportRepository(db).List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(summaries, true)
	}

	if len(summaries) == 0 {
		return r.writePlain("%s\n", r.palette.Warn("No export runs in "+path))
	}

	if err := r.writePlain("%s\n", r.palette.Title(fmt.Sprintf("%d export runs in %s", len(summaries), path))); err != nil {
		return err
	}
	for _, s := range summaries {
		err := r.writePlain("%s  %s  %-24s %5d videos %6d comments  %s\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"), s.ID, s.ChannelID, s.Videos, s.Comments, s.Locator)
		if err != nil {
			return err
		}
	}
	return nil
}
