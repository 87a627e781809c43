package formatter

import (
	"context"

	"github.com/desertthunder/ytexport/internal/models"
	"github.com/desertthunder/ytexport/internal/repositories"
	"github.com/desertthunder/ytexport/internal/shared"
)

// WriteSQLiteExport appends export as a new run to the SQLite database at path and returns the run id.
//
// The schema is created on first use. Earlier runs in the same file are kept.
func WriteSQLiteExport(ctx context.Context, export *models.ChannelExport, path string) (string, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return "", err
	}
	defer db.Close()
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		return "", err
	}

	return repositories.NewExportRepository(db).Save(ctx, export)
}
