package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytexport/internal/models"
	"github.com/desertthunder/ytexport/internal/shared"
)

// ErrExportNotFound is returned when no export run matches the requested id.
var ErrExportNotFound = errors.New("export not found")

// ExportSummary describes one stored export run.
type ExportSummary struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	Locator   string    `json:"locator"`
	CreatedAt time.Time `json:"created_at"`
	Videos    int       `json:"videos"`
	Comments  int       `json:"comments"`
}

// ExportRepository persists [models.ChannelExport] datasets.
type ExportRepository struct {
	db *sql.DB
}

// NewExportRepository creates a new ExportRepository with the given database connection
func NewExportRepository(db *sql.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

// Save writes export and all of its rows in a single transaction and returns the generated run id.
func (r *ExportRepository) Save(ctx context.Context, export *models.ChannelExport) (string, error) {
	if export == nil {
		return "", fmt.Errorf("%w: nil export", shared.ErrInvalidInput)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := shared.GenerateID()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO exports (id, channel_id, locator, created_at) VALUES (?, ?, ?, ?)`,
		id, export.ChannelID, export.Locator, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert export: %w", err)
	}

	if err := insertVideos(ctx, tx, id, export.Videos); err != nil {
		return "", err
	}
	if err := insertComments(ctx, tx, id, export.Comments); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit export: %w", err)
	}
	return id, nil
}

func insertVideos(ctx context.Context, tx *sql.Tx, exportID string, videos []models.VideoRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO videos (export_id, position, video_id, title, description, published_date, thumbnail_url,
			view_count, like_count, comment_count, duration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare video insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range videos {
		_, err := stmt.ExecContext(ctx, exportID, i, v.VideoID, v.Title, v.Description, v.PublishedDate, v.ThumbnailURL,
			nullCount(v.ViewCount), nullCount(v.LikeCount), nullCount(v.CommentCount), nullString(v.Duration))
		if err != nil {
			return fmt.Errorf("failed to insert video %s: %w", v.VideoID, err)
		}
	}
	return nil
}

func insertComments(ctx context.Context, tx *sql.Tx, exportID string, comments []models.CommentRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO comments (export_id, position, video_id, comment_id, text, author, published_date, like_count, reply_to)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare comment insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range comments {
		_, err := stmt.ExecContext(ctx, exportID, i, c.VideoID, c.CommentID, c.Text, c.Author, c.PublishedDate,
			c.LikeCount, nullString(c.ReplyTo))
		if err != nil {
			return fmt.Errorf("failed to insert comment %s: %w", c.CommentID, err)
		}
	}
	return nil
}

// Get loads a stored run with its rows in their original order.
func (r *ExportRepository) Get(ctx context.Context, id string) (*models.ChannelExport, error) {
	export := &models.ChannelExport{}
	err := r.db.QueryRowContext(ctx, `SELECT channel_id, locator FROM exports WHERE id = ?`, id).
		Scan(&export.ChannelID, &export.Locator)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrExportNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan export: %w", err)
	}

	if export.Videos, err = r.ListVideos(ctx, id); err != nil {
		return nil, err
	}
	if export.Comments, err = r.ListComments(ctx, id); err != nil {
		return nil, err
	}
	return export, nil
}

// List returns every stored run, oldest first, with row counts.
func (r *ExportRepository) List(ctx context.Context) ([]ExportSummary, error) {
	query := `
		SELECT e.id, e.channel_id, e.locator, e.created_at,
			(SELECT COUNT(*) FROM videos v WHERE v.export_id = e.id),
			(SELECT COUNT(*) FROM comments c WHERE c.export_id = e.id)
		FROM exports e
		ORDER BY e.created_at ASC, e.rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer rows.Close()

	summaries := []ExportSummary{}
	for rows.Next() {
		var s ExportSummary
		if err := rows.Scan(&s.ID, &s.ChannelID, &s.Locator, &s.CreatedAt, &s.Videos, &s.Comments); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return summaries, nil
}

// ListVideos returns the video rows of a run in position order.
func (r *ExportRepository) ListVideos(ctx context.Context, exportID string) ([]models.VideoRecord, error) {
	query := `
		SELECT video_id, title, description, published_date, thumbnail_url, view_count, like_count, comment_count, duration
		FROM videos
		WHERE export_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, exportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	videos := []models.VideoRecord{}
	for rows.Next() {
		var (
			v                      models.VideoRecord
			views, likes, comments sql.NullInt64
			duration               sql.NullString
		)
		err := rows.Scan(&v.VideoID, &v.Title, &v.Description, &v.PublishedDate, &v.ThumbnailURL,
			&views, &likes, &comments, &duration)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}

		v.ViewCount = countPtr(views)
		v.LikeCount = countPtr(likes)
		v.CommentCount = countPtr(comments)
		if duration.Valid {
			v.Duration = &duration.String
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return videos, nil
}

// ListComments returns the comment rows of a run in position order.
func (r *ExportRepository) ListComments(ctx context.Context, exportID string) ([]models.CommentRecord, error) {
	query := `
		SELECT video_id, comment_id, text, author, published_date, like_count, reply_to
		FROM comments
		WHERE export_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, exportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.CommentRecord{}
	for rows.Next() {
		var (
			c       models.CommentRecord
			replyTo sql.NullString
		)
		err := rows.Scan(&c.VideoID, &c.CommentID, &c.Text, &c.Author, &c.PublishedDate, &c.LikeCount, &replyTo)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if replyTo.Valid {
			c.ReplyTo = &replyTo.String
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return comments, nil
}

func nullCount(p *uint64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func countPtr(n sql.NullInt64) *uint64 {
	if !n.Valid {
		return nil
	}
	v := uint64(n.Int64)
	return &v
}
