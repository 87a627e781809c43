// package tasks implements the channel export pipeline.
//
// The core abstraction is ChannelEngine, which resolves a channel, pages through its videos,
// statistics and comments, and merges them into a [models.ChannelExport].
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytexport/internal/models"
	"github.com/desertthunder/ytexport/internal/services"
	"github.com/desertthunder/ytexport/internal/shared"
)

// RunOpts controls which stages run and how many comments are kept per video.
type RunOpts struct {
	MaxComments  int  // Per-video comment cap; <= 0 means [shared.DefaultMaxComments]
	SkipComments bool // Skip the per-video comment stage
}

// Exporter defines the full fetch-and-merge pipeline for one channel.
type Exporter interface {
	// Run resolves locator and returns the merged dataset, or the first error encountered.
	Run(ctx context.Context, progress chan<- ProgressUpdate, locator string, opts RunOpts) (*models.ChannelExport, error)

	// ResolveChannelID turns an "@handle" locator into a channel id.
	ResolveChannelID(ctx context.Context, locator string) (string, error)
}

// ChannelEngine implements [Exporter] on top of a [services.DataAPI].
//
// It issues one request at a time and holds no state between runs.
type ChannelEngine struct {
	api    services.DataAPI
	logger *log.Logger
}

// NewChannelEngine creates a new ChannelEngine. A nil logger falls back to [shared.NewLogger].
func NewChannelEngine(api services.DataAPI, logger *log.Logger) *ChannelEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ChannelEngine{api: api, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ChannelEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run executes resolve → list → statistics → merge → comments for locator.
func (e *ChannelEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, locator string, opts RunOpts) (*models.ChannelExport, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: data api not initialized", shared.ErrUpstream)
	}

	channelID, err := e.resolve(ctx, progress, locator)
	if err != nil {
		return nil, err
	}

	videos, err := e.fetchVideos(ctx, progress, channelID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(videos))
	for i, v := range videos {
		ids[i] = v.VideoID
	}

	stats, err := e.fetchStatistics(ctx, progress, ids)
	if err != nil {
		return nil, err
	}

	merged := MergeStatistics(videos, stats)
	matched := 0
	for _, v := range merged {
		if v.HasStatistics() {
			matched++
		}
	}
	e.sendProgress(progress, mergedUpdate(len(merged), matched))

	export := &models.ChannelExport{
		ChannelID: channelID,
		Locator:   locator,
		Videos:    merged,
		Comments:  []models.CommentRecord{},
	}

	if opts.SkipComments {
		e.logger.Info("skipping comments", "videos", len(ids))
		return export, nil
	}

	for i, id := range ids {
		comments, err := e.FetchComments(ctx, id, opts.MaxComments)
		if err != nil {
			return nil, err
		}
		export.Comments = append(export.Comments, comments...)
		e.sendProgress(progress, commentsUpdate(i+1, len(ids), id, len(comments)))
	}

	e.logger.Info("fetched channel data",
		"channel_id", channelID, "videos", len(export.Videos), "comments", len(export.Comments))
	return export, nil
}
