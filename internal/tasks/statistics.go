package tasks

import (
	"context"
	"fmt"
	"slices"

	"github.com/desertthunder/ytexport/internal/models"
	"github.com/desertthunder/ytexport/internal/services"
	"github.com/desertthunder/ytexport/internal/shared"
	"google.golang.org/api/youtube/v3"
)

// FetchStatistics returns counters and durations for ids, one videos.list request per batch of 50.
//
// Counters the API omits are 0. An error on any batch discards all results.
func (e *ChannelEngine) FetchStatistics(ctx context.Context, ids []string) ([]models.VideoStatistics, error) {
	return e.fetchStatistics(ctx, nil, ids)
}

func (e *ChannelEngine) fetchStatistics(ctx context.Context, progress chan<- ProgressUpdate, ids []string) ([]models.VideoStatistics, error) {
	stats := make([]models.VideoStatistics, 0, len(ids))
	batches := (len(ids) + services.MaxVideoIDs - 1) / services.MaxVideoIDs

	batch := 0
	for chunk := range slices.Chunk(ids, services.MaxVideoIDs) {
		batch++
		resp, err := e.api.ListVideos(ctx, chunk)
		if err != nil {
			e.logger.Error("error fetching video statistics", "batch", batch, "size", len(chunk), "err", err)
			return nil, fmt.Errorf("%w: statistics batch %d/%d: %w", shared.ErrUpstream, batch, batches, err)
		}

		for _, item := range resp.Items {
			if item == nil {
				continue
			}
			stats = append(stats, e.videoStatistics(item))
		}
		e.sendProgress(progress, statisticsBatchUpdate(batch, batches, len(chunk)))
	}

	return stats, nil
}

// videoStatistics reads counters explicitly so absent statistics or content details default to zero values.
func (e *ChannelEngine) videoStatistics(item *youtube.Video) models.VideoStatistics {
	stats := models.VideoStatistics{VideoID: item.Id}

	if s := item.Statistics; s != nil {
		stats.ViewCount = s.ViewCount
		stats.LikeCount = s.LikeCount
		stats.CommentCount = s.CommentCount
	}

	raw := ""
	if item.ContentDetails != nil {
		raw = item.ContentDetails.Duration
	}
	stats.Duration = shared.NormalizeDuration(e.logger.With("video_id", item.Id), raw)

	return stats
}
