package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytexport/internal/models"
	"github.com/desertthunder/ytexport/internal/shared"
	"google.golang.org/api/youtube/v3"
)

// FetchVideos returns every video the channel search lists, in search order.
//
// Pages of up to 50 are followed until no continuation token is returned. Any page error
// discards the records collected so far.
func (e *ChannelEngine) FetchVideos(ctx context.Context, channelID string) ([]models.VideoRecord, error) {
	return e.fetchVideos(ctx, nil, channelID)
}

func (e *ChannelEngine) fetchVideos(ctx context.Context, progress chan<- ProgressUpdate, channelID string) ([]models.VideoRecord, error) {
	fetch := func(ctx context.Context, token string) (*youtube.SearchListResponse, string, error) {
		resp, err := e.api.SearchVideos(ctx, channelID, token)
		if err != nil {
			return nil, "", err
		}
		return resp, resp.NextPageToken, nil
	}

	videos := []models.VideoRecord{}
	pageNum := 0
	for page, err := range pages(ctx, fetch) {
		if err != nil {
			e.logger.Error("error fetching video data", "channel_id", channelID, "page", pageNum+1, "err", err)
			return nil, fmt.Errorf("%w: list videos for %s: %w", shared.ErrUpstream, channelID, err)
		}
		pageNum++

		for _, item := range page.Items {
			if item == nil || item.Id == nil || item.Id.VideoId == "" {
				e.logger.Warn("skipping search result without video id", "channel_id", channelID)
				continue
			}
			videos = append(videos, videoRecord(item))
		}
		e.sendProgress(progress, videoPageUpdate(pageNum, len(videos)))
	}

	e.logger.Debug("listed videos", "channel_id", channelID, "pages", pageNum, "videos", len(videos))
	return videos, nil
}

// videoRecord flattens a search result. Missing description and thumbnail become "".
func videoRecord(item *youtube.SearchResult) models.VideoRecord {
	record := models.VideoRecord{VideoID: item.Id.VideoId}
	if s := item.Snippet; s != nil {
		record.Title = s.Title
		record.Description = s.Description
		record.PublishedDate = s.PublishedAt
		if s.Thumbnails != nil && s.Thumbnails.Default != nil {
			record.ThumbnailURL = s.Thumbnails.Default.Url
		}
	}
	return record
}
