package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytexport/internal/models"
	"github.com/desertthunder/ytexport/internal/shared"
	"google.golang.org/api/youtube/v3"
)

// FetchComments returns top-level comments and their direct replies for videoID, in page order.
//
// Pages of up to 100 threads are fetched while fewer than max records have been collected.
// The last page is kept whole, so the result may exceed max. max <= 0 uses [shared.DefaultMaxComments].
func (e *ChannelEngine) FetchComments(ctx context.Context, videoID string, max int) ([]models.CommentRecord, error) {
	if max <= 0 {
		max = shared.DefaultMaxComments
	}

	fetch := func(ctx context.Context, token string) (*youtube.CommentThreadListResponse, string, error) {
		resp, err := e.api.ListCommentThreads(ctx, videoID, token)
		if err != nil {
			return nil, "", err
		}
		return resp, resp.NextPageToken, nil
	}

	comments := []models.CommentRecord{}
	for page, err := range pages(ctx, fetch) {
		if err != nil {
			e.logger.Error("error fetching comments", "video_id", videoID, "collected", len(comments), "err", err)
			return nil, fmt.Errorf("%w: comments for %s: %w", shared.ErrUpstream, videoID, err)
		}

		for _, thread := range page.Items {
			comments = append(comments, threadRecords(videoID, thread)...)
		}
		if len(comments) >= max {
			break
		}
	}

	return comments, nil
}

// threadRecords flattens a thread into its top-level record followed by one record per reply.
//
// Replies carry the top-level display text in ReplyTo; deeper nesting is not exposed by the API.
func threadRecords(videoID string, thread *youtube.CommentThread) []models.CommentRecord {
	if thread == nil || thread.Snippet == nil || thread.Snippet.TopLevelComment == nil {
		return nil
	}

	top := commentRecord(videoID, thread.Id, thread.Snippet.TopLevelComment.Snippet)
	records := []models.CommentRecord{top}

	if thread.Replies == nil {
		return records
	}
	for _, reply := range thread.Replies.Comments {
		if reply == nil {
			continue
		}
		parent := top.Text
		record := commentRecord(videoID, reply.Id, reply.Snippet)
		record.ReplyTo = &parent
		records = append(records, record)
	}
	return records
}

func commentRecord(videoID, commentID string, s *youtube.CommentSnippet) models.CommentRecord {
	record := models.CommentRecord{VideoID: videoID, CommentID: commentID}
	if s != nil {
		record.Text = s.TextDisplay
		record.Author = s.AuthorDisplayName
		record.PublishedDate = s.PublishedAt
		record.LikeCount = s.LikeCount
	}
	return record
}
