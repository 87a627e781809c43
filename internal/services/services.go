// package services defines interface DataAPI for the page-level YouTube Data API calls used by an export
package services

import (
	"context"

	"google.golang.org/api/youtube/v3"
)

// Per-request item limits enforced by the YouTube Data API.
const (
	MaxSearchResults  int64 = 50
	MaxVideoIDs             = 50
	MaxCommentThreads int64 = 100
)

// DataAPI defines the YouTube Data API calls the export pipeline depends on.
//
// Each method issues exactly one request; pagination is left to the caller.
type DataAPI interface {
	// SearchChannels runs a channel search for query, returning at most max results.
	SearchChannels(ctx context.Context, query string, max int64) (*youtube.SearchListResponse, error)

	// SearchVideos returns one page of a channel's videos, starting at pageToken ("" for the first page).
	SearchVideos(ctx context.Context, channelID, pageToken string) (*youtube.SearchListResponse, error)

	// ListVideos returns statistics and content details for up to [MaxVideoIDs] ids.
	ListVideos(ctx context.Context, ids []string) (*youtube.VideoListResponse, error)

	// ListCommentThreads returns one page of a video's comment threads with their replies.
	ListCommentThreads(ctx context.Context, videoID, pageToken string) (*youtube.CommentThreadListResponse, error)
}
