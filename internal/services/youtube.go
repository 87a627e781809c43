// YouTube Data API v3 [DataAPI] implementation
package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const userAgent = "ytexport/0.1"

// YouTubeOpts configures a [YouTubeService].
type YouTubeOpts struct {
	APIKey     string
	Endpoint   string       // Optional base URL override, e.g. a proxy or test server
	HTTPClient *http.Client // Optional transport; the API key is then sent as a header
}

// YouTubeService implements [DataAPI] with the generated google.golang.org/api client.
type YouTubeService struct {
	svc       *youtube.Service
	apiKey    string
	keyHeader bool
}

// NewYouTubeService creates a Data API client authenticated with an API key.
func NewYouTubeService(ctx context.Context, opts YouTubeOpts) (*YouTubeService, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("api key required")
	}

	clientOpts := []option.ClientOption{
		option.WithAPIKey(opts.APIKey),
		option.WithUserAgent(userAgent),
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	svc, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &YouTubeService{svc: svc, apiKey: opts.APIKey, keyHeader: opts.HTTPClient != nil}, nil
}

// authorize sets the API key header when a caller-supplied client bypasses the key transport.
func (y *YouTubeService) authorize(h http.Header) {
	if y.keyHeader {
		h.Set("X-Goog-Api-Key", y.apiKey)
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube Data API v3"
}

// SearchChannels calls search.list with part=snippet and type=channel.
func (y *YouTubeService) SearchChannels(ctx context.Context, query string, max int64) (*youtube.SearchListResponse, error) {
	call := y.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(max).
		Context(ctx)
	y.authorize(call.Header())

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search channels %q: %w", query, err)
	}
	return resp, nil
}

// SearchVideos calls search.list with part=id,snippet, type=video and the per-page maximum of 50.
func (y *YouTubeService) SearchVideos(ctx context.Context, channelID, pageToken string) (*youtube.SearchListResponse, error) {
	call := y.svc.Search.List([]string{"id", "snippet"}).
		ChannelId(channelID).
		Type("video").
		MaxResults(MaxSearchResults).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	y.authorize(call.Header())

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search videos for channel %s: %w", channelID, err)
	}
	return resp, nil
}

// ListVideos calls videos.list with part=statistics,contentDetails for a comma-joined id batch.
func (y *YouTubeService) ListVideos(ctx context.Context, ids []string) (*youtube.VideoListResponse, error) {
	if len(ids) > MaxVideoIDs {
		return nil, fmt.Errorf("list videos: %d ids exceeds per-request limit of %d", len(ids), MaxVideoIDs)
	}

	call := y.svc.Videos.List([]string{"statistics", "contentDetails"}).
		Id(strings.Join(ids, ",")).
		Context(ctx)
	y.authorize(call.Header())

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return resp, nil
}

// ListCommentThreads calls commentThreads.list with part=snippet,replies and the per-page maximum of 100.
func (y *YouTubeService) ListCommentThreads(ctx context.Context, videoID, pageToken string) (*youtube.CommentThreadListResponse, error) {
	call := y.svc.CommentThreads.List([]string{"snippet", "replies"}).
		VideoId(videoID).
		MaxResults(MaxCommentThreads).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	y.authorize(call.Header())

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list comment threads for video %s: %w", videoID, err)
	}
	return resp, nil
}
