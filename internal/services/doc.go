// Package services defines the [DataAPI] interface for the YouTube Data API v3 and implements it with [YouTubeService].
//
// # DataAPI
//
// The export pipeline only needs four page-level calls:
//   - search.list (type=channel) to resolve a handle
//   - search.list (type=video, channelId) to list a channel's uploads, 50 per page
//   - videos.list (part=statistics,contentDetails) for batches of up to 50 ids
//   - commentThreads.list (part=snippet,replies) for 100 threads per page
//
// Each method issues one request and returns the generated response type, including its
// nextPageToken. Following cursors, batching and merging live in the tasks package.
//
// # YouTubeService
//
// [YouTubeService] wraps the generated google.golang.org/api/youtube/v3 client with API key
// authentication. An endpoint override and custom [http.Client] are accepted for proxies and
// tests; when a custom client is supplied the key travels in the X-Goog-Api-Key header.
//
// There is no retry and no client-side throttling: quota and rate limits are whatever the API enforces.
package services
