// Package tasks runs the channel export pipeline against a [services.DataAPI].
//
// # Pipeline
//
// [ChannelEngine.Run] executes the stages strictly in order, one request at a time:
//
//  1. [ChannelEngine.ResolveChannelID] : "@handle" locator → channel id via a one-result channel search
//  2. [ChannelEngine.FetchVideos] : every search page of the channel's videos (50 per page)
//  3. [ChannelEngine.FetchStatistics] : videos.list in batches of at most 50 ids
//  4. [MergeStatistics] : listing records enriched with statistics by video id
//  5. [ChannelEngine.FetchComments] : comment threads per video, up to a cap
//
// Any error aborts the run and discards everything fetched so far. The only local recovery is
// duration parsing, which falls back to "00:00:00".
//
// # Pagination
//
// Cursor-following endpoints are consumed through a lazy page sequence ([iter.Seq2]) that stops
// when the API returns no continuation token. The comment stage stops early once the cap is
// reached, but never truncates a page it already fetched, so the cap may be exceeded by up to one page.
//
// # Progress Reporting
//
// Stages report [ProgressUpdate] values through an optional channel. Sends never block:
// updates are dropped when the channel is full.
package tasks
