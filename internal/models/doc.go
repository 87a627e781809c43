// Package models defines the flat records produced by a channel export run.
//
// Records are created during a single run, held in ordered slices and discarded once written:
//   - [VideoRecord] : listing fields plus optional statistics merged on video_id
//   - [VideoStatistics] : per-video counters and normalized duration
//   - [CommentRecord] : a top-level comment or a direct reply, linked to its video by video_id
//   - [ChannelExport] : the complete in-memory dataset handed to the exporters
//
// Statistics fields on [VideoRecord] are pointers. A nil pointer means no statistics entry matched
// the video, which exporters render as an empty cell rather than zero.
package models
