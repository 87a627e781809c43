package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during an export run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase, 0 when unknown
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	ResolveChannel Phase = iota
	ListVideos
	FetchStatistics
	MergeRecords
	FetchComments
)

func (p Phase) String() string {
	switch p {
	case ResolveChannel:
		return "resolve_channel"
	case ListVideos:
		return "list_videos"
	case FetchStatistics:
		return "fetch_statistics"
	case MergeRecords:
		return "merge_records"
	case FetchComments:
		return "fetch_comments"
	default:
		return ""
	}
}

func resolvingUpdate(handle string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveChannel,
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Resolving channel %s...", handle),
	}
}

func resolvedUpdate(handle, channelID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveChannel,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolved %s to %s", handle, channelID),
		Data:    channelID,
	}
}

func videoPageUpdate(page, videos int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ListVideos,
		Step:    page,
		Message: fmt.Sprintf("Fetched video page %d (%d videos so far)", page, videos),
	}
}

func statisticsBatchUpdate(batch, total, size int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchStatistics,
		Step:    batch,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetched statistics for %d videos", batch, total, size),
	}
}

func mergedUpdate(videos, matched int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MergeRecords,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Merged statistics into %d/%d videos", matched, videos),
	}
}

func commentsUpdate(step, total int, videoID string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchComments,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %d comments", step, total, videoID, count),
	}
}
