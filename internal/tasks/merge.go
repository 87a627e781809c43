package tasks

import "github.com/desertthunder/ytexport/internal/models"

// MergeStatistics returns a copy of videos with matching statistics merged in, preserving input order.
//
// The first statistics entry for an id wins. Videos without a match keep nil statistics.
func MergeStatistics(videos []models.VideoRecord, stats []models.VideoStatistics) []models.VideoRecord {
	byID := make(map[string]models.VideoStatistics, len(stats))
	for _, s := range stats {
		if _, seen := byID[s.VideoID]; !seen {
			byID[s.VideoID] = s
		}
	}

	merged := make([]models.VideoRecord, len(videos))
	for i, v := range videos {
		if s, ok := byID[v.VideoID]; ok {
			merged[i] = v.WithStatistics(s)
		} else {
			merged[i] = v
		}
	}
	return merged
}
