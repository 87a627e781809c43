package models

// VideoColumns lists the "Video Data" columns in export order.
var VideoColumns = []string{
	"video_id",
	"title",
	"description",
	"published_date",
	"thumbnail_url",
	"view_count",
	"like_count",
	"comment_count",
	"duration",
}

// CommentColumns lists the "Comments Data" columns in export order.
var CommentColumns = []string{
	"video_id",
	"comment_id",
	"text",
	"author",
	"published_date",
	"like_count",
	"reply_to",
}

// VideoRecord is one row of the "Video Data" sheet.
type VideoRecord struct {
	VideoID       string  `json:"video_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	PublishedDate string  `json:"published_date"`
	ThumbnailURL  string  `json:"thumbnail_url"`
	ViewCount     *uint64 `json:"view_count,omitempty"`
	LikeCount     *uint64 `json:"like_count,omitempty"`
	CommentCount  *uint64 `json:"comment_count,omitempty"`
	Duration      *string `json:"duration,omitempty"`
}

// HasStatistics reports whether a statistics entry was merged into the record.
func (v VideoRecord) HasStatistics() bool {
	return v.ViewCount != nil || v.LikeCount != nil || v.CommentCount != nil || v.Duration != nil
}

// WithStatistics returns a copy of v enriched with s.
func (v VideoRecord) WithStatistics(s VideoStatistics) VideoRecord {
	views, likes, comments, duration := s.ViewCount, s.LikeCount, s.CommentCount, s.Duration
	v.ViewCount = &views
	v.LikeCount = &likes
	v.CommentCount = &comments
	v.Duration = &duration
	return v
}

// Row returns the record's cells in [VideoColumns] order. Missing statistics are nil.
func (v VideoRecord) Row() []any {
	return []any{
		v.VideoID,
		v.Title,
		v.Description,
		v.PublishedDate,
		v.ThumbnailURL,
		derefOrNil(v.ViewCount),
		derefOrNil(v.LikeCount),
		derefOrNil(v.CommentCount),
		derefOrNil(v.Duration),
	}
}

// VideoStatistics holds the counters and duration returned for one video.
//
// Counters the API omits (disabled likes, hidden view counts) are zero.
type VideoStatistics struct {
	VideoID      string `json:"video_id"`
	ViewCount    uint64 `json:"view_count"`
	LikeCount    uint64 `json:"like_count"`
	CommentCount uint64 `json:"comment_count"`
	Duration     string `json:"duration"`
}

// CommentRecord is one row of the "Comments Data" sheet.
//
// ReplyTo is nil for top-level comments; replies carry the parent's display text.
type CommentRecord struct {
	VideoID       string  `json:"video_id"`
	CommentID     string  `json:"comment_id"`
	Text          string  `json:"text"`
	Author        string  `json:"author"`
	PublishedDate string  `json:"published_date"`
	LikeCount     int64   `json:"like_count"`
	ReplyTo       *string `json:"reply_to"`
}

// IsReply reports whether the comment answers a top-level comment.
func (c CommentRecord) IsReply() bool {
	return c.ReplyTo != nil
}

// Row returns the record's cells in [CommentColumns] order.
func (c CommentRecord) Row() []any {
	return []any{
		c.VideoID,
		c.CommentID,
		c.Text,
		c.Author,
		c.PublishedDate,
		c.LikeCount,
		derefOrNil(c.ReplyTo),
	}
}

// ChannelExport is the merged dataset of one run.
type ChannelExport struct {
	ChannelID string          `json:"channel_id"`
	Locator   string          `json:"locator"`
	Videos    []VideoRecord   `json:"video_data"`
	Comments  []CommentRecord `json:"comments_data"`
}

func derefOrNil[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
