// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/youtube/v3"
)

// Call records one request made against [FakeDataAPI].
type Call struct {
	Method string
	Arg    string // query, channel id, comma-joined ids or video id
	Token  string
	Size   int // number of ids for ListVideos
}

// FakeDataAPI is a test double for [services.DataAPI] that serves canned pages and records every call.
//
// Pages are keyed by channel or video id and served in order: page i carries a next page token
// of "p<i+1>" unless it is the last one.
type FakeDataAPI struct {
	mu sync.Mutex

	Channels   map[string][]string                  // query -> channel ids
	VideoPages map[string][][]*youtube.SearchResult // channel id -> pages
	Statistics map[string]*youtube.Video            // video id -> item
	Threads    map[string][][]*youtube.CommentThread // video id -> pages

	// Err, when set, is returned by the method named in FailOn.
	Err    error
	FailOn string
	// FailAfter lets FailOn succeed this many times before failing.
	FailAfter int

	Calls []Call
}

func (f *FakeDataAPI) record(c Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, c)

	if f.Err != nil && f.FailOn == c.Method {
		if f.FailAfter > 0 {
			f.FailAfter--
			return nil
		}
		return f.Err
	}
	return nil
}

// CallsTo returns the recorded calls for method.
func (f *FakeDataAPI) CallsTo(method string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()

	var calls []Call
	for _, c := range f.Calls {
		if c.Method == method {
			calls = append(calls, c)
		}
	}
	return calls
}

func (f *FakeDataAPI) SearchChannels(ctx context.Context, query string, max int64) (*youtube.SearchListResponse, error) {
	if err := f.record(Call{Method: "SearchChannels", Arg: query, Size: int(max)}); err != nil {
		return nil, err
	}

	resp := &youtube.SearchListResponse{}
	for _, id := range f.Channels[query] {
		if int64(len(resp.Items)) >= max {
			break
		}
		resp.Items = append(resp.Items, &youtube.SearchResult{
			Id:      &youtube.ResourceId{Kind: "youtube#channel", ChannelId: id},
			Snippet: &youtube.SearchResultSnippet{ChannelId: id, Title: query},
		})
	}
	return resp, nil
}

func (f *FakeDataAPI) SearchVideos(ctx context.Context, channelID, pageToken string) (*youtube.SearchListResponse, error) {
	if err := f.record(Call{Method: "SearchVideos", Arg: channelID, Token: pageToken}); err != nil {
		return nil, err
	}

	items, next, err := page(f.VideoPages[channelID], pageToken)
	if err != nil {
		return nil, err
	}
	return &youtube.SearchListResponse{Items: items, NextPageToken: next}, nil
}

func (f *FakeDataAPI) ListVideos(ctx context.Context, ids []string) (*youtube.VideoListResponse, error) {
	if err := f.record(Call{Method: "ListVideos", Arg: strings.Join(ids, ","), Size: len(ids)}); err != nil {
		return nil, err
	}

	resp := &youtube.VideoListResponse{}
	for _, id := range ids {
		if item, ok := f.Statistics[id]; ok {
			resp.Items = append(resp.Items, item)
		}
	}
	return resp, nil
}

func (f *FakeDataAPI) ListCommentThreads(ctx context.Context, videoID, pageToken string) (*youtube.CommentThreadListResponse, error) {
	if err := f.record(Call{Method: "ListCommentThreads", Arg: videoID, Token: pageToken}); err != nil {
		return nil, err
	}

	items, next, err := page(f.Threads[videoID], pageToken)
	if err != nil {
		return nil, err
	}
	return &youtube.CommentThreadListResponse{Items: items, NextPageToken: next}, nil
}

func page[T any](pages [][]T, token string) ([]T, string, error) {
	index := 0
	if token != "" {
		if _, err := fmt.Sscanf(token, "p%d", &index); err != nil {
			return nil, "", fmt.Errorf("bad page token %q", token)
		}
	}
	if index >= len(pages) {
		if index == 0 {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("page token %q out of range", token)
	}

	next := ""
	if index+1 < len(pages) {
		next = fmt.Sprintf("p%d", index+1)
	}
	return pages[index], next, nil
}

// SearchVideo builds a search result for a video.
func SearchVideo(id, title string) *youtube.SearchResult {
	return &youtube.SearchResult{
		Id: &youtube.ResourceId{Kind: "youtube#video", VideoId: id},
		Snippet: &youtube.SearchResultSnippet{
			Title:       title,
			Description: title + " description",
			PublishedAt: "2024-01-01T00:00:00Z",
			Thumbnails: &youtube.ThumbnailDetails{
				Default: &youtube.Thumbnail{Url: "https://i.ytimg.com/vi/" + id + "/default.jpg"},
			},
		},
	}
}

// VideoStats builds a videos.list item.
func VideoStats(id string, views, likes, comments uint64, duration string) *youtube.Video {
	return &youtube.Video{
		Id:             id,
		Statistics:     &youtube.VideoStatistics{ViewCount: views, LikeCount: likes, CommentCount: comments},
		ContentDetails: &youtube.VideoContentDetails{Duration: duration},
	}
}

// Thread builds a comment thread whose top-level comment has the given text, followed by replies.
func Thread(id, text string, replies ...string) *youtube.CommentThread {
	thread := &youtube.CommentThread{
		Id: id,
		Snippet: &youtube.CommentThreadSnippet{
			TopLevelComment: &youtube.Comment{
				Id: id,
				Snippet: &youtube.CommentSnippet{
					TextDisplay:       text,
					AuthorDisplayName: "author-" + id,
					PublishedAt:       "2024-02-01T00:00:00Z",
					LikeCount:         1,
				},
			},
			TotalReplyCount: int64(len(replies)),
		},
	}

	if len(replies) > 0 {
		thread.Replies = &youtube.CommentThreadReplies{}
		for i, reply := range replies {
			replyID := fmt.Sprintf("%s.r%d", id, i+1)
			thread.Replies.Comments = append(thread.Replies.Comments, &youtube.Comment{
				Id: replyID,
				Snippet: &youtube.CommentSnippet{
					TextDisplay:       reply,
					AuthorDisplayName: "author-" + replyID,
					PublishedAt:       "2024-02-02T00:00:00Z",
				},
			})
		}
	}
	return thread
}

// Threads builds n threads with the given number of replies each, ids prefixed by prefix.
func Threads(prefix string, n, replies int) []*youtube.CommentThread {
	threads := make([]*youtube.CommentThread, n)
	for i := range threads {
		texts := make([]string, replies)
		for j := range texts {
			texts[j] = fmt.Sprintf("reply %d to %s-%d", j+1, prefix, i)
		}
		threads[i] = Thread(fmt.Sprintf("%s-%d", prefix, i), fmt.Sprintf("comment %s-%d", prefix, i), texts...)
	}
	return threads
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
