package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/desertthunder/ytexport/internal/models"
	"github.com/desertthunder/ytexport/internal/shared"
	tu "github.com/desertthunder/ytexport/internal/testing"
	"google.golang.org/api/youtube/v3"
)

var errBoom = errors.New("boom")

func newEngine(api *tu.FakeDataAPI) *ChannelEngine {
	return NewChannelEngine(api, shared.NewLogger(io.Discard))
}

func searchPage(prefix string, n int) []*youtube.SearchResult {
	items := make([]*youtube.SearchResult, n)
	for i := range items {
		id := fmt.Sprintf("%s%d", prefix, i)
		items[i] = tu.SearchVideo(id, "Video "+id)
	}
	return items
}

func TestParseHandle(t *testing.T) {
	tc := []struct {
		name    string
		locator string
		want    string
		wantErr bool
	}{
		{name: "channel URL", locator: "https://www.youtube.com/@GoogleDevelopers", want: "@GoogleDevelopers"},
		{name: "trailing slash", locator: "https://www.youtube.com/@golang/", want: "@golang"},
		{name: "tab suffix", locator: "https://www.youtube.com/@golang/videos", want: "@golang"},
		{name: "bare handle", locator: "@golang", want: "@golang"},
		{name: "surrounding whitespace", locator: "  @golang\n", want: "@golang"},
		{name: "legacy channel URL", locator: "https://www.youtube.com/channel/UC123", wantErr: true},
		{name: "no handle", locator: "https://www.youtube.com/", wantErr: true},
		{name: "empty handle", locator: "https://www.youtube.com/@", wantErr: true},
		{name: "empty", locator: "", wantErr: true},
		{name: "plain word", locator: "golang", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHandle(tt.locator)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseHandle(%q) = %q, want %q", tt.locator, got, tt.want)
			}
		})
	}
}

func TestResolveChannelID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns first channel", func(t *testing.T) {
		api := &tu.FakeDataAPI{Channels: map[string][]string{"@golang": {"UCgo", "UCother"}}}

		id, err := newEngine(api).ResolveChannelID(ctx, "https://www.youtube.com/@golang")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id != "UCgo" {
			t.Errorf("expected UCgo, got %s", id)
		}

		calls := api.CallsTo("SearchChannels")
		if len(calls) != 1 {
			t.Fatalf("expected 1 search, got %d", len(calls))
		}
		if calls[0].Arg != "@golang" || calls[0].Size != 1 {
			t.Errorf("unexpected search call %+v", calls[0])
		}
	})

	t.Run("invalid locator makes no request", func(t *testing.T) {
		api := &tu.FakeDataAPI{}

		_, err := newEngine(api).ResolveChannelID(ctx, "https://www.youtube.com/c/golang")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if len(api.Calls) != 0 {
			t.Errorf("expected no calls, got %d", len(api.Calls))
		}
	})

	t.Run("no results", func(t *testing.T) {
		api := &tu.FakeDataAPI{}

		_, err := newEngine(api).ResolveChannelID(ctx, "@missing")
		if !errors.Is(err, shared.ErrChannelNotFound) {
			t.Fatalf("expected ErrChannelNotFound, got %v", err)
		}
	})

	t.Run("upstream error", func(t *testing.T) {
		api := &tu.FakeDataAPI{Err: errBoom, FailOn: "SearchChannels"}

		_, err := newEngine(api).ResolveChannelID(ctx, "@golang")
		if !errors.Is(err, shared.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
		if !errors.Is(err, errBoom) {
			t.Errorf("expected underlying error to be preserved, got %v", err)
		}
	})

	t.Run("nil api", func(t *testing.T) {
		engine := NewChannelEngine(nil, shared.NewLogger(io.Discard))
		if _, err := engine.ResolveChannelID(ctx, "@golang"); !errors.Is(err, shared.ErrUpstream) {
			t.Errorf("expected ErrUpstream, got %v", err)
		}
	})
}

func TestFetchVideos(t *testing.T) {
	ctx := context.Background()

	t.Run("follows cursor until exhausted", func(t *testing.T) {
		api := &tu.FakeDataAPI{VideoPages: map[string][][]*youtube.SearchResult{
			"UC1": {searchPage("a", 50), searchPage("b", 50), searchPage("c", 7)},
		}}

		videos, err := newEngine(api).FetchVideos(ctx, "UC1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(videos) != 107 {
			t.Fatalf("expected 107 videos, got %d", len(videos))
		}

		calls := api.CallsTo("SearchVideos")
		wantTokens := []string{"", "p1", "p2"}
		if len(calls) != len(wantTokens) {
			t.Fatalf("expected %d page requests, got %d", len(wantTokens), len(calls))
		}
		for i, call := range calls {
			if call.Token != wantTokens[i] {
				t.Errorf("request %d: expected token %q, got %q", i, wantTokens[i], call.Token)
			}
		}

		first := videos[0]
		if first.VideoID != "a0" || first.Title != "Video a0" {
			t.Errorf("unexpected first video %+v", first)
		}
		if first.ThumbnailURL != "https://i.ytimg.com/vi/a0/default.jpg" {
			t.Errorf("unexpected thumbnail %s", first.ThumbnailURL)
		}
		if first.HasStatistics() {
			t.Error("listing records should not carry statistics")
		}
		if videos[106].VideoID != "c6" {
			t.Errorf("expected search order to be preserved, last is %s", videos[106].VideoID)
		}
	})

	t.Run("defaults missing snippet fields", func(t *testing.T) {
		api := &tu.FakeDataAPI{VideoPages: map[string][][]*youtube.SearchResult{
			"UC1": {{
				{Id: &youtube.ResourceId{VideoId: "bare"}, Snippet: &youtube.SearchResultSnippet{Title: "Bare"}},
				{Id: &youtube.ResourceId{Kind: "youtube#playlist"}},
			}},
		}}

		videos, err := newEngine(api).FetchVideos(ctx, "UC1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(videos) != 1 {
			t.Fatalf("expected results without a video id to be skipped, got %d", len(videos))
		}
		if videos[0].Description != "" || videos[0].ThumbnailURL != "" {
			t.Errorf("expected empty defaults, got %+v", videos[0])
		}
	})

	t.Run("empty channel", func(t *testing.T) {
		videos, err := newEngine(&tu.FakeDataAPI{}).FetchVideos(ctx, "UC1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if videos == nil || len(videos) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", videos)
		}
	})

	t.Run("page error discards partial results", func(t *testing.T) {
		api := &tu.FakeDataAPI{
			VideoPages: map[string][][]*youtube.SearchResult{"UC1": {searchPage("a", 50), searchPage("b", 50)}},
			Err:        errBoom,
			FailOn:     "SearchVideos",
			FailAfter:  1,
		}

		videos, err := newEngine(api).FetchVideos(ctx, "UC1")
		if !errors.Is(err, shared.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
		if videos != nil {
			t.Errorf("expected no partial results, got %d", len(videos))
		}
	})
}

func TestFetchStatistics(t *testing.T) {
	ctx := context.Background()

	ids := make([]string, 120)
	stats := map[string]*youtube.Video{}
	for i := range ids {
		ids[i] = fmt.Sprintf("v%d", i)
		stats[ids[i]] = tu.VideoStats(ids[i], uint64(i), 1, 2, "PT2M2S")
	}

	t.Run("batches of fifty", func(t *testing.T) {
		api := &tu.FakeDataAPI{Statistics: stats}

		got, err := newEngine(api).FetchStatistics(ctx, ids)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 120 {
			t.Fatalf("expected 120 entries, got %d", len(got))
		}

		calls := api.CallsTo("ListVideos")
		wantSizes := []int{50, 50, 20}
		if len(calls) != len(wantSizes) {
			t.Fatalf("expected %d batch requests, got %d", len(wantSizes), len(calls))
		}
		for i, call := range calls {
			if call.Size != wantSizes[i] {
				t.Errorf("batch %d: expected %d ids, got %d", i, wantSizes[i], call.Size)
			}
		}

		if got[0].Duration != "00:02:02" {
			t.Errorf("expected normalized duration, got %s", got[0].Duration)
		}
		if got[119].ViewCount != 119 {
			t.Errorf("expected view count 119, got %d", got[119].ViewCount)
		}
	})

	t.Run("missing counters and bad durations default", func(t *testing.T) {
		api := &tu.FakeDataAPI{Statistics: map[string]*youtube.Video{
			"hidden":  {Id: "hidden", ContentDetails: &youtube.VideoContentDetails{Duration: "PT1H"}},
			"garbled": {Id: "garbled", Statistics: &youtube.VideoStatistics{ViewCount: 5}, ContentDetails: &youtube.VideoContentDetails{Duration: "soon"}},
			"nodetail": {Id: "nodetail", Statistics: &youtube.VideoStatistics{LikeCount: 3}},
		}}

		got, err := newEngine(api).FetchStatistics(ctx, []string{"hidden", "garbled", "nodetail"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := []models.VideoStatistics{
			{VideoID: "hidden", Duration: "01:00:00"},
			{VideoID: "garbled", ViewCount: 5, Duration: shared.ZeroDuration},
			{VideoID: "nodetail", LikeCount: 3, Duration: shared.ZeroDuration},
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("entry %d: expected %+v, got %+v", i, want[i], got[i])
			}
		}
	})

	t.Run("no ids makes no request", func(t *testing.T) {
		api := &tu.FakeDataAPI{}
		got, err := newEngine(api).FetchStatistics(ctx, nil)
		if err != nil || len(got) != 0 {
			t.Fatalf("expected empty result, got %v, %v", got, err)
		}
		if len(api.Calls) != 0 {
			t.Errorf("expected no calls, got %d", len(api.Calls))
		}
	})

	t.Run("batch error aborts", func(t *testing.T) {
		api := &tu.FakeDataAPI{Statistics: stats, Err: errBoom, FailOn: "ListVideos", FailAfter: 1}

		got, err := newEngine(api).FetchStatistics(ctx, ids)
		if !errors.Is(err, shared.ErrUpstream) || !errors.Is(err, errBoom) {
			t.Fatalf("expected wrapped upstream error, got %v", err)
		}
		if got != nil {
			t.Errorf("expected no partial results, got %d", len(got))
		}
		if n := len(api.CallsTo("ListVideos")); n != 2 {
			t.Errorf("expected fetching to stop at the failing batch, got %d calls", n)
		}
	})
}

func TestFetchComments(t *testing.T) {
	ctx := context.Background()

	t.Run("stops once a page reaches the cap", func(t *testing.T) {
		api := &tu.FakeDataAPI{Threads: map[string][][]*youtube.CommentThread{
			"v1": {tu.Threads("a", 30, 1), tu.Threads("b", 45, 1), tu.Threads("c", 100, 0)},
		}}

		comments, err := newEngine(api).FetchComments(ctx, "v1", 100)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(comments) != 150 {
			t.Errorf("expected whole second page to be kept (150), got %d", len(comments))
		}
		if n := len(api.CallsTo("ListCommentThreads")); n != 2 {
			t.Errorf("expected 2 page requests, got %d", n)
		}
	})

	t.Run("full first page satisfies the cap", func(t *testing.T) {
		api := &tu.FakeDataAPI{Threads: map[string][][]*youtube.CommentThread{
			"v1": {tu.Threads("a", 100, 0), tu.Threads("b", 100, 0), tu.Threads("c", 50, 0)},
		}}

		comments, err := newEngine(api).FetchComments(ctx, "v1", 100)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(comments) != 100 {
			t.Errorf("expected 100 comments, got %d", len(comments))
		}
		if n := len(api.CallsTo("ListCommentThreads")); n != 1 {
			t.Errorf("expected 1 page request, got %d", n)
		}
	})

	t.Run("cursor exhausted before cap", func(t *testing.T) {
		api := &tu.FakeDataAPI{Threads: map[string][][]*youtube.CommentThread{
			"v1": {tu.Threads("a", 2, 2), tu.Threads("b", 1, 0)},
		}}

		comments, err := newEngine(api).FetchComments(ctx, "v1", 100)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(comments) != 7 {
			t.Errorf("expected 7 comments, got %d", len(comments))
		}
	})

	t.Run("default cap", func(t *testing.T) {
		api := &tu.FakeDataAPI{Threads: map[string][][]*youtube.CommentThread{
			"v1": {tu.Threads("a", 100, 0), tu.Threads("b", 100, 0)},
		}}

		comments, err := newEngine(api).FetchComments(ctx, "v1", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(comments) != shared.DefaultMaxComments {
			t.Errorf("expected %d comments, got %d", shared.DefaultMaxComments, len(comments))
		}
	})

	t.Run("replies reference earlier top-level text", func(t *testing.T) {
		api := &tu.FakeDataAPI{Threads: map[string][][]*youtube.CommentThread{
			"v1": {tu.Threads("a", 3, 2), {tu.Thread("solo", "no replies here")}},
		}}

		comments, err := newEngine(api).FetchComments(ctx, "v1", 100)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		seen := map[string]bool{}
		for i, c := range comments {
			if c.VideoID != "v1" {
				t.Errorf("comment %d: expected video v1, got %s", i, c.VideoID)
			}
			if !c.IsReply() {
				seen[c.Text] = true
				continue
			}
			if *c.ReplyTo == "" || !seen[*c.ReplyTo] {
				t.Errorf("comment %d replies to unseen text %q", i, *c.ReplyTo)
			}
		}

		first, reply := comments[0], comments[1]
		if first.CommentID != "a-0" || first.ReplyTo != nil || first.LikeCount != 1 {
			t.Errorf("unexpected top-level record %+v", first)
		}
		if reply.CommentID != "a-0.r1" || *reply.ReplyTo != "comment a-0" {
			t.Errorf("unexpected reply record %+v", reply)
		}
		if last := comments[len(comments)-1]; last.Text != "no replies here" || last.IsReply() {
			t.Errorf("unexpected last record %+v", last)
		}
	})

	t.Run("page error discards comments", func(t *testing.T) {
		api := &tu.FakeDataAPI{
			Threads:   map[string][][]*youtube.CommentThread{"v1": {tu.Threads("a", 10, 0), tu.Threads("b", 10, 0)}},
			Err:       errBoom,
			FailOn:    "ListCommentThreads",
			FailAfter: 1,
		}

		comments, err := newEngine(api).FetchComments(ctx, "v1", 100)
		if !errors.Is(err, shared.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
		if comments != nil {
			t.Errorf("expected no partial comments, got %d", len(comments))
		}
	})
}

func TestMergeStatistics(t *testing.T) {
	videos := []models.VideoRecord{
		{VideoID: "v1", Title: "One"},
		{VideoID: "v2", Title: "Two"},
		{VideoID: "v3", Title: "Three"},
	}

	t.Run("empty statistics leaves listing unchanged", func(t *testing.T) {
		merged := MergeStatistics(videos, nil)
		if len(merged) != len(videos) {
			t.Fatalf("expected %d records, got %d", len(videos), len(merged))
		}
		for i := range videos {
			if merged[i] != videos[i] {
				t.Errorf("record %d changed: %+v", i, merged[i])
			}
			if merged[i].HasStatistics() {
				t.Errorf("record %d gained statistics", i)
			}
		}
	})

	t.Run("enriches matches and preserves order", func(t *testing.T) {
		stats := []models.VideoStatistics{
			{VideoID: "v3", ViewCount: 3, Duration: "00:00:03"},
			{VideoID: "v1", ViewCount: 1, Duration: "00:00:01"},
			{VideoID: "v1", ViewCount: 99, Duration: "00:09:09"},
			{VideoID: "orphan", ViewCount: 7},
		}

		merged := MergeStatistics(videos, stats)
		if merged[0].VideoID != "v1" || merged[1].VideoID != "v2" || merged[2].VideoID != "v3" {
			t.Fatalf("order not preserved: %+v", merged)
		}
		if *merged[0].ViewCount != 1 || *merged[0].Duration != "00:00:01" {
			t.Errorf("expected first statistics entry to win, got %d %s", *merged[0].ViewCount, *merged[0].Duration)
		}
		if merged[1].HasStatistics() {
			t.Error("unmatched video should not gain statistics")
		}
		if *merged[2].ViewCount != 3 {
			t.Errorf("expected v3 views 3, got %d", *merged[2].ViewCount)
		}
		if merged[2].Title != "Three" {
			t.Errorf("listing fields should survive merge, got %q", merged[2].Title)
		}
		if videos[0].HasStatistics() {
			t.Error("input records must not be modified")
		}
	})
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	fixture := func() *tu.FakeDataAPI {
		return &tu.FakeDataAPI{
			Channels: map[string][]string{"@chan": {"UCchan"}},
			VideoPages: map[string][][]*youtube.SearchResult{
				"UCchan": {{tu.SearchVideo("v1", "One")}, {tu.SearchVideo("v2", "Two")}},
			},
			Statistics: map[string]*youtube.Video{
				"v1": tu.VideoStats("v1", 100, 10, 1, "PT2M2S"),
				"v2": tu.VideoStats("v2", 200, 20, 1, "PT1H1M1S"),
			},
			Threads: map[string][][]*youtube.CommentThread{
				"v1": {{tu.Thread("c1", "nice", "thanks")}},
				"v2": {{tu.Thread("c2", "cool", "agreed")}},
			},
		}
	}

	t.Run("end to end", func(t *testing.T) {
		api := fixture()
		progress := make(chan ProgressUpdate, 32)

		export, err := newEngine(api).Run(ctx, progress, "https://www.youtube.com/@chan", RunOpts{MaxComments: 100})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(progress)

		if export.ChannelID != "UCchan" {
			t.Errorf("expected channel UCchan, got %s", export.ChannelID)
		}
		if len(export.Videos) != 2 {
			t.Fatalf("expected 2 videos, got %d", len(export.Videos))
		}
		if len(export.Comments) != 4 {
			t.Fatalf("expected 4 comments, got %d", len(export.Comments))
		}
		if *export.Videos[1].Duration != "01:01:01" {
			t.Errorf("expected merged duration, got %s", *export.Videos[1].Duration)
		}
		if export.Comments[2].VideoID != "v2" || export.Comments[3].ReplyTo == nil {
			t.Errorf("unexpected comment order %+v", export.Comments)
		}

		phases := map[Phase]bool{}
		for update := range progress {
			phases[update.Phase] = true
		}
		for _, p := range []Phase{ResolveChannel, ListVideos, FetchStatistics, MergeRecords, FetchComments} {
			if !phases[p] {
				t.Errorf("expected a %s progress update", p)
			}
		}
	})

	t.Run("skip comments", func(t *testing.T) {
		api := fixture()

		export, err := newEngine(api).Run(ctx, nil, "@chan", RunOpts{SkipComments: true})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(export.Comments) != 0 {
			t.Errorf("expected no comments, got %d", len(export.Comments))
		}
		if n := len(api.CallsTo("ListCommentThreads")); n != 0 {
			t.Errorf("expected no comment requests, got %d", n)
		}
	})

	t.Run("comment failure aborts the run", func(t *testing.T) {
		api := fixture()
		api.Err = errBoom
		api.FailOn = "ListCommentThreads"
		api.FailAfter = 1

		export, err := newEngine(api).Run(ctx, nil, "@chan", RunOpts{})
		if !errors.Is(err, shared.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
		if export != nil {
			t.Error("expected no dataset on failure")
		}
	})

	t.Run("invalid locator", func(t *testing.T) {
		api := fixture()
		if _, err := newEngine(api).Run(ctx, nil, "chan", RunOpts{}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if len(api.Calls) != 0 {
			t.Errorf("expected no requests, got %d", len(api.Calls))
		}
	})

	t.Run("full progress channel never blocks", func(t *testing.T) {
		progress := make(chan ProgressUpdate)
		if _, err := newEngine(fixture()).Run(ctx, progress, "@chan", RunOpts{}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestPhaseString(t *testing.T) {
	if FetchComments.String() != "fetch_comments" {
		t.Errorf("unexpected phase name %s", FetchComments.String())
	}
	if Phase(99).String() != "" {
		t.Error("expected unknown phase to be empty")
	}
}

func TestPages(t *testing.T) {
	ctx := context.Background()

	t.Run("follows tokens until empty", func(t *testing.T) {
		var tokens []string
		fetch := func(ctx context.Context, token string) (int, string, error) {
			tokens = append(tokens, token)
			switch token {
			case "":
				return 1, "a", nil
			case "a":
				return 2, "b", nil
			default:
				return 3, "", nil
			}
		}

		var got []int
		for page, err := range pages(ctx, fetch) {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got = append(got, page)
		}

		if len(got) != 3 || got[2] != 3 {
			t.Errorf("expected pages [1 2 3], got %v", got)
		}
		if len(tokens) != 3 || tokens[1] != "a" || tokens[2] != "b" {
			t.Errorf("unexpected tokens %v", tokens)
		}
	})

	t.Run("stops when the consumer breaks", func(t *testing.T) {
		calls := 0
		fetch := func(ctx context.Context, token string) (int, string, error) {
			calls++
			return calls, "more", nil
		}

		for page := range pages(ctx, fetch) {
			if page == 2 {
				break
			}
		}
		if calls != 2 {
			t.Errorf("expected 2 fetches, got %d", calls)
		}
	})

	t.Run("error ends the sequence", func(t *testing.T) {
		fetch := func(ctx context.Context, token string) (int, string, error) {
			if token == "" {
				return 1, "next", nil
			}
			return 0, "", errBoom
		}

		var errs []error
		count := 0
		for _, err := range pages(ctx, fetch) {
			count++
			if err != nil {
				errs = append(errs, err)
			}
		}
		if count != 2 || len(errs) != 1 || !errors.Is(errs[0], errBoom) {
			t.Errorf("expected one page then one error, got %d yields and %v", count, errs)
		}
	})
}
