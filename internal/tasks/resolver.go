package tasks

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/ytexport/internal/shared"
	"google.golang.org/api/youtube/v3"
)

// ParseHandle extracts the "@handle" from a channel locator.
//
// Accepts a full channel URL ("https://www.youtube.com/@name/videos") or a bare "@name".
// The path, with surrounding slashes stripped, must start with "@".
func ParseHandle(locator string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(locator))
	if err != nil {
		return "", fmt.Errorf("%w: unparseable channel URL %q: %v", shared.ErrInvalidInput, locator, err)
	}

	path := strings.Trim(u.Path, "/")
	if !strings.HasPrefix(path, "@") {
		return "", fmt.Errorf("%w: %q does not contain a valid YouTube handle", shared.ErrInvalidInput, locator)
	}

	handle, _, _ := strings.Cut(path, "/")
	if len(handle) < 2 {
		return "", fmt.Errorf("%w: empty handle in %q", shared.ErrInvalidInput, locator)
	}
	return handle, nil
}

// ResolveChannelID turns an "@handle" locator into a channel id with a single one-result channel search.
func (e *ChannelEngine) ResolveChannelID(ctx context.Context, locator string) (string, error) {
	if e.api == nil {
		return "", fmt.Errorf("%w: data api not initialized", shared.ErrUpstream)
	}
	return e.resolve(ctx, nil, locator)
}

func (e *ChannelEngine) resolve(ctx context.Context, progress chan<- ProgressUpdate, locator string) (string, error) {
	handle, err := ParseHandle(locator)
	if err != nil {
		e.logger.Error("error extracting channel ID", "locator", locator, "err", err)
		return "", err
	}

	e.sendProgress(progress, resolvingUpdate(handle))

	resp, err := e.api.SearchChannels(ctx, handle, 1)
	if err != nil {
		e.logger.Error("error extracting channel ID", "handle", handle, "err", err)
		return "", fmt.Errorf("%w: resolve %s: %w", shared.ErrUpstream, handle, err)
	}

	if channelID := firstChannelID(resp); channelID != "" {
		e.sendProgress(progress, resolvedUpdate(handle, channelID))
		return channelID, nil
	}

	err = fmt.Errorf("%w: no channel for handle %s", shared.ErrChannelNotFound, handle)
	e.logger.Error("error extracting channel ID", "handle", handle, "err", err)
	return "", err
}

// firstChannelID returns the channel id of the first search result, or "" when there is none.
func firstChannelID(resp *youtube.SearchListResponse) string {
	if resp == nil || len(resp.Items) == 0 || resp.Items[0] == nil {
		return ""
	}
	item := resp.Items[0]
	if item.Snippet != nil && item.Snippet.ChannelId != "" {
		return item.Snippet.ChannelId
	}
	if item.Id != nil {
		return item.Id.ChannelId
	}
	return ""
}
