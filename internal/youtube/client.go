// Package youtube wraps the YouTube Data API for channel resolution and
// latest-video lookup using an API key.
package youtube

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

var (
	ErrChannelNotFound = errors.New("youtube channel not found")
	ErrNoVideos        = errors.New("no videos found for channel")
)

// Video is the newest upload on a channel
type Video struct {
	ID           string
	Title        string
	ThumbnailURL string
}

// URL returns the public watch link for the video
func (v *Video) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// Client is a YouTube Data API client
type Client struct {
	svc *yt.Service
}

// NewClient creates a YouTube client authenticated with an API key
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ResolveChannelID finds the channel id matching a channel name
func (c *Client) ResolveChannelID(ctx context.Context, channelName string) (string, error) {
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(channelName).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("channel search failed: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.ChannelId == "" {
		return "", fmt.Errorf("%w: %q", ErrChannelNotFound, channelName)
	}
	return resp.Items[0].Id.ChannelId, nil
}

// LatestVideo returns the single most recent video on a channel,
// ordered by publish date
func (c *Client) LatestVideo(ctx context.Context, channelID string) (*Video, error) {
	resp, err := c.svc.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		Order("date").
		Type("video").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("video search failed: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.VideoId == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoVideos, channelID)
	}

	item := resp.Items[0]
	video := &Video{ID: item.Id.VideoId}
	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			video.ThumbnailURL = item.Snippet.Thumbnails.High.Url
		}
	}
	return video, nil
}
