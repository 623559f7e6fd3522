package poller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamnotify/internal/store"
	"streamnotify/internal/youtube"
)

type fakeYouTubeAPI struct {
	resolveCalls int
	videoCalls   int

	latest map[string]*youtube.Video
}

func (f *fakeYouTubeAPI) ResolveChannelID(ctx context.Context, channelName string) (string, error) {
	f.resolveCalls++
	return "UC-" + channelName, nil
}

func (f *fakeYouTubeAPI) LatestVideo(ctx context.Context, channelID string) (*youtube.Video, error) {
	f.videoCalls++
	v := f.latest[channelID]
	if v == nil {
		return nil, youtube.ErrNoVideos
	}
	return v, nil
}

func TestYouTubeTickSkipsWhenNoCreatorRouted(t *testing.T) {
	configs := newConfigStore(t, store.PlatformYouTube, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{title} {link}"},
	})
	api := &fakeYouTubeAPI{}

	p := NewYouTubePoller(testConfig(), configs, api, &fakeGateway{})
	p.tick(context.Background())

	assert.Zero(t, api.resolveCalls)
	assert.Zero(t, api.videoCalls)
}

func TestYouTubeTickSkipsWithoutAPIKey(t *testing.T) {
	configs := newConfigStore(t, store.PlatformYouTube, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{title} {link}", ChannelID: "77"},
	})
	api := &fakeYouTubeAPI{}

	cfg := testConfig()
	cfg.YouTubeAPIKey = ""

	p := NewYouTubePoller(cfg, configs, api, &fakeGateway{})
	p.tick(context.Background())

	assert.Zero(t, api.resolveCalls)
}

func TestYouTubeNotifiesOnNewUploadOnly(t *testing.T) {
	configs := newConfigStore(t, store.PlatformYouTube, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "New video from {user}: {title} {link}", ChannelID: "77"},
	})
	api := &fakeYouTubeAPI{latest: map[string]*youtube.Video{
		"UC-sam": {ID: "v1", Title: "First", ThumbnailURL: "http://thumb/v1"},
	}}
	gateway := &fakeGateway{}

	// First-seen notification enabled: the very first id announces
	p := NewYouTubePoller(testConfig(), configs, api, gateway)
	ctx := context.Background()

	p.tick(ctx)
	require.Len(t, gateway.sent(), 1)
	msg := gateway.sent()[0]
	assert.Equal(t, "77", msg.channelID)
	assert.Equal(t, "New video from sam: First https://www.youtube.com/watch?v=v1", msg.content)
	require.NotNil(t, msg.embed)
	assert.Equal(t, "First", msg.embed.Title)

	// Same id again: nothing new
	p.tick(ctx)
	assert.Len(t, gateway.sent(), 1)

	// A new upload announces once
	api.latest["UC-sam"] = &youtube.Video{ID: "v2", Title: "Second"}
	p.tick(ctx)
	p.tick(ctx)
	assert.Len(t, gateway.sent(), 2)
}

func TestYouTubeFirstSeenBaseline(t *testing.T) {
	configs := newConfigStore(t, store.PlatformYouTube, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{title}", ChannelID: "77"},
	})
	api := &fakeYouTubeAPI{latest: map[string]*youtube.Video{
		"UC-sam": {ID: "v1", Title: "First"},
	}}
	gateway := &fakeGateway{}

	cfg := testConfig()
	cfg.NotifyOnFirstSeen = false

	p := NewYouTubePoller(cfg, configs, api, gateway)
	ctx := context.Background()

	// The first id only records a baseline
	p.tick(ctx)
	assert.Empty(t, gateway.sent())

	api.latest["UC-sam"] = &youtube.Video{ID: "v2", Title: "Second"}
	p.tick(ctx)
	assert.Len(t, gateway.sent(), 1)
}

func TestYouTubeNoVideosIsNotNotified(t *testing.T) {
	configs := newConfigStore(t, store.PlatformYouTube, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{title}", ChannelID: "77"},
	})
	api := &fakeYouTubeAPI{latest: map[string]*youtube.Video{}}
	gateway := &fakeGateway{}

	p := NewYouTubePoller(testConfig(), configs, api, gateway)
	p.tick(context.Background())

	assert.Empty(t, gateway.sent())
}
