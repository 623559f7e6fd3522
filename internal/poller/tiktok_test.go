package poller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamnotify/internal/store"
	"streamnotify/internal/tiktok"
)

type fakeTikTokAPI struct {
	calls int

	ids  map[string]string
	errs map[string]error
}

func (f *fakeTikTokAPI) LatestVideoID(ctx context.Context, username string) (string, error) {
	f.calls++
	if err := f.errs[username]; err != nil {
		return "", err
	}
	id, ok := f.ids[username]
	if !ok {
		return "", tiktok.ErrNoVideo
	}
	return id, nil
}

func TestTikTokTickSkipsWhenNoCreatorRouted(t *testing.T) {
	configs := newConfigStore(t, store.PlatformTikTok, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{user} {link}"},
	})
	api := &fakeTikTokAPI{}

	p := NewTikTokPoller(testConfig(), configs, api, &fakeGateway{})
	p.tick(context.Background())

	assert.Zero(t, api.calls)
}

func TestTikTokNotifiesOnNewVideoOnly(t *testing.T) {
	configs := newConfigStore(t, store.PlatformTikTok, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{user} posted: {link}", ChannelID: "77", Ping: "@here"},
	})
	api := &fakeTikTokAPI{ids: map[string]string{"sam": "111"}}
	gateway := &fakeGateway{}

	p := NewTikTokPoller(testConfig(), configs, api, gateway)
	ctx := context.Background()

	p.tick(ctx)
	require.Len(t, gateway.sent(), 1)
	msg := gateway.sent()[0]
	assert.Equal(t, "77", msg.channelID)
	assert.Equal(t, "@here sam posted: https://www.tiktok.com/@sam/video/111", msg.content)

	// Same video again: nothing new
	p.tick(ctx)
	assert.Len(t, gateway.sent(), 1)

	api.ids["sam"] = "222"
	p.tick(ctx)
	assert.Len(t, gateway.sent(), 2)
}

func TestTikTokNoVideoIsNotAnUpdate(t *testing.T) {
	configs := newConfigStore(t, store.PlatformTikTok, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{link}", ChannelID: "77"},
	})
	api := &fakeTikTokAPI{ids: map[string]string{}}
	gateway := &fakeGateway{}

	p := NewTikTokPoller(testConfig(), configs, api, gateway)
	ctx := context.Background()

	// Scrape finds no id: tracker state must not advance
	p.tick(ctx)
	assert.Empty(t, gateway.sent())

	api.ids["sam"] = "111"
	p.tick(ctx)
	assert.Len(t, gateway.sent(), 1)
}

func TestTikTokFetchFailureDoesNotAbortOthers(t *testing.T) {
	configs := newConfigStore(t, store.PlatformTikTok, map[string]store.CreatorConfig{
		"broken": {Enabled: true, Message: "{link}", ChannelID: "1"},
		"sam":    {Enabled: true, Message: "{link}", ChannelID: "2"},
	})
	api := &fakeTikTokAPI{
		ids:  map[string]string{"sam": "111"},
		errs: map[string]error{"broken": assertAnError},
	}
	gateway := &fakeGateway{}

	p := NewTikTokPoller(testConfig(), configs, api, gateway)
	p.tick(context.Background())

	require.Len(t, gateway.sent(), 1)
	assert.Equal(t, "2", gateway.sent()[0].channelID)
}
