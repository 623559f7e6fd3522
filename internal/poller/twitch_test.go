package poller

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamnotify/internal/store"
	"streamnotify/internal/twitch"
)

type fakeTwitchAPI struct {
	tokenCalls  int
	userCalls   int
	streamCalls int

	live    map[string]*twitch.Stream
	failFor map[string]bool
}

func (f *fakeTwitchAPI) AppToken(ctx context.Context) (string, error) {
	f.tokenCalls++
	return "token", nil
}

func (f *fakeTwitchAPI) UserByLogin(ctx context.Context, token, login string) (*twitch.User, error) {
	f.userCalls++
	if f.failFor[login] {
		return nil, fmt.Errorf("resolve failed for %s", login)
	}
	return &twitch.User{ID: "id-" + login, Login: login, DisplayName: login}, nil
}

func (f *fakeTwitchAPI) StreamByUserID(ctx context.Context, token, userID string) (*twitch.Stream, error) {
	f.streamCalls++
	return f.live[userID], nil
}

func TestTwitchTickSkipsWhenNoCreatorRouted(t *testing.T) {
	// Enabled but without a channel: the tick must make zero network calls
	configs := newConfigStore(t, store.PlatformTwitch, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{user} live {link}"},
	})
	api := &fakeTwitchAPI{}
	gateway := &fakeGateway{}

	p := NewTwitchPoller(testConfig(), configs, api, gateway)
	p.tick(context.Background())

	assert.Zero(t, api.tokenCalls)
	assert.Zero(t, api.userCalls)
	assert.Zero(t, api.streamCalls)
	assert.Empty(t, gateway.sent())
}

func TestTwitchTickSkipsWithoutCredentials(t *testing.T) {
	configs := newConfigStore(t, store.PlatformTwitch, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{user} live {link}", ChannelID: "77"},
	})
	api := &fakeTwitchAPI{}

	cfg := testConfig()
	cfg.TwitchClientID = ""
	cfg.TwitchClientSecret = ""

	p := NewTwitchPoller(cfg, configs, api, &fakeGateway{})
	p.tick(context.Background())

	assert.Zero(t, api.tokenCalls)
	assert.Zero(t, api.userCalls)
}

func TestTwitchNotifiesOnLiveTransition(t *testing.T) {
	configs := newConfigStore(t, store.PlatformTwitch, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{user} is live on {game}! {link}", ChannelID: "77", Ping: "@everyone"},
	})
	api := &fakeTwitchAPI{live: map[string]*twitch.Stream{}}
	gateway := &fakeGateway{}

	cfg := testConfig()
	cfg.NotifyOnFirstSeen = false

	p := NewTwitchPoller(cfg, configs, api, gateway)
	ctx := context.Background()

	// Offline: nothing to announce
	p.tick(ctx)
	assert.Empty(t, gateway.sent())

	// Goes live: exactly one notification
	api.live["id-sam"] = &twitch.Stream{Title: "speedrun", GameName: "Celeste"}
	p.tick(ctx)
	require.Len(t, gateway.sent(), 1)

	msg := gateway.sent()[0]
	assert.Equal(t, "77", msg.channelID)
	assert.Equal(t, "@everyone sam is live on Celeste! https://twitch.tv/sam", msg.content)
	require.NotNil(t, msg.embed)
	assert.Equal(t, "speedrun", msg.embed.Description)

	// Still live: no re-notification
	p.tick(ctx)
	assert.Len(t, gateway.sent(), 1)

	// Offline then live again: a second notification
	delete(api.live, "id-sam")
	p.tick(ctx)
	api.live["id-sam"] = &twitch.Stream{Title: "round two", GameName: "Celeste"}
	p.tick(ctx)
	assert.Len(t, gateway.sent(), 2)
}

func TestTwitchTokenAcquiredEveryTick(t *testing.T) {
	configs := newConfigStore(t, store.PlatformTwitch, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{user} {link}", ChannelID: "77"},
	})
	api := &fakeTwitchAPI{}

	p := NewTwitchPoller(testConfig(), configs, api, &fakeGateway{})
	p.tick(context.Background())
	p.tick(context.Background())

	assert.Equal(t, 2, api.tokenCalls)
}

func TestTwitchUnknownGameFallback(t *testing.T) {
	configs := newConfigStore(t, store.PlatformTwitch, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{game}", ChannelID: "77"},
	})
	api := &fakeTwitchAPI{live: map[string]*twitch.Stream{
		"id-sam": {Title: "untitled"},
	}}
	gateway := &fakeGateway{}

	p := NewTwitchPoller(testConfig(), configs, api, gateway)
	p.tick(context.Background())

	require.Len(t, gateway.sent(), 1)
	assert.Equal(t, "Unknown Game", gateway.sent()[0].content)
}

func TestTwitchCreatorFailureDoesNotAbortOthers(t *testing.T) {
	configs := newConfigStore(t, store.PlatformTwitch, map[string]store.CreatorConfig{
		"broken": {Enabled: true, Message: "{user} {link}", ChannelID: "1"},
		"sam":    {Enabled: true, Message: "{user} {link}", ChannelID: "2"},
	})
	api := &fakeTwitchAPI{
		failFor: map[string]bool{"broken": true},
		live:    map[string]*twitch.Stream{"id-sam": {Title: "up", GameName: "chess"}},
	}
	gateway := &fakeGateway{}

	p := NewTwitchPoller(testConfig(), configs, api, gateway)
	p.tick(context.Background())

	require.Len(t, gateway.sent(), 1)
	assert.Equal(t, "2", gateway.sent()[0].channelID)
}

func TestTwitchDeliveryFailureAdvancesState(t *testing.T) {
	// A failed delivery is not retried: the tracker has already
	// recorded the live state
	configs := newConfigStore(t, store.PlatformTwitch, map[string]store.CreatorConfig{
		"sam": {Enabled: true, Message: "{user} {link}", ChannelID: "77"},
	})
	api := &fakeTwitchAPI{live: map[string]*twitch.Stream{
		"id-sam": {Title: "up", GameName: "chess"},
	}}
	gateway := &fakeGateway{fail: true}

	p := NewTwitchPoller(testConfig(), configs, api, gateway)
	p.tick(context.Background())
	assert.Empty(t, gateway.sent())

	gateway.fail = false
	p.tick(context.Background())
	assert.Empty(t, gateway.sent(), "still live, lost notification is not replayed")
}
