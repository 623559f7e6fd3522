package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"streamnotify/internal/config"
	"streamnotify/internal/store"
)

type sentMessage struct {
	channelID string
	content   string
	embed     *discordgo.MessageEmbed
}

type fakeGateway struct {
	mu    sync.Mutex
	fail  bool
	sends []sentMessage
}

func (g *fakeGateway) Send(ctx context.Context, channelID, content string, embed *discordgo.MessageEmbed) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return assertAnError
	}
	g.sends = append(g.sends, sentMessage{channelID: channelID, content: content, embed: embed})
	return nil
}

func (g *fakeGateway) sent() []sentMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]sentMessage(nil), g.sends...)
}

var assertAnError = assertError{}

type assertError struct{}

func (assertError) Error() string { return "delivery failed" }

func testConfig() *config.Config {
	return &config.Config{
		TwitchClientID:      "client-id",
		TwitchClientSecret:  "client-secret",
		YouTubeAPIKey:       "yt-key",
		TwitchPollInterval:  time.Minute,
		YouTubePollInterval: time.Minute,
		TikTokPollInterval:  time.Minute,
		NotifyOnFirstSeen:   true,
	}
}

func newConfigStore(t *testing.T, platform store.Platform, creators map[string]store.CreatorConfig) *store.ConfigStore {
	t.Helper()
	s := store.NewConfigStore(t.TempDir())
	for handle, cfg := range creators {
		require.NoError(t, s.AddCreator(platform, handle, cfg))
	}
	return s
}
