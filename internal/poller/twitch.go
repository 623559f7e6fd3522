package poller

import (
	"context"
	"log/slog"

	"streamnotify/internal/config"
	"streamnotify/internal/freshness"
	"streamnotify/internal/metrics"
	"streamnotify/internal/notify"
	"streamnotify/internal/store"
	"streamnotify/internal/twitch"
)

// TwitchAPI is the slice of the Twitch client the poller needs
type TwitchAPI interface {
	AppToken(ctx context.Context) (string, error)
	UserByLogin(ctx context.Context, token, login string) (*twitch.User, error)
	StreamByUserID(ctx context.Context, token, userID string) (*twitch.Stream, error)
}

// TwitchPoller checks tracked streamers for live-state transitions
type TwitchPoller struct {
	cfg     *config.Config
	configs *store.ConfigStore
	tracker *freshness.Tracker
	api     TwitchAPI
	gateway notify.Gateway
	runner  *Runner
}

// NewTwitchPoller creates the live-stream poller with its own tracker
func NewTwitchPoller(cfg *config.Config, configs *store.ConfigStore, api TwitchAPI, gateway notify.Gateway) *TwitchPoller {
	p := &TwitchPoller{
		cfg:     cfg,
		configs: configs,
		tracker: freshness.NewTracker(cfg.NotifyOnFirstSeen),
		api:     api,
		gateway: gateway,
	}
	p.runner = NewRunner("twitch", cfg.TwitchPollInterval, p.tick)
	return p
}

// Start begins the polling loop
func (p *TwitchPoller) Start(ctx context.Context) { p.runner.Start(ctx) }

// Stop stops the poller, letting an in-flight tick finish
func (p *TwitchPoller) Stop() { p.runner.Stop() }

func (p *TwitchPoller) tick(ctx context.Context) {
	creators, err := p.configs.PlatformCreators(store.PlatformTwitch)
	if err != nil {
		slog.Error("Failed to load twitch config", "error", err)
		return
	}
	if !anyRouted(creators) {
		return
	}
	if !p.cfg.TwitchConfigured() {
		slog.Warn("Twitch API credentials not configured, skipping tick")
		return
	}

	// A fresh app token per tick; nothing is carried across ticks
	token, err := p.api.AppToken(ctx)
	if err != nil {
		slog.Error("Failed to get Twitch app token", "error", err)
		metrics.PollErrors.WithLabelValues("twitch").Inc()
		return
	}

	for handle, creator := range creators {
		if !creator.Routed() {
			continue
		}
		p.checkStreamer(ctx, token, handle, creator)
	}
	metrics.PollTicks.WithLabelValues("twitch").Inc()
}

// checkStreamer checks one streamer; its failures never abort the
// remaining streamers in the same tick
func (p *TwitchPoller) checkStreamer(ctx context.Context, token, handle string, creator *store.CreatorConfig) {
	user, err := p.api.UserByLogin(ctx, token, handle)
	if err != nil {
		slog.Error("Failed to resolve Twitch user", "streamer", handle, "error", err)
		metrics.PollErrors.WithLabelValues("twitch").Inc()
		return
	}

	stream, err := p.api.StreamByUserID(ctx, token, user.ID)
	if err != nil {
		slog.Error("Failed to get Twitch stream", "streamer", handle, "error", err)
		metrics.PollErrors.WithLabelValues("twitch").Inc()
		return
	}

	live := stream != nil
	if !p.tracker.ObserveLive(handle, live) {
		return
	}

	game := stream.GameName
	if game == "" {
		game = "Unknown Game"
	}
	streamURL := "https://twitch.tv/" + handle

	body := notify.Render(creator.Message, map[string]string{
		"user":  handle,
		"game":  game,
		"title": stream.Title,
		"link":  streamURL,
	})
	content := notify.Compose(creator.Ping, body)
	embed := notify.StreamEmbed(handle, stream.Title, game, streamURL, user.ProfileImageURL)

	if err := p.gateway.Send(ctx, creator.ChannelID, content, embed); err != nil {
		// Tracker state has already advanced; the event is not retried
		slog.Error("Failed to send Twitch notification", "streamer", handle, "error", err)
		metrics.PollErrors.WithLabelValues("twitch").Inc()
		return
	}
	slog.Info("Sent Twitch notification", "streamer", handle)
	metrics.NotificationsSent.WithLabelValues("twitch").Inc()
}
