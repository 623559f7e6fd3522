package poller

import (
	"context"
	"errors"
	"log/slog"

	"streamnotify/internal/config"
	"streamnotify/internal/freshness"
	"streamnotify/internal/metrics"
	"streamnotify/internal/notify"
	"streamnotify/internal/store"
	"streamnotify/internal/tiktok"
)

// TikTokAPI is the slice of the TikTok client the poller needs
type TikTokAPI interface {
	LatestVideoID(ctx context.Context, username string) (string, error)
}

// TikTokPoller checks tracked creators for new short videos. The scrape
// needs no credential, so unlike the other pollers there is no
// credential gate.
type TikTokPoller struct {
	cfg     *config.Config
	configs *store.ConfigStore
	tracker *freshness.Tracker
	api     TikTokAPI
	gateway notify.Gateway
	runner  *Runner
}

// NewTikTokPoller creates the short-video poller with its own tracker
func NewTikTokPoller(cfg *config.Config, configs *store.ConfigStore, api TikTokAPI, gateway notify.Gateway) *TikTokPoller {
	p := &TikTokPoller{
		cfg:     cfg,
		configs: configs,
		tracker: freshness.NewTracker(cfg.NotifyOnFirstSeen),
		api:     api,
		gateway: gateway,
	}
	p.runner = NewRunner("tiktok", cfg.TikTokPollInterval, p.tick)
	return p
}

// Start begins the polling loop
func (p *TikTokPoller) Start(ctx context.Context) { p.runner.Start(ctx) }

// Stop stops the poller, letting an in-flight tick finish
func (p *TikTokPoller) Stop() { p.runner.Stop() }

func (p *TikTokPoller) tick(ctx context.Context) {
	creators, err := p.configs.PlatformCreators(store.PlatformTikTok)
	if err != nil {
		slog.Error("Failed to load tiktok config", "error", err)
		return
	}
	if !anyRouted(creators) {
		return
	}

	for handle, creator := range creators {
		if !creator.Routed() {
			continue
		}
		p.checkCreator(ctx, handle, creator)
	}
	metrics.PollTicks.WithLabelValues("tiktok").Inc()
}

func (p *TikTokPoller) checkCreator(ctx context.Context, handle string, creator *store.CreatorConfig) {
	videoID, err := p.api.LatestVideoID(ctx, handle)
	if errors.Is(err, tiktok.ErrNoVideo) {
		// Markup drift: no id found means no update, not a failure
		slog.Debug("No TikTok video id found", "creator", handle)
		return
	}
	if err != nil {
		slog.Error("Failed to fetch TikTok profile", "creator", handle, "error", err)
		metrics.PollErrors.WithLabelValues("tiktok").Inc()
		return
	}

	if !p.tracker.ObserveContent(handle, videoID) {
		return
	}

	videoURL := tiktok.VideoURL(handle, videoID)
	body := notify.Render(creator.Message, map[string]string{
		"user": handle,
		"link": videoURL,
	})
	content := notify.Compose(creator.Ping, body)
	embed := notify.ShortVideoEmbed(handle, body, videoURL)

	if err := p.gateway.Send(ctx, creator.ChannelID, content, embed); err != nil {
		slog.Error("Failed to send TikTok notification", "creator", handle, "error", err)
		metrics.PollErrors.WithLabelValues("tiktok").Inc()
		return
	}
	slog.Info("Sent TikTok notification", "creator", handle)
	metrics.NotificationsSent.WithLabelValues("tiktok").Inc()
}
