package poller

import (
	"context"
	"log/slog"

	"streamnotify/internal/config"
	"streamnotify/internal/freshness"
	"streamnotify/internal/metrics"
	"streamnotify/internal/notify"
	"streamnotify/internal/store"
	"streamnotify/internal/youtube"
)

// YouTubeAPI is the slice of the YouTube client the poller needs
type YouTubeAPI interface {
	ResolveChannelID(ctx context.Context, channelName string) (string, error)
	LatestVideo(ctx context.Context, channelID string) (*youtube.Video, error)
}

// YouTubePoller checks tracked channels for new uploads
type YouTubePoller struct {
	cfg     *config.Config
	configs *store.ConfigStore
	tracker *freshness.Tracker
	api     YouTubeAPI
	gateway notify.Gateway
	runner  *Runner
}

// NewYouTubePoller creates the video-upload poller with its own tracker
func NewYouTubePoller(cfg *config.Config, configs *store.ConfigStore, api YouTubeAPI, gateway notify.Gateway) *YouTubePoller {
	p := &YouTubePoller{
		cfg:     cfg,
		configs: configs,
		tracker: freshness.NewTracker(cfg.NotifyOnFirstSeen),
		api:     api,
		gateway: gateway,
	}
	p.runner = NewRunner("youtube", cfg.YouTubePollInterval, p.tick)
	return p
}

// Start begins the polling loop
func (p *YouTubePoller) Start(ctx context.Context) { p.runner.Start(ctx) }

// Stop stops the poller, letting an in-flight tick finish
func (p *YouTubePoller) Stop() { p.runner.Stop() }

func (p *YouTubePoller) tick(ctx context.Context) {
	creators, err := p.configs.PlatformCreators(store.PlatformYouTube)
	if err != nil {
		slog.Error("Failed to load youtube config", "error", err)
		return
	}
	if !anyRouted(creators) {
		return
	}
	if !p.cfg.YouTubeConfigured() || p.api == nil {
		slog.Warn("YouTube API key not configured, skipping tick")
		return
	}

	for handle, creator := range creators {
		if !creator.Routed() {
			continue
		}
		p.checkChannel(ctx, handle, creator)
	}
	metrics.PollTicks.WithLabelValues("youtube").Inc()
}

func (p *YouTubePoller) checkChannel(ctx context.Context, handle string, creator *store.CreatorConfig) {
	channelID, err := p.api.ResolveChannelID(ctx, handle)
	if err != nil {
		slog.Error("Failed to resolve YouTube channel", "channel", handle, "error", err)
		metrics.PollErrors.WithLabelValues("youtube").Inc()
		return
	}

	video, err := p.api.LatestVideo(ctx, channelID)
	if err != nil {
		slog.Error("Failed to get latest YouTube video", "channel", handle, "error", err)
		metrics.PollErrors.WithLabelValues("youtube").Inc()
		return
	}

	if !p.tracker.ObserveContent(handle, video.ID) {
		return
	}

	body := notify.Render(creator.Message, map[string]string{
		"user":  handle,
		"title": video.Title,
		"link":  video.URL(),
	})
	content := notify.Compose(creator.Ping, body)
	embed := notify.VideoEmbed(video.Title, body, video.ThumbnailURL)

	if err := p.gateway.Send(ctx, creator.ChannelID, content, embed); err != nil {
		slog.Error("Failed to send YouTube notification", "channel", handle, "error", err)
		metrics.PollErrors.WithLabelValues("youtube").Inc()
		return
	}
	slog.Info("Sent YouTube notification", "channel", handle)
	metrics.NotificationsSent.WithLabelValues("youtube").Inc()
}
