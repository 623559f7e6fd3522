package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	DiscordToken string `envconfig:"DISCORD_TOKEN"`

	// Twitch API (client credentials)
	TwitchClientID     string `envconfig:"TWITCH_CLIENT_ID"`
	TwitchClientSecret string `envconfig:"TWITCH_CLIENT_SECRET"`

	// YouTube Data API
	YouTubeAPIKey string `envconfig:"YOUTUBE_API_KEY"`

	// TikTok credential (presence reported on the status page only;
	// the profile scrape does not use it)
	TikTokAPIKey string `envconfig:"TIKTOK_API_KEY"`

	// Storage
	DataDir string `envconfig:"DATA_DIR" default:"./data"`

	// Monitoring endpoint
	HTTPPort int `envconfig:"PORT" default:"5000"`

	// Polling intervals
	TwitchPollInterval  time.Duration `envconfig:"TWITCH_POLL_INTERVAL" default:"5m"`
	YouTubePollInterval time.Duration `envconfig:"YOUTUBE_POLL_INTERVAL" default:"15m"`
	TikTokPollInterval  time.Duration `envconfig:"TIKTOK_POLL_INTERVAL" default:"10m"`

	// Whether the first sighting of a live stream or video after process
	// start should notify, or be baselined silently
	NotifyOnFirstSeen bool `envconfig:"NOTIFY_ON_FIRST_SEEN" default:"false"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}

	return &cfg, nil
}

// TwitchConfigured reports whether Twitch API credentials are present
func (c *Config) TwitchConfigured() bool {
	return c.TwitchClientID != "" && c.TwitchClientSecret != ""
}

// YouTubeConfigured reports whether the YouTube API key is present
func (c *Config) YouTubeConfigured() bool {
	return c.YouTubeAPIKey != ""
}

// TikTokConfigured reports whether the TikTok credential is present
func (c *Config) TikTokConfigured() bool {
	return c.TikTokAPIKey != ""
}
