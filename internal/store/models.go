package store

// Platform identifies a tracked content platform
type Platform string

const (
	PlatformTwitch  Platform = "twitch"
	PlatformYouTube Platform = "youtube"
	PlatformTikTok  Platform = "tiktok"
)

// Platforms lists every supported platform in display order
var Platforms = []Platform{PlatformTwitch, PlatformYouTube, PlatformTikTok}

// Valid reports whether p is a supported platform
func (p Platform) Valid() bool {
	switch p {
	case PlatformTwitch, PlatformYouTube, PlatformTikTok:
		return true
	}
	return false
}

// CreatorConfig holds per-creator notification settings
type CreatorConfig struct {
	Enabled   bool   `json:"enabled"`
	Message   string `json:"message"`
	ChannelID string `json:"channel_id"`
	Ping      string `json:"ping"`
}

// Routed reports whether notifications for this creator are active and
// have a destination channel
func (c *CreatorConfig) Routed() bool {
	return c.Enabled && c.ChannelID != ""
}

// UserRecord holds a user's XP, level, balance and daily-claim state
type UserRecord struct {
	XP        int    `json:"xp"`
	Level     int    `json:"level"`
	Balance   int    `json:"balance"`
	DailyLast string `json:"daily_last,omitempty"`
}

// NewUserRecord returns the default record created on first reference
func NewUserRecord() *UserRecord {
	return &UserRecord{XP: 0, Level: 1, Balance: 0}
}
