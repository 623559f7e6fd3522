package notify

import "streamnotify/internal/store"

const defaultColor = 0x3498DB

// PlatformColor returns the embed color for a platform
func PlatformColor(p store.Platform) int {
	switch p {
	case store.PlatformTwitch:
		return 0x9146FF
	case store.PlatformYouTube:
		return 0xFF0000
	case store.PlatformTikTok:
		return 0x00F2EA
	}
	return defaultColor
}

// PlatformName returns the platform's branded display name
func PlatformName(p store.Platform) string {
	switch p {
	case store.PlatformTwitch:
		return "Twitch"
	case store.PlatformYouTube:
		return "YouTube"
	case store.PlatformTikTok:
		return "TikTok"
	}
	return string(p)
}

// PlatformEmoji returns the emoji used in configuration listings
func PlatformEmoji(p store.Platform) string {
	switch p {
	case store.PlatformTwitch:
		return "💜"
	case store.PlatformYouTube:
		return "📺"
	case store.PlatformTikTok:
		return "📱"
	}
	return "🔔"
}

// DefaultMessage returns the default notification template for a platform
func DefaultMessage(p store.Platform) string {
	switch p {
	case store.PlatformTwitch:
		return "{user} is live playing {game}! Title: {title}\n{link}"
	case store.PlatformYouTube:
		return "{user} just released a new YouTube video: {title}\n{link}"
	case store.PlatformTikTok:
		return "{user} posted a new TikTok!\n{link}"
	}
	return "{user} posted new content! {link}"
}

// PlaceholderHelp describes the placeholders a platform's template supports
func PlaceholderHelp(p store.Platform) string {
	switch p {
	case store.PlatformTwitch:
		return "Use {user} for the name, {game} for the game, {title} for the title and {link} for the link"
	case store.PlatformYouTube:
		return "Use {user} for the name, {title} for the title and {link} for the link"
	case store.PlatformTikTok:
		return "Use {user} for the name and {link} for the link"
	}
	return "Custom notification message"
}
