package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"streamnotify/internal/store"
)

// StreamEmbed builds the display card for a live-stream notification
func StreamEmbed(handle, title, game, streamURL, avatarURL string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s is live!", handle),
		Description: title,
		Color:       PlatformColor(store.PlatformTwitch),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Game", Value: game, Inline: true},
			{Name: "Link", Value: fmt.Sprintf("[Watch on Twitch](%s)", streamURL), Inline: true},
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: avatarURL},
	}
}

// VideoEmbed builds the display card for a video-upload notification
func VideoEmbed(title, body, thumbnailURL string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: body,
		Color:       PlatformColor(store.PlatformYouTube),
		Image:       &discordgo.MessageEmbedImage{URL: thumbnailURL},
	}
}

// ShortVideoEmbed builds the display card for a short-video notification
func ShortVideoEmbed(handle, body, videoURL string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("New TikTok from %s", handle),
		Description: body,
		Color:       PlatformColor(store.PlatformTikTok),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Link", Value: fmt.Sprintf("[Watch on TikTok](%s)", videoURL), Inline: false},
		},
	}
}
