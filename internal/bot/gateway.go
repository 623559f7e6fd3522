package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// discordGateway adapts the discordgo session to the notify.Gateway
// capability interface used by the pollers
type discordGateway struct {
	session *discordgo.Session
}

func (g *discordGateway) Send(ctx context.Context, channelID, content string, embed *discordgo.MessageEmbed) error {
	_, err := g.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embed:   embed,
	}, discordgo.WithContext(ctx))
	return err
}
