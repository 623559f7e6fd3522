package notify

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Gateway delivers rendered notifications to chat channels. The Discord
// adapter lives in the bot package; pollers and the ledger only ever see
// this interface.
type Gateway interface {
	Send(ctx context.Context, channelID, content string, embed *discordgo.MessageEmbed) error
}
