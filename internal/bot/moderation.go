package bot

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Moderation commands require both the relevant permission and that the
// actor's highest role outranks the target's.

func (b *Bot) handleBan(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target, reason := moderationArgs(s, i)
	if !requirePermission(s, i, discordgo.PermissionBanMembers, "ban members") {
		return
	}
	if !requireOutranks(s, i, target.ID) {
		return
	}

	if err := s.GuildBanCreateWithReason(i.GuildID, target.ID, reason, 0); err != nil {
		slog.Error("Failed to ban user", "target", target.ID, "error", err)
		respondEphemeral(s, i, "I do not have permission to ban this user.")
		return
	}

	respondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "🔨 Member banned",
		Description: fmt.Sprintf("%s has been banned from the server.", target.Mention()),
		Color:       0xE74C3C,
		Fields:      []*discordgo.MessageEmbedField{{Name: "Reason", Value: reason}},
	})
}

func (b *Bot) handleKick(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target, reason := moderationArgs(s, i)
	if !requirePermission(s, i, discordgo.PermissionKickMembers, "kick members") {
		return
	}
	if !requireOutranks(s, i, target.ID) {
		return
	}

	if err := s.GuildMemberDeleteWithReason(i.GuildID, target.ID, reason); err != nil {
		slog.Error("Failed to kick user", "target", target.ID, "error", err)
		respondEphemeral(s, i, "I do not have permission to kick this user.")
		return
	}

	respondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "👢 Member kicked",
		Description: fmt.Sprintf("%s has been kicked from the server.", target.Mention()),
		Color:       0xE67E22,
		Fields:      []*discordgo.MessageEmbedField{{Name: "Reason", Value: reason}},
	})
}

func (b *Bot) handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target, reason := moderationArgs(s, i)
	if !requirePermission(s, i, discordgo.PermissionManageMessages, "warn members") {
		return
	}
	if !requireOutranks(s, i, target.ID) {
		return
	}

	respondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "⚠️ Warning",
		Description: fmt.Sprintf("%s has received a warning.", target.Mention()),
		Color:       0xF1C40F,
		Fields:      []*discordgo.MessageEmbedField{{Name: "Reason", Value: reason}},
	})

	// Best-effort DM; the user may have DMs closed
	if dm, err := s.UserChannelCreate(target.ID); err == nil {
		guildName := i.GuildID
		if guild, err := s.State.Guild(i.GuildID); err == nil {
			guildName = guild.Name
		}
		_, _ = s.ChannelMessageSendEmbed(dm.ID, &discordgo.MessageEmbed{
			Title:       "⚠️ You received a warning",
			Description: fmt.Sprintf("You received a warning on %s.", guildName),
			Color:       0xF1C40F,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Reason", Value: reason},
				{Name: "Moderator", Value: interactionMention(i)},
			},
		})
	}
}

func (b *Bot) handleClear(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requirePermission(s, i, discordgo.PermissionManageMessages, "delete messages") {
		return
	}

	amount := int(i.ApplicationCommandData().Options[0].IntValue())
	if amount < 1 || amount > 100 {
		respondEphemeral(s, i, "The number of messages must be between 1 and 100.")
		return
	}

	messages, err := s.ChannelMessages(i.ChannelID, amount, "", "", "")
	if err != nil {
		slog.Error("Failed to list messages", "channel", i.ChannelID, "error", err)
		respondEphemeral(s, i, "Failed to list messages in this channel.")
		return
	}

	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}

	if err := s.ChannelMessagesBulkDelete(i.ChannelID, ids); err != nil {
		slog.Error("Failed to bulk delete messages", "channel", i.ChannelID, "error", err)
		respondEphemeral(s, i, "I do not have permission to delete messages in this channel.")
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("✅ Deleted %d messages.", len(ids)))
}

// Helper functions

func moderationArgs(s *discordgo.Session, i *discordgo.InteractionCreate) (*discordgo.User, string) {
	options := i.ApplicationCommandData().Options
	target := options[0].UserValue(s)
	reason := "No reason provided"
	if len(options) > 1 && options[1].StringValue() != "" {
		reason = options[1].StringValue()
	}
	return target, reason
}

func requirePermission(s *discordgo.Session, i *discordgo.InteractionCreate, permission int64, verb string) bool {
	if i.Member == nil || i.Member.Permissions&permission == 0 {
		respondEphemeral(s, i, fmt.Sprintf("You do not have permission to %s.", verb))
		return false
	}
	return true
}

// requireOutranks checks that the actor's highest role is strictly above
// the target's highest role
func requireOutranks(s *discordgo.Session, i *discordgo.InteractionCreate, targetID string) bool {
	guild, err := s.State.Guild(i.GuildID)
	if err != nil {
		respondEphemeral(s, i, "This command can only be used inside a server.")
		return false
	}

	target, err := s.State.Member(i.GuildID, targetID)
	if err != nil {
		target, err = s.GuildMember(i.GuildID, targetID)
		if err != nil {
			respondEphemeral(s, i, "Could not find that member in this server.")
			return false
		}
	}

	if topRolePosition(guild, i.Member) <= topRolePosition(guild, target) {
		respondEphemeral(s, i, "You cannot moderate this user: their highest role is above or equal to yours.")
		return false
	}
	return true
}

func topRolePosition(guild *discordgo.Guild, member *discordgo.Member) int {
	highest := -1
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Position > highest {
				highest = role.Position
			}
		}
	}
	return highest
}
