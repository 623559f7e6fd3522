package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"streamnotify/internal/notify"
	"streamnotify/internal/store"
)

func platformChoices() []*discordgo.ApplicationCommandOptionChoice {
	return []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Twitch", Value: string(store.PlatformTwitch)},
		{Name: "YouTube", Value: string(store.PlatformYouTube)},
		{Name: "TikTok", Value: string(store.PlatformTikTok)},
	}
}

func platformOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "platform",
		Description: "The content platform (twitch, youtube, tiktok)",
		Required:    true,
		Choices:     platformChoices(),
	}
}

func usernameOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "username",
		Description: "Creator handle on the platform",
		Required:    true,
	}
}

// Slash command definitions
func (b *Bot) getCommandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "config",
			Description: "Show the notification configuration for a platform",
			Options:     []*discordgo.ApplicationCommandOption{platformOption()},
		},
		{
			Name:        "add_creator",
			Description: "Add a creator to track for notifications",
			Options: []*discordgo.ApplicationCommandOption{
				platformOption(),
				usernameOption(),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "Notification message template (optional)",
					Required:    false,
				},
			},
		},
		{
			Name:        "remove_creator",
			Description: "Stop tracking a creator",
			Options: []*discordgo.ApplicationCommandOption{
				platformOption(),
				usernameOption(),
			},
		},
		{
			Name:        "creator",
			Description: "Edit a tracked creator's notification settings",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "enable",
					Description: "Enable notifications for a creator",
					Options: []*discordgo.ApplicationCommandOption{
						platformOption(), usernameOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "disable",
					Description: "Disable notifications for a creator",
					Options: []*discordgo.ApplicationCommandOption{
						platformOption(), usernameOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "message",
					Description: "Set the notification message template",
					Options: []*discordgo.ApplicationCommandOption{
						platformOption(), usernameOption(),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "template",
							Description: "Template with {user}, {link}, {game}, {title} placeholders",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "channel",
					Description: "Set the destination channel for notifications",
					Options: []*discordgo.ApplicationCommandOption{
						platformOption(), usernameOption(),
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "The channel to send notifications to",
							Required:    true,
							ChannelTypes: []discordgo.ChannelType{
								discordgo.ChannelTypeGuildText,
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "ping",
					Description: "Set the mention prefix for notifications",
					Options: []*discordgo.ApplicationCommandOption{
						platformOption(), usernameOption(),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "ping",
							Description: "Mention string (e.g. @everyone), empty to clear",
							Required:    false,
						},
					},
				},
			},
		},
		{
			Name:        "rank",
			Description: "Show your level and XP",
		},
		{
			Name:        "leaderboard",
			Description: "Show the top 10 most active members",
		},
		{
			Name:        "balance",
			Description: "Show your coin balance",
		},
		{
			Name:        "daily",
			Description: "Claim your daily coin reward",
		},
		{
			Name:        "pay",
			Description: "Transfer coins to another member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The member to send coins to",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount to send",
					Required:    true,
				},
			},
		},
		{
			Name:        "ban",
			Description: "Ban a member from the server",
			Options:     moderationOptions("ban"),
		},
		{
			Name:        "kick",
			Description: "Kick a member from the server",
			Options:     moderationOptions("kick"),
		},
		{
			Name:        "warn",
			Description: "Warn a member",
			Options:     moderationOptions("warn"),
		},
		{
			Name:        "clear",
			Description: "Delete a number of recent messages",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Number of messages to delete (1-100)",
					Required:    true,
				},
			},
		},
	}
}

func moderationOptions(verb string) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: fmt.Sprintf("The member to %s", verb),
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason",
			Required:    false,
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	slog.Info("Registering slash commands")

	definitions := b.getCommandDefinitions()
	registered := make([]*discordgo.ApplicationCommand, 0, len(definitions))

	for _, cmd := range definitions {
		created, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		registered = append(registered, created)
		slog.Debug("Registered command", "name", cmd.Name)
	}

	b.commands = registered
	slog.Info("Slash commands registered", "count", len(registered))
	return nil
}

// Configuration command handlers. All of these require the invoking
// member to hold Administrator in their guild.

func (b *Bot) handleConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	platform := store.Platform(i.ApplicationCommandData().Options[0].StringValue())
	creators, err := b.configs.PlatformCreators(platform)
	if err != nil {
		respondWithMessage(s, i, fmt.Sprintf("Failed to load configuration: %s", err))
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s configuration", notify.PlatformName(platform)),
		Description: fmt.Sprintf("Tracked %s creators and their notification settings", platform),
		Color:       notify.PlatformColor(platform),
	}

	if len(creators) == 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  notify.PlatformEmoji(platform) + " Creators",
			Value: "No creators configured for this platform.\nUse `/add_creator` to add one.",
		})
	} else {
		var sb strings.Builder
		for handle, cfg := range creators {
			status := "❌ disabled"
			if cfg.Enabled {
				status = "✅ enabled"
			}
			channel := "no channel"
			if cfg.ChannelID != "" {
				channel = fmt.Sprintf("<#%s>", cfg.ChannelID)
			}
			sb.WriteString(fmt.Sprintf("• **%s** — %s, %s\n", handle, status, channel))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  notify.PlatformEmoji(platform) + " Creators",
			Value: sb.String(),
		})
	}

	respondWithEmbed(s, i, embed)
}

func (b *Bot) handleAddCreator(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	options := i.ApplicationCommandData().Options
	platform := store.Platform(options[0].StringValue())
	username := strings.TrimSpace(options[1].StringValue())

	message := notify.DefaultMessage(platform)
	if len(options) > 2 {
		message = options[2].StringValue()
	}

	if username == "" {
		respondWithMessage(s, i, "Creator username cannot be empty.")
		return
	}

	err := b.configs.AddCreator(platform, username, store.CreatorConfig{
		Enabled: true,
		Message: message,
	})
	if errors.Is(err, store.ErrCreatorExists) {
		respondWithMessage(s, i, fmt.Sprintf("Creator `%s` is already configured for %s.", username, platform))
		return
	}
	if err != nil {
		slog.Error("Failed to add creator", "error", err)
		respondWithMessage(s, i, fmt.Sprintf("Failed to save configuration: %s", err))
		return
	}

	respondWithMessage(s, i, fmt.Sprintf(
		"✅ Added `%s` to %s notifications.\n%s\nUse `/creator channel` to pick a destination channel — notifications stay off until one is set.",
		username, platform, notify.PlaceholderHelp(platform)))
}

func (b *Bot) handleRemoveCreator(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	options := i.ApplicationCommandData().Options
	platform := store.Platform(options[0].StringValue())
	username := strings.TrimSpace(options[1].StringValue())

	err := b.configs.RemoveCreator(platform, username)
	if errors.Is(err, store.ErrCreatorNotFound) {
		respondWithMessage(s, i, fmt.Sprintf("Creator `%s` is not configured for %s.", username, platform))
		return
	}
	if err != nil {
		slog.Error("Failed to remove creator", "error", err)
		respondWithMessage(s, i, fmt.Sprintf("Failed to save configuration: %s", err))
		return
	}

	respondWithMessage(s, i, fmt.Sprintf("🗑️ Removed `%s` from %s notifications.", username, platform))
}

func (b *Bot) handleCreatorEdit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	sub := i.ApplicationCommandData().Options[0]
	opts := sub.Options
	platform := store.Platform(opts[0].StringValue())
	username := strings.TrimSpace(opts[1].StringValue())

	var update func(*store.CreatorConfig)
	var confirmation string

	switch sub.Name {
	case "enable":
		update = func(c *store.CreatorConfig) { c.Enabled = true }
		confirmation = fmt.Sprintf("✅ Notifications for `%s` are now **enabled**.", username)
	case "disable":
		update = func(c *store.CreatorConfig) { c.Enabled = false }
		confirmation = fmt.Sprintf("❌ Notifications for `%s` are now **disabled**.", username)
	case "message":
		template := opts[2].StringValue()
		update = func(c *store.CreatorConfig) { c.Message = template }
		confirmation = fmt.Sprintf("💬 Notification message for `%s` updated.", username)
	case "channel":
		channel := opts[2].ChannelValue(s)
		update = func(c *store.CreatorConfig) { c.ChannelID = channel.ID }
		confirmation = fmt.Sprintf("📢 Notifications for `%s` will be sent to <#%s>.", username, channel.ID)
	case "ping":
		ping := ""
		if len(opts) > 2 {
			ping = opts[2].StringValue()
		}
		update = func(c *store.CreatorConfig) { c.Ping = ping }
		if ping == "" {
			confirmation = fmt.Sprintf("🔔 Notifications for `%s` will no longer include a mention.", username)
		} else {
			confirmation = fmt.Sprintf("🔔 Notifications for `%s` will mention %s.", username, ping)
		}
	default:
		respondWithMessage(s, i, fmt.Sprintf("Unknown subcommand `%s`.", sub.Name))
		return
	}

	err := b.configs.UpdateCreator(platform, username, update)
	if errors.Is(err, store.ErrCreatorNotFound) {
		respondWithMessage(s, i, fmt.Sprintf("Creator `%s` is not configured for %s. Use `/add_creator` first.", username, platform))
		return
	}
	if err != nil {
		slog.Error("Failed to update creator", "error", err)
		respondWithMessage(s, i, fmt.Sprintf("Failed to save configuration: %s", err))
		return
	}

	respondWithMessage(s, i, confirmation)
}

// Helper functions

func requireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		respondEphemeral(s, i, "You need Administrator permission to use this command.")
		return false
	}
	return true
}

func respondWithMessage(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}
