// Package bot wires the Discord session to the pollers, the ledger and
// the command surface.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"streamnotify/internal/config"
	"streamnotify/internal/ledger"
	"streamnotify/internal/metrics"
	"streamnotify/internal/poller"
	"streamnotify/internal/store"
	"streamnotify/internal/tiktok"
	"streamnotify/internal/twitch"
	"streamnotify/internal/youtube"
)

// platformPoller is the lifecycle surface shared by all pollers
type platformPoller interface {
	Start(ctx context.Context)
	Stop()
}

// Bot represents the Discord bot instance
type Bot struct {
	cfg     *config.Config
	session *discordgo.Session
	configs *store.ConfigStore
	users   *store.UserStore
	engine  *ledger.Engine

	pollers  []platformPoller
	commands []*discordgo.ApplicationCommand
}

// New creates a new Bot instance
func New(cfg *config.Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers

	users := store.NewUserStore(cfg.DataDir)

	b := &Bot{
		cfg:     cfg,
		session: session,
		configs: store.NewConfigStore(cfg.DataDir),
		users:   users,
		engine:  ledger.New(users, nil),
	}

	b.registerHandlers()
	return b, nil
}

// Start opens the Discord connection and starts the pollers
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	slog.Info("Connected to Discord", "user", b.session.State.User.Username)

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	gateway := &discordGateway{session: b.session}

	b.pollers = append(b.pollers, poller.NewTwitchPoller(
		b.cfg, b.configs, twitch.NewClient(b.cfg.TwitchClientID, b.cfg.TwitchClientSecret), gateway))

	var ytAPI poller.YouTubeAPI
	if b.cfg.YouTubeConfigured() {
		client, err := youtube.NewClient(ctx, b.cfg.YouTubeAPIKey)
		if err != nil {
			slog.Error("Failed to create YouTube client", "error", err)
		} else {
			ytAPI = client
		}
	}
	b.pollers = append(b.pollers, poller.NewYouTubePoller(b.cfg, b.configs, ytAPI, gateway))

	b.pollers = append(b.pollers, poller.NewTikTokPoller(b.cfg, b.configs, tiktok.NewClient(), gateway))

	for _, p := range b.pollers {
		go p.Start(ctx)
	}

	return nil
}

// Stop gracefully shuts down the bot, letting in-flight ticks finish
func (b *Bot) Stop() error {
	for _, p := range b.pollers {
		p.Stop()
	}

	if b.session != nil {
		return b.session.Close()
	}
	return nil
}

// registerHandlers sets up Discord event handlers
func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(b.handleMessage)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Bot is ready", "guilds", len(r.Guilds))
	})
}

// handleMessage grants XP for regular chat messages and announces
// level-ups
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	rec, leveledUp, err := b.engine.GrantMessageXP(m.Author.ID)
	if err != nil {
		slog.Error("Failed to grant message XP", "user", m.Author.ID, "error", err)
		return
	}
	metrics.MessagesRewarded.Inc()

	if leveledUp {
		msg := fmt.Sprintf("🎉 Congratulations %s! You reached level %d!", m.Author.Mention(), rec.Level)
		if _, err := s.ChannelMessageSend(m.ChannelID, msg); err != nil {
			slog.Error("Failed to send level-up message", "error", err)
		}
	}
}

// handleInteraction processes slash command interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	slog.Debug("Received command", "command", data.Name, "guild", i.GuildID)

	switch data.Name {
	case "config":
		b.handleConfig(s, i)
	case "add_creator":
		b.handleAddCreator(s, i)
	case "remove_creator":
		b.handleRemoveCreator(s, i)
	case "creator":
		b.handleCreatorEdit(s, i)
	case "rank":
		b.handleRank(s, i)
	case "leaderboard":
		b.handleLeaderboard(s, i)
	case "balance":
		b.handleBalance(s, i)
	case "daily":
		b.handleDaily(s, i)
	case "pay":
		b.handlePay(s, i)
	case "ban":
		b.handleBan(s, i)
	case "kick":
		b.handleKick(s, i)
	case "warn":
		b.handleWarn(s, i)
	case "clear":
		b.handleClear(s, i)
	default:
		slog.Warn("Unknown command", "command", data.Name)
	}
}
