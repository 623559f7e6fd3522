package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"streamnotify/internal/ledger"
)

func (b *Bot) handleRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)
	rec, err := b.users.Get(userID)
	if err != nil {
		slog.Error("Failed to load user record", "user", userID, "error", err)
		respondEphemeral(s, i, "Failed to load your record. Please try again.")
		return
	}

	floor := ledger.XPForLevel(rec.Level)
	ceiling := ledger.XPForLevel(rec.Level + 1)
	progress := float64(rec.XP-floor) / float64(ceiling-floor) * 100

	const barLength = 20
	filled := int(barLength * progress / 100)
	if filled > barLength {
		filled = barLength
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barLength-filled)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Level of %s", interactionDisplayName(i)),
		Color: 0x3498DB,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: fmt.Sprintf("%d", rec.Level), Inline: true},
			{Name: "Total XP", Value: fmt.Sprintf("%d", rec.XP), Inline: true},
			{
				Name:  fmt.Sprintf("Progress to level %d", rec.Level+1),
				Value: fmt.Sprintf("`%s` %.1f%%", bar, progress),
			},
			{
				Name:   "XP needed",
				Value:  fmt.Sprintf("%d/%d", rec.XP-floor, ceiling-floor),
				Inline: true,
			},
		},
	}

	respondWithEmbed(s, i, embed)
}

func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	records, err := b.users.All()
	if err != nil {
		slog.Error("Failed to load users", "error", err)
		respondEphemeral(s, i, "Failed to load the leaderboard.")
		return
	}

	guild, err := s.State.Guild(i.GuildID)
	if err != nil {
		respondEphemeral(s, i, "Leaderboard is only available inside a server.")
		return
	}

	type entry struct {
		name  string
		xp    int
		level int
	}

	var entries []entry
	for _, member := range guild.Members {
		if member.User == nil || member.User.Bot {
			continue
		}
		rec, ok := records[member.User.ID]
		if !ok {
			continue
		}
		name := member.Nick
		if name == "" {
			name = member.User.Username
		}
		entries = append(entries, entry{name: name, xp: rec.XP, level: rec.Level})
	}

	sort.Slice(entries, func(a, b int) bool { return entries[a].xp > entries[b].xp })
	if len(entries) > 10 {
		entries = entries[:10]
	}

	if len(entries) == 0 {
		respondEphemeral(s, i, "Nobody is on the leaderboard yet.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s leaderboard", guild.Name),
		Description: "The most active members of the server",
		Color:       0xF1C40F,
	}

	medals := []string{"🥇", "🥈", "🥉"}
	for idx, e := range entries {
		prefix := fmt.Sprintf("%d.", idx+1)
		if idx < len(medals) {
			prefix = medals[idx]
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s", prefix, e.name),
			Value: fmt.Sprintf("Level %d • %d XP", e.level, e.xp),
		})
	}

	respondWithEmbed(s, i, embed)
}

func (b *Bot) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)
	balance, err := b.engine.Balance(userID)
	if err != nil {
		slog.Error("Failed to load balance", "user", userID, "error", err)
		respondEphemeral(s, i, "Failed to load your balance. Please try again.")
		return
	}

	respondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "💰 Balance",
		Description: fmt.Sprintf("%s, you have **%d** coins.", interactionDisplayName(i), balance),
		Color:       0xF1C40F,
	})
}

func (b *Bot) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)
	now := time.Now()
	today := now.Format("2006-01-02")

	rec, reward, err := b.engine.ClaimDaily(userID, today)
	if errors.Is(err, ledger.ErrAlreadyClaimed) {
		nextClaim := now.AddDate(0, 0, 1).Truncate(24 * time.Hour)
		remaining := time.Until(nextClaim)
		hours := int(remaining.Hours())
		minutes := int(remaining.Minutes()) % 60
		respondEphemeral(s, i, fmt.Sprintf(
			"❌ You already claimed your daily reward today.\nCome back in **%dh %dm**.", hours, minutes))
		return
	}
	if err != nil {
		slog.Error("Failed to claim daily reward", "user", userID, "error", err)
		respondEphemeral(s, i, "Failed to claim your reward. Please try again.")
		return
	}

	respondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "💰 Daily reward",
		Description: fmt.Sprintf("You received **%d** coins!\nYour new balance is **%d** coins.", reward, rec.Balance),
		Color:       0x2ECC71,
	})
}

func (b *Bot) handlePay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	recipient := options[0].UserValue(s)
	amount := int(options[1].IntValue())

	senderID := interactionUserID(i)

	senderRec, recipientRec, err := b.engine.Transfer(senderID, recipient.ID, amount)
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		respondEphemeral(s, i, "The amount must be greater than 0.")
		return
	case errors.Is(err, ledger.ErrSelfTransfer):
		respondEphemeral(s, i, "You cannot send coins to yourself.")
		return
	case errors.Is(err, ledger.ErrInsufficientFunds):
		respondEphemeral(s, i, "You do not have enough coins for this transfer.")
		return
	case err != nil:
		slog.Error("Failed to transfer coins", "sender", senderID, "error", err)
		respondEphemeral(s, i, fmt.Sprintf("Transfer failed: %s", err))
		return
	}

	respondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title: "💸 Transfer complete",
		Description: fmt.Sprintf("You sent **%d** coins to %s.\nYour new balance is **%d** coins.",
			amount, recipient.Mention(), senderRec.Balance),
		Color: 0x2ECC71,
	})

	// Best-effort DM to the recipient
	if dm, err := s.UserChannelCreate(recipient.ID); err == nil {
		_, _ = s.ChannelMessageSendEmbed(dm.ID, &discordgo.MessageEmbed{
			Title: "💰 Coins received",
			Description: fmt.Sprintf("You received **%d** coins from %s.\nYour new balance is **%d** coins.",
				amount, interactionMention(i), recipientRec.Balance),
			Color: 0x2ECC71,
		})
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func interactionDisplayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		if i.Member.User != nil {
			return i.Member.User.Username
		}
	}
	if i.User != nil {
		return i.User.Username
	}
	return "unknown"
}

func interactionMention(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Mention()
	}
	if i.User != nil {
		return i.User.Mention()
	}
	return "someone"
}
