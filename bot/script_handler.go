package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"scriptbot/bot/common"
	"scriptbot/models"

	"github.com/bwmarrin/discordgo"
)

const downloadButtonPrefix = "script_download:"

// handleAddScript adds a script to the catalog
func (b *Bot) handleAddScript(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	author := interactionUser(i)
	authorID, err := strconv.ParseInt(author.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse discord ID %q: %w", author.ID, err)
	}

	var name, game, content string
	if opt, ok := commandOption(i, "name"); ok {
		name = opt.StringValue()
	}
	if opt, ok := commandOption(i, "game"); ok {
		game = opt.StringValue()
	}
	if opt, ok := commandOption(i, "content"); ok {
		content = opt.StringValue()
	}

	script, err := b.scriptService.AddScript(ctx, name, game, content, authorID)
	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📜 Script Added",
		Description: fmt.Sprintf("**%s** for **%s** is now in the catalog.", script.Name, script.GameName),
		Color:       colorSuccess,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Script #%d", script.ID)},
	}

	return common.RespondWithEmbed(s, i, embed, nil, false)
}

// handleSearchScripts searches the catalog by name or game
func (b *Bot) handleSearchScripts(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	var query string
	if opt, ok := commandOption(i, "query"); ok {
		query = opt.StringValue()
	}

	scripts, err := b.scriptService.SearchScripts(ctx, query)
	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🔍 Scripts matching %q", query),
		Color: colorPrimary,
	}

	if len(scripts) == 0 {
		embed.Description = "No scripts found."
	} else {
		embed.Description = formatScriptList(scripts)
	}

	return common.RespondWithEmbed(s, i, embed, nil, false)
}

// handleTopScripts shows the most downloaded scripts
func (b *Bot) handleTopScripts(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	limit := 10
	if opt, ok := commandOption(i, "limit"); ok {
		limit = int(opt.IntValue())
	}
	if limit > 20 {
		limit = 20
	}

	scripts, err := b.scriptService.TopScripts(ctx, limit)
	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title: "🏆 Top Scripts",
		Color: colorPrimary,
	}

	if len(scripts) == 0 {
		embed.Description = "The catalog is empty."
	} else {
		var sb strings.Builder
		for idx, script := range scripts {
			rank := fmt.Sprintf("#%d", idx+1)
			switch idx {
			case 0:
				rank = "🥇"
			case 1:
				rank = "🥈"
			case 2:
				rank = "🥉"
			}
			sb.WriteString(fmt.Sprintf("%s **%s** (%s) · %s downloads · %.1f⭐\n",
				rank, script.Name, script.GameName, common.FormatBalance(script.Downloads), script.Rating))
		}
		embed.Description = sb.String()
	}

	return common.RespondWithEmbed(s, i, embed, nil, false)
}

// handleRandomScript shows a random script with a download button
func (b *Bot) handleRandomScript(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	script, err := b.scriptService.RandomScript(ctx)
	if err != nil {
		return err
	}
	if script == nil {
		return common.RespondWithContent(s, i, "The catalog is empty.", true)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎲 %s", script.Name),
		Description: fmt.Sprintf("A script for **%s**", script.GameName),
		Color:       colorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Downloads", Value: common.FormatBalance(script.Downloads), Inline: true},
			{Name: "Rating", Value: fmt.Sprintf("%.1f / 5", script.Rating), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Script #%d", script.ID)},
	}

	components := []discordgo.MessageComponent{
		&discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				&discordgo.Button{
					Label:    "Download",
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("%s%d", downloadButtonPrefix, script.ID),
				},
			},
		},
	}

	return common.RespondWithEmbed(s, i, embed, components, false)
}

// handleRateScript records a rating and shows the new average
func (b *Bot) handleRateScript(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	rater := interactionUser(i)
	raterID, err := strconv.ParseInt(rater.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse discord ID %q: %w", rater.ID, err)
	}

	var scriptID, value int64
	if opt, ok := commandOption(i, "script"); ok {
		scriptID = opt.IntValue()
	}
	if opt, ok := commandOption(i, "rating"); ok {
		value = opt.IntValue()
	}

	average, err := b.scriptService.RateScript(ctx, scriptID, raterID, value)
	if err != nil {
		return err
	}

	return common.RespondWithContent(s, i,
		fmt.Sprintf("⭐ Thanks! Script #%d now averages **%.1f / 5**.", scriptID, average), false)
}

// handlePing confirms the bot is alive
func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return common.RespondWithContent(s, i, fmt.Sprintf("🏓 Pong! Heartbeat: %dms", s.HeartbeatLatency().Milliseconds()), false)
}

// handleComponentInteractions routes button presses. Only the download
// button exists today.
func (b *Bot) handleComponentInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, downloadButtonPrefix) {
		return
	}

	scriptID, err := strconv.ParseInt(strings.TrimPrefix(customID, downloadButtonPrefix), 10, 64)
	if err != nil {
		log.WithField("customID", customID).WithError(err).Warn("Malformed download button ID")
		return
	}

	if err := b.deliverScript(s, i, scriptID); err != nil {
		if models.IsUserError(err) {
			b.respondError(s, i, userErrorMessage(err))
			return
		}
		log.WithField("scriptID", scriptID).WithError(err).Error("Failed to deliver script")
		b.respondError(s, i, "Something went wrong. Please try again later.")
	}
}

// deliverScript counts the download and DMs the content to the presser
func (b *Bot) deliverScript(s *discordgo.Session, i *discordgo.InteractionCreate, scriptID int64) error {
	ctx := context.Background()

	script, err := b.scriptService.DownloadScript(ctx, scriptID)
	if err != nil {
		return err
	}

	user := interactionUser(i)
	channel, err := s.UserChannelCreate(user.ID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	content := fmt.Sprintf("**%s** (%s)\n```lua\n%s\n```", script.Name, script.GameName, script.Content)
	if _, err := s.ChannelMessageSend(channel.ID, content); err != nil {
		return fmt.Errorf("failed to DM script content: %w", err)
	}

	return common.RespondWithContent(s, i, "📬 Check your DMs!", true)
}

func formatScriptList(scripts []*models.Script) string {
	var sb strings.Builder
	for _, script := range scripts {
		sb.WriteString(fmt.Sprintf("**%s** (%s) · %s downloads · %.1f⭐\n",
			script.Name, script.GameName, common.FormatBalance(script.Downloads), script.Rating))
	}
	return sb.String()
}
