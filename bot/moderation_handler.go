package bot

import (
	"context"
	"fmt"
	"strconv"

	"scriptbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

// handleWarn records a warning against a user
func (b *Bot) handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	moderator := interactionUser(i)
	moderatorID, err := strconv.ParseInt(moderator.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse discord ID %q: %w", moderator.ID, err)
	}

	var target *discordgo.User
	var reason string
	if opt, ok := commandOption(i, "user"); ok {
		target = opt.UserValue(s)
	}
	if opt, ok := commandOption(i, "reason"); ok {
		reason = opt.StringValue()
	}
	if target == nil {
		return fmt.Errorf("missing user option")
	}

	targetID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse discord ID %q: %w", target.ID, err)
	}

	result, err := b.moderationService.WarnUser(ctx, targetID, target.Username, moderatorID, reason)
	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title:       "⚠️ User Warned",
		Description: fmt.Sprintf("**%s** has been warned: %s", target.Username, reason),
		Color:       colorWarning,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Total Warnings", Value: strconv.FormatInt(result.WarningCount, 10), Inline: true},
		},
	}
	if result.ThresholdReached {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Escalation",
			Value: fmt.Sprintf("This user has %d or more warnings. Consider further action.", result.WarningCount),
		})
	}

	return common.RespondWithEmbed(s, i, embed, nil, false)
}

// handleWarnings lists a user's warnings, newest first
func (b *Bot) handleWarnings(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	target := interactionUser(i)
	if opt, ok := commandOption(i, "user"); ok {
		target = opt.UserValue(s)
	}

	targetID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse discord ID %q: %w", target.ID, err)
	}

	warnings, err := b.moderationService.ListWarnings(ctx, targetID)
	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("⚠️ Warnings for %s", target.Username),
		Color: colorWarning,
	}

	if len(warnings) == 0 {
		embed.Description = "No warnings on record."
	} else {
		for idx, warning := range warnings {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  fmt.Sprintf("#%d • %s", len(warnings)-idx, common.FormatDiscordTimestamp(warning.CreatedAt, "R")),
				Value: fmt.Sprintf("%s (by <@%d>)", warning.Reason, warning.ModeratorID),
			})
		}
	}

	return common.RespondWithEmbed(s, i, embed, nil, true)
}
