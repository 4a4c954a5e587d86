package bot

import (
	"context"
	"fmt"
	"strconv"

	"scriptbot/bot/common"
	"scriptbot/models"

	"github.com/bwmarrin/discordgo"
)

// handleBalance shows the invoker's balance, or another user's
func (b *Bot) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	target := interactionUser(i)
	if opt, ok := commandOption(i, "user"); ok {
		target = opt.UserValue(s)
	}

	discordID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse discord ID %q: %w", target.ID, err)
	}

	user, err := b.userService.GetOrCreateUser(ctx, discordID, target.Username)
	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("💰 %s's Balance", target.Username),
		Color: colorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Coins", Value: common.FormatBalance(user.Balance), Inline: true},
			{Name: "Reputation", Value: strconv.FormatInt(user.Reputation, 10), Inline: true},
		},
	}

	return common.RespondWithEmbed(s, i, embed, nil, false)
}

// handleDaily claims the daily reward
func (b *Bot) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	user := interactionUser(i)
	discordID, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse discord ID %q: %w", user.ID, err)
	}

	reward, err := b.economyService.ClaimDaily(ctx, discordID)
	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎁 Daily Reward",
		Description: fmt.Sprintf("You claimed **%s coins** (base %s + bonus %s)!",
			common.FormatBalance(reward.Base+reward.Bonus),
			common.FormatBalance(reward.Base),
			common.FormatBalance(reward.Bonus)),
		Color: colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "New Balance", Value: common.FormatBalance(reward.NewBalance) + " coins"},
		},
	}

	return common.RespondWithEmbed(s, i, embed, nil, false)
}

// handleGamble plays one round of the selected game
func (b *Bot) handleGamble(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	user := interactionUser(i)
	discordID, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse discord ID %q: %w", user.ID, err)
	}

	var stake int64
	if opt, ok := commandOption(i, "amount"); ok {
		stake = opt.IntValue()
	}

	game := models.GameCoinFlip
	if opt, ok := commandOption(i, "game"); ok {
		game = models.Game(opt.StringValue())
	}

	result, err := b.economyService.Gamble(ctx, discordID, stake, game)
	if err != nil {
		return err
	}

	color := colorError
	if result.Won {
		color = colorSuccess
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎲 %s", gameTitle(result.Game)),
		Description: result.Descriptor + "\n\n" + common.FormatGambleResult(result.Won, result.Delta, result.NewBalance),
		Color:       color,
	}

	return common.RespondWithEmbed(s, i, embed, nil, false)
}

func gameTitle(game models.Game) string {
	switch game {
	case models.GameCoinFlip:
		return "Coin Flip"
	case models.GameDice:
		return "Dice"
	case models.GameSlots:
		return "Slots"
	default:
		return string(game)
	}
}

// commandOption finds a top-level option by name
func commandOption(i *discordgo.InteractionCreate, name string) (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt, true
		}
	}
	return nil, false
}
