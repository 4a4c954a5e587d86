package bot

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"scriptbot/bot/common"
	"scriptbot/models"

	"github.com/bwmarrin/discordgo"
)

// Embed colors
const (
	colorPrimary = 0x5865F2
	colorSuccess = 0x57F287
	colorWarning = 0xFEE75C
	colorError   = 0xED4245
)

// command couples a slash command definition with its gates and handler
type command struct {
	name        string
	description string
	options     []*discordgo.ApplicationCommandOption

	// requiredCapabilities is satisfied by any one; empty means anyone
	requiredCapabilities []Capability
	cooldown             time.Duration

	handler func(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// handleCommands routes application command interactions through the
// permission and cooldown gates to the command handler. Unknown command
// names are ignored without a response.
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	cmd, ok := b.commands[i.ApplicationCommandData().Name]
	if !ok {
		return
	}

	user := interactionUser(i)
	if user == nil {
		return
	}

	if !b.permissions.Authorize(user.ID, b.memberRoles(s, i), cmd.requiredCapabilities) {
		b.respondError(s, i, "You do not have permission to use this command.")
		return
	}

	if allowed, retryAfter := b.cooldowns.CheckAndArm(cmd.name, user.ID, cmd.cooldown); !allowed {
		b.respondError(s, i, fmt.Sprintf("Slow down! Try again in %s.", common.FormatRetryAfter(retryAfter)))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"command": cmd.name,
				"userID":  user.ID,
				"panic":   r,
			}).Error("Command handler panicked")
			b.respondError(s, i, "Something went wrong. Please try again later.")
		}
	}()

	if err := cmd.handler(s, i); err != nil {
		if models.IsUserError(err) {
			b.respondError(s, i, userErrorMessage(err))
			return
		}

		log.WithFields(log.Fields{
			"command": cmd.name,
			"userID":  user.ID,
		}).WithError(err).Error("Command handler failed")
		b.respondError(s, i, "Something went wrong. Please try again later.")
	}
}

// interactionUser returns the invoking user for guild and DM interactions
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// memberRoles resolves the caller's role objects, preferring the session
// state cache over the API
func (b *Bot) memberRoles(s *discordgo.Session, i *discordgo.InteractionCreate) []*discordgo.Role {
	if i.Member == nil || i.GuildID == "" {
		return nil
	}

	guildRoles := b.guildRoles(s, i.GuildID)
	if len(guildRoles) == 0 {
		return nil
	}

	byID := make(map[string]*discordgo.Role, len(guildRoles))
	for _, role := range guildRoles {
		byID[role.ID] = role
	}

	var roles []*discordgo.Role
	for _, roleID := range i.Member.Roles {
		if role, ok := byID[roleID]; ok {
			roles = append(roles, role)
		}
	}
	return roles
}

func (b *Bot) guildRoles(s *discordgo.Session, guildID string) []*discordgo.Role {
	if guild, err := s.State.Guild(guildID); err == nil && len(guild.Roles) > 0 {
		return guild.Roles
	}

	roles, err := s.GuildRoles(guildID)
	if err != nil {
		log.WithField("guildID", guildID).WithError(err).Warn("Failed to fetch guild roles")
		return nil
	}
	return roles
}

// respondError sends an ephemeral error message, falling back to a follow-up
// if the interaction was already acknowledged
func (b *Bot) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	content := fmt.Sprintf("❌ %s", message)

	err := common.RespondWithContent(s, i, content, true)
	if err == nil {
		return
	}

	_, err = s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.WithError(err).Error("Failed to send error response")
	}
}

// userErrorMessage strips the sentinel suffix so users see the friendly part
func userErrorMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{models.ErrInvalidArgument, models.ErrInsufficientFunds} {
		suffix := ": " + sentinel.Error()
		if len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
			return msg[:len(msg)-len(suffix)]
		}
	}
	return msg
}
