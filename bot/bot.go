package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"scriptbot/events"
	"scriptbot/service"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Config holds bot configuration
type Config struct {
	Token          string
	GuildID        string
	OwnerID        string
	AutoModEnabled bool
}

type Bot struct {
	config  Config
	session *discordgo.Session
	ctx     context.Context

	userService       service.UserService
	economyService    service.EconomyService
	moderationService service.ModerationService
	scriptService     service.ScriptService
	eventBus          *events.Bus

	permissions    *PermissionResolver
	cooldowns      *CooldownTracker
	filter         *AutoModFilter
	floodGuard     *FloodGuard
	autoModEnabled bool

	commands map[string]*command
}

func New(config Config, userService service.UserService, economyService service.EconomyService, moderationService service.ModerationService, scriptService service.ScriptService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	bot := &Bot{
		config:            config,
		session:           dg,
		ctx:               context.Background(),
		userService:       userService,
		economyService:    economyService,
		moderationService: moderationService,
		scriptService:     scriptService,
		eventBus:          eventBus,
		permissions:       NewPermissionResolver(config.OwnerID),
		cooldowns:         NewCooldownTracker(),
		filter:            NewAutoModFilter(),
		// One message per second sustained, bursts of five
		floodGuard:     NewFloodGuard(rate.Limit(1), 5, 10*time.Minute),
		autoModEnabled: config.AutoModEnabled,
	}
	bot.commands = bot.buildCommandTable()

	// Register interaction handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleComponentInteractions)

	// Screen free-text messages
	dg.AddHandler(bot.handleMessage)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// DM warned users after the warning is committed. A closed DM channel is
	// the user's choice; the warning stands either way.
	eventBus.Subscribe(events.EventTypeUserWarned, func(ctx context.Context, event events.Event) {
		warned, ok := event.(events.UserWarnedEvent)
		if !ok {
			return
		}
		if err := bot.notifyWarnedUser(warned); err != nil {
			log.WithField("userID", warned.UserID).WithError(err).Warn("Failed to DM warned user")
		}
	})

	log.Info("Bot connected and commands registered")
	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// notifyWarnedUser DMs the warned user with the reason and their count
func (b *Bot) notifyWarnedUser(event events.UserWarnedEvent) error {
	userID := strconv.FormatInt(event.UserID, 10)

	channel, err := b.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	description := fmt.Sprintf("You received a warning: **%s**\nYou now have **%d** warning(s).", event.Reason, event.WarningCount)
	if event.ThresholdReached {
		description += "\n⚠️ You have reached the warning threshold. Moderators have been advised."
	}

	_, err = b.session.ChannelMessageSendEmbed(channel.ID, &discordgo.MessageEmbed{
		Title:       "Warning",
		Description: description,
		Color:       colorWarning,
	})
	return err
}
