package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// staffCapabilities gates the moderation and catalog-curation commands
var staffCapabilities = []Capability{
	CapabilityOwner,
	CapabilityAdmin,
	CapabilityDeveloper,
	CapabilityModerator,
	CapabilityStaff,
}

// buildCommandTable declares every slash command with its gates and handler
func (b *Bot) buildCommandTable() map[string]*command {
	commands := []*command{
		{
			name:        "balance",
			description: "Check your coin balance",
			options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to check (defaults to you)",
					Required:    false,
				},
			},
			handler: b.handleBalance,
		},
		{
			name:        "daily",
			description: "Claim your daily coin reward",
			cooldown:    24 * time.Hour,
			handler:     b.handleDaily,
		},
		{
			name:        "gamble",
			description: "Gamble your coins on a game of chance",
			cooldown:    30 * time.Second,
			options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of coins to stake",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "game",
					Description: "Game to play (defaults to coinflip)",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Coin Flip", Value: "coinflip"},
						{Name: "Dice", Value: "dice"},
						{Name: "Slots", Value: "slots"},
					},
				},
			},
			handler: b.handleGamble,
		},
		{
			name:                 "warn",
			description:          "Warn a user",
			requiredCapabilities: staffCapabilities,
			options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to warn",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason for the warning",
					Required:    true,
				},
			},
			handler: b.handleWarn,
		},
		{
			name:                 "warnings",
			description:          "List a user's warnings",
			requiredCapabilities: staffCapabilities,
			options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to look up (defaults to you)",
					Required:    false,
				},
			},
			handler: b.handleWarnings,
		},
		{
			name:                 "add-script",
			description:          "Add a script to the catalog",
			requiredCapabilities: staffCapabilities,
			options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Script name",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "game",
					Description: "Game the script is for",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "content",
					Description: "Script content",
					Required:    true,
				},
			},
			handler: b.handleAddScript,
		},
		{
			name:        "search-scripts",
			description: "Search the script catalog",
			options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "Script or game name to search for",
					Required:    true,
				},
			},
			handler: b.handleSearchScripts,
		},
		{
			name:        "top-scripts",
			description: "Show the most downloaded scripts",
			options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: "How many to show (default 10)",
					Required:    false,
				},
			},
			handler: b.handleTopScripts,
		},
		{
			name:        "rate-script",
			description: "Rate a script from 1 to 5",
			options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "script",
					Description: "Script ID to rate",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "rating",
					Description: "Rating from 1 to 5",
					Required:    true,
				},
			},
			handler: b.handleRateScript,
		},
		{
			name:        "random-script",
			description: "Get a random script from the catalog",
			cooldown:    5 * time.Second,
			handler:     b.handleRandomScript,
		},
		{
			name:        "ping",
			description: "Check that the bot is alive",
			handler:     b.handlePing,
		},
	}

	table := make(map[string]*command, len(commands))
	for _, cmd := range commands {
		table[cmd.name] = cmd
	}
	return table
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range b.commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, &discordgo.ApplicationCommand{
			Name:        cmd.name,
			Description: cmd.description,
			Options:     cmd.options,
		})
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.name, err)
		}
	}

	return nil
}
