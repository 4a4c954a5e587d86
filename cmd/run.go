package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"scriptbot/bot"
	"scriptbot/config"
	"scriptbot/database"
	"scriptbot/events"
	"scriptbot/repository"
	"scriptbot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting script bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	userService := service.NewUserService(uowFactory)
	economyService := service.NewEconomyService(uowFactory)
	moderationService := service.NewModerationService(uowFactory)
	scriptService := service.NewScriptService(uowFactory)
	log.Info("Services initialized")

	// Initialize Discord bot
	botConfig := bot.Config{
		Token:          cfg.DiscordToken,
		GuildID:        cfg.DiscordGuildID,
		OwnerID:        cfg.OwnerID,
		AutoModEnabled: cfg.AutoModEnabled,
	}
	discordBot, err := bot.New(botConfig, userService, economyService, moderationService, scriptService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	// Give in-flight event handlers time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}
