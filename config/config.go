package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string `env:"DISCORD_TOKEN"`
	DiscordGuildID string `env:"DISCORD_GUILD_ID"`
	OwnerID        string `env:"OWNER_ID"`

	// Database configuration
	DatabaseURL string `env:"DATABASE_URL"`

	// Bot configuration
	WarningThreshold int64 `env:"WARNING_THRESHOLD" envDefault:"5"`

	// Auto-moderation
	AutoModEnabled bool `env:"AUTO_MOD_ENABLED" envDefault:"true"`

	// Environment: "development", "production" or "test"
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from a .env file (if present) and the environment
func load() (*Config, error) {
	// A missing .env file is fine; the system environment takes over
	_ = godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
