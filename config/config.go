package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string `env:"DISCORD_TOKEN"`
	DiscordGuildID string `env:"DISCORD_GUILD_ID"`

	// Storage configuration
	DataDir string `env:"DATA_DIR" envDefault:"data"`
	LogDir  string `env:"LOG_DIR" envDefault:"logs"`

	// Economy settings
	StartingBalance int64 `env:"STARTING_BALANCE" envDefault:"0"`
	DefaultBet      int64 `env:"DEFAULT_BET" envDefault:"10"`
	MaxSingleBet    int64 `env:"MAX_SINGLE_BET" envDefault:"1000"`
	DailyGiftLimit  int   `env:"DAILY_GIFT_LIMIT" envDefault:"3"`

	// Game settings
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"60s"`

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
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using process environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Environment != "test" {
		if cfg.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
	}

	return cfg, nil
}
