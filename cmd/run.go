package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"wonbot/bot"
	"wonbot/config"
	"wonbot/events"
	"wonbot/service"
	"wonbot/storage"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting wonbot...")

	cfg := config.Get()

	actionLog, err := storage.OpenActionLog(filepath.Join(cfg.LogDir, "point_log.txt"))
	if err != nil {
		return fmt.Errorf("failed to open action log: %w", err)
	}
	defer actionLog.Close()

	balanceSnapshot, err := storage.NewSnapshot(filepath.Join(cfg.DataDir, "points.json"))
	if err != nil {
		return fmt.Errorf("failed to open balance snapshot: %w", err)
	}
	giftSnapshot, err := storage.NewSnapshot(filepath.Join(cfg.DataDir, "gift_track.json"))
	if err != nil {
		return fmt.Errorf("failed to open gift snapshot: %w", err)
	}

	eventBus := events.NewBus()

	log.Info("Initializing services...")
	ledger, err := service.NewLedgerService(balanceSnapshot, actionLog, eventBus, cfg.StartingBalance)
	if err != nil {
		return fmt.Errorf("failed to initialize ledger: %w", err)
	}
	giftService, err := service.NewGiftService(giftSnapshot, actionLog, ledger, eventBus, cfg.DailyGiftLimit)
	if err != nil {
		return fmt.Errorf("failed to initialize gift service: %w", err)
	}
	registry := service.NewRegistry()
	sessions := service.NewSessionService(ledger, registry, eventBus, cfg.SessionTimeout)
	log.Info("Services initialized successfully")

	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:        cfg.DiscordToken,
		GuildID:      cfg.DiscordGuildID,
		DefaultBet:   cfg.DefaultBet,
		MaxSingleBet: cfg.MaxSingleBet,
	}
	discordBot, err := bot.New(botConfig, ledger, giftService, sessions, actionLog, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}
	log.Info("Shutdown completed")
	return nil
}
