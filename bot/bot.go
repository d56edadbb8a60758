package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"wonbot/bot/features/admin"
	"wonbot/bot/features/balance"
	"wonbot/bot/features/games"
	"wonbot/bot/features/gift"
	"wonbot/bot/features/help"
	"wonbot/bot/features/leaderboard"
	"wonbot/events"
	"wonbot/service"
	"wonbot/storage"
)

// Config holds bot configuration
type Config struct {
	Token        string
	GuildID      string
	DefaultBet   int64
	MaxSingleBet int64
}

type Bot struct {
	config  Config
	session *discordgo.Session

	balanceFeature     *balance.Feature
	giftFeature        *gift.Feature
	gamesFeature       *games.Feature
	adminFeature       *admin.Feature
	leaderboardFeature *leaderboard.Feature
	helpFeature        *help.Feature
}

func New(config Config, ledger service.LedgerService, giftService service.GiftService, sessions service.SessionService, actionLog *storage.ActionLog, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:             config,
		session:            dg,
		balanceFeature:     balance.New(ledger),
		giftFeature:        gift.New(giftService, ledger),
		gamesFeature:       games.New(sessions, ledger, config.DefaultBet, config.MaxSingleBet),
		adminFeature:       admin.New(ledger, actionLog),
		leaderboardFeature: leaderboard.New(ledger),
		helpFeature:        help.New(),
	}

	// Route slash commands and component interactions
	dg.AddHandler(bot.handleInteraction)

	// Timed-out sessions disable their prompt messages best-effort
	bot.gamesFeature.SubscribeExpiry(eventBus, dg)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case games.IsGameComponent(customID):
			b.gamesFeature.HandleComponent(s, i)
		case help.IsHelpComponent(customID):
			b.helpFeature.HandleComponent(s, i)
		}
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "register":
		b.balanceFeature.HandleRegister(s, i)
	case "balance":
		b.balanceFeature.HandleBalance(s, i)
	case "check":
		b.balanceFeature.HandleCheck(s, i)
	case "money":
		b.balanceFeature.HandleMoney(s, i)
	case "gift":
		b.giftFeature.HandleGift(s, i)
	case "leaderboard":
		b.leaderboardFeature.HandleLeaderboard(s, i)
	case "dice":
		b.gamesFeature.HandleDice(s, i)
	case "rps":
		b.gamesFeature.HandleRPS(s, i)
	case "pay":
		b.adminFeature.HandlePay(s, i)
	case "collect":
		b.adminFeature.HandleCollect(s, i)
	case "players":
		b.adminFeature.HandlePlayers(s, i)
	case "unregister":
		b.adminFeature.HandleUnregister(s, i)
	case "help":
		b.helpFeature.HandleHelp(s, i)
	}
}
