package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) registerCommands() error {
	playerOption := func(description string, required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "player",
			Description: description,
			Required:    required,
		}
	}
	amountOption := func(description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "amount",
			Description: description,
			Required:    true,
		}
	}
	gameOptions := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "mode",
			Description: "Solo against the dealer, or a duel",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "single", Value: "single"},
				{Name: "multi", Value: "multi"},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "bet",
			Description: "Amount to bet (defaults to 10 won)",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "opponent",
			Description: "(optional) challenge a specific player in multi mode",
			Required:    false,
		},
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "register",
			Description: "Register as a player",
		},
		{
			Name:        "balance",
			Description: "Check your money",
		},
		{
			Name:        "check",
			Description: "Look up a player's money",
			Options:     []*discordgo.ApplicationCommandOption{playerOption("Player to look up", true)},
		},
		{
			Name:        "money",
			Description: "Your money and overall rank",
		},
		{
			Name:        "gift",
			Description: "Gift money to another player (3 per day)",
			Options: []*discordgo.ApplicationCommandOption{
				playerOption("Player to gift to", true),
				amountOption("Amount to gift"),
			},
		},
		{
			Name:        "leaderboard",
			Description: "Top 10 players by money",
		},
		{
			Name:        "dice",
			Description: "Play the dice game",
			Options:     gameOptions,
		},
		{
			Name:        "rps",
			Description: "Play rock-paper-scissors",
			Options:     gameOptions,
		},
		{
			Name:        "pay",
			Description: "Grant money to a player (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				playerOption("Player to pay", true),
				amountOption("Amount to grant"),
			},
		},
		{
			Name:        "collect",
			Description: "Take money from a player (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				playerOption("Player to collect from", true),
				amountOption("Amount to collect"),
			},
		},
		{
			Name:        "players",
			Description: "List registered players (admin only)",
		},
		{
			Name:        "unregister",
			Description: "Remove a registered player (admin only)",
			Options:     []*discordgo.ApplicationCommandOption{playerOption("Player to remove", true)},
		},
		{
			Name:        "help",
			Description: "Show help by category",
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}
	return nil
}
