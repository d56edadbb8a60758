package help

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"wonbot/bot/common"
)

const componentPrefix = "help_"

type Feature struct{}

func New() *Feature {
	return &Feature{}
}

// IsHelpComponent reports whether a component interaction belongs to this
// feature.
func IsHelpComponent(customID string) bool {
	return strings.HasPrefix(customID, componentPrefix)
}

// HandleHelp handles the /help command
func (f *Feature) HandleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Title:       "📖 Help",
		Description: "Pick a category below!",
		Color:       0xFFD700,
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "📌 Money", Style: discordgo.PrimaryButton, CustomID: componentPrefix + "money"},
				discordgo.Button{Label: "🎮 Games", Style: discordgo.SuccessButton, CustomID: componentPrefix + "games"},
				discordgo.Button{Label: "🛠 Admin", Style: discordgo.DangerButton, CustomID: componentPrefix + "admin"},
			},
		},
	}
	if err := common.RespondWithEmbed(s, i, embed, components, true); err != nil {
		log.Errorf("Error responding to help command: %v", err)
	}
}

// HandleComponent handles the help category buttons
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var embed *discordgo.MessageEmbed
	switch i.MessageComponentData().CustomID {
	case componentPrefix + "money":
		embed = moneyEmbed()
	case componentPrefix + "games":
		embed = gamesEmbed()
	case componentPrefix + "admin":
		if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
			common.RespondWithError(s, i, "⚠️ Administrators only.")
			return
		}
		embed = adminEmbed()
	default:
		return
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to help category: %v", err)
	}
}

func moneyEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "📌 Money commands",
		Color: 0x3498DB,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "/register", Value: "Register as a player. Required before playing.", Inline: false},
			{Name: "/balance", Value: "Check your own money.", Inline: false},
			{Name: "/check", Value: "Look up another player's money.", Inline: false},
			{Name: "/money", Value: "Your money and overall rank.", Inline: false},
			{Name: "/gift", Value: "Gift money to another player (3 per day).", Inline: false},
			{Name: "/leaderboard", Value: "Top 10 players.", Inline: false},
		},
	}
}

func gamesEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🎮 Game commands",
		Color: 0x2ECC71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "/rps", Value: "Rock-paper-scissors, solo or against another player.", Inline: false},
			{Name: "/dice", Value: "Dice duel: the higher roll wins.", Inline: false},
		},
	}
}

func adminEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🛠 Admin commands",
		Color: 0xE74C3C,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "/pay", Value: "Grant money to a player.", Inline: false},
			{Name: "/collect", Value: "Take money from a player.", Inline: false},
			{Name: "/players", Value: "List every registered player.", Inline: false},
			{Name: "/unregister", Value: "Remove a registered player.", Inline: false},
		},
	}
}
