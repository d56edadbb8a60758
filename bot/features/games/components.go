package games

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"wonbot/models"
)

// Component custom IDs carry the session so every button routes through the
// single SubmitMove entry point.
const (
	rollButtonPrefix = "game_roll_"
	rpsButtonPrefix  = "game_rps_"
)

// rollComponents builds the dice-roll button row
func rollComponents(sessionID string, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "🎲 Roll the dice",
					Style:    discordgo.PrimaryButton,
					CustomID: rollButtonPrefix + sessionID,
					Disabled: disabled,
				},
			},
		},
	}
}

// rpsComponents builds the three hand-shape buttons
func rpsComponents(sessionID string, disabled bool) []discordgo.MessageComponent {
	button := func(style discordgo.ButtonStyle, label string, move models.Move) discordgo.Button {
		return discordgo.Button{
			Label:    label,
			Style:    style,
			CustomID: fmt.Sprintf("%s%s_%s", rpsButtonPrefix, sessionID, move),
			Disabled: disabled,
		}
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				button(discordgo.PrimaryButton, "✌️", models.MoveScissors),
				button(discordgo.SuccessButton, "✊", models.MoveRock),
				button(discordgo.DangerButton, "✋", models.MovePaper),
			},
		},
	}
}

// parseComponentID maps a button custom ID back to a session and move
func parseComponentID(customID string) (sessionID string, move models.Move, ok bool) {
	if rest, found := strings.CutPrefix(customID, rollButtonPrefix); found {
		return rest, models.MoveRoll, true
	}
	rest, found := strings.CutPrefix(customID, rpsButtonPrefix)
	if !found {
		return "", 0, false
	}
	idx := strings.LastIndex(rest, "_")
	if idx < 0 {
		return "", 0, false
	}
	sessionID = rest[:idx]
	switch rest[idx+1:] {
	case "scissors":
		move = models.MoveScissors
	case "rock":
		move = models.MoveRock
	case "paper":
		move = models.MovePaper
	default:
		return "", 0, false
	}
	return sessionID, move, true
}

// IsGameComponent reports whether a component interaction belongs to this
// feature.
func IsGameComponent(customID string) bool {
	return strings.HasPrefix(customID, rollButtonPrefix) || strings.HasPrefix(customID, rpsButtonPrefix)
}
