package common

import (
	"fmt"
	"strings"

	"wonbot/models"
)

// DiceEmoji maps a roll value to its die face
func DiceEmoji(roll int) string {
	faces := []string{"⚀", "⚁", "⚂", "⚃", "⚄", "⚅"}
	if roll < 1 || roll > 6 {
		return "🎲"
	}
	return faces[roll-1]
}

// MoveEmoji maps an RPS hand shape to its emoji
func MoveEmoji(move models.Move) string {
	switch move {
	case models.MoveScissors:
		return "✌️"
	case models.MoveRock:
		return "✊"
	case models.MovePaper:
		return "✋"
	default:
		return "❔"
	}
}

// FormatBalance formats a balance amount with thousand separators
func FormatBalance(balance int64) string {
	str := fmt.Sprintf("%d", balance)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	return result.String()
}

// Mention renders a user ID as a Discord mention
func Mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}
