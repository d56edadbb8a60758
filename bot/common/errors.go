package common

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"wonbot/models"
)

// RespondWithError sends an ephemeral error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// RespondWithDomainError maps a core error to the refusal message the
// triggering user sees. Unknown errors get a generic message and a full log
// line.
func RespondWithDomainError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	switch {
	case errors.Is(err, models.ErrNotRegistered):
		RespondWithError(s, i, "You need to register first. Use `/register`.")
	case errors.Is(err, models.ErrInsufficientFunds):
		RespondWithError(s, i, fmt.Sprintf("Not enough money. (%v)", err))
	case errors.Is(err, models.ErrSessionConflict):
		RespondWithError(s, i, fmt.Sprintf("Cannot do that right now. (%v)", err))
	case errors.Is(err, models.ErrRateLimited):
		RespondWithError(s, i, fmt.Sprintf("Daily limit reached. (%v)", err))
	case errors.Is(err, models.ErrSessionExpired):
		RespondWithError(s, i, "This game has already ended.")
	case errors.Is(err, models.ErrPermissionDenied):
		RespondWithError(s, i, "Administrators only.")
	default:
		log.WithFields(log.Fields{
			"user_id": i.Member.User.ID,
			"error":   err.Error(),
		}).Error("Unexpected error handling interaction")
		RespondWithError(s, i, "Something went wrong. Please try again later.")
	}
}
