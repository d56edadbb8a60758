package gift

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"wonbot/bot/common"
	"wonbot/models"
)

// HandleGift handles the /gift command
func (f *Feature) HandleGift(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var recipient *discordgo.User
	var amount int64
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "player":
			recipient = opt.UserValue(s)
		case "amount":
			amount = opt.IntValue()
		}
	}

	if recipient == nil {
		common.RespondWithError(s, i, "Please specify a player to gift to.")
		return
	}
	if amount <= 0 {
		common.RespondWithError(s, i, "Amount must be positive.")
		return
	}

	senderID := i.Member.User.ID
	if senderID == recipient.ID {
		common.RespondWithError(s, i, "You cannot gift money to yourself.")
		return
	}

	result, err := f.giftService.Gift(senderID, recipient.ID, amount)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotRegistered):
			common.RespondWithError(s, i, "Both players must be registered to gift.")
		case errors.Is(err, models.ErrRateLimited):
			common.RespondWithError(s, i, fmt.Sprintf("You used all of today's gifts. (%v)", err))
		case errors.Is(err, models.ErrInsufficientFunds):
			common.RespondWithError(s, i, fmt.Sprintf("Not enough money. Current balance: %s won",
				common.FormatBalance(f.ledger.Balance(senderID))))
		default:
			log.Errorf("Error gifting %d from %s to %s: %v", amount, senderID, recipient.ID, err)
			common.RespondWithError(s, i, "Unable to send the gift. Please try again.")
		}
		return
	}

	message := fmt.Sprintf("🎁 %s gifted **%s won** to %s! (today %d/%d)",
		common.Mention(senderID), common.FormatBalance(result.Amount), common.Mention(recipient.ID),
		result.GiftsUsedToday, result.GiftLimit)
	if err := common.Respond(s, i, message, false); err != nil {
		log.Errorf("Error responding to gift command: %v", err)
	}
}
