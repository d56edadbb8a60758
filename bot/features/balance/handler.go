package balance

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"wonbot/bot/common"
)

// HandleRegister handles the /register command
func (f *Feature) HandleRegister(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := i.Member.User.ID

	created, err := f.ledger.Register(userID)
	if err != nil {
		log.Errorf("Error registering user %s: %v", userID, err)
		common.RespondWithError(s, i, "Unable to register right now. Please try again.")
		return
	}

	if !created {
		respond(s, i, "You are already registered.")
		return
	}
	respond(s, i, fmt.Sprintf("🎰 Welcome to the table! Balance: %s won", common.FormatBalance(f.ledger.Balance(userID))))
}

// HandleBalance handles the /balance command
func (f *Feature) HandleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := i.Member.User.ID

	if !f.ledger.IsRegistered(userID) {
		common.RespondWithError(s, i, "You need to register first. Use `/register`.")
		return
	}

	respond(s, i, fmt.Sprintf("💰 %s has **%s won**",
		common.Mention(userID), common.FormatBalance(f.ledger.Balance(userID))))
}

// HandleCheck handles the /check command, showing another player's balance
func (f *Feature) HandleCheck(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := targetUser(s, i)
	if target == nil {
		common.RespondWithError(s, i, "Please specify a player.")
		return
	}

	if !f.ledger.IsRegistered(target.ID) {
		common.RespondWithError(s, i, fmt.Sprintf("%s is not registered yet.", common.Mention(target.ID)))
		return
	}

	respond(s, i, fmt.Sprintf("🔎 %s has **%s won**",
		common.Mention(target.ID), common.FormatBalance(f.ledger.Balance(target.ID))))
}

// HandleMoney handles the /money command, showing balance and overall rank
func (f *Feature) HandleMoney(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := i.Member.User.ID

	rank, ok := f.ledger.RankOf(userID)
	if !ok {
		common.RespondWithError(s, i, "You need to register first. Use `/register`.")
		return
	}

	respond(s, i, fmt.Sprintf("📊 %s has **%s won**\n🏅 Overall rank: #%d",
		common.Mention(userID), common.FormatBalance(f.ledger.Balance(userID)), rank))
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := common.Respond(s, i, content, false); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

func targetUser(s *discordgo.Session, i *discordgo.InteractionCreate) *discordgo.User {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "player" {
			return opt.UserValue(s)
		}
	}
	return nil
}
