package admin

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"wonbot/bot/common"
)

// isAdministrator checks the invoking member's guild permissions
func isAdministrator(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

func (f *Feature) requireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if !isAdministrator(i) {
		common.RespondWithError(s, i, "🚫 Administrators only.")
		return false
	}
	return true
}

// HandlePay handles the /pay command: grant money to a player
func (f *Feature) HandlePay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !f.requireAdmin(s, i) {
		return
	}

	target, amount := userAndAmount(s, i)
	if target == nil || amount <= 0 {
		common.RespondWithError(s, i, "Please specify a player and a positive amount.")
		return
	}

	// Paying an unknown player registers them first
	if _, err := f.ledger.Register(target.ID); err != nil {
		log.Errorf("Error registering user %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	if _, err := f.ledger.Adjust(target.ID, amount); err != nil {
		log.Errorf("Error granting %d to %s: %v", amount, target.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	f.actionLog.Printf("pay: %s -> %s : +%d", i.Member.User.ID, target.ID, amount)
	respond(s, i, fmt.Sprintf("✅ Paid **%s won** to %s!", common.FormatBalance(amount), common.Mention(target.ID)))
}

// HandleCollect handles the /collect command: take money from a player. It
// collects min(requested, balance) so the balance never goes negative.
func (f *Feature) HandleCollect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !f.requireAdmin(s, i) {
		return
	}

	target, amount := userAndAmount(s, i)
	if target == nil || amount <= 0 {
		common.RespondWithError(s, i, "Please specify a player and a positive amount.")
		return
	}

	if _, err := f.ledger.Register(target.ID); err != nil {
		log.Errorf("Error registering user %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	collected := amount
	if balance := f.ledger.Balance(target.ID); balance < collected {
		collected = balance
	}
	if _, err := f.ledger.Adjust(target.ID, -collected); err != nil {
		log.Errorf("Error collecting %d from %s: %v", collected, target.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	f.actionLog.Printf("collect: %s -> %s : -%d", i.Member.User.ID, target.ID, collected)
	respond(s, i, fmt.Sprintf("✅ Collected **%s won** from %s!", common.FormatBalance(collected), common.Mention(target.ID)))
}

// HandlePlayers handles the /players command: list registered accounts
func (f *Feature) HandlePlayers(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !f.requireAdmin(s, i) {
		return
	}

	accounts := f.ledger.Accounts()
	if len(accounts) == 0 {
		common.RespondWithError(s, i, "No players are registered.")
		return
	}

	var body strings.Builder
	body.WriteString("📋 Registered players:\n")
	for _, account := range accounts {
		fmt.Fprintf(&body, "- %s (%s won)\n", common.Mention(account.UserID), common.FormatBalance(account.Balance))
	}

	msg := body.String()
	if len(msg) > 2000 {
		msg = msg[:2000]
	}
	if err := common.Respond(s, i, msg, true); err != nil {
		log.Errorf("Error responding to players command: %v", err)
	}
}

// HandleUnregister handles the /unregister command: remove an account
// entirely. The balance is lost, not archived.
func (f *Feature) HandleUnregister(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !f.requireAdmin(s, i) {
		return
	}

	target, _ := userAndAmount(s, i)
	if target == nil {
		common.RespondWithError(s, i, "Please specify a player.")
		return
	}

	existed, err := f.ledger.Unregister(target.ID)
	if err != nil {
		log.Errorf("Error unregistering user %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	if !existed {
		common.RespondWithError(s, i, fmt.Sprintf("%s is not a registered player.", common.Mention(target.ID)))
		return
	}

	f.actionLog.Printf("unregister: %s by %s", target.ID, i.Member.User.ID)
	if err := common.Respond(s, i, fmt.Sprintf("✅ Removed %s from the player list.", common.Mention(target.ID)), true); err != nil {
		log.Errorf("Error responding to unregister command: %v", err)
	}
}

func userAndAmount(s *discordgo.Session, i *discordgo.InteractionCreate) (*discordgo.User, int64) {
	var user *discordgo.User
	var amount int64
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "player":
			user = opt.UserValue(s)
		case "amount":
			amount = opt.IntValue()
		}
	}
	return user, amount
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := common.Respond(s, i, content, false); err != nil {
		log.Errorf("Error responding to admin command: %v", err)
	}
}
