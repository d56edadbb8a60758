package games

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"wonbot/bot/common"
	"wonbot/models"
	"wonbot/service"
)

// HandleDice handles the /dice command
func (f *Feature) HandleDice(s *discordgo.Session, i *discordgo.InteractionCreate) {
	mode, bet, opponent := f.gameOptions(s, i)
	userID := i.Member.User.ID

	if !f.ledger.IsRegistered(userID) {
		common.RespondWithError(s, i, "You need to register first. Use `/register`.")
		return
	}
	f.startGame(s, i, models.GameDice, mode, userID, bet, opponent)
}

// HandleRPS handles the /rps command
func (f *Feature) HandleRPS(s *discordgo.Session, i *discordgo.InteractionCreate) {
	mode, bet, opponent := f.gameOptions(s, i)
	userID := i.Member.User.ID

	// Anyone who starts a round of rock-paper-scissors is quietly
	// registered first.
	if _, err := f.ledger.Register(userID); err != nil {
		log.Errorf("Error registering user %s: %v", userID, err)
		common.RespondWithError(s, i, "Unable to start the game. Please try again.")
		return
	}

	if mode == models.ModeSingle && bet > f.maxSingleBet {
		common.RespondWithError(s, i, fmt.Sprintf("Single mode bets must be between 1 and %d won.", f.maxSingleBet))
		return
	}
	f.startGame(s, i, models.GameRPS, mode, userID, bet, opponent)
}

// startGame opens the session and posts the prompt with its controls
func (f *Feature) startGame(s *discordgo.Session, i *discordgo.InteractionCreate, kind models.GameKind, mode models.GameMode, userID string, bet int64, opponent *discordgo.User) {
	var sess *service.Session
	var err error
	if mode == models.ModeSingle {
		sess, err = f.sessions.StartSingle(kind, userID, bet)
	} else {
		opponentID := ""
		if opponent != nil {
			opponentID = opponent.ID
		}
		sess, err = f.sessions.StartMulti(kind, userID, bet, opponentID)
	}
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}

	content := f.promptContent(sess)
	var components []discordgo.MessageComponent
	if kind == models.GameDice {
		components = rollComponents(sess.ID, false)
	} else {
		components = rpsComponents(sess.ID, false)
	}

	if err := common.RespondWithComponents(s, i, content, components); err != nil {
		log.Errorf("Error responding to %s command: %v", kind, err)
		return
	}
	if msg, err := s.InteractionResponse(i.Interaction); err == nil {
		f.messages.track(sess.ID, i.ChannelID, msg.ID)
	}
}

func (f *Feature) promptContent(sess *service.Session) string {
	game := "Dice"
	action := "press the button to roll"
	if sess.Kind == models.GameRPS {
		game = "Rock-paper-scissors"
		action = "pick your hand"
	}

	if sess.Mode == models.ModeSingle {
		return fmt.Sprintf("🎮 %s vs the dealer! Bet: %s won\n%s, %s!",
			game, common.FormatBalance(sess.Bet), common.Mention(sess.InitiatorID), action)
	}
	challenger := "Anyone may join"
	if sess.OpponentID != "" {
		challenger = fmt.Sprintf("%s is challenged", common.Mention(sess.OpponentID))
	}
	if sess.Kind == models.GameRPS {
		// Player 2's prompt appears only after player 1 locks a choice.
		return fmt.Sprintf("🎮 %s duel! Bet: %s won\n%s, %s first. %s!",
			game, common.FormatBalance(sess.Bet), common.Mention(sess.InitiatorID), action, challenger)
	}
	return fmt.Sprintf("🎮 %s duel! Bet: %s won\n%s!", game, common.FormatBalance(sess.Bet), challenger)
}

// HandleComponent routes every game button press into SubmitMove
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sessionID, move, ok := parseComponentID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	sess := f.sessions.Get(sessionID)
	if sess == nil {
		common.RespondWithDomainError(s, i, models.ErrSessionExpired)
		return
	}
	userID := i.Member.User.ID

	result, err := f.sessions.SubmitMove(sessionID, userID, move)
	if err != nil {
		common.RespondWithDomainError(s, i, err)
		return
	}

	switch {
	case sess.Mode == models.ModeSingle && sess.Kind == models.GameDice:
		f.renderSingleDice(s, i, sess, result)
	case sess.Mode == models.ModeSingle:
		f.renderSingleRPS(s, i, sess, move, result)
	case sess.Kind == models.GameDice:
		f.renderMultiDice(s, i, sess, result)
	default:
		f.renderMultiRPS(s, i, sess, userID, result)
	}
}

func (f *Feature) gameOptions(s *discordgo.Session, i *discordgo.InteractionCreate) (models.GameMode, int64, *discordgo.User) {
	mode := models.ModeSingle
	bet := f.defaultBet
	var opponent *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "mode":
			if opt.StringValue() == string(models.ModeMulti) {
				mode = models.ModeMulti
			}
		case "bet":
			bet = opt.IntValue()
		case "opponent":
			opponent = opt.UserValue(s)
		}
	}
	return mode, bet, opponent
}
