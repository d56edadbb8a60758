package games

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"wonbot/bot/common"
	"wonbot/models"
	"wonbot/service"
)

const (
	animationFrames = 5
	animationDelay  = 300 * time.Millisecond
)

func (f *Feature) renderSingleDice(s *discordgo.Session, i *discordgo.InteractionCreate, sess *service.Session, result *models.MoveResult) {
	if err := common.UpdateComponentMessage(s, i,
		fmt.Sprintf("%s is rolling the dice... 🎲", common.Mention(sess.InitiatorID)),
		rollComponents(sess.ID, true)); err != nil {
		log.Errorf("Error acknowledging dice roll: %v", err)
		return
	}

	final := fmt.Sprintf("🎯 %s's dice: %s\n🤖 Dealer's dice: %s\n🏆 Result: %s",
		common.Mention(sess.InitiatorID), common.DiceEmoji(result.Roll),
		common.DiceEmoji(result.HouseRoll), soloOutcomeText(sess.InitiatorID, result.Settlement))

	go f.animate(s, i.ChannelID, i.Message.ID, final, rollComponents(sess.ID, true), func() string {
		return fmt.Sprintf("%s is rolling the dice... %s",
			common.Mention(sess.InitiatorID), common.DiceEmoji(rand.Intn(6)+1))
	})
}

func (f *Feature) renderSingleRPS(s *discordgo.Session, i *discordgo.InteractionCreate, sess *service.Session, move models.Move, result *models.MoveResult) {
	content := fmt.Sprintf("🎯 Player: %s %s\n🤖 Dealer: %s %s\n🏆 Result: %s\n✅ The game is over.",
		common.MoveEmoji(move), move,
		common.MoveEmoji(result.HouseMove), result.HouseMove,
		soloOutcomeText(sess.InitiatorID, result.Settlement))

	if err := common.UpdateComponentMessage(s, i, content, rpsComponents(sess.ID, true)); err != nil {
		log.Errorf("Error rendering RPS result: %v", err)
	}
}

func (f *Feature) renderMultiDice(s *discordgo.Session, i *discordgo.InteractionCreate, sess *service.Session, result *models.MoveResult) {
	if !result.Resolved {
		// Each player's roll stays private until both are in.
		if err := common.Respond(s, i, fmt.Sprintf("Your dice: %s", common.DiceEmoji(result.Roll)), true); err != nil {
			log.Errorf("Error sending private roll: %v", err)
		}
		return
	}

	if err := common.UpdateComponentMessage(s, i, "Rolling the dice... 🎲", rollComponents(sess.ID, true)); err != nil {
		log.Errorf("Error acknowledging dice roll: %v", err)
		return
	}

	p1 := sess.InitiatorID
	var p2 string
	for id := range result.Rolls {
		if id != p1 {
			p2 = id
		}
	}
	final := fmt.Sprintf("%s 🎲: %s\n%s 🎲: %s\n%s",
		common.Mention(p1), common.DiceEmoji(result.Rolls[p1]),
		common.Mention(p2), common.DiceEmoji(result.Rolls[p2]),
		duelOutcomeText(result.Settlement))

	go f.animate(s, i.ChannelID, i.Message.ID, final, rollComponents(sess.ID, true), func() string {
		return fmt.Sprintf("%s rolling... %s\n%s rolling... %s",
			common.Mention(p1), common.DiceEmoji(rand.Intn(6)+1),
			common.Mention(p2), common.DiceEmoji(rand.Intn(6)+1))
	})
}

func (f *Feature) renderMultiRPS(s *discordgo.Session, i *discordgo.InteractionCreate, sess *service.Session, userID string, result *models.MoveResult) {
	if !result.Resolved {
		// Player 1 locked a choice; retire their prompt and invite the
		// second player on a fresh one.
		if err := common.UpdateComponentMessage(s, i,
			fmt.Sprintf("✅ %s locked in a choice! Waiting for the opponent...", common.Mention(userID)),
			rpsComponents(sess.ID, true)); err != nil {
			log.Errorf("Error retiring player 1 prompt: %v", err)
			return
		}

		invite := "Anyone brave enough"
		if sess.OpponentID != "" {
			invite = common.Mention(sess.OpponentID)
		}
		msg, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
			Content:    fmt.Sprintf("%s, pick your hand! Bet: %s won", invite, common.FormatBalance(sess.Bet)),
			Components: rpsComponents(sess.ID, false),
		})
		if err != nil {
			log.Errorf("Error posting player 2 prompt: %v", err)
			return
		}
		f.messages.track(sess.ID, i.ChannelID, msg.ID)
		return
	}

	p1 := sess.InitiatorID
	final := fmt.Sprintf("%s: %s %s\n%s: %s %s\n🏆 %s\n✅ The game is over.",
		common.Mention(p1), common.MoveEmoji(result.Choices[p1]), result.Choices[p1],
		common.Mention(userID), common.MoveEmoji(result.Choices[userID]), result.Choices[userID],
		duelOutcomeText(result.Settlement))

	if err := common.UpdateComponentMessage(s, i, final, rpsComponents(sess.ID, true)); err != nil {
		log.Errorf("Error rendering RPS duel result: %v", err)
	}
}

// animate edits the message through a few throwaway frames before the final
// reveal. The frames are presentation only; settlement already happened on a
// separate draw.
func (f *Feature) animate(s *discordgo.Session, channelID, messageID, final string, components []discordgo.MessageComponent, frame func() string) {
	for n := 0; n < animationFrames; n++ {
		if _, err := s.ChannelMessageEdit(channelID, messageID, frame()); err != nil {
			log.Debugf("Error editing animation frame: %v", err)
		}
		time.Sleep(animationDelay)
	}

	content := final
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Content:    &content,
		Components: &components,
	}); err != nil {
		log.Errorf("Error revealing game result: %v", err)
	}
}

func soloOutcomeText(playerID string, settlement *models.SettlementResult) string {
	switch settlement.Outcome {
	case models.OutcomeWin:
		return fmt.Sprintf("🎉 You won! +%s won (double payout)", common.FormatBalance(settlement.Deltas[playerID]))
	case models.OutcomeLoss:
		return fmt.Sprintf("😢 You lost! -%s won", common.FormatBalance(settlement.Bet))
	default:
		return "🤝 A tie! No money changed hands."
	}
}

func duelOutcomeText(settlement *models.SettlementResult) string {
	if settlement.Outcome == models.OutcomeTie {
		return "🤝 A tie! No money changed hands."
	}
	return fmt.Sprintf("🏆 %s wins! +%s won",
		common.Mention(settlement.WinnerID), common.FormatBalance(settlement.Bet))
}
