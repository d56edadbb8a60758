package leaderboard

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"wonbot/bot/common"
)

const topSize = 10

// HandleLeaderboard handles the /leaderboard command
func (f *Feature) HandleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	entries := f.ledger.TopN(topSize)
	if len(entries) == 0 {
		common.RespondWithError(s, i, "No players are registered yet.")
		return
	}

	var body strings.Builder
	for _, entry := range entries {
		name := displayName(s, i.GuildID, entry.UserID)
		fmt.Fprintf(&body, "%d. %s — %s won\n", entry.Rank, name, common.FormatBalance(entry.Balance))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Top 10 Players",
		Description: body.String(),
		Color:       0xFFD700,
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}

// displayName resolves a guild member's display name, falling back to the
// raw ID when the member left the guild.
func displayName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.GuildMember(guildID, userID)
	if err != nil || member == nil {
		return fmt.Sprintf("player %s", userID)
	}
	if member.Nick != "" {
		return member.Nick
	}
	return member.User.Username
}
