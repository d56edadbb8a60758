package games

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// messageRef points at one Discord message that carries live game controls
type messageRef struct {
	ChannelID string
	MessageID string
}

// messageTracker remembers which messages belong to which session so the
// expiry path can disable their controls later.
type messageTracker struct {
	mu        sync.Mutex
	bySession map[string][]messageRef
}

func newMessageTracker() *messageTracker {
	return &messageTracker{bySession: make(map[string][]messageRef)}
}

func (t *messageTracker) track(sessionID, channelID, messageID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bySession[sessionID] = append(t.bySession[sessionID], messageRef{
		ChannelID: channelID,
		MessageID: messageID,
	})
}

// take removes and returns all messages tracked for a session
func (t *messageTracker) take(sessionID string) []messageRef {
	t.mu.Lock()
	defer t.mu.Unlock()
	refs := t.bySession[sessionID]
	delete(t.bySession, sessionID)
	return refs
}

// disableExpiredMessages replaces each tracked prompt with a timeout notice
func (f *Feature) disableExpiredMessages(s *discordgo.Session, sessionID string) {
	content := "⏰ The game timed out. No money changed hands."
	empty := []discordgo.MessageComponent{}
	for _, ref := range f.messages.take(sessionID) {
		_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    ref.ChannelID,
			ID:         ref.MessageID,
			Content:    &content,
			Components: &empty,
		})
		if err != nil {
			log.Debugf("Could not edit expired game message %s: %v", ref.MessageID, err)
		}
	}
}
