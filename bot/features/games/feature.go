package games

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"wonbot/events"
	"wonbot/service"
)

type Feature struct {
	sessions service.SessionService
	ledger   service.LedgerService

	defaultBet   int64
	maxSingleBet int64

	messages *messageTracker
}

func New(sessions service.SessionService, ledger service.LedgerService, defaultBet, maxSingleBet int64) *Feature {
	return &Feature{
		sessions:     sessions,
		ledger:       ledger,
		defaultBet:   defaultBet,
		maxSingleBet: maxSingleBet,
		messages:     newMessageTracker(),
	}
}

// SubscribeExpiry wires timeout notifications: when a session expires the
// prompt messages are edited to a terminal notice with controls disabled.
// Failures here are swallowed; missing a notice is acceptable.
func (f *Feature) SubscribeExpiry(bus *events.Bus, s *discordgo.Session) {
	bus.Subscribe(events.EventTypeSessionExpired, func(ctx context.Context, event events.Event) {
		expired, ok := event.(events.SessionExpiredEvent)
		if !ok {
			return
		}
		f.disableExpiredMessages(s, expired.SessionID)
	})
}
