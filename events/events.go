package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"wonbot/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange     EventType = "balance_change"
	EventTypeAccountRegistered EventType = "account_registered"
	EventTypeGiftSent          EventType = "gift_sent"
	EventTypeWagerSettled      EventType = "wager_settled"
	EventTypeSessionExpired    EventType = "session_expired"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID     string
	OldBalance int64
	NewBalance int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// AccountRegisteredEvent represents a new account registration
type AccountRegisteredEvent struct {
	UserID string
}

func (e AccountRegisteredEvent) Type() EventType {
	return EventTypeAccountRegistered
}

// GiftSentEvent represents a completed peer-to-peer gift
type GiftSentEvent struct {
	FromUserID string
	ToUserID   string
	Amount     int64
	UsedToday  int
}

func (e GiftSentEvent) Type() EventType {
	return EventTypeGiftSent
}

// WagerSettledEvent represents a game session settlement
type WagerSettledEvent struct {
	SessionID  string
	Kind       models.GameKind
	Mode       models.GameMode
	Bet        int64
	Settlement *models.SettlementResult
}

func (e WagerSettledEvent) Type() EventType {
	return EventTypeWagerSettled
}

// SessionExpiredEvent represents a session that timed out without settlement
type SessionExpiredEvent struct {
	SessionID    string
	Kind         models.GameKind
	Mode         models.GameMode
	ChannelID    string
	Participants []string
}

func (e SessionExpiredEvent) Type() EventType {
	return EventTypeSessionExpired
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so emitters never block on subscribers.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}
