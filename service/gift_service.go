package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"wonbot/events"
	"wonbot/models"
	"wonbot/storage"
)

// giftService implements the GiftService interface. Gift counts are keyed by
// "{userId}_{ISO date}" so a new calendar day implicitly starts every user at
// zero; keys from previous days are pruned when the snapshot is loaded.
type giftService struct {
	mu        sync.Mutex
	counts    map[string]int
	limit     int
	ledger    LedgerService
	snapshot  *storage.Snapshot
	actionLog *storage.ActionLog
	eventBus  *events.Bus
	now       func() time.Time
}

// NewGiftService loads the gift-tracking snapshot and returns the service
func NewGiftService(snapshot *storage.Snapshot, actionLog *storage.ActionLog, ledger LedgerService, eventBus *events.Bus, dailyLimit int) (GiftService, error) {
	s := &giftService{
		counts:    make(map[string]int),
		limit:     dailyLimit,
		ledger:    ledger,
		snapshot:  snapshot,
		actionLog: actionLog,
		eventBus:  eventBus,
		now:       time.Now,
	}
	if err := snapshot.Load(&s.counts); err != nil {
		return nil, fmt.Errorf("failed to load gift snapshot: %w", err)
	}
	s.pruneStale()
	return s, nil
}

// pruneStale drops every key that is not for today's date
func (s *giftService) pruneStale() {
	today := "_" + s.today()
	for key := range s.counts {
		if !strings.HasSuffix(key, today) {
			delete(s.counts, key)
		}
	}
}

// today is the local wall-clock calendar date; no timezone configuration is
// recognized.
func (s *giftService) today() string {
	return s.now().Format("2006-01-02")
}

func (s *giftService) dayKey(userID string) string {
	return fmt.Sprintf("%s_%s", userID, s.today())
}

func (s *giftService) GiftsToday(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[s.dayKey(userID)]
}

func (s *giftService) TryConsumeGift(userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.dayKey(userID)
	count := s.counts[key]
	if count >= s.limit {
		return false, nil
	}

	s.counts[key] = count + 1
	if err := s.snapshot.Save(s.counts); err != nil {
		s.counts[key] = count
		return false, fmt.Errorf("failed to persist gift counts: %w", err)
	}
	return true, nil
}

func (s *giftService) Gift(fromID, toID string, amount int64) (*models.TransferResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("gift amount must be positive")
	}
	if fromID == toID {
		return nil, fmt.Errorf("cannot gift to yourself")
	}
	if !s.ledger.IsRegistered(fromID) || !s.ledger.IsRegistered(toID) {
		return nil, fmt.Errorf("both players must be registered: %w", models.ErrNotRegistered)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.dayKey(fromID)
	count := s.counts[key]
	if count >= s.limit {
		return nil, fmt.Errorf("%w: %d per day", models.ErrRateLimited, s.limit)
	}

	// The transfer is atomic inside the ledger, so an insufficient sender
	// fails here with no balance partially applied and no gift consumed.
	if err := s.ledger.Transfer(fromID, toID, amount); err != nil {
		return nil, err
	}

	// The balances have already moved; a failed counter write must not
	// report the gift itself as failed.
	s.counts[key] = count + 1
	if err := s.snapshot.Save(s.counts); err != nil {
		log.WithField("error", err).Error("Failed to persist gift counts")
	}

	s.actionLog.Printf("gift: %s -> %s : %d (today %d/%d)", fromID, toID, amount, count+1, s.limit)
	s.eventBus.Emit(context.Background(), events.GiftSentEvent{
		FromUserID: fromID,
		ToUserID:   toID,
		Amount:     amount,
		UsedToday:  count + 1,
	})

	return &models.TransferResult{
		Amount:          amount,
		SenderBalance:   s.ledger.Balance(fromID),
		ReceiverBalance: s.ledger.Balance(toID),
		GiftsUsedToday:  count + 1,
		GiftLimit:       s.limit,
	}, nil
}
