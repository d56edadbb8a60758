package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"wonbot/events"
	"wonbot/models"
	"wonbot/storage"
)

// ledgerService implements the LedgerService interface. Balances live in
// memory and every mutation rewrites the whole snapshot file while holding
// the single writer lock, so two in-flight mutations can never lose an
// update.
type ledgerService struct {
	mu              sync.Mutex
	balances        map[string]int64
	order           []string // registration order, used for stable tie ranking
	snapshot        *storage.Snapshot
	actionLog       *storage.ActionLog
	eventBus        *events.Bus
	startingBalance int64
}

// NewLedgerService loads the balance snapshot and returns a ledger backed by
// it. A missing or corrupt snapshot starts the ledger empty.
func NewLedgerService(snapshot *storage.Snapshot, actionLog *storage.ActionLog, eventBus *events.Bus, startingBalance int64) (LedgerService, error) {
	balances := make(map[string]int64)
	if err := snapshot.Load(&balances); err != nil {
		return nil, fmt.Errorf("failed to load balance snapshot: %w", err)
	}

	// The snapshot is an unordered document, so rebuild a deterministic
	// registration order; accounts registered from now on append to it.
	order := make([]string, 0, len(balances))
	for userID := range balances {
		order = append(order, userID)
	}
	sort.Strings(order)

	return &ledgerService{
		balances:        balances,
		order:           order,
		snapshot:        snapshot,
		actionLog:       actionLog,
		eventBus:        eventBus,
		startingBalance: startingBalance,
	}, nil
}

func (s *ledgerService) IsRegistered(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.balances[userID]
	return ok
}

func (s *ledgerService) Register(userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.balances[userID]; ok {
		return false, nil
	}

	s.balances[userID] = s.startingBalance
	s.order = append(s.order, userID)
	if err := s.persist(); err != nil {
		delete(s.balances, userID)
		s.order = s.order[:len(s.order)-1]
		return false, err
	}

	s.actionLog.Printf("registered: %s", userID)
	s.eventBus.Emit(context.Background(), events.AccountRegisteredEvent{UserID: userID})
	return true, nil
}

func (s *ledgerService) Unregister(userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance, ok := s.balances[userID]
	if !ok {
		return false, nil
	}

	delete(s.balances, userID)
	for i, id := range s.order {
		if id == userID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if err := s.persist(); err != nil {
		s.balances[userID] = balance
		s.order = append(s.order, userID)
		return false, err
	}

	s.actionLog.Printf("unregistered: %s (balance %d lost)", userID, balance)
	return true, nil
}

func (s *ledgerService) Balance(userID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[userID]
}

func (s *ledgerService) Adjust(userID string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(userID, s.balances[userID]+delta)
}

func (s *ledgerService) SetBalance(userID string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(userID, amount)
}

// applyLocked clamps, persists and publishes one balance change. Caller
// holds the writer lock.
func (s *ledgerService) applyLocked(userID string, target int64) (int64, error) {
	old, existed := s.balances[userID]
	if target < 0 {
		target = 0
	}

	s.balances[userID] = target
	if !existed {
		s.order = append(s.order, userID)
	}
	if err := s.persist(); err != nil {
		if existed {
			s.balances[userID] = old
		} else {
			delete(s.balances, userID)
			s.order = s.order[:len(s.order)-1]
		}
		return old, err
	}

	if target != old {
		s.eventBus.Emit(context.Background(), events.BalanceChangeEvent{
			UserID:     userID,
			OldBalance: old,
			NewBalance: target,
		})
	}
	return target, nil
}

func (s *ledgerService) Transfer(fromID, toID string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive")
	}
	if fromID == toID {
		return fmt.Errorf("cannot transfer to yourself")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fromBalance, ok := s.balances[fromID]
	if !ok {
		return fmt.Errorf("sender %s: %w", fromID, models.ErrNotRegistered)
	}
	toBalance, ok := s.balances[toID]
	if !ok {
		return fmt.Errorf("recipient %s: %w", toID, models.ErrNotRegistered)
	}
	if fromBalance < amount {
		return fmt.Errorf("%w: have %d, need %d", models.ErrInsufficientFunds, fromBalance, amount)
	}

	s.balances[fromID] = fromBalance - amount
	s.balances[toID] = toBalance + amount
	if err := s.persist(); err != nil {
		s.balances[fromID] = fromBalance
		s.balances[toID] = toBalance
		return err
	}

	ctx := context.Background()
	s.eventBus.Emit(ctx, events.BalanceChangeEvent{UserID: fromID, OldBalance: fromBalance, NewBalance: fromBalance - amount})
	s.eventBus.Emit(ctx, events.BalanceChangeEvent{UserID: toID, OldBalance: toBalance, NewBalance: toBalance + amount})
	return nil
}

func (s *ledgerService) TopN(n int) []models.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := s.sortedLocked()
	if n > len(sorted) {
		n = len(sorted)
	}

	entries := make([]models.LeaderboardEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, models.LeaderboardEntry{
			Rank:    i + 1,
			UserID:  sorted[i],
			Balance: s.balances[sorted[i]],
		})
	}
	return entries
}

func (s *ledgerService) RankOf(userID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.balances[userID]; !ok {
		return 0, false
	}
	for i, id := range s.sortedLocked() {
		if id == userID {
			return i + 1, true
		}
	}
	return 0, false
}

func (s *ledgerService) Accounts() []models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]models.Account, 0, len(s.order))
	for _, id := range s.order {
		accounts = append(accounts, models.Account{UserID: id, Balance: s.balances[id]})
	}
	return accounts
}

// sortedLocked returns user IDs by balance descending, ties in registration
// order. Caller holds the writer lock.
func (s *ledgerService) sortedLocked() []string {
	sorted := make([]string, len(s.order))
	copy(sorted, s.order)
	sort.SliceStable(sorted, func(i, j int) bool {
		return s.balances[sorted[i]] > s.balances[sorted[j]]
	})
	return sorted
}

// persist rewrites the whole balance snapshot. Caller holds the writer lock.
func (s *ledgerService) persist() error {
	if err := s.snapshot.Save(s.balances); err != nil {
		return fmt.Errorf("failed to persist balances: %w", err)
	}
	return nil
}
