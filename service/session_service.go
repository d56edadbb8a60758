package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"wonbot/events"
	"wonbot/models"
)

// Session is one game from invitation through settlement or expiry. The
// immutable identity fields are exported; everything that moves is guarded
// by the session's own lock, and whoever takes that lock first wins the race
// between a late move and the expiry timer.
type Session struct {
	ID          string
	Kind        models.GameKind
	Mode        models.GameMode
	Bet         int64
	InitiatorID string
	OpponentID  string // named opponent; empty for solo or open games

	mu       sync.Mutex
	status   models.SessionStatus
	rolls    map[string]int
	choices  map[string]models.Move
	joinedID string // open challenger bound to the second slot
	timer    *time.Timer
}

// Status returns the session's current lifecycle state
func (s *Session) Status() models.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Participants returns everyone currently bound to the session
func (s *Session) Participants() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.participantsLocked()
}

func (s *Session) participantsLocked() []string {
	ids := []string{s.InitiatorID}
	if s.OpponentID != "" {
		ids = append(ids, s.OpponentID)
	}
	if s.joinedID != "" {
		ids = append(ids, s.joinedID)
	}
	return ids
}

// sessionService implements the SessionService interface
type sessionService struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ledger   LedgerService
	registry *Registry
	eventBus *events.Bus
	timeout  time.Duration

	// injectable randomness; settlement always uses a fresh draw from
	// these, never any value a presentation animation showed
	dice    func() int
	rpsPick func() models.Move
}

// NewSessionService creates the session factory. Sessions that collect no
// terminal move within timeout expire with zero settlement.
func NewSessionService(ledger LedgerService, registry *Registry, eventBus *events.Bus, timeout time.Duration) SessionService {
	hands := []models.Move{models.MoveScissors, models.MoveRock, models.MovePaper}
	return &sessionService{
		sessions: make(map[string]*Session),
		ledger:   ledger,
		registry: registry,
		eventBus: eventBus,
		timeout:  timeout,
		dice:     func() int { return rand.Intn(6) + 1 },
		rpsPick:  func() models.Move { return hands[rand.Intn(3)] },
	}
}

func (s *sessionService) StartSingle(kind models.GameKind, userID string, bet int64) (*Session, error) {
	if err := s.checkEntry(userID, bet); err != nil {
		return nil, err
	}

	if !s.registry.TryAcquire(userID) {
		return nil, fmt.Errorf("%w: %s already has an active game", models.ErrSessionConflict, userID)
	}

	return s.open(kind, models.ModeSingle, userID, bet, ""), nil
}

func (s *sessionService) StartMulti(kind models.GameKind, initiatorID string, bet int64, opponentID string) (*Session, error) {
	if err := s.checkEntry(initiatorID, bet); err != nil {
		return nil, err
	}

	if opponentID != "" {
		if opponentID == initiatorID {
			return nil, fmt.Errorf("%w: cannot play against yourself", models.ErrSessionConflict)
		}
		if !s.ledger.IsRegistered(opponentID) {
			return nil, fmt.Errorf("opponent %s: %w", opponentID, models.ErrNotRegistered)
		}
		if !s.registry.TryAcquire(initiatorID, opponentID) {
			return nil, fmt.Errorf("%w: a player already has an active game", models.ErrSessionConflict)
		}
	} else if !s.registry.TryAcquire(initiatorID) {
		return nil, fmt.Errorf("%w: %s already has an active game", models.ErrSessionConflict, initiatorID)
	}

	return s.open(kind, models.ModeMulti, initiatorID, bet, opponentID), nil
}

// checkEntry validates the bet and the entering player's account
func (s *sessionService) checkEntry(userID string, bet int64) error {
	if bet < 1 {
		return fmt.Errorf("bet must be at least 1")
	}
	if !s.ledger.IsRegistered(userID) {
		return fmt.Errorf("%s: %w", userID, models.ErrNotRegistered)
	}
	if balance := s.ledger.Balance(userID); balance < bet {
		return fmt.Errorf("%w: have %d, need %d", models.ErrInsufficientFunds, balance, bet)
	}
	return nil
}

// open creates the session, registers it and arms the expiry timer. The
// registry slots have already been acquired.
func (s *sessionService) open(kind models.GameKind, mode models.GameMode, initiatorID string, bet int64, opponentID string) *Session {
	sess := &Session{
		ID:          uuid.NewString(),
		Kind:        kind,
		Mode:        mode,
		Bet:         bet,
		InitiatorID: initiatorID,
		OpponentID:  opponentID,
		status:      models.StatusAwaitingMoves,
		rolls:       make(map[string]int),
		choices:     make(map[string]models.Move),
	}
	// The timer is armed only after the session is in the index, so an
	// immediate fire always finds the entry it removes.
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	sess.timer = time.AfterFunc(s.timeout, func() { s.expire(sess) })
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"session":   sess.ID,
		"kind":      kind,
		"mode":      mode,
		"bet":       bet,
		"initiator": initiatorID,
		"opponent":  opponentID,
	}).Info("Game session opened")
	return sess
}

func (s *sessionService) Get(sessionID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sessionID]
}

// expire fires from the session timer. A move that already took the session
// lock wins the race; the timer then observes a terminal state and no-ops.
func (s *sessionService) expire(sess *Session) {
	sess.mu.Lock()
	if sess.status != models.StatusAwaitingMoves {
		sess.mu.Unlock()
		return
	}
	sess.status = models.StatusExpired
	participants := sess.participantsLocked()
	sess.mu.Unlock()

	s.registry.Release(participants...)
	s.remove(sess.ID)

	log.WithFields(log.Fields{
		"session":      sess.ID,
		"participants": participants,
	}).Info("Game session expired without settlement")

	s.eventBus.Emit(context.Background(), events.SessionExpiredEvent{
		SessionID:    sess.ID,
		Kind:         sess.Kind,
		Mode:         sess.Mode,
		Participants: participants,
	})
}

func (s *sessionService) remove(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

func (s *sessionService) SubmitMove(sessionID, userID string, move models.Move) (*models.MoveResult, error) {
	s.mu.Lock()
	sess := s.sessions[sessionID]
	s.mu.Unlock()
	if sess == nil {
		return nil, fmt.Errorf("%w: game no longer exists", models.ErrSessionExpired)
	}

	if !move.ValidFor(sess.Kind) {
		return nil, fmt.Errorf("%w: %s is not a %s move", models.ErrSessionConflict, move, sess.Kind)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch sess.status {
	case models.StatusExpired, models.StatusAborted:
		return nil, fmt.Errorf("%w", models.ErrSessionExpired)
	case models.StatusResolved:
		return nil, fmt.Errorf("%w: game already finished", models.ErrSessionConflict)
	}

	if sess.Mode == models.ModeSingle {
		return s.submitSingle(sess, userID, move)
	}
	if sess.Kind == models.GameDice {
		return s.submitMultiDice(sess, userID)
	}
	return s.submitMultiRPS(sess, userID, move)
}

// submitSingle plays the solo game to completion on the first valid move.
// Caller holds the session lock.
func (s *sessionService) submitSingle(sess *Session, userID string, move models.Move) (*models.MoveResult, error) {
	if userID != sess.InitiatorID {
		return nil, fmt.Errorf("%w: only the starting player may play this game", models.ErrSessionConflict)
	}
	if err := s.checkEntry(userID, sess.Bet); err != nil {
		return nil, err
	}

	result := &models.MoveResult{Resolved: true}
	var outcome models.Outcome
	if sess.Kind == models.GameDice {
		result.Roll = s.dice()
		result.HouseRoll = s.dice()
		outcome = CompareDice(result.Roll, result.HouseRoll)
	} else {
		result.HouseMove = s.rpsPick()
		outcome = CompareRPS(move, result.HouseMove)
	}

	// Input is disabled before balances move so the session can never
	// settle twice.
	sess.status = models.StatusResolved
	settlement, err := settleSolo(s.ledger, userID, sess.Bet, outcome)
	s.finishLocked(sess)
	if err != nil {
		return nil, err
	}

	result.Settlement = settlement
	s.emitSettled(sess, settlement)
	return result, nil
}

// submitMultiDice records one roll per participant and resolves the moment
// both are present. Caller holds the session lock.
func (s *sessionService) submitMultiDice(sess *Session, userID string) (*models.MoveResult, error) {
	joining := false
	switch {
	case userID == sess.InitiatorID:
	case sess.OpponentID != "":
		if userID != sess.OpponentID {
			return nil, fmt.Errorf("%w: this game is against someone else", models.ErrSessionConflict)
		}
	case sess.joinedID != "":
		if userID != sess.joinedID {
			return nil, fmt.Errorf("%w: two players are already in this game", models.ErrSessionConflict)
		}
	default:
		joining = true
	}

	if _, ok := sess.rolls[userID]; ok {
		return nil, fmt.Errorf("%w: you already rolled", models.ErrSessionConflict)
	}
	if err := s.checkEntry(userID, sess.Bet); err != nil {
		return nil, err
	}

	if joining {
		if !s.registry.TryAcquire(userID) {
			return nil, fmt.Errorf("%w: %s already has an active game", models.ErrSessionConflict, userID)
		}
		sess.joinedID = userID
	}

	roll := s.dice()
	sess.rolls[userID] = roll
	result := &models.MoveResult{Roll: roll}
	if len(sess.rolls) < 2 {
		return result, nil
	}

	second := sess.OpponentID
	if second == "" {
		second = sess.joinedID
	}
	outcome := CompareDice(sess.rolls[sess.InitiatorID], sess.rolls[second])

	sess.status = models.StatusResolved
	settlement, err := settleDuel(s.ledger, sess.InitiatorID, second, sess.Bet, outcome)
	s.finishLocked(sess)
	if err != nil {
		return nil, err
	}

	result.Resolved = true
	result.Rolls = map[string]int{
		sess.InitiatorID: sess.rolls[sess.InitiatorID],
		second:           sess.rolls[second],
	}
	result.Settlement = settlement
	s.emitSettled(sess, settlement)
	return result, nil
}

// submitMultiRPS captures the initiator's intent first, then lets the second
// player join and resolve. Both players' sufficiency is re-validated before
// the second player binds, so an initiator who went broke mid-game aborts
// the session instead of leaving it half-bound. Caller holds the session
// lock.
func (s *sessionService) submitMultiRPS(sess *Session, userID string, move models.Move) (*models.MoveResult, error) {
	if userID == sess.InitiatorID {
		if _, ok := sess.choices[userID]; ok {
			return nil, fmt.Errorf("%w: you already chose", models.ErrSessionConflict)
		}
		sess.choices[userID] = move
		return &models.MoveResult{}, nil
	}

	p1Move, ok := sess.choices[sess.InitiatorID]
	if !ok {
		return nil, fmt.Errorf("%w: the first player has not chosen yet", models.ErrSessionConflict)
	}
	if sess.OpponentID != "" && userID != sess.OpponentID {
		return nil, fmt.Errorf("%w: this game is against someone else", models.ErrSessionConflict)
	}
	if sess.joinedID != "" {
		return nil, fmt.Errorf("%w: two players are already in this game", models.ErrSessionConflict)
	}
	if err := s.checkEntry(userID, sess.Bet); err != nil {
		return nil, err
	}

	if s.ledger.Balance(sess.InitiatorID) < sess.Bet {
		sess.status = models.StatusAborted
		s.finishLocked(sess)
		s.eventBus.Emit(context.Background(), events.SessionExpiredEvent{
			SessionID:    sess.ID,
			Kind:         sess.Kind,
			Mode:         sess.Mode,
			Participants: sess.participantsLocked(),
		})
		return nil, fmt.Errorf("the first player can no longer cover the bet: %w", models.ErrInsufficientFunds)
	}

	if sess.OpponentID == "" {
		if !s.registry.TryAcquire(userID) {
			return nil, fmt.Errorf("%w: %s already has an active game", models.ErrSessionConflict, userID)
		}
		sess.joinedID = userID
	}
	sess.choices[userID] = move

	outcome := CompareRPS(p1Move, move)
	sess.status = models.StatusResolved
	settlement, err := settleDuel(s.ledger, sess.InitiatorID, userID, sess.Bet, outcome)
	s.finishLocked(sess)
	if err != nil {
		return nil, err
	}

	s.emitSettled(sess, settlement)
	return &models.MoveResult{
		Resolved: true,
		Choices: map[string]models.Move{
			sess.InitiatorID: p1Move,
			userID:           move,
		},
		Settlement: settlement,
	}, nil
}

// finishLocked stops the timer, frees all registry slots and drops the
// session from the index. Caller holds the session lock and has already set
// a terminal status.
func (s *sessionService) finishLocked(sess *Session) {
	sess.timer.Stop()
	s.registry.Release(sess.participantsLocked()...)
	s.remove(sess.ID)
}

func (s *sessionService) emitSettled(sess *Session, settlement *models.SettlementResult) {
	log.WithFields(log.Fields{
		"session": sess.ID,
		"kind":    sess.Kind,
		"mode":    sess.Mode,
		"bet":     sess.Bet,
		"winner":  settlement.WinnerID,
		"loser":   settlement.LoserID,
	}).Info("Game session settled")

	s.eventBus.Emit(context.Background(), events.WagerSettledEvent{
		SessionID:  sess.ID,
		Kind:       sess.Kind,
		Mode:       sess.Mode,
		Bet:        sess.Bet,
		Settlement: settlement,
	})
}
