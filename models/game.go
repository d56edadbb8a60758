package models

import "fmt"

// GameKind identifies which minigame a session plays
type GameKind string

const (
	GameDice GameKind = "dice"
	GameRPS  GameKind = "rps"
)

// GameMode distinguishes solo-vs-house from two-player sessions
type GameMode string

const (
	ModeSingle GameMode = "single"
	ModeMulti  GameMode = "multi"
)

// Move is a player's input into a session. For dice the move is always
// MoveRoll and the value is drawn by the session; for RPS it is one of the
// three hand shapes.
type Move int

const (
	MoveRoll Move = iota
	MoveScissors
	MoveRock
	MovePaper
)

// String returns the move name for logs and messages
func (m Move) String() string {
	switch m {
	case MoveRoll:
		return "roll"
	case MoveScissors:
		return "scissors"
	case MoveRock:
		return "rock"
	case MovePaper:
		return "paper"
	default:
		return fmt.Sprintf("move(%d)", int(m))
	}
}

// ValidFor reports whether the move is a legal input for the game kind
func (m Move) ValidFor(kind GameKind) bool {
	switch kind {
	case GameDice:
		return m == MoveRoll
	case GameRPS:
		return m == MoveScissors || m == MoveRock || m == MovePaper
	default:
		return false
	}
}

// Beats reports whether an RPS move beats another
func (m Move) Beats(other Move) bool {
	switch m {
	case MoveScissors:
		return other == MovePaper
	case MoveRock:
		return other == MoveScissors
	case MovePaper:
		return other == MoveRock
	default:
		return false
	}
}

// SessionStatus is the lifecycle state of a game session
type SessionStatus string

const (
	StatusAwaitingMoves SessionStatus = "awaiting_moves"
	StatusResolved      SessionStatus = "resolved"
	StatusExpired       SessionStatus = "expired"
	// StatusAborted marks a multiplayer session abandoned mid-bind because
	// a participant could no longer cover the bet. No settlement occurs.
	StatusAborted SessionStatus = "aborted"
)

// Outcome is the result of a finalized game from the first player's view
type Outcome int

const (
	OutcomeWin Outcome = iota
	OutcomeLoss
	OutcomeTie
)

// SettlementResult records the balance deltas applied when a session resolved
type SettlementResult struct {
	Outcome  Outcome
	Bet      int64
	WinnerID string // empty on tie
	LoserID  string // empty on tie and on solo games the player did not lose
	// Deltas maps each participant to the signed amount applied to their
	// balance. The house is not a tracked participant.
	Deltas map[string]int64
	// NewBalances holds each participant's balance after settlement.
	NewBalances map[string]int64
}

// MoveResult is returned by SubmitMove once a move has been accepted
type MoveResult struct {
	// Roll is the submitting player's dice value, 0 for RPS moves.
	Roll int
	// HouseRoll / HouseMove are set when a solo session resolved.
	HouseRoll int
	HouseMove Move
	// Resolved is true when this move was the session's terminal move.
	Resolved bool
	// Rolls / Choices hold every participant's input once a two-player
	// session resolved.
	Rolls   map[string]int
	Choices map[string]Move
	// Settlement is non-nil iff Resolved.
	Settlement *SettlementResult
}
