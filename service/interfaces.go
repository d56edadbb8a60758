package service

import (
	"wonbot/models"
)

// LedgerService manages registered accounts and their balances. All mutating
// operations are serialized behind a single writer and are written through to
// the balance snapshot before they return.
type LedgerService interface {
	// IsRegistered reports whether the user has an account
	IsRegistered(userID string) bool

	// Register creates an account at the starting balance if absent.
	// Returns true if a new account was created. Idempotent.
	Register(userID string) (bool, error)

	// Unregister removes the account entirely (balance is lost, not
	// archived). Returns true if the account existed.
	Unregister(userID string) (bool, error)

	// Balance returns the user's balance, 0 for unknown users without
	// creating them.
	Balance(userID string) int64

	// Adjust sets balance = max(0, balance + delta) and returns the new
	// balance. This is the only mutation primitive besides SetBalance and
	// Transfer.
	Adjust(userID string, delta int64) (int64, error)

	// SetBalance sets the balance to max(0, amount) atomically and returns
	// the new balance.
	SetBalance(userID string, amount int64) (int64, error)

	// Transfer moves amount from one account to the other as a single
	// atomic operation, failing with ErrInsufficientFunds before any
	// balance changes.
	Transfer(fromID, toID string, amount int64) error

	// TopN returns up to n entries sorted by balance descending. Ties keep
	// registration order.
	TopN(n int) []models.LeaderboardEntry

	// RankOf returns the 1-based position in the descending-by-balance
	// ordering, ok=false when unregistered.
	RankOf(userID string) (int, bool)

	// Accounts returns every account in registration order.
	Accounts() []models.Account
}

// GiftService rate-limits and executes peer-to-peer gifts
type GiftService interface {
	// GiftsToday returns the user's gift count for today's date
	GiftsToday(userID string) int

	// TryConsumeGift increments today's count and returns true iff the
	// user is still under the daily limit; otherwise leaves state
	// unchanged and returns false.
	TryConsumeGift(userID string) (bool, error)

	// Gift transfers amount from sender to receiver, consuming one of the
	// sender's daily gift slots.
	Gift(fromID, toID string, amount int64) (*models.TransferResult, error)
}

// SessionService creates game sessions and drives their state machines
type SessionService interface {
	// StartSingle opens a solo-vs-house session for the given game kind
	StartSingle(kind models.GameKind, userID string, bet int64) (*Session, error)

	// StartMulti opens a two-player session. opponentID may be empty, in
	// which case the first valid challenger fills the second slot.
	StartMulti(kind models.GameKind, initiatorID string, bet int64, opponentID string) (*Session, error)

	// SubmitMove feeds one player input into a session. Exactly one
	// terminal move settles the session.
	SubmitMove(sessionID, userID string, move models.Move) (*models.MoveResult, error)

	// Get returns an active session by ID, nil if unknown or finished
	Get(sessionID string) *Session
}
