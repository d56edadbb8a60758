package models

// Account represents a registered player's currency balance
type Account struct {
	UserID  string
	Balance int64
}

// LeaderboardEntry is one row of the descending-by-balance ranking
type LeaderboardEntry struct {
	Rank    int
	UserID  string
	Balance int64
}

// TransferResult holds the outcome of a completed gift transfer
type TransferResult struct {
	Amount          int64
	SenderBalance   int64
	ReceiverBalance int64
	GiftsUsedToday  int
	GiftLimit       int
}
