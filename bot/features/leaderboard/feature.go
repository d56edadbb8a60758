package leaderboard

import (
	"wonbot/service"
)

type Feature struct {
	ledger service.LedgerService
}

func New(ledger service.LedgerService) *Feature {
	return &Feature{
		ledger: ledger,
	}
}
