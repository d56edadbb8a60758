package admin

import (
	"wonbot/service"
	"wonbot/storage"
)

type Feature struct {
	ledger    service.LedgerService
	actionLog *storage.ActionLog
}

func New(ledger service.LedgerService, actionLog *storage.ActionLog) *Feature {
	return &Feature{
		ledger:    ledger,
		actionLog: actionLog,
	}
}
