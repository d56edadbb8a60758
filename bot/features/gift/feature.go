package gift

import (
	"wonbot/service"
)

type Feature struct {
	giftService service.GiftService
	ledger      service.LedgerService
}

func New(giftService service.GiftService, ledger service.LedgerService) *Feature {
	return &Feature{
		giftService: giftService,
		ledger:      ledger,
	}
}
