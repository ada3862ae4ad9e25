package services

import (
	"time"

	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"
)

// SetSlotClock pins the slot service's clock so calendar walks are
// deterministic in tests.
func SetSlotClock(svc portssvc.SlotSvcFacade, now func() time.Time) {
	svc.(*slotService).now = now
}

// SetLedgerClock pins the ledger service's clock so proof timestamps are
// deterministic in tests.
func SetLedgerClock(svc portssvc.LedgerSvcFacade, now func() time.Time) {
	svc.(*ledgerService).now = now
}
