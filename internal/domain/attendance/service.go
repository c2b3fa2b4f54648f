package attendance

import "context"

// AttendanceService defines business logic for the scan pipeline and
// ledger queries.
type AttendanceService interface {
	// RecordScan matches the probe against enrolled faces, classifies
	// the event under current settings, and appends it to the ledger.
	RecordScan(ctx context.Context, req ScanRequest) (ScanResult, error)

	ListEvents(ctx context.Context, filter ListEventsFilter) ([]EventView, error)
	GetEvent(ctx context.Context, id string) (EventView, error)

	// AdjustEvent updates fine/bonus/notes on an existing event.
	// Nothing else on a ledger row is mutable.
	AdjustEvent(ctx context.Context, req AdjustEventRequest) (EventView, error)
}
