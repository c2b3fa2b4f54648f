package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Adjustment carries the only fields that may change after an event is
// appended. Nil fields are left untouched.
type Adjustment struct {
	FineAmount  *decimal.Decimal
	BonusAmount *decimal.Decimal
	AdminNotes  *string
}

// LedgerRepository is the append-only attendance store. Append must
// return ErrDuplicateEvent when an event with the same
// (employee, day, type) already exists, enforced by a storage-level
// uniqueness constraint so concurrent appends cannot both win.
type LedgerRepository interface {
	Append(ctx context.Context, event Event) (Event, error)

	// EventsForDay returns the 0..4 events for one employee-day,
	// ordered by timestamp ascending.
	EventsForDay(ctx context.Context, employeeID, day string) ([]Event, error)

	// EventsInRange returns events with start <= Timestamp < end,
	// ordered by timestamp ascending. Empty employeeID means all
	// employees.
	EventsInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Event, error)

	GetByID(ctx context.Context, id string) (Event, error)
	UpdateAdjustment(ctx context.Context, id string, adj Adjustment) (Event, error)
}
