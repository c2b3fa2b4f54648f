package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventCheckIn  EventType = "check_in"
	EventCheckOut EventType = "check_out"
	EventBreakOut EventType = "break_out"
	EventBreakIn  EventType = "break_in"
)

var ValidEventTypes = []string{
	string(EventCheckIn),
	string(EventCheckOut),
	string(EventBreakOut),
	string(EventBreakIn),
}

type Status string

const (
	StatusOnTime         Status = "on_time"
	StatusLate           Status = "late"
	StatusEarlyDeparture Status = "early_departure"
	StatusOvertime       Status = "overtime"
	StatusBreak          Status = "break"
)

// Event is one append-only ledger entry. At most one event per
// (employee, local day, type) may exist; the stores enforce that with a
// uniqueness constraint. Events are never deleted, and only the
// adjustment fields (fine, bonus, notes) may change after the fact.
type Event struct {
	ID         string
	EmployeeID string

	// Timestamp is the UTC instant of the scan; Day is the local
	// calendar date ("2006-01-02") in the timezone that was configured
	// when the event was recorded. Day is stored, not derived, so the
	// uniqueness constraint survives later timezone changes.
	Timestamp time.Time
	Day       string

	Type   EventType
	Status Status

	FineAmount  decimal.Decimal
	BonusAmount decimal.Decimal
	AdminNotes  *string

	PhotoURL *string

	CreatedAt time.Time

	// EmployeeName is joined in by list queries for display.
	EmployeeName string
}

// DayFlags summarizes which event types exist for one employee-day.
type DayFlags struct {
	HasCheckIn  bool
	HasCheckOut bool
	HasBreakOut bool
	HasBreakIn  bool
}

func FlagsFromEvents(events []Event) DayFlags {
	var f DayFlags
	for _, e := range events {
		switch e.Type {
		case EventCheckIn:
			f.HasCheckIn = true
		case EventCheckOut:
			f.HasCheckOut = true
		case EventBreakOut:
			f.HasBreakOut = true
		case EventBreakIn:
			f.HasBreakIn = true
		}
	}
	return f
}

func (f DayFlags) Has(t EventType) bool {
	switch t {
	case EventCheckIn:
		return f.HasCheckIn
	case EventCheckOut:
		return f.HasCheckOut
	case EventBreakOut:
		return f.HasBreakOut
	case EventBreakIn:
		return f.HasBreakIn
	}
	return false
}

// DayKey formats an instant as the ledger's local day string.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
