package attendance

import (
	"fmt"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
)

// PolicyInput carries everything needed to classify one scan. All
// minute values are minutes since local midnight.
type PolicyInput struct {
	Requested attendance.EventType

	// Flags reflect the events already on the ledger for this
	// employee-day at evaluation time.
	Flags attendance.DayFlags

	NowMinutes       int
	WorkStartMinutes int
	WorkEndMinutes   int

	Rules settings.Settings
}

// EvaluatePolicy decides whether the requested event is accepted and
// with which status. It is a pure pre-check: the ledger's uniqueness
// constraint remains the authority on duplicates.
func EvaluatePolicy(in PolicyInput) (attendance.Status, error) {
	if in.Flags.Has(in.Requested) {
		return "", fmt.Errorf("%s: %w", in.Requested, attendance.ErrDuplicateEvent)
	}

	switch in.Requested {
	case attendance.EventCheckIn:
		// The check-in window closes MaxLateMinutes past work start
		// when late check-in is allowed, or at the late threshold
		// when it is not.
		cutoff := in.Rules.LateThresholdMinutes
		if in.Rules.AllowLateCheckin {
			cutoff = in.Rules.MaxLateMinutes
		}
		if in.NowMinutes > in.WorkStartMinutes+cutoff {
			return "", attendance.ErrTooLateToCheckIn
		}
		if in.NowMinutes > in.WorkStartMinutes+in.Rules.LateThresholdMinutes {
			return attendance.StatusLate, nil
		}
		return attendance.StatusOnTime, nil

	case attendance.EventCheckOut:
		if in.NowMinutes < in.WorkEndMinutes && !in.Rules.AllowEarlyCheckout {
			return "", attendance.ErrTooEarlyToCheckOut
		}
		if in.NowMinutes < in.WorkEndMinutes {
			return attendance.StatusEarlyDeparture, nil
		}
		return attendance.StatusOvertime, nil

	case attendance.EventBreakOut, attendance.EventBreakIn:
		return attendance.StatusBreak, nil
	}

	return "", fmt.Errorf("unknown event type %q", in.Requested)
}
