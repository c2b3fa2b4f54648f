package attendance

import "errors"

var (
	ErrEventNotFound = errors.New("attendance event not found")

	// ErrFaceNotRecognized covers both an empty candidate set and a
	// probe with no match under the threshold; the kiosk shows the
	// same message for either.
	ErrFaceNotRecognized = errors.New("face not recognized")

	// ErrDuplicateEvent means an event of the same type already exists
	// for the employee on that local day. The storage uniqueness
	// constraint is the authority; the policy pre-check only catches
	// it early.
	ErrDuplicateEvent = errors.New("event already recorded for today")

	ErrTooLateToCheckIn   = errors.New("too late to check in")
	ErrTooEarlyToCheckOut = errors.New("too early to check out")
)
