package response

import (
	"errors"
	"net/http"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/pkg/scheduleclock"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrFaceNotRecognized):
		UnprocessableEntity(w, "FACE_NOT_RECOGNIZED", "Face not recognized")
	case errors.Is(err, attendance.ErrDuplicateEvent):
		Conflict(w, "Event already recorded for today")
	case errors.Is(err, attendance.ErrTooLateToCheckIn):
		UnprocessableEntity(w, "TOO_LATE_TO_CHECK_IN", "Check-in window has closed")
	case errors.Is(err, attendance.ErrTooEarlyToCheckOut):
		UnprocessableEntity(w, "TOO_EARLY_TO_CHECK_OUT", "Check-out is not allowed before end of shift")
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is inactive")
	case errors.Is(err, employee.ErrFaceNotEnrolled):
		Conflict(w, "Employee has no enrolled face")

	// Schedule parsing
	case errors.Is(err, scheduleclock.ErrInvalidTimeFormat):
		BadRequest(w, "Invalid time format, expected HH:MM", nil)

	// Default: storage and other unexpected failures
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
