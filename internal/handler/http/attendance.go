package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return AttendanceHandler{attendanceService: attendanceService}
}

// List handles GET /api/v1/attendance?employee_id=&start=&end=.
// With no range it returns today's events.
func (h AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ListEventsFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Start:      r.URL.Query().Get("start"),
		End:        r.URL.Query().Get("end"),
	}

	events, err := h.attendanceService.ListEvents(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, events)
}

// Get handles GET /api/v1/attendance/{id}.
func (h AttendanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.attendanceService.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, event)
}

// Adjust handles PATCH /api/v1/attendance/{id}/adjustment. Only
// fine, bonus, and notes are mutable on a ledger row.
func (h AttendanceHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req attendance.AdjustEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EventID = chi.URLParam(r, "id")

	updated, err := h.attendanceService.AdjustEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Adjustment saved", updated)
}
