package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
	"github.com/presensia/attendance-backend-go/internal/pkg/facematch"
)

type KioskHandler struct {
	attendanceService attendance.AttendanceService
}

func NewKioskHandler(attendanceService attendance.AttendanceService) KioskHandler {
	return KioskHandler{attendanceService: attendanceService}
}

type scanPayload struct {
	Mode      string              `json:"mode"`
	Embedding facematch.Embedding `json:"embedding"`

	// PhotoBase64 optionally carries the captured frame as a base64
	// JPEG for the audit trail.
	PhotoBase64 string `json:"photo_base64,omitempty"`
}

// Scan handles POST /api/v1/kiosk/scan.
func (h KioskHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var payload scanPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	req := attendance.ScanRequest{
		Mode:      payload.Mode,
		Embedding: payload.Embedding,
	}
	if payload.PhotoBase64 != "" {
		photo, err := base64.StdEncoding.DecodeString(payload.PhotoBase64)
		if err != nil {
			response.BadRequest(w, "photo_base64 is not valid base64", nil)
			return
		}
		req.PhotoJPEG = photo
	}

	result, err := h.attendanceService.RecordScan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Scan recorded", result)
}
