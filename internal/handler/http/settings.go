package http

import (
	"encoding/json"
	"net/http"

	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type SettingsHandler struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return SettingsHandler{settingsService: settingsService}
}

// Get handles GET /api/v1/settings.
func (h SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.settingsService.Snapshot(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, settings.ToResponse(snap))
}

// Update handles PUT /api/v1/settings. Omitted fields keep their
// stored values; the change applies to the next scan.
func (h SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	snap, err := h.settingsService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Settings updated", settings.ToResponse(snap))
}
