package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/handler/http/response"
)

// KioskHandler serves the attendance kiosk device. Its responses are bare JSON
// bodies rather than the response envelope since kiosks parse them directly.
type KioskHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
	Sync(w http.ResponseWriter, r *http.Request)
	Punch(w http.ResponseWriter, r *http.Request)
}

type kioskHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewKioskHandler(attendanceService attendance.AttendanceService) KioskHandler {
	return &kioskHandlerImpl{attendanceService: attendanceService}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Health handles GET /kiosk/sync
func (h *kioskHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, attendance.HealthResponse{
		OK:        true,
		Message:   "Sync endpoint is working",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Sync handles POST /kiosk/sync with a JSON array of records.
func (h *kioskHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	var batch attendance.SyncBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		slog.Error("Sync decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Sync(r.Context(), batch)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Punch handles POST /kiosk/punch
func (h *kioskHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Punch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
