package http

import (
	"encoding/json"
	"net/http"

	"github.com/taplog/attendance-backend-go/internal/domain/attendance"
	"github.com/taplog/attendance-backend-go/internal/handler/http/response"
	"github.com/taplog/attendance-backend-go/internal/service/scan"
)

type ScanHandler interface {
	Scan(w http.ResponseWriter, r *http.Request)
	BreakStart(w http.ResponseWriter, r *http.Request)
	BreakEnd(w http.ResponseWriter, r *http.Request)
}

type scanHandlerImpl struct {
	scanService scan.ScanService
}

func NewScanHandler(scanService scan.ScanService) ScanHandler {
	return &scanHandlerImpl{scanService: scanService}
}

// Scan implements ScanHandler. The response is flat, not enveloped: the
// kiosk firmware reads it field by field.
func (h *scanHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req attendance.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scanService.RecordScan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Raw(w, http.StatusOK, result)
}

// BreakStart implements ScanHandler.
func (h *scanHandlerImpl) BreakStart(w http.ResponseWriter, r *http.Request) {
	h.recordBreak(w, r, attendance.EventBreakStart)
}

// BreakEnd implements ScanHandler.
func (h *scanHandlerImpl) BreakEnd(w http.ResponseWriter, r *http.Request) {
	h.recordBreak(w, r, attendance.EventBreakEnd)
}

func (h *scanHandlerImpl) recordBreak(w http.ResponseWriter, r *http.Request, eventType string) {
	var req attendance.BreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scanService.RecordBreak(r.Context(), req, eventType)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Raw(w, http.StatusOK, result)
}
