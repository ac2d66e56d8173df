package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taplog/attendance-backend-go/internal/domain/override"
	"github.com/taplog/attendance-backend-go/internal/handler/http/middleware"
	"github.com/taplog/attendance-backend-go/internal/handler/http/response"
	overrideService "github.com/taplog/attendance-backend-go/internal/service/override"
)

type OverrideHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type overrideHandlerImpl struct {
	overrideService overrideService.OverrideService
}

func NewOverrideHandler(svc overrideService.OverrideService) OverrideHandler {
	return &overrideHandlerImpl{overrideService: svc}
}

// Upsert implements OverrideHandler.
func (h *overrideHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req override.UpsertOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overrideService.Upsert(r.Context(), req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Override saved", result)
}

// List implements OverrideHandler. Defaults to the current UTC month.
func (h *overrideHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start_date")
	end := r.URL.Query().Get("end_date")
	if start == "" || end == "" {
		now := time.Now().UTC()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = first.Format("2006-01-02")
		end = first.AddDate(0, 1, -1).Format("2006-01-02")
	}

	result, err := h.overrideService.ListInRange(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Delete implements OverrideHandler.
func (h *overrideHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.overrideService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Override removed", nil)
}
