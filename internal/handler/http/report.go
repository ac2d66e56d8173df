package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/taplog/attendance-backend-go/internal/domain/report"
	"github.com/taplog/attendance-backend-go/internal/handler/http/response"
	reportService "github.com/taplog/attendance-backend-go/internal/service/report"
)

type ReportHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	Trends(w http.ResponseWriter, r *http.Request)
	EmployeeAnalytics(w http.ResponseWriter, r *http.Request)
	Absence(w http.ResponseWriter, r *http.Request)
	EmployeeAbsence(w http.ResponseWriter, r *http.Request)
	LiveStats(w http.ResponseWriter, r *http.Request)
	TodayFeed(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService reportService.ReportService
}

func NewReportHandler(svc reportService.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: svc}
}

// Daily implements ReportHandler. ?format=csv streams the summary as a CSV
// download instead of JSON.
func (h *reportHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.reportService.DailySummary(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeDailyCSV(w, result)
		return
	}
	response.Success(w, result)
}

// writeDailyCSV renders one row per employee. Rendering lives here in the
// handler; the service only ever produces structured data.
func writeDailyCSV(w http.ResponseWriter, sum report.DailySummary) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="attendance-%s.csv"`, sum.Date))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"employee_id", "name", "first_in", "last_out", "work_hours", "total_events"})
	for _, d := range sum.Details {
		firstIn, lastOut := "", ""
		if d.FirstIn != nil {
			firstIn = *d.FirstIn
		}
		if d.LastOut != nil {
			lastOut = *d.LastOut
		}
		_ = cw.Write([]string{
			strconv.FormatInt(d.EmployeeID, 10),
			d.Name,
			firstIn,
			lastOut,
			strconv.FormatFloat(d.WorkHours, 'f', 2, 64),
			strconv.Itoa(d.TotalEvents),
		})
	}
	cw.Flush()
}

// Monthly implements ReportHandler.
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonth(r)

	result, err := h.reportService.MonthlyReport(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Trends implements ReportHandler.
func (h *reportHandlerImpl) Trends(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	result, err := h.reportService.Trends(r.Context(), days)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// EmployeeAnalytics implements ReportHandler.
func (h *reportHandlerImpl) EmployeeAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.EmployeeAnalytics(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Absence implements ReportHandler.
func (h *reportHandlerImpl) Absence(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonth(r)

	result, err := h.reportService.AbsenceReport(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// EmployeeAbsence implements ReportHandler.
func (h *reportHandlerImpl) EmployeeAbsence(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	year, month := yearMonth(r)

	result, err := h.reportService.EmployeeMonthAbsence(r.Context(), id, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// LiveStats implements ReportHandler.
func (h *reportHandlerImpl) LiveStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.LiveStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// TodayFeed implements ReportHandler.
func (h *reportHandlerImpl) TodayFeed(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.reportService.TodayFeed(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Status implements ReportHandler.
func (h *reportHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// yearMonth reads ?year and ?month, defaulting to the current UTC month.
func yearMonth(r *http.Request) (int, int) {
	now := time.Now().UTC()
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2200 {
		year = now.Year()
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		month = int(now.Month())
	}
	return year, month
}
