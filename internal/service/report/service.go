// Package report derives summaries, trends and absence analyses from the
// event ledger. Every report is computed from bulk fetches grouped in
// memory; the repositories are never queried per employee or per day.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/taplog/attendance-backend-go/internal/domain/attendance"
	"github.com/taplog/attendance-backend-go/internal/domain/employee"
	"github.com/taplog/attendance-backend-go/internal/domain/override"
	"github.com/taplog/attendance-backend-go/internal/domain/report"
	"github.com/taplog/attendance-backend-go/internal/domain/settings"
	"github.com/taplog/attendance-backend-go/internal/service/timesheet"
)

const maxTrendDays = 90

type ReportService interface {
	DailySummary(ctx context.Context, date string) (report.DailySummary, error)
	MonthlyReport(ctx context.Context, year, month int) (report.MonthlyReport, error)
	Trends(ctx context.Context, days int) (report.Trends, error)
	EmployeeAnalytics(ctx context.Context, employeeID int64) (report.EmployeeAnalytics, error)
	AbsenceReport(ctx context.Context, year, month int) (report.AbsenceReport, error)
	EmployeeMonthAbsence(ctx context.Context, employeeID int64, year, month int) (report.EmployeeMonthAbsence, error)
	LiveStats(ctx context.Context) (report.LiveStats, error)
	TodayFeed(ctx context.Context, limit int) ([]attendance.FeedItem, error)
	Status(ctx context.Context) (report.SystemStatus, error)
}

type ReportServiceImpl struct {
	eventRepo    attendance.EventRepository
	employeeRepo employee.EmployeeRepository
	overrideRepo override.OverrideRepository
	settingsRepo settings.SettingsRepository

	now func() time.Time
}

func NewReportService(
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
	overrideRepo override.OverrideRepository,
	settingsRepo settings.SettingsRepository,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		eventRepo:    eventRepo,
		employeeRepo: employeeRepo,
		overrideRepo: overrideRepo,
		settingsRepo: settingsRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *ReportServiceImpl) DailySummary(ctx context.Context, date string) (report.DailySummary, error) {
	if date == "" {
		date = attendance.DateOf(s.now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return report.DailySummary{}, attendance.ErrInvalidDate
	}

	events, err := s.eventRepo.ListInRange(ctx, date, date)
	if err != nil {
		return report.DailySummary{}, fmt.Errorf("failed to list events: %w", err)
	}

	byEmployee := groupByEmployee(events)
	details := make([]report.DailyEmployeeDetail, 0, len(byEmployee))
	for id, evs := range byEmployee {
		d := report.DailyEmployeeDetail{
			EmployeeID:  id,
			Name:        evs[0].EmployeeName,
			WorkHours:   timesheet.WorkedHoursClosed(evs),
			TotalEvents: len(evs),
		}
		for _, ev := range evs {
			if ev.EventType == attendance.EventIn && d.FirstIn == nil {
				ts := ev.Timestamp.UTC().Format(time.RFC3339)
				d.FirstIn = &ts
			}
			if ev.EventType == attendance.EventOut {
				ts := ev.Timestamp.UTC().Format(time.RFC3339)
				d.LastOut = &ts
			}
		}
		details = append(details, d)
	}
	sort.Slice(details, func(i, j int) bool { return details[i].Name < details[j].Name })

	return report.DailySummary{
		Date:           date,
		TotalEmployees: len(details),
		Details:        details,
	}, nil
}

func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, year, month int) (report.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return report.MonthlyReport{}, attendance.ErrInvalidMonth
	}

	start, end := timesheet.MonthBounds(year, time.Month(month))
	events, err := s.eventRepo.ListInRange(ctx, start, end)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list events: %w", err)
	}

	summaries := make([]report.MonthlyEmployeeSummary, 0)
	for id, evs := range groupByEmployee(events) {
		sum := report.MonthlyEmployeeSummary{
			EmployeeID: id,
			Name:       evs[0].EmployeeName,
		}
		for _, dayEvents := range groupByDate(evs) {
			sum.DaysPresent++
			sum.TotalHours += timesheet.WorkedHoursClosed(dayEvents)
		}
		sum.TotalHours = timesheet.Round2(sum.TotalHours)
		if sum.DaysPresent > 0 {
			sum.AvgHours = timesheet.Round2(sum.TotalHours / float64(sum.DaysPresent))
		}
		summaries = append(summaries, sum)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })

	return report.MonthlyReport{
		Year:             year,
		Month:            month,
		TotalWorkingDays: timesheet.Weekdays(year, time.Month(month)),
		Employees:        summaries,
	}, nil
}

func (s *ReportServiceImpl) Trends(ctx context.Context, days int) (report.Trends, error) {
	if days < 1 {
		days = 7
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}

	start := attendance.DateOf(s.now().AddDate(0, 0, -(days - 1)))
	counts, err := s.eventRepo.DailyCounts(ctx, start)
	if err != nil {
		return report.Trends{}, fmt.Errorf("failed to aggregate daily counts: %w", err)
	}

	points := make([]report.TrendPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, report.TrendPoint{
			Date:            c.Date,
			UniqueEmployees: c.UniqueEmployees,
			TotalEvents:     c.TotalEvents,
		})
	}

	return report.Trends{PeriodDays: days, Trends: points}, nil
}

func (s *ReportServiceImpl) EmployeeAnalytics(ctx context.Context, employeeID int64) (report.EmployeeAnalytics, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return report.EmployeeAnalytics{}, err
	}

	const periodDays = 30
	end := attendance.DateOf(s.now())
	start := attendance.DateOf(s.now().AddDate(0, 0, -(periodDays - 1)))

	events, err := s.eventRepo.ListByEmployeeInRange(ctx, employeeID, start, end)
	if err != nil {
		return report.EmployeeAnalytics{}, fmt.Errorf("failed to list events: %w", err)
	}

	out := report.EmployeeAnalytics{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Department: emp.Department,
		PeriodDays: periodDays,
	}
	for date, dayEvents := range groupByDate(events) {
		hours := timesheet.WorkedHoursClosed(dayEvents)
		out.DaysWorked++
		out.TotalHours += hours
		out.DailySummary = append(out.DailySummary, report.DailyHours{
			Date:   date,
			Hours:  hours,
			Events: len(dayEvents),
		})
	}
	sort.Slice(out.DailySummary, func(i, j int) bool {
		return out.DailySummary[i].Date < out.DailySummary[j].Date
	})
	out.TotalHours = timesheet.Round2(out.TotalHours)
	if out.DaysWorked > 0 {
		out.AvgHoursPerDay = timesheet.Round2(out.TotalHours / float64(out.DaysWorked))
	}

	return out, nil
}

// absenceMonth is the shared bulk-fetch phase of both absence reports: one
// working-day calendar, one event range scan, one override range scan, one
// employee listing.
type absenceMonth struct {
	workingDays []string
	employees   []employee.Employee
	presence    map[int64]map[string]bool   // employee -> set of dates with any event
	overrides   map[int64]map[string]string // employee -> date -> status
}

func (s *ReportServiceImpl) loadAbsenceMonth(ctx context.Context, year, month int) (absenceMonth, error) {
	var m absenceMonth

	for _, day := range timesheet.WorkingDays(year, time.Month(month), s.now()) {
		m.workingDays = append(m.workingDays, day.Format("2006-01-02"))
	}

	employees, err := s.employeeRepo.ListAllActive(ctx)
	if err != nil {
		return m, fmt.Errorf("failed to list employees: %w", err)
	}
	m.employees = employees

	start, end := timesheet.MonthBounds(year, time.Month(month))
	events, err := s.eventRepo.ListInRange(ctx, start, end)
	if err != nil {
		return m, fmt.Errorf("failed to list events: %w", err)
	}
	m.presence = make(map[int64]map[string]bool)
	for _, ev := range events {
		days := m.presence[ev.EmployeeID]
		if days == nil {
			days = make(map[string]bool)
			m.presence[ev.EmployeeID] = days
		}
		days[ev.Date] = true
	}

	overrides, err := s.overrideRepo.ListInRange(ctx, start, end)
	if err != nil {
		return m, fmt.Errorf("failed to list overrides: %w", err)
	}
	m.overrides = make(map[int64]map[string]string)
	for _, ov := range overrides {
		days := m.overrides[ov.EmployeeID]
		if days == nil {
			days = make(map[string]string)
			m.overrides[ov.EmployeeID] = days
		}
		days[ov.Date] = ov.Status
	}

	return m, nil
}

// employeeAbsence classifies one employee's working days against presence
// and overrides. An override on a day with no events resolves it: WFH,
// business trips and supplier visits count as worked elsewhere, LEAVE adds
// a whole day of leave, HALF_DAY adds half a day.
func employeeAbsence(m absenceMonth, empID int64) (detail report.AbsenceEmployeeDetail, present float64) {
	detail.DatesAbsent = []string{}
	detail.Overrides = map[string]string{}

	presence := m.presence[empID]
	overrides := m.overrides[empID]

	for _, day := range m.workingDays {
		if presence[day] {
			present++
			continue
		}
		status, ok := overrides[day]
		if !ok {
			detail.DaysAbsent++
			detail.DatesAbsent = append(detail.DatesAbsent, day)
			continue
		}
		detail.Overrides[day] = status
		switch status {
		case override.StatusLeave:
			detail.DaysLeave++
		case override.StatusHalfDay:
			detail.DaysHalfDay += 0.5
			present += 0.5
		default:
			// WORK_FROM_HOME, BUSINESS_TRIP, SUPPLIER_VISIT
			present++
		}
	}
	return detail, present
}

func (s *ReportServiceImpl) AbsenceReport(ctx context.Context, year, month int) (report.AbsenceReport, error) {
	if month < 1 || month > 12 {
		return report.AbsenceReport{}, attendance.ErrInvalidMonth
	}

	m, err := s.loadAbsenceMonth(ctx, year, month)
	if err != nil {
		return report.AbsenceReport{}, err
	}

	cfg, err := s.settingsRepo.GetOrCreateDefault(ctx)
	if err != nil {
		slog.Warn("falling back to default attendance settings", slog.Any("error", err))
		cfg = settings.Defaults()
	}

	out := report.AbsenceReport{
		Year:               year,
		Month:              month,
		MonthName:          time.Month(month).String(),
		TotalWorkingDays:   len(m.workingDays),
		TotalEmployees:     len(m.employees),
		DailyBreakdown:     []report.AbsenceDayDetail{},
		EmployeeDetails:    []report.AbsenceEmployeeDetail{},
		PerfectAttendance:  []string{},
		ConcerningAbsences: []report.AbsenceEmployeeDetail{},
	}
	if len(m.workingDays) == 0 || len(m.employees) == 0 {
		return out, nil
	}

	absentPerDay := make(map[string]float64, len(m.workingDays))
	for _, emp := range m.employees {
		detail, _ := employeeAbsence(m, emp.ID)
		detail.EmployeeID = emp.ID
		detail.Name = emp.Name
		detail.Department = emp.Department
		out.EmployeeDetails = append(out.EmployeeDetails, detail)

		for _, day := range detail.DatesAbsent {
			absentPerDay[day]++
		}
		for day, status := range detail.Overrides {
			if status == override.StatusHalfDay {
				absentPerDay[day] += 0.5
			}
		}
		out.TotalAbsences += detail.DaysAbsent + detail.DaysHalfDay

		if detail.DaysAbsent == 0 && detail.DaysLeave == 0 && detail.DaysHalfDay == 0 {
			out.PerfectAttendance = append(out.PerfectAttendance, emp.Name)
		}
		if concerning(detail, cfg) {
			out.ConcerningAbsences = append(out.ConcerningAbsences, detail)
		}
	}
	sort.Slice(out.EmployeeDetails, func(i, j int) bool {
		return out.EmployeeDetails[i].Name < out.EmployeeDetails[j].Name
	})
	sort.Strings(out.PerfectAttendance)
	sort.Slice(out.ConcerningAbsences, func(i, j int) bool {
		return out.ConcerningAbsences[i].Name < out.ConcerningAbsences[j].Name
	})

	for _, day := range m.workingDays {
		expected := len(m.employees)
		absent := absentPerDay[day]
		d := report.AbsenceDayDetail{
			Date:     day,
			DayName:  dayName(day),
			Expected: expected,
			Present:  expected - int(absent+0.5),
			Absent:   int(absent + 0.5),
		}
		if expected > 0 {
			d.AbsenceRate = timesheet.Round1(absent / float64(expected) * 100)
		}
		out.DailyBreakdown = append(out.DailyBreakdown, d)
	}

	slots := float64(len(m.workingDays) * len(m.employees))
	out.AbsenceRate = timesheet.Round1(out.TotalAbsences / slots * 100)

	return out, nil
}

// concerning flags an employee one day short of any configured monthly
// limit, never below one occurrence.
func concerning(d report.AbsenceEmployeeDetail, cfg settings.Settings) bool {
	return d.DaysAbsent >= warnAt(cfg.AllowedAbsent) ||
		d.DaysLeave >= warnAt(cfg.AllowedLeave) ||
		d.DaysHalfDay/0.5 >= warnAt(cfg.AllowedHalfDay)
}

func warnAt(limit int) float64 {
	if limit <= 2 {
		return 1
	}
	return float64(limit - 1)
}

func (s *ReportServiceImpl) EmployeeMonthAbsence(ctx context.Context, employeeID int64, year, month int) (report.EmployeeMonthAbsence, error) {
	if month < 1 || month > 12 {
		return report.EmployeeMonthAbsence{}, attendance.ErrInvalidMonth
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return report.EmployeeMonthAbsence{}, err
	}

	m, err := s.loadAbsenceMonth(ctx, year, month)
	if err != nil {
		return report.EmployeeMonthAbsence{}, err
	}

	detail, present := employeeAbsence(m, emp.ID)
	out := report.EmployeeMonthAbsence{
		EmployeeID:  emp.ID,
		Name:        emp.Name,
		Department:  emp.Department,
		Year:        year,
		Month:       month,
		MonthName:   time.Month(month).String(),
		WorkingDays: len(m.workingDays),
		DaysPresent: present,
		DaysAbsent:  detail.DaysAbsent,
		DaysLeave:   detail.DaysLeave,
		DaysHalfDay: detail.DaysHalfDay,
		DatesAbsent: detail.DatesAbsent,
		Overrides:   detail.Overrides,
	}
	if len(m.workingDays) > 0 {
		out.AttendanceRate = timesheet.Round1(present / float64(len(m.workingDays)) * 100)
	}
	return out, nil
}

func (s *ReportServiceImpl) LiveStats(ctx context.Context) (report.LiveStats, error) {
	total, err := s.employeeRepo.CountActive(ctx)
	if err != nil {
		return report.LiveStats{}, fmt.Errorf("failed to count employees: %w", err)
	}

	today := attendance.DateOf(s.now())
	events, err := s.eventRepo.ListInRange(ctx, today, today)
	if err != nil {
		return report.LiveStats{}, fmt.Errorf("failed to list events: %w", err)
	}

	cfg, err := s.settingsRepo.GetOrCreateDefault(ctx)
	if err != nil {
		cfg = settings.Defaults()
	}

	stats := report.LiveStats{
		TotalEmployees: total,
		TodayScans:     len(events),
	}
	for _, evs := range groupByEmployee(events) {
		// On site right now means the latest event is an IN.
		latest := evs[0]
		for _, e := range evs[1:] {
			if e.Timestamp.After(latest.Timestamp) {
				latest = e
			}
		}
		if latest.EventType != attendance.EventIn {
			continue
		}
		stats.Present++

		late, err := timesheet.IsLate(evs, cfg.WorkStart, cfg.GraceMinutes, cfg.TimezoneOffset)
		if err == nil && late {
			stats.Late++
		} else {
			stats.OnTime++
		}
	}
	stats.Absent = total - stats.Present
	if stats.Absent < 0 {
		stats.Absent = 0
	}
	return stats, nil
}

func (s *ReportServiceImpl) TodayFeed(ctx context.Context, limit int) ([]attendance.FeedItem, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	today := attendance.DateOf(s.now())
	events, err := s.eventRepo.ListInRange(ctx, today, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	// Newest first, capped.
	sort.Slice(events, func(i, j int) bool { return events[i].Timestamp.After(events[j].Timestamp) })
	if len(events) > limit {
		events = events[:limit]
	}

	feed := make([]attendance.FeedItem, 0, len(events))
	for _, ev := range events {
		feed = append(feed, attendance.FeedItem{
			ID:         ev.ID,
			EmployeeID: ev.EmployeeID,
			RFIDUID:    ev.RFIDUID,
			EventType:  ev.EventType,
			Timestamp:  ev.Timestamp.UTC().Format(time.RFC3339),
			Date:       ev.Date,
			Name:       ev.EmployeeName,
		})
	}
	return feed, nil
}

func (s *ReportServiceImpl) Status(ctx context.Context) (report.SystemStatus, error) {
	total, err := s.employeeRepo.CountActive(ctx)
	if err != nil {
		return report.SystemStatus{}, fmt.Errorf("failed to count employees: %w", err)
	}
	scans, err := s.eventRepo.CountByDate(ctx, attendance.DateOf(s.now()))
	if err != nil {
		return report.SystemStatus{}, fmt.Errorf("failed to count events: %w", err)
	}
	return report.SystemStatus{
		TotalEmployees: total,
		TodayScans:     scans,
		Status:         "operational",
	}, nil
}

func groupByEmployee(events []attendance.Event) map[int64][]attendance.Event {
	grouped := make(map[int64][]attendance.Event)
	for _, ev := range events {
		grouped[ev.EmployeeID] = append(grouped[ev.EmployeeID], ev)
	}
	return grouped
}

func groupByDate(events []attendance.Event) map[string][]attendance.Event {
	grouped := make(map[string][]attendance.Event)
	for _, ev := range events {
		grouped[ev.Date] = append(grouped[ev.Date], ev)
	}
	return grouped
}

func dayName(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
