package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taplog/attendance-backend-go/internal/domain/attendance"
	"github.com/taplog/attendance-backend-go/internal/domain/employee"
	"github.com/taplog/attendance-backend-go/internal/domain/override"
	"github.com/taplog/attendance-backend-go/internal/domain/settings"
)

// The fakes count calls so tests can pin the bulk-fetch behavior: a month
// report issues one range query no matter how many employees or days it
// covers.

type fakeEventRepo struct {
	events []attendance.Event
	counts []attendance.DailyCount

	rangeCalls int
}

func (f *fakeEventRepo) Append(_ context.Context, ev attendance.Event) (attendance.Event, error) {
	return ev, nil
}

func (f *fakeEventRepo) LockLatestForEmployeeDay(context.Context, int64, string) (*attendance.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) ListForEmployeeDay(_ context.Context, employeeID int64, date string) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && ev.Date == date {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListInRange(_ context.Context, start, end string) ([]attendance.Event, error) {
	f.rangeCalls++
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.Date >= start && ev.Date <= end {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListByEmployeeInRange(_ context.Context, employeeID int64, start, end string) ([]attendance.Event, error) {
	f.rangeCalls++
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && ev.Date >= start && ev.Date <= end {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) CountByDate(_ context.Context, date string) (int, error) {
	n := 0
	for _, ev := range f.events {
		if ev.Date == date {
			n++
		}
	}
	return n, nil
}

func (f *fakeEventRepo) DailyCounts(context.Context, string) ([]attendance.DailyCount, error) {
	return f.counts, nil
}

func (f *fakeEventRepo) DeleteByEmployee(context.Context, int64) (int64, error) { return 0, nil }

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) FindByBadge(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(context.Context, string, int, int) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) ListAllActive(context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) Update(context.Context, int64, employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (f *fakeEmployeeRepo) Deactivate(context.Context, int64) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (f *fakeEmployeeRepo) CountActive(context.Context) (int, error) {
	return len(f.employees), nil
}

type fakeOverrideRepo struct {
	overrides []override.Override
}

func (f *fakeOverrideRepo) Upsert(_ context.Context, ov override.Override) (override.Override, error) {
	return ov, nil
}

func (f *fakeOverrideRepo) ListInRange(_ context.Context, start, end string) ([]override.Override, error) {
	var out []override.Override
	for _, ov := range f.overrides {
		if ov.Date >= start && ov.Date <= end {
			out = append(out, ov)
		}
	}
	return out, nil
}

func (f *fakeOverrideRepo) Delete(context.Context, int64) error { return nil }

type fakeSettingsRepo struct {
	cfg settings.Settings
}

func (f *fakeSettingsRepo) GetOrCreateDefault(context.Context) (settings.Settings, error) {
	return f.cfg, nil
}

func (f *fakeSettingsRepo) Update(context.Context, settings.UpdateSettingsRequest) (settings.Settings, error) {
	return f.cfg, nil
}

func newTestService(events *fakeEventRepo, emps *fakeEmployeeRepo, ovs *fakeOverrideRepo, at time.Time) *ReportServiceImpl {
	svc := NewReportService(events, emps, ovs, &fakeSettingsRepo{cfg: settings.Defaults()})
	svc.now = func() time.Time { return at }
	return svc
}

func ev(id, empID int64, name, typ, date string, t time.Time) attendance.Event {
	return attendance.Event{
		ID: id, EmployeeID: empID, EmployeeName: name,
		EventType: typ, Date: date, Timestamp: t,
	}
}

func day(date string, hour, min int) time.Time {
	t, _ := time.Parse("2006-01-02", date)
	return t.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func TestDailySummary(t *testing.T) {
	events := &fakeEventRepo{events: []attendance.Event{
		ev(1, 1, "Alice", attendance.EventIn, "2025-03-10", day("2025-03-10", 4, 0)),
		ev(2, 1, "Alice", attendance.EventOut, "2025-03-10", day("2025-03-10", 12, 0)),
		ev(3, 2, "Bob", attendance.EventIn, "2025-03-10", day("2025-03-10", 5, 0)),
	}}
	svc := newTestService(events, &fakeEmployeeRepo{}, &fakeOverrideRepo{}, day("2025-03-10", 13, 0))

	sum, err := svc.DailySummary(context.Background(), "2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, 2, sum.TotalEmployees)
	require.Len(t, sum.Details, 2)

	alice := sum.Details[0]
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 8.0, alice.WorkHours)
	require.NotNil(t, alice.FirstIn)
	require.NotNil(t, alice.LastOut)

	// Trailing IN closes to zero in summaries.
	bob := sum.Details[1]
	assert.Equal(t, "Bob", bob.Name)
	assert.Equal(t, 0.0, bob.WorkHours)
	assert.Nil(t, bob.LastOut)
}

func TestDailySummaryRejectsMalformedDate(t *testing.T) {
	svc := newTestService(&fakeEventRepo{}, &fakeEmployeeRepo{}, &fakeOverrideRepo{}, time.Now())

	_, err := svc.DailySummary(context.Background(), "10-03-2025")
	assert.ErrorIs(t, err, attendance.ErrInvalidDate)
}

func TestMonthlyReportSingleBulkFetch(t *testing.T) {
	events := &fakeEventRepo{events: []attendance.Event{
		ev(1, 1, "Alice", attendance.EventIn, "2025-03-03", day("2025-03-03", 4, 0)),
		ev(2, 1, "Alice", attendance.EventOut, "2025-03-03", day("2025-03-03", 12, 0)),
		ev(3, 1, "Alice", attendance.EventIn, "2025-03-04", day("2025-03-04", 4, 0)),
		ev(4, 1, "Alice", attendance.EventOut, "2025-03-04", day("2025-03-04", 10, 0)),
		ev(5, 2, "Bob", attendance.EventIn, "2025-03-03", day("2025-03-03", 4, 0)),
		ev(6, 2, "Bob", attendance.EventOut, "2025-03-03", day("2025-03-03", 11, 0)),
	}}
	svc := newTestService(events, &fakeEmployeeRepo{}, &fakeOverrideRepo{}, day("2025-03-31", 13, 0))

	rep, err := svc.MonthlyReport(context.Background(), 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, events.rangeCalls, "month report must fetch once")
	assert.Equal(t, 21, rep.TotalWorkingDays)
	require.Len(t, rep.Employees, 2)

	alice := rep.Employees[0]
	assert.Equal(t, 2, alice.DaysPresent)
	assert.Equal(t, 14.0, alice.TotalHours)
	assert.Equal(t, 7.0, alice.AvgHours)

	bob := rep.Employees[1]
	assert.Equal(t, 1, bob.DaysPresent)
	assert.Equal(t, 7.0, bob.TotalHours)
}

func TestMonthlyReportRejectsBadMonth(t *testing.T) {
	svc := newTestService(&fakeEventRepo{}, &fakeEmployeeRepo{}, &fakeOverrideRepo{}, time.Now())

	_, err := svc.MonthlyReport(context.Background(), 2025, 0)
	assert.ErrorIs(t, err, attendance.ErrInvalidMonth)
	_, err = svc.MonthlyReport(context.Background(), 2025, 13)
	assert.ErrorIs(t, err, attendance.ErrInvalidMonth)
}

func TestTrendsClampsPeriod(t *testing.T) {
	events := &fakeEventRepo{counts: []attendance.DailyCount{
		{Date: "2025-03-10", UniqueEmployees: 3, TotalEvents: 9},
	}}
	svc := newTestService(events, &fakeEmployeeRepo{}, &fakeOverrideRepo{}, day("2025-03-10", 13, 0))

	rep, err := svc.Trends(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 90, rep.PeriodDays)
	require.Len(t, rep.Trends, 1)
	assert.Equal(t, 3, rep.Trends[0].UniqueEmployees)

	rep, err = svc.Trends(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 7, rep.PeriodDays)
}

func TestEmployeeAnalytics(t *testing.T) {
	dept := "Engineering"
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: 1, Name: "Alice", Department: &dept, IsActive: true},
	}}
	events := &fakeEventRepo{events: []attendance.Event{
		ev(1, 1, "Alice", attendance.EventIn, "2025-03-03", day("2025-03-03", 4, 0)),
		ev(2, 1, "Alice", attendance.EventOut, "2025-03-03", day("2025-03-03", 12, 0)),
		ev(3, 1, "Alice", attendance.EventIn, "2025-03-05", day("2025-03-05", 4, 0)),
		ev(4, 1, "Alice", attendance.EventOut, "2025-03-05", day("2025-03-05", 9, 0)),
	}}
	svc := newTestService(events, emps, &fakeOverrideRepo{}, day("2025-03-10", 13, 0))

	rep, err := svc.EmployeeAnalytics(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 30, rep.PeriodDays)
	assert.Equal(t, 2, rep.DaysWorked)
	assert.Equal(t, 13.0, rep.TotalHours)
	assert.Equal(t, 6.5, rep.AvgHoursPerDay)
	require.Len(t, rep.DailySummary, 2)
	assert.Equal(t, "2025-03-03", rep.DailySummary[0].Date)

	_, err = svc.EmployeeAnalytics(context.Background(), 99)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAbsenceReportClassifiesOverrides(t *testing.T) {
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: 1, Name: "Alice", IsActive: true},
		{ID: 2, Name: "Bob", IsActive: true},
	}}
	// Working days clipped to today: Mar 3..7 (Mon-Fri) plus Mar 10.
	events := &fakeEventRepo{events: []attendance.Event{
		ev(1, 1, "Alice", attendance.EventIn, "2025-03-03", day("2025-03-03", 4, 0)),
		ev(2, 1, "Alice", attendance.EventIn, "2025-03-04", day("2025-03-04", 4, 0)),
		ev(3, 1, "Alice", attendance.EventIn, "2025-03-05", day("2025-03-05", 4, 0)),
		ev(4, 1, "Alice", attendance.EventIn, "2025-03-06", day("2025-03-06", 4, 0)),
		ev(5, 1, "Alice", attendance.EventIn, "2025-03-07", day("2025-03-07", 4, 0)),
		ev(6, 1, "Alice", attendance.EventIn, "2025-03-10", day("2025-03-10", 4, 0)),
		ev(7, 2, "Bob", attendance.EventIn, "2025-03-03", day("2025-03-03", 4, 0)),
	}}
	ovs := &fakeOverrideRepo{overrides: []override.Override{
		{EmployeeID: 2, Date: "2025-03-04", Status: override.StatusWorkFromHome},
		{EmployeeID: 2, Date: "2025-03-05", Status: override.StatusLeave},
		{EmployeeID: 2, Date: "2025-03-06", Status: override.StatusHalfDay},
	}}
	svc := newTestService(events, emps, ovs, day("2025-03-10", 13, 0))

	rep, err := svc.AbsenceReport(context.Background(), 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, 6, rep.TotalWorkingDays)
	assert.Equal(t, 2, rep.TotalEmployees)
	require.Len(t, rep.EmployeeDetails, 2)

	alice := rep.EmployeeDetails[0]
	assert.Equal(t, 0.0, alice.DaysAbsent)
	assert.Contains(t, rep.PerfectAttendance, "Alice")

	bob := rep.EmployeeDetails[1]
	// WFH resolved, LEAVE counted apart, HALF_DAY half, 7th and 10th bare.
	assert.Equal(t, 2.0, bob.DaysAbsent)
	assert.Equal(t, 1.0, bob.DaysLeave)
	assert.Equal(t, 0.5, bob.DaysHalfDay)
	assert.Equal(t, []string{"2025-03-07", "2025-03-10"}, bob.DatesAbsent)
	assert.Equal(t, override.StatusWorkFromHome, bob.Overrides["2025-03-04"])
	assert.NotContains(t, rep.PerfectAttendance, "Bob")

	// 2 genuinely absent + 0.5 half day across 12 slots.
	assert.Equal(t, 2.5, rep.TotalAbsences)
	assert.InDelta(t, 20.8, rep.AbsenceRate, 0.05)

	require.Len(t, rep.DailyBreakdown, 6)
	mar7 := rep.DailyBreakdown[4]
	assert.Equal(t, "2025-03-07", mar7.Date)
	assert.Equal(t, "Friday", mar7.DayName)
	assert.Equal(t, 1, mar7.Absent)
	assert.Equal(t, 50.0, mar7.AbsenceRate)
}

func TestAbsenceReportEmptyMonth(t *testing.T) {
	svc := newTestService(&fakeEventRepo{}, &fakeEmployeeRepo{}, &fakeOverrideRepo{}, day("2025-03-10", 13, 0))

	rep, err := svc.AbsenceReport(context.Background(), 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.TotalEmployees)
	assert.Equal(t, 0.0, rep.TotalAbsences)
	assert.NotNil(t, rep.EmployeeDetails)
	assert.NotNil(t, rep.DailyBreakdown)
	assert.NotNil(t, rep.PerfectAttendance)
}

func TestAbsenceReportFlagsConcerning(t *testing.T) {
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: 1, Name: "Alice", IsActive: true},
	}}
	// No events at all: with 6 working days elapsed Alice is 6 days
	// absent, past the default warn threshold of 4.
	svc := newTestService(&fakeEventRepo{}, emps, &fakeOverrideRepo{}, day("2025-03-10", 13, 0))

	rep, err := svc.AbsenceReport(context.Background(), 2025, 3)
	require.NoError(t, err)
	require.Len(t, rep.ConcerningAbsences, 1)
	assert.Equal(t, "Alice", rep.ConcerningAbsences[0].Name)
	assert.Empty(t, rep.PerfectAttendance)
}

func TestEmployeeMonthAbsence(t *testing.T) {
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: 2, Name: "Bob", IsActive: true},
	}}
	events := &fakeEventRepo{events: []attendance.Event{
		ev(1, 2, "Bob", attendance.EventIn, "2025-03-03", day("2025-03-03", 4, 0)),
		ev(2, 2, "Bob", attendance.EventIn, "2025-03-04", day("2025-03-04", 4, 0)),
	}}
	ovs := &fakeOverrideRepo{overrides: []override.Override{
		{EmployeeID: 2, Date: "2025-03-05", Status: override.StatusBusinessTrip},
		{EmployeeID: 2, Date: "2025-03-06", Status: override.StatusHalfDay},
	}}
	svc := newTestService(events, emps, ovs, day("2025-03-10", 13, 0))

	rep, err := svc.EmployeeMonthAbsence(context.Background(), 2, 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, 6, rep.WorkingDays)
	// 2 scanned + 1 business trip + 0.5 half day.
	assert.Equal(t, 3.5, rep.DaysPresent)
	assert.Equal(t, 2.0, rep.DaysAbsent)
	assert.Equal(t, 0.5, rep.DaysHalfDay)
	assert.Equal(t, "March", rep.MonthName)
	assert.InDelta(t, 58.3, rep.AttendanceRate, 0.05)
}

func TestLiveStats(t *testing.T) {
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: 1, Name: "Alice", IsActive: true},
		{ID: 2, Name: "Bob", IsActive: true},
		{ID: 3, Name: "Carol", IsActive: true},
	}}
	// Cutoff at defaults is 04:15 UTC. Alice on time, Bob late, Carol
	// already left so she no longer counts as present.
	events := &fakeEventRepo{events: []attendance.Event{
		ev(1, 1, "Alice", attendance.EventIn, "2025-03-10", day("2025-03-10", 4, 0)),
		ev(2, 2, "Bob", attendance.EventIn, "2025-03-10", day("2025-03-10", 5, 0)),
		ev(3, 3, "Carol", attendance.EventIn, "2025-03-10", day("2025-03-10", 4, 0)),
		ev(4, 3, "Carol", attendance.EventOut, "2025-03-10", day("2025-03-10", 5, 30)),
	}}
	svc := newTestService(events, emps, &fakeOverrideRepo{}, day("2025-03-10", 6, 0))

	stats, err := svc.LiveStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalEmployees)
	assert.Equal(t, 2, stats.Present)
	assert.Equal(t, 1, stats.Absent)
	assert.Equal(t, 1, stats.Late)
	assert.Equal(t, 1, stats.OnTime)
	assert.Equal(t, 4, stats.TodayScans)
}

func TestTodayFeedNewestFirstCapped(t *testing.T) {
	events := &fakeEventRepo{events: []attendance.Event{
		ev(1, 1, "Alice", attendance.EventIn, "2025-03-10", day("2025-03-10", 4, 0)),
		ev(2, 2, "Bob", attendance.EventIn, "2025-03-10", day("2025-03-10", 5, 0)),
		ev(3, 1, "Alice", attendance.EventOut, "2025-03-10", day("2025-03-10", 12, 0)),
	}}
	svc := newTestService(events, &fakeEmployeeRepo{}, &fakeOverrideRepo{}, day("2025-03-10", 13, 0))

	feed, err := svc.TodayFeed(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, feed, 2)
	assert.Equal(t, int64(3), feed[0].ID)
	assert.Equal(t, int64(2), feed[1].ID)
}

func TestStatus(t *testing.T) {
	emps := &fakeEmployeeRepo{employees: []employee.Employee{{ID: 1, Name: "Alice"}}}
	events := &fakeEventRepo{events: []attendance.Event{
		ev(1, 1, "Alice", attendance.EventIn, "2025-03-10", day("2025-03-10", 4, 0)),
	}}
	svc := newTestService(events, emps, &fakeOverrideRepo{}, day("2025-03-10", 13, 0))

	st, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalEmployees)
	assert.Equal(t, 1, st.TodayScans)
	assert.Equal(t, "operational", st.Status)
}
