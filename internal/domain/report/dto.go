// Package report defines the transient result shapes the aggregation
// engine produces. The engine owns no data: every report is derived from
// the event ledger, the override table and the settings record.
package report

type DailyEmployeeDetail struct {
	EmployeeID  int64   `json:"employee_id"`
	Name        string  `json:"name"`
	FirstIn     *string `json:"first_in"`
	LastOut     *string `json:"last_out"`
	WorkHours   float64 `json:"work_hours"`
	TotalEvents int     `json:"total_events"`
}

type DailySummary struct {
	Date           string                `json:"date"`
	TotalEmployees int                   `json:"total_employees"`
	Details        []DailyEmployeeDetail `json:"details"`
}

type MonthlyEmployeeSummary struct {
	EmployeeID  int64   `json:"employee_id"`
	Name        string  `json:"name"`
	DaysPresent int     `json:"days_present"`
	TotalHours  float64 `json:"total_hours"`
	AvgHours    float64 `json:"avg_hours"`
}

type MonthlyReport struct {
	Year             int                      `json:"year"`
	Month            int                      `json:"month"`
	TotalWorkingDays int                      `json:"total_working_days"`
	Employees        []MonthlyEmployeeSummary `json:"employees"`
}

type TrendPoint struct {
	Date            string `json:"date"`
	UniqueEmployees int    `json:"unique_employees"`
	TotalEvents     int    `json:"total_events"`
}

type Trends struct {
	PeriodDays int          `json:"period_days"`
	Trends     []TrendPoint `json:"trends"`
}

type DailyHours struct {
	Date   string  `json:"date"`
	Hours  float64 `json:"hours"`
	Events int     `json:"events"`
}

type EmployeeAnalytics struct {
	EmployeeID     int64        `json:"employee_id"`
	Name           string       `json:"name"`
	Department     *string      `json:"department"`
	PeriodDays     int          `json:"period_days"`
	DaysWorked     int          `json:"days_worked"`
	TotalHours     float64      `json:"total_hours"`
	AvgHoursPerDay float64      `json:"avg_hours_per_day"`
	DailySummary   []DailyHours `json:"daily_summary"`
}

type AbsenceDayDetail struct {
	Date        string  `json:"date"`
	DayName     string  `json:"day_name"`
	Expected    int     `json:"expected"`
	Present     int     `json:"present"`
	Absent      int     `json:"absent"`
	AbsenceRate float64 `json:"absence_rate"`
}

// AbsenceEmployeeDetail carries fractional day counts: a HALF_DAY override
// contributes 0.5 to DaysHalfDay, everything else whole days.
type AbsenceEmployeeDetail struct {
	EmployeeID  int64             `json:"employee_id"`
	Name        string            `json:"name"`
	Department  *string           `json:"department"`
	DaysAbsent  float64           `json:"days_absent"`
	DaysLeave   float64           `json:"days_leave"`
	DaysHalfDay float64           `json:"days_half_day"`
	DatesAbsent []string          `json:"dates_absent"`
	Overrides   map[string]string `json:"overrides"`
}

type AbsenceReport struct {
	Year               int                     `json:"year"`
	Month              int                     `json:"month"`
	MonthName          string                  `json:"month_name"`
	TotalWorkingDays   int                     `json:"total_working_days"`
	TotalEmployees     int                     `json:"total_employees"`
	TotalAbsences      float64                 `json:"total_absences"`
	AbsenceRate        float64                 `json:"absence_rate"`
	DailyBreakdown     []AbsenceDayDetail      `json:"daily_breakdown"`
	EmployeeDetails    []AbsenceEmployeeDetail `json:"employee_details"`
	PerfectAttendance  []string                `json:"perfect_attendance"`
	ConcerningAbsences []AbsenceEmployeeDetail `json:"concerning_absences"`
}

type EmployeeMonthAbsence struct {
	EmployeeID     int64             `json:"employee_id"`
	Name           string            `json:"name"`
	Department     *string           `json:"department"`
	Year           int               `json:"year"`
	Month          int               `json:"month"`
	MonthName      string            `json:"month_name"`
	WorkingDays    int               `json:"working_days"`
	DaysPresent    float64           `json:"days_present"`
	DaysAbsent     float64           `json:"days_absent"`
	DaysLeave      float64           `json:"days_leave"`
	DaysHalfDay    float64           `json:"days_half_day"`
	DatesAbsent    []string          `json:"dates_absent"`
	Overrides      map[string]string `json:"overrides"`
	AttendanceRate float64           `json:"attendance_rate"`
}

type LiveStats struct {
	TotalEmployees int `json:"total_employees"`
	Present        int `json:"present"`
	Absent         int `json:"absent"`
	Late           int `json:"late"`
	OnTime         int `json:"on_time"`
	TodayScans     int `json:"today_scans"`
}

type SystemStatus struct {
	TotalEmployees int    `json:"total_employees"`
	TodayScans     int    `json:"today_scans"`
	Status         string `json:"status"`
}
