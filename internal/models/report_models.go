package models

// Half-day session tags.
const (
	SessionMorning   = "morning"
	SessionAfternoon = "afternoon"
)

// PayrollRow is the per-employee aggregation over a date range.
// NetPay = GrossPay - LoanTotal and may be negative. Wage is the snapshotted
// wage observed in range; it stays 0 for employees with loan activity only.
type PayrollRow struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Wage       float64 `json:"wage"`
	Days       float64 `json:"days"`
	GrossPay   float64 `json:"gross_pay"`
	LoanTotal  float64 `json:"loan_total"`
	NetPay     float64 `json:"net_pay"`
}

// HalfDay tags which session was worked on a half-attended day.
type HalfDay struct {
	Date    string `json:"date"`
	Session string `json:"session"`
}

// EmployeeDayStats is the day-by-day classification for one registered
// employee over every calendar day of the report range.
type EmployeeDayStats struct {
	EmployeeID   string    `json:"employee_id"`
	Name         string    `json:"name"`
	PresentDates []string  `json:"present_dates"`
	HalfDays     []HalfDay `json:"half_days"`
	AbsentDates  []string  `json:"absent_dates"`
}

// PayrollTotals sums the aggregated rows.
type PayrollTotals struct {
	GrossPay  float64 `json:"gross_pay"`
	LoanTotal float64 `json:"loan_total"`
	NetPay    float64 `json:"net_pay"`
}

// PayrollReport is the full report for a date range: aggregated rows, the
// in-range loan detail, the per-employee day breakdown and grand totals.
type PayrollReport struct {
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Rows      []PayrollRow       `json:"rows"`
	Loans     []Loan             `json:"loans"`
	DayStats  []EmployeeDayStats `json:"day_stats"`
	Totals    PayrollTotals      `json:"totals"`
}
