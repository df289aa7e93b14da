package services

import (
	"testing"

	"payroll_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatesInRange(t *testing.T) {
	dates, err := DatesInRange("2024-01-30", "2024-02-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}, dates)

	single, err := DatesInRange("2024-03-15", "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-15"}, single)

	inverted, err := DatesInRange("2024-02-02", "2024-01-30")
	require.NoError(t, err)
	assert.Empty(t, inverted)

	_, err = DatesInRange("30-01-2024", "2024-02-02")
	assert.Error(t, err)
}

func TestBuildPayrollReportHalfDayMath(t *testing.T) {
	employees := []models.Employee{
		{ID: "e1", Name: "Asel", DailyWage: 10000},
	}
	attendance := []models.AttendanceRecord{
		{ID: "a1", EmployeeID: "e1", EmployeeName: "Asel", DailyWageAtTime: 10000, Date: "2024-05-06", Morning: true},
		{ID: "a2", EmployeeID: "e1", EmployeeName: "Asel", DailyWageAtTime: 10000, Date: "2024-05-07", Morning: true, Afternoon: true},
	}

	report := BuildPayrollReport(employees, nil, attendance, "2024-05-06", "2024-05-12")

	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	assert.Equal(t, 1.5, row.Days)
	assert.Equal(t, 15000.0, row.GrossPay)
	assert.Equal(t, 0.0, row.LoanTotal)
	assert.Equal(t, 15000.0, row.NetPay)
	assert.Equal(t, 15000.0, report.Totals.NetPay)
}

func TestBuildPayrollReportUsesWageSnapshot(t *testing.T) {
	// Current wage is 20000 but the record was written when it was 8000;
	// pay follows the snapshot, never the current wage.
	employees := []models.Employee{
		{ID: "e1", Name: "Bolat", DailyWage: 20000},
	}
	attendance := []models.AttendanceRecord{
		{ID: "a1", EmployeeID: "e1", EmployeeName: "Bolat", DailyWageAtTime: 8000, Date: "2024-05-06", Morning: true, Afternoon: true},
	}

	report := BuildPayrollReport(employees, nil, attendance, "2024-05-01", "2024-05-31")

	require.Len(t, report.Rows, 1)
	assert.Equal(t, 8000.0, report.Rows[0].GrossPay)
	assert.Equal(t, 8000.0, report.Rows[0].Wage)
}

func TestBuildPayrollReportNegativeNetPay(t *testing.T) {
	employees := []models.Employee{
		{ID: "e1", Name: "Dana", DailyWage: 10000},
	}
	loans := []models.Loan{
		{ID: "l1", EmployeeID: "e1", EmployeeName: "Dana", Amount: 30000, Date: "2024-05-08"},
	}
	attendance := []models.AttendanceRecord{
		{ID: "a1", EmployeeID: "e1", EmployeeName: "Dana", DailyWageAtTime: 10000, Date: "2024-05-06", Morning: true, Afternoon: true},
	}

	report := BuildPayrollReport(employees, loans, attendance, "2024-05-06", "2024-05-12")

	require.Len(t, report.Rows, 1)
	assert.Equal(t, -20000.0, report.Rows[0].NetPay)
	assert.Equal(t, -20000.0, report.Totals.NetPay)
}

func TestBuildPayrollReportLoanOnlyRow(t *testing.T) {
	loans := []models.Loan{
		{ID: "l1", EmployeeID: "e9", EmployeeName: "Erlan", Amount: 5000, Date: "2024-05-08"},
	}

	report := BuildPayrollReport(nil, loans, nil, "2024-05-06", "2024-05-12")

	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	assert.Equal(t, "Erlan", row.Name)
	assert.Equal(t, 0.0, row.Days)
	assert.Equal(t, 0.0, row.Wage)
	assert.Equal(t, 5000.0, row.LoanTotal)
	assert.Equal(t, -5000.0, row.NetPay)
}

func TestBuildPayrollReportWindowFilter(t *testing.T) {
	attendance := []models.AttendanceRecord{
		{ID: "a1", EmployeeID: "e1", EmployeeName: "Gulnar", DailyWageAtTime: 10000, Date: "2024-05-05", Morning: true, Afternoon: true},
		{ID: "a2", EmployeeID: "e1", EmployeeName: "Gulnar", DailyWageAtTime: 10000, Date: "2024-05-06", Morning: true, Afternoon: true},
		{ID: "a3", EmployeeID: "e1", EmployeeName: "Gulnar", DailyWageAtTime: 10000, Date: "2024-05-13", Morning: true, Afternoon: true},
	}
	loans := []models.Loan{
		{ID: "l1", EmployeeID: "e1", EmployeeName: "Gulnar", Amount: 1000, Date: "2024-04-30"},
		{ID: "l2", EmployeeID: "e1", EmployeeName: "Gulnar", Amount: 2000, Date: "2024-05-12"},
	}

	report := BuildPayrollReport(nil, loans, attendance, "2024-05-06", "2024-05-12")

	require.Len(t, report.Rows, 1)
	assert.Equal(t, 1.0, report.Rows[0].Days)
	assert.Equal(t, 2000.0, report.Rows[0].LoanTotal)
	require.Len(t, report.Loans, 1)
	assert.Equal(t, "l2", report.Loans[0].ID)
}

func TestBuildPayrollReportDayStats(t *testing.T) {
	employees := []models.Employee{
		{ID: "e1", Name: "Marat", DailyWage: 10000},
	}
	attendance := []models.AttendanceRecord{
		{ID: "a1", EmployeeID: "e1", EmployeeName: "Marat", DailyWageAtTime: 10000, Date: "2024-05-06", Morning: true, Afternoon: true},
		{ID: "a2", EmployeeID: "e1", EmployeeName: "Marat", DailyWageAtTime: 10000, Date: "2024-05-07", Afternoon: true},
		{ID: "a3", EmployeeID: "e1", EmployeeName: "Marat", DailyWageAtTime: 10000, Date: "2024-05-08"},
	}

	report := BuildPayrollReport(employees, nil, attendance, "2024-05-06", "2024-05-09")

	require.Len(t, report.DayStats, 1)
	stats := report.DayStats[0]
	assert.Equal(t, []string{"2024-05-06"}, stats.PresentDates)
	require.Len(t, stats.HalfDays, 1)
	assert.Equal(t, "2024-05-07", stats.HalfDays[0].Date)
	assert.Equal(t, models.SessionAfternoon, stats.HalfDays[0].Session)
	// A record with both sessions unmarked counts as absent, same as no
	// record at all.
	assert.Equal(t, []string{"2024-05-08", "2024-05-09"}, stats.AbsentDates)
}

func TestBuildPayrollReportDeterministic(t *testing.T) {
	employees := []models.Employee{
		{ID: "e2", Name: "Zarina", DailyWage: 12000},
		{ID: "e1", Name: "Aidar", DailyWage: 9000},
	}
	attendance := []models.AttendanceRecord{
		{ID: "a1", EmployeeID: "e2", EmployeeName: "Zarina", DailyWageAtTime: 12000, Date: "2024-05-06", Morning: true},
		{ID: "a2", EmployeeID: "e1", EmployeeName: "Aidar", DailyWageAtTime: 9000, Date: "2024-05-06", Morning: true, Afternoon: true},
	}
	loans := []models.Loan{
		{ID: "l2", EmployeeID: "e1", EmployeeName: "Aidar", Amount: 500, Date: "2024-05-08"},
		{ID: "l1", EmployeeID: "e2", EmployeeName: "Zarina", Amount: 700, Date: "2024-05-07"},
	}

	first := BuildPayrollReport(employees, loans, attendance, "2024-05-06", "2024-05-12")
	second := BuildPayrollReport(employees, loans, attendance, "2024-05-06", "2024-05-12")

	assert.Equal(t, first, second)
	assert.Equal(t, "Aidar", first.Rows[0].Name)
	assert.Equal(t, "Zarina", first.Rows[1].Name)
	// Loan detail is sorted by date regardless of input order.
	assert.Equal(t, "l1", first.Loans[0].ID)
	assert.Equal(t, "l2", first.Loans[1].ID)
}

func TestGeneratePayrollReportValidation(t *testing.T) {
	svc := NewReportService(nil, nil, nil)

	_, err := svc.GeneratePayrollReport("owner", "bad-date", "2024-05-12")
	assert.ErrorIs(t, err, ErrReportDateFormat)

	_, err = svc.GeneratePayrollReport("owner", "2024-05-12", "2024-05-06")
	assert.ErrorIs(t, err, ErrReportDateRange)
}
