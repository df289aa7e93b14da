package services

import (
	"errors"
	"fmt"
	"sort"

	"payroll_backend/internal/models"
	"payroll_backend/internal/repositories"
)

// --- Custom Service Errors for Reports ---
var (
	ErrReportDateFormat = errors.New("invalid report date, please use YYYY-MM-DD")
	ErrReportDateRange  = errors.New("report start date must not be after end date")
)

// --- ReportService Interface ---
type ReportService interface {
	GeneratePayrollReport(ownerID, startDate, endDate string) (*models.PayrollReport, error)
}

type reportService struct {
	employeeRepo   repositories.EmployeeRepository
	attendanceRepo repositories.AttendanceRepository
	loanRepo       repositories.LoanRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(er repositories.EmployeeRepository, ar repositories.AttendanceRepository, lr repositories.LoanRepository) ReportService {
	return &reportService{employeeRepo: er, attendanceRepo: ar, loanRepo: lr}
}

// GeneratePayrollReport loads the owner's full datasets and aggregates them
// over [startDate, endDate]. Any read failure aborts the whole report; no
// partial result is ever returned.
func (s *reportService) GeneratePayrollReport(ownerID, startDate, endDate string) (*models.PayrollReport, error) {
	if !isValidISODate(startDate) || !isValidISODate(endDate) {
		return nil, ErrReportDateFormat
	}
	if startDate > endDate {
		return nil, ErrReportDateRange
	}

	employees, err := s.employeeRepo.GetByOwner(ownerID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees for report: %w", err)
	}
	loans, err := s.loanRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load loans for report: %w", err)
	}
	attendance, err := s.attendanceRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance for report: %w", err)
	}

	return BuildPayrollReport(employees, loans, attendance, startDate, endDate), nil
}

// BuildPayrollReport is a pure function of its inputs: given the full loan
// and attendance sets it filters to the inclusive [start, end] window by
// lexicographic date comparison and aggregates per employee. Running it
// twice over the same data yields identical results.
//
// Aggregation rules:
//   - each marked morning/afternoon adds 0.5 to days (at most 1.0 per day);
//   - gross pay uses the wage snapshotted on each attendance record, never
//     the employee's current wage;
//   - net pay = gross pay - loan total, negative when loans exceed pay;
//   - an employee with loans but no attendance in range still gets a row,
//     with days 0 and wage 0 until an attendance record supplies one.
func BuildPayrollReport(employees []models.Employee, loans []models.Loan, attendance []models.AttendanceRecord, start, end string) *models.PayrollReport {
	inRange := func(date string) bool {
		return date >= start && date <= end
	}

	aggregation := map[string]*models.PayrollRow{}
	rowOrder := []string{}
	ensureRow := func(employeeID, name string) *models.PayrollRow {
		row, ok := aggregation[employeeID]
		if !ok {
			if name == "" {
				name = "Unknown"
			}
			row = &models.PayrollRow{EmployeeID: employeeID, Name: name}
			aggregation[employeeID] = row
			rowOrder = append(rowOrder, employeeID)
		}
		return row
	}

	loanDetail := []models.Loan{}
	for _, loan := range loans {
		if !inRange(loan.Date) {
			continue
		}
		loanDetail = append(loanDetail, loan)
		ensureRow(loan.EmployeeID, loan.EmployeeName).LoanTotal += loan.Amount
	}

	attendanceByDate := map[string]map[string]models.AttendanceRecord{}
	for _, rec := range attendance {
		if !inRange(rec.Date) {
			continue
		}

		row := ensureRow(rec.EmployeeID, rec.EmployeeName)
		if row.Wage == 0 {
			row.Wage = rec.DailyWageAtTime
		}

		dayValue := 0.0
		if rec.Morning {
			dayValue += 0.5
		}
		if rec.Afternoon {
			dayValue += 0.5
		}
		row.Days += dayValue
		row.GrossPay += dayValue * rec.DailyWageAtTime

		if attendanceByDate[rec.Date] == nil {
			attendanceByDate[rec.Date] = map[string]models.AttendanceRecord{}
		}
		attendanceByDate[rec.Date][rec.EmployeeID] = rec
	}

	report := &models.PayrollReport{
		StartDate: start,
		EndDate:   end,
		Rows:      make([]models.PayrollRow, 0, len(rowOrder)),
		Loans:     loanDetail,
	}

	for _, employeeID := range rowOrder {
		row := aggregation[employeeID]
		row.NetPay = row.GrossPay - row.LoanTotal
		report.Rows = append(report.Rows, *row)
		report.Totals.GrossPay += row.GrossPay
		report.Totals.LoanTotal += row.LoanTotal
		report.Totals.NetPay += row.NetPay
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].Name != report.Rows[j].Name {
			return report.Rows[i].Name < report.Rows[j].Name
		}
		return report.Rows[i].EmployeeID < report.Rows[j].EmployeeID
	})

	sort.Slice(report.Loans, func(i, j int) bool {
		return report.Loans[i].Date < report.Loans[j].Date
	})

	// Day-by-day breakdown covers registered employees only; orphaned ids
	// still appear in the aggregated rows above.
	allDates, err := DatesInRange(start, end)
	if err != nil {
		allDates = nil
	}
	report.DayStats = make([]models.EmployeeDayStats, 0, len(employees))
	for _, emp := range employees {
		stats := models.EmployeeDayStats{
			EmployeeID:   emp.ID,
			Name:         emp.Name,
			PresentDates: []string{},
			HalfDays:     []models.HalfDay{},
			AbsentDates:  []string{},
		}
		for _, date := range allDates {
			rec, ok := attendanceByDate[date][emp.ID]
			switch {
			case ok && rec.Morning && rec.Afternoon:
				stats.PresentDates = append(stats.PresentDates, date)
			case ok && (rec.Morning || rec.Afternoon):
				session := models.SessionAfternoon
				if rec.Morning {
					session = models.SessionMorning
				}
				stats.HalfDays = append(stats.HalfDays, models.HalfDay{Date: date, Session: session})
			default:
				stats.AbsentDates = append(stats.AbsentDates, date)
			}
		}
		report.DayStats = append(report.DayStats, stats)
	}
	sort.Slice(report.DayStats, func(i, j int) bool {
		if report.DayStats[i].Name != report.DayStats[j].Name {
			return report.DayStats[i].Name < report.DayStats[j].Name
		}
		return report.DayStats[i].EmployeeID < report.DayStats[j].EmployeeID
	})

	return report
}
