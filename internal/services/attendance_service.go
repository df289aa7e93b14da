package services

import (
	"errors"
	"fmt"

	"payroll_backend/internal/models"
	"payroll_backend/internal/realtime"
	"payroll_backend/internal/repositories"
)

// MaxBatchOperations caps one grid save. Saves above the ceiling are
// rejected outright rather than auto-chunked: sequential chunks would break
// the all-or-nothing guarantee the grid relies on.
const MaxBatchOperations = 500

// --- Custom Service Errors for Attendance ---
var (
	ErrAttendanceDateFormat = errors.New("invalid attendance date, please use YYYY-MM-DD")
	ErrAttendanceDateRange  = errors.New("start date must not be after end date")
	ErrBatchTooLarge        = fmt.Errorf("attendance save exceeds the %d-operation batch limit", MaxBatchOperations)
)

// --- Attendance DTOs ---

// DayMarks is the desired state of one grid cell.
type DayMarks struct {
	Morning   bool `json:"morning"`
	Afternoon bool `json:"afternoon"`
}

// EmployeeMarks carries one employee's row of the grid being saved,
// keyed by date.
type EmployeeMarks struct {
	EmployeeID string              `json:"employee_id" binding:"required"`
	Days       map[string]DayMarks `json:"days"`
}

// SaveGridRequest is the explicit save action: the visible date window and
// every employee row. Cells omitted from Days are treated as unmarked.
type SaveGridRequest struct {
	Dates     []string        `json:"dates" binding:"required"`
	Employees []EmployeeMarks `json:"employees" binding:"required"`
}

// --- AttendanceService Interface ---
type AttendanceService interface {
	GetGrid(ownerID, start, end string) (models.AttendanceGrid, error)
	SaveGrid(ownerID string, req SaveGridRequest) (int, error)
}

type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	employeeRepo   repositories.EmployeeRepository
	hub            *realtime.Hub
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(ar repositories.AttendanceRepository, er repositories.EmployeeRepository, hub *realtime.Hub) AttendanceService {
	return &attendanceService{attendanceRepo: ar, employeeRepo: er, hub: hub}
}

// GetGrid returns the owner's attendance cells inside [start, end]. The
// store fetch is scoped by owner only; the date-window filter runs here so
// no compound index is ever required.
func (s *attendanceService) GetGrid(ownerID, start, end string) (models.AttendanceGrid, error) {
	if !isValidISODate(start) || !isValidISODate(end) {
		return nil, ErrAttendanceDateFormat
	}
	if start > end {
		return nil, ErrAttendanceDateRange
	}

	records, err := s.attendanceRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance records: %w", err)
	}

	grid := models.AttendanceGrid{}
	for _, rec := range records {
		if rec.Date < start || rec.Date > end {
			continue
		}
		if grid[rec.EmployeeID] == nil {
			grid[rec.EmployeeID] = map[string]models.AttendanceCell{}
		}
		id := rec.ID
		grid[rec.EmployeeID][rec.Date] = models.AttendanceCell{
			RecordID:  &id,
			Morning:   rec.Morning,
			Afternoon: rec.Afternoon,
		}
	}
	return grid, nil
}

// SaveGrid writes the posted grid back in one atomic batch and returns the
// number of operations committed. Per (employee, date) cell: update when a
// record already exists, insert when at least one session is marked, and
// skip otherwise — an unmarked cell with no prior record never creates an
// empty row. Each written record snapshots the employee's current daily
// wage so later wage changes leave history untouched.
func (s *attendanceService) SaveGrid(ownerID string, req SaveGridRequest) (int, error) {
	for _, date := range req.Dates {
		if !isValidISODate(date) {
			return 0, ErrAttendanceDateFormat
		}
	}

	employees, err := s.employeeRepo.GetByOwner(ownerID, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to load employees for save: %w", err)
	}
	employeesByID := make(map[string]models.Employee, len(employees))
	for _, emp := range employees {
		employeesByID[emp.ID] = emp
	}

	existing, err := s.attendanceRepo.GetByOwner(ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to load existing attendance: %w", err)
	}
	existingIDs := make(map[string]string, len(existing))
	for _, rec := range existing {
		existingIDs[rec.EmployeeID+"/"+rec.Date] = rec.ID
	}

	var ops []repositories.AttendanceBatchOp
	for _, row := range req.Employees {
		emp, ok := employeesByID[row.EmployeeID]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrEmployeeNotFound, row.EmployeeID)
		}
		for _, date := range req.Dates {
			marks := row.Days[date]

			record := models.AttendanceRecord{
				OwnerID:         ownerID,
				EmployeeID:      emp.ID,
				EmployeeName:    emp.Name,
				DailyWageAtTime: emp.DailyWage,
				Date:            date,
				Morning:         marks.Morning,
				Afternoon:       marks.Afternoon,
			}

			if recordID, ok := existingIDs[emp.ID+"/"+date]; ok {
				record.ID = recordID
				ops = append(ops, repositories.AttendanceBatchOp{Record: record, Update: true})
			} else if marks.Morning || marks.Afternoon {
				ops = append(ops, repositories.AttendanceBatchOp{Record: record})
			}
		}
	}

	if len(ops) > MaxBatchOperations {
		return 0, ErrBatchTooLarge
	}
	if len(ops) == 0 {
		return 0, nil
	}

	if err := s.attendanceRepo.SaveBatch(ops); err != nil {
		return 0, fmt.Errorf("failed to save attendance batch: %w", err)
	}
	s.hub.Publish(realtime.TopicAttendance, ownerID)
	return len(ops), nil
}
