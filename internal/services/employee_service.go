package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"payroll_backend/internal/models"
	"payroll_backend/internal/realtime"
	"payroll_backend/internal/repositories"
	"payroll_backend/pkg/utils"
)

// --- Custom Service Errors for Employees ---
var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeDataValidation = errors.New("employee data validation error")
)

// --- Employee DTOs ---

// EmployeeRequest carries the create/edit form fields. DailyWage arrives as
// a free-form string and is coerced to a non-negative number, defaulting to
// 0 when it does not parse.
type EmployeeRequest struct {
	Name      string `json:"name" binding:"required"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
	DailyWage string `json:"daily_wage"`
}

// --- EmployeeService Interface ---
type EmployeeService interface {
	GetEmployees(ownerID string, searchTerm *string) ([]models.Employee, error)
	GetEmployeeByID(ownerID, id string) (*models.Employee, error)
	CreateEmployee(ownerID string, req EmployeeRequest) (*models.Employee, error)
	UpdateEmployee(ownerID, id string, req EmployeeRequest) (*models.Employee, error)
	DeleteEmployee(ownerID, id string) error
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
	db           *sql.DB
	hub          *realtime.Hub
}

// NewEmployeeService creates a new instance of EmployeeService.
func NewEmployeeService(er repositories.EmployeeRepository, db *sql.DB, hub *realtime.Hub) EmployeeService {
	return &employeeService{employeeRepo: er, db: db, hub: hub}
}

func validateEmployeeRequest(req *EmployeeRequest) (float64, error) {
	if utils.IsEmpty(req.Name) {
		return 0, fmt.Errorf("%w: name cannot be empty", ErrEmployeeDataValidation)
	}
	switch req.Gender {
	case "":
		req.Gender = models.GenderMale
	case models.GenderMale, models.GenderFemale:
	default:
		return 0, fmt.Errorf("%w: gender must be %q or %q", ErrEmployeeDataValidation, models.GenderMale, models.GenderFemale)
	}
	return utils.CoerceAmount(req.DailyWage), nil
}

func (s *employeeService) GetEmployees(ownerID string, searchTerm *string) ([]models.Employee, error) {
	employees, err := s.employeeRepo.GetByOwner(ownerID, searchTerm)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	return employees, nil
}

func (s *employeeService) GetEmployeeByID(ownerID, id string) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return employee, nil
}

func (s *employeeService) CreateEmployee(ownerID string, req EmployeeRequest) (*models.Employee, error) {
	wage, err := validateEmployeeRequest(&req)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(req.Name),
		Gender:    req.Gender,
		Phone:     strings.TrimSpace(req.Phone),
		DailyWage: wage,
	}

	created, err := s.employeeRepo.Create(s.db, employee)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	s.hub.Publish(realtime.TopicEmployees, ownerID)
	return created, nil
}

// UpdateEmployee overwrites the record by id. Last writer wins; concurrent
// edits from two sessions are not merged.
func (s *employeeService) UpdateEmployee(ownerID, id string, req EmployeeRequest) (*models.Employee, error) {
	wage, err := validateEmployeeRequest(&req)
	if err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.GetByID(ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee for update: %w", err)
	}

	employee.Name = strings.TrimSpace(req.Name)
	employee.Gender = req.Gender
	employee.Phone = strings.TrimSpace(req.Phone)
	employee.DailyWage = wage

	updated, err := s.employeeRepo.Update(s.db, employee)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	s.hub.Publish(realtime.TopicEmployees, ownerID)
	return updated, nil
}

// DeleteEmployee removes the registry entry only. Attendance and loan
// records that reference the id stay behind and render through their
// denormalized snapshots.
func (s *employeeService) DeleteEmployee(ownerID, id string) error {
	err := s.employeeRepo.Delete(s.db, ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	s.hub.Publish(realtime.TopicEmployees, ownerID)
	return nil
}
