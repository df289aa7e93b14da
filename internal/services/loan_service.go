package services

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"payroll_backend/internal/models"
	"payroll_backend/internal/realtime"
	"payroll_backend/internal/repositories"
	"payroll_backend/pkg/utils"
)

// --- Custom Service Errors for Loans ---
var (
	ErrLoanNotFound   = errors.New("loan not found")
	ErrLoanDateFormat = errors.New("invalid loan date, please use YYYY-MM-DD")
)

// --- Loan DTOs ---

// AddLoanRequest records one cash advance. Amount is coerced to a
// non-negative number, defaulting to 0 when it does not parse.
type AddLoanRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Amount     string `json:"amount"`
	Date       string `json:"date" binding:"required"`
	Note       string `json:"note"`
}

// LoanHistory is an employee's ledger view: the individual advances sorted
// newest first plus the running total over the loaded history.
type LoanHistory struct {
	Loans         []models.Loan `json:"loans"`
	TotalBorrowed float64       `json:"total_borrowed"`
}

// --- LoanService Interface ---
type LoanService interface {
	GetLoanHistory(ownerID, employeeID string) (*LoanHistory, error)
	AddLoan(ownerID string, req AddLoanRequest) (*models.Loan, error)
	DeleteLoan(ownerID, id string) error
}

type loanService struct {
	loanRepo     repositories.LoanRepository
	employeeRepo repositories.EmployeeRepository
	db           *sql.DB
	hub          *realtime.Hub
}

// NewLoanService creates a new instance of LoanService.
func NewLoanService(lr repositories.LoanRepository, er repositories.EmployeeRepository, db *sql.DB, hub *realtime.Hub) LoanService {
	return &loanService{loanRepo: lr, employeeRepo: er, db: db, hub: hub}
}

// GetLoanHistory returns the ledger for one employee, sorted by date
// descending. The sort is applied after fetch — string comparison on the
// fixed-width ISO dates — and TotalBorrowed sums whatever is loaded.
func (s *loanService) GetLoanHistory(ownerID, employeeID string) (*LoanHistory, error) {
	loans, err := s.loanRepo.GetByEmployee(ownerID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan history: %w", err)
	}

	sort.Slice(loans, func(i, j int) bool {
		return loans[i].Date > loans[j].Date
	})

	history := &LoanHistory{Loans: loans}
	for _, loan := range loans {
		history.TotalBorrowed += loan.Amount
	}
	return history, nil
}

// AddLoan appends one advance. The employee's name is snapshotted into the
// row at add time so the ledger survives employee deletion.
func (s *loanService) AddLoan(ownerID string, req AddLoanRequest) (*models.Loan, error) {
	if !isValidISODate(req.Date) {
		return nil, ErrLoanDateFormat
	}

	employee, err := s.employeeRepo.GetByID(ownerID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to validate employee for loan: %w", err)
	}

	loan := &models.Loan{
		OwnerID:      ownerID,
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Amount:       utils.CoerceAmount(req.Amount),
		Date:         req.Date,
		Note:         utils.NewNullString(strings.TrimSpace(req.Note)),
	}

	created, err := s.loanRepo.Create(s.db, loan)
	if err != nil {
		return nil, fmt.Errorf("failed to record loan: %w", err)
	}
	s.hub.Publish(realtime.TopicLoans, ownerID)
	return created, nil
}

func (s *loanService) DeleteLoan(ownerID, id string) error {
	err := s.loanRepo.Delete(s.db, ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrLoanNotFound
		}
		return fmt.Errorf("failed to delete loan: %w", err)
	}
	s.hub.Publish(realtime.TopicLoans, ownerID)
	return nil
}
