package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"payroll_backend/internal/models"

	"github.com/google/uuid"
)

// LoanRepository defines the interface for loan ledger database operations.
type LoanRepository interface {
	Create(executor SQLExecutor, loan *models.Loan) (*models.Loan, error)
	GetByEmployee(ownerID, employeeID string) ([]models.Loan, error)
	GetByOwner(ownerID string) ([]models.Loan, error)
	Delete(executor SQLExecutor, ownerID, id string) error
}

type loanRepository struct {
	db *sql.DB
}

// NewLoanRepository creates a new instance of LoanRepository.
func NewLoanRepository(db *sql.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(executor SQLExecutor, loan *models.Loan) (*models.Loan, error) {
	query := `INSERT INTO loans (id, owner_id, employee_id, employee_name, amount, date, note, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	loan.ID = uuid.NewString()
	loan.CreatedAt = time.Now()

	_, err := executor.Exec(query,
		loan.ID, loan.OwnerID, loan.EmployeeID, loan.EmployeeName,
		loan.Amount, loan.Date, loan.Note, loan.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: creating loan: %v", ErrDatabaseError, err)
	}
	return loan, nil
}

func (r *loanRepository) queryLoans(query string, args ...interface{}) ([]models.Loan, error) {
	loans := []models.Loan{}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying loans: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var loan models.Loan
		var note sql.NullString
		if err := rows.Scan(
			&loan.ID, &loan.OwnerID, &loan.EmployeeID, &loan.EmployeeName,
			&loan.Amount, &loan.Date, &note, &loan.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning loan: %v", ErrDatabaseError, err)
		}
		if note.Valid {
			loan.Note = &note.String
		}
		loans = append(loans, loan)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating loan rows: %v", ErrDatabaseError, err)
	}
	return loans, nil
}

// GetByEmployee returns one employee's loan history. The query carries no
// ORDER BY: the ledger sorts by date after fetch, like the original client.
func (r *loanRepository) GetByEmployee(ownerID, employeeID string) ([]models.Loan, error) {
	query := `SELECT id, owner_id, employee_id, employee_name, amount, date, note, created_at
	          FROM loans WHERE owner_id = $1 AND employee_id = $2`
	return r.queryLoans(query, ownerID, employeeID)
}

func (r *loanRepository) GetByOwner(ownerID string) ([]models.Loan, error) {
	query := `SELECT id, owner_id, employee_id, employee_name, amount, date, note, created_at
	          FROM loans WHERE owner_id = $1`
	return r.queryLoans(query, ownerID)
}

func (r *loanRepository) Delete(executor SQLExecutor, ownerID, id string) error {
	result, err := executor.Exec(`DELETE FROM loans WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("%w: deleting loan %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
