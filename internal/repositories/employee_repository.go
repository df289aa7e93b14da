package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"payroll_backend/internal/models"

	"github.com/google/uuid"
)

// EmployeeRepository defines the interface for employee registry database
// operations. Every read and write is scoped to an owner id.
type EmployeeRepository interface {
	Create(executor SQLExecutor, employee *models.Employee) (*models.Employee, error)
	GetByID(ownerID, id string) (*models.Employee, error)
	GetByOwner(ownerID string, searchTerm *string) ([]models.Employee, error)
	Update(executor SQLExecutor, employee *models.Employee) (*models.Employee, error)
	Delete(executor SQLExecutor, ownerID, id string) error
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(executor SQLExecutor, employee *models.Employee) (*models.Employee, error) {
	query := `INSERT INTO employees (id, owner_id, name, gender, phone, daily_wage, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	currentTime := time.Now()
	employee.ID = uuid.NewString()
	employee.CreatedAt = currentTime
	employee.UpdatedAt = currentTime

	_, err := executor.Exec(query,
		employee.ID, employee.OwnerID, employee.Name, employee.Gender,
		employee.Phone, employee.DailyWage, employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: creating employee: %v", ErrDatabaseError, err)
	}
	return employee, nil
}

func scanEmployeeRow(row scanner) (*models.Employee, error) {
	var employee models.Employee
	err := row.Scan(
		&employee.ID, &employee.OwnerID, &employee.Name, &employee.Gender,
		&employee.Phone, &employee.DailyWage, &employee.CreatedAt, &employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning employee: %v", ErrDatabaseError, err)
	}
	return &employee, nil
}

func (r *employeeRepository) GetByID(ownerID, id string) (*models.Employee, error) {
	query := `SELECT id, owner_id, name, gender, phone, daily_wage, created_at, updated_at
	          FROM employees WHERE owner_id = $1 AND id = $2`
	return scanEmployeeRow(r.db.QueryRow(query, ownerID, id))
}

// GetByOwner returns all employees owned by ownerID. No ordering is
// guaranteed by the store; callers sort when they need stable output.
func (r *employeeRepository) GetByOwner(ownerID string, searchTerm *string) ([]models.Employee, error) {
	employees := []models.Employee{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, owner_id, name, gender, phone, daily_wage, created_at, updated_at
	  FROM employees WHERE owner_id = $1`)

	args := []interface{}{ownerID}
	if searchTerm != nil && *searchTerm != "" {
		queryBuilder.WriteString(` AND LOWER(name) LIKE $2`)
		args = append(args, "%"+strings.ToLower(*searchTerm)+"%")
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying employees: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		employee, err := scanEmployeeRow(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *employee)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating employee rows: %v", ErrDatabaseError, err)
	}
	return employees, nil
}

// Update overwrites the mutable fields by id. Last writer wins; there is no
// optimistic-concurrency check.
func (r *employeeRepository) Update(executor SQLExecutor, employee *models.Employee) (*models.Employee, error) {
	query := `UPDATE employees SET name = $1, gender = $2, phone = $3, daily_wage = $4, updated_at = $5
	          WHERE owner_id = $6 AND id = $7
	          RETURNING updated_at`

	employee.UpdatedAt = time.Now()
	err := executor.QueryRow(query,
		employee.Name, employee.Gender, employee.Phone, employee.DailyWage,
		employee.UpdatedAt, employee.OwnerID, employee.ID,
	).Scan(&employee.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating employee %s: %v", ErrDatabaseError, employee.ID, err)
	}
	return employee, nil
}

// Delete removes the employee row only. Attendance and loan records keep
// their denormalized snapshots and are never cascaded.
func (r *employeeRepository) Delete(executor SQLExecutor, ownerID, id string) error {
	result, err := executor.Exec(`DELETE FROM employees WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("%w: deleting employee %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
