package models

import "time"

// Loan is one cash advance handed to an employee. The ledger is append-only
// apart from individual deletes; EmployeeName is captured at add time so the
// row still renders after the employee is gone.
type Loan struct {
	ID           string    `json:"id" db:"id"`
	OwnerID      string    `json:"owner_id" db:"owner_id"`
	EmployeeID   string    `json:"employee_id" db:"employee_id"`
	EmployeeName string    `json:"employee_name" db:"employee_name"`
	Amount       float64   `json:"amount" db:"amount"`
	Date         string    `json:"date" db:"date"` // YYYY-MM-DD
	Note         *string   `json:"note,omitempty" db:"note"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
