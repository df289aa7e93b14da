package models

import "time"

// Gender values accepted for an employee record.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Employee is a worker registered by an owner account. DailyWage is the
// current wage in whole currency units; attendance records snapshot it at
// recording time, so changing it never rewrites history.
type Employee struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	Gender    string    `json:"gender" db:"gender"`
	Phone     string    `json:"phone" db:"phone"`
	DailyWage float64   `json:"daily_wage" db:"daily_wage"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
