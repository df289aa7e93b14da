package models

import "time"

// User is an account that owns a payroll dataset. Anonymous guest accounts
// have no email or password hash; they still receive their own id and
// therefore their own private records.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        *string   `json:"email,omitempty" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  *string   `json:"display_name,omitempty" db:"display_name"`
	IsAnonymous  bool      `json:"is_anonymous" db:"is_anonymous"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
