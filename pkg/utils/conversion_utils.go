package utils

import "strconv"

// CoerceAmount parses a free-form amount string into a non-negative number.
// Parse failures and negative inputs coerce to 0 rather than producing an
// error, matching how the attendance and loan forms treat bad input.
func CoerceAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// NewNullString converts a form value into an optional column value: nil
// for the empty string, so the row stores NULL instead of "".
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
