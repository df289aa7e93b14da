package models

// AttendanceRecord stores one employee's presence for one calendar day.
// Morning and afternoon each count as half a day. EmployeeName and
// DailyWageAtTime are denormalized snapshots taken when the record is
// written: deleting or editing the employee later must not change what
// historical reports say.
//
// At most one record exists per (owner, employee, date); the save path
// decides insert vs update by looking up the persisted record id.
type AttendanceRecord struct {
	ID              string  `json:"id" db:"id"`
	OwnerID         string  `json:"owner_id" db:"owner_id"`
	EmployeeID      string  `json:"employee_id" db:"employee_id"`
	EmployeeName    string  `json:"employee_name" db:"employee_name"`
	DailyWageAtTime float64 `json:"daily_wage_at_time" db:"daily_wage_at_time"`
	Date            string  `json:"date" db:"date"` // YYYY-MM-DD
	Morning         bool    `json:"morning" db:"morning"`
	Afternoon       bool    `json:"afternoon" db:"afternoon"`
}

// AttendanceCell is one grid cell as served to clients: the persisted record
// id when one exists, plus the two half-day flags.
type AttendanceCell struct {
	RecordID  *string `json:"record_id,omitempty"`
	Morning   bool    `json:"morning"`
	Afternoon bool    `json:"afternoon"`
}

// AttendanceGrid maps employee id -> date -> cell for a visible date window.
type AttendanceGrid map[string]map[string]AttendanceCell
