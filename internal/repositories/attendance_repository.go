package repositories

import (
	"database/sql"
	"fmt"

	"payroll_backend/internal/models"

	"github.com/google/uuid"
)

// AttendanceBatchOp is one planned write inside a grid save: an update when
// the record already carries its persisted id, an insert otherwise.
type AttendanceBatchOp struct {
	Record models.AttendanceRecord
	Update bool
}

// AttendanceRepository defines the interface for attendance database
// operations. Reads are scoped by owner only; date-window filtering is a
// caller concern, mirroring the index-free subscription of the original grid.
type AttendanceRepository interface {
	GetByOwner(ownerID string) ([]models.AttendanceRecord, error)
	SaveBatch(ops []AttendanceBatchOp) error
}

type attendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetByOwner(ownerID string) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	query := `SELECT id, owner_id, employee_id, employee_name, daily_wage_at_time, date, morning, afternoon
	          FROM attendance_records WHERE owner_id = $1`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying attendance records: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.AttendanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.OwnerID, &rec.EmployeeID, &rec.EmployeeName,
			&rec.DailyWageAtTime, &rec.Date, &rec.Morning, &rec.Afternoon,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning attendance record: %v", ErrDatabaseError, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating attendance rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}

// SaveBatch executes every operation inside a single transaction: the grid
// save commits fully or not at all, never partially.
func (r *attendanceRepository) SaveBatch(ops []AttendanceBatchOp) error {
	if len(ops) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning attendance batch: %v", ErrDatabaseError, err)
	}

	insertQuery := `INSERT INTO attendance_records
	                  (id, owner_id, employee_id, employee_name, daily_wage_at_time, date, morning, afternoon)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	updateQuery := `UPDATE attendance_records SET
	                  employee_name = $1, daily_wage_at_time = $2, morning = $3, afternoon = $4
	                WHERE owner_id = $5 AND id = $6`

	for _, op := range ops {
		rec := op.Record
		if op.Update {
			result, err := tx.Exec(updateQuery,
				rec.EmployeeName, rec.DailyWageAtTime, rec.Morning, rec.Afternoon,
				rec.OwnerID, rec.ID,
			)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("%w: updating attendance record %s: %v", ErrDatabaseError, rec.ID, err)
			}
			if affected, _ := result.RowsAffected(); affected == 0 {
				tx.Rollback()
				return fmt.Errorf("%w: attendance record %s", ErrNotFound, rec.ID)
			}
		} else {
			id := uuid.NewString()
			if _, err := tx.Exec(insertQuery,
				id, rec.OwnerID, rec.EmployeeID, rec.EmployeeName,
				rec.DailyWageAtTime, rec.Date, rec.Morning, rec.Afternoon,
			); err != nil {
				tx.Rollback()
				return fmt.Errorf("%w: inserting attendance record for %s on %s: %v",
					ErrDatabaseError, rec.EmployeeID, rec.Date, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing attendance batch: %v", ErrDatabaseError, err)
	}
	return nil
}
