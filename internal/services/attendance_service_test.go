package services

import (
	"testing"
	"time"

	"payroll_backend/internal/models"
	"payroll_backend/internal/realtime"
	"payroll_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees []models.Employee
	err       error
}

func (f *fakeEmployeeRepo) Create(_ repositories.SQLExecutor, employee *models.Employee) (*models.Employee, error) {
	return employee, f.err
}

func (f *fakeEmployeeRepo) GetByID(_, id string) (*models.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return &emp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeEmployeeRepo) GetByOwner(_ string, _ *string) ([]models.Employee, error) {
	return f.employees, f.err
}

func (f *fakeEmployeeRepo) Update(_ repositories.SQLExecutor, employee *models.Employee) (*models.Employee, error) {
	return employee, f.err
}

func (f *fakeEmployeeRepo) Delete(_ repositories.SQLExecutor, _, _ string) error {
	return f.err
}

type fakeAttendanceRepo struct {
	records []models.AttendanceRecord
	saved   [][]repositories.AttendanceBatchOp
	saveErr error
}

func (f *fakeAttendanceRepo) GetByOwner(_ string) ([]models.AttendanceRecord, error) {
	return f.records, nil
}

func (f *fakeAttendanceRepo) SaveBatch(ops []repositories.AttendanceBatchOp) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, ops)
	return nil
}

func newAttendanceFixture(employees []models.Employee, records []models.AttendanceRecord) (AttendanceService, *fakeAttendanceRepo) {
	attendanceRepo := &fakeAttendanceRepo{records: records}
	employeeRepo := &fakeEmployeeRepo{employees: employees}
	return NewAttendanceService(attendanceRepo, employeeRepo, realtime.NewHub()), attendanceRepo
}

func TestSaveGridSkipsEmptyNewCells(t *testing.T) {
	svc, repo := newAttendanceFixture([]models.Employee{{ID: "e1", Name: "Asel", DailyWage: 10000}}, nil)

	count, err := svc.SaveGrid("owner", SaveGridRequest{
		Dates:     []string{"2024-05-06", "2024-05-07"},
		Employees: []EmployeeMarks{{EmployeeID: "e1", Days: map[string]DayMarks{}}},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, repo.saved, "an all-empty grid must not touch the store")
}

func TestSaveGridUpdateVersusInsert(t *testing.T) {
	employees := []models.Employee{{ID: "e1", Name: "Asel", DailyWage: 12000}}
	existing := []models.AttendanceRecord{
		{ID: "rec-1", OwnerID: "owner", EmployeeID: "e1", Date: "2024-05-06", Morning: true, Afternoon: true},
	}
	svc, repo := newAttendanceFixture(employees, existing)

	count, err := svc.SaveGrid("owner", SaveGridRequest{
		Dates: []string{"2024-05-06", "2024-05-07", "2024-05-08"},
		Employees: []EmployeeMarks{{
			EmployeeID: "e1",
			Days: map[string]DayMarks{
				// 05-06 exists and is being cleared: update to all-false.
				"2024-05-07": {Morning: true},
			},
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, repo.saved, 1)
	ops := repo.saved[0]
	require.Len(t, ops, 2)

	byDate := map[string]repositories.AttendanceBatchOp{}
	for _, op := range ops {
		byDate[op.Record.Date] = op
	}

	cleared := byDate["2024-05-06"]
	assert.True(t, cleared.Update)
	assert.Equal(t, "rec-1", cleared.Record.ID)
	assert.False(t, cleared.Record.Morning)
	assert.False(t, cleared.Record.Afternoon)

	inserted := byDate["2024-05-07"]
	assert.False(t, inserted.Update)
	assert.True(t, inserted.Record.Morning)
	assert.Equal(t, 12000.0, inserted.Record.DailyWageAtTime)
	assert.Equal(t, "Asel", inserted.Record.EmployeeName)

	_, touched := byDate["2024-05-08"]
	assert.False(t, touched, "unmarked cell without a record must be skipped")
}

func TestSaveGridRejectsOversizedBatch(t *testing.T) {
	svc, repo := newAttendanceFixture([]models.Employee{{ID: "e1", Name: "Asel", DailyWage: 10000}}, nil)

	dates := make([]string, MaxBatchOperations+1)
	marks := make(map[string]DayMarks, len(dates))
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = day.Format(ISODateLayout)
		marks[dates[i]] = DayMarks{Morning: true}
		day = day.AddDate(0, 0, 1)
	}

	_, err := svc.SaveGrid("owner", SaveGridRequest{
		Dates:     dates,
		Employees: []EmployeeMarks{{EmployeeID: "e1", Days: marks}},
	})

	assert.ErrorIs(t, err, ErrBatchTooLarge)
	assert.Empty(t, repo.saved, "an oversized save must not be partially applied")
}

func TestSaveGridUnknownEmployee(t *testing.T) {
	svc, _ := newAttendanceFixture(nil, nil)

	_, err := svc.SaveGrid("owner", SaveGridRequest{
		Dates:     []string{"2024-05-06"},
		Employees: []EmployeeMarks{{EmployeeID: "ghost", Days: map[string]DayMarks{"2024-05-06": {Morning: true}}}},
	})

	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestSaveGridRejectsBadDate(t *testing.T) {
	svc, _ := newAttendanceFixture(nil, nil)

	_, err := svc.SaveGrid("owner", SaveGridRequest{Dates: []string{"06.05.2024"}})
	assert.ErrorIs(t, err, ErrAttendanceDateFormat)
}

func TestGetGridWindowing(t *testing.T) {
	records := []models.AttendanceRecord{
		{ID: "rec-1", EmployeeID: "e1", Date: "2024-05-05", Morning: true},
		{ID: "rec-2", EmployeeID: "e1", Date: "2024-05-06", Morning: true, Afternoon: true},
		{ID: "rec-3", EmployeeID: "e2", Date: "2024-05-13", Afternoon: true},
	}
	svc, _ := newAttendanceFixture(nil, records)

	grid, err := svc.GetGrid("owner", "2024-05-06", "2024-05-12")
	require.NoError(t, err)

	require.Contains(t, grid, "e1")
	cell := grid["e1"]["2024-05-06"]
	require.NotNil(t, cell.RecordID)
	assert.Equal(t, "rec-2", *cell.RecordID)
	assert.True(t, cell.Morning)
	assert.True(t, cell.Afternoon)

	assert.NotContains(t, grid["e1"], "2024-05-05")
	assert.NotContains(t, grid, "e2")

	_, err = svc.GetGrid("owner", "2024-05-12", "2024-05-06")
	assert.ErrorIs(t, err, ErrAttendanceDateRange)
}
