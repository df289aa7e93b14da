package services

import (
	"fmt"
	"testing"

	"payroll_backend/internal/models"
	"payroll_backend/internal/realtime"
	"payroll_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoanRepo struct {
	loans  []models.Loan
	nextID int
}

func (f *fakeLoanRepo) Create(_ repositories.SQLExecutor, loan *models.Loan) (*models.Loan, error) {
	f.nextID++
	stored := *loan
	stored.ID = fmt.Sprintf("loan-%d", f.nextID)
	f.loans = append(f.loans, stored)
	result := stored
	return &result, nil
}

func (f *fakeLoanRepo) GetByEmployee(_, employeeID string) ([]models.Loan, error) {
	var out []models.Loan
	for _, loan := range f.loans {
		if loan.EmployeeID == employeeID {
			out = append(out, loan)
		}
	}
	return out, nil
}

func (f *fakeLoanRepo) GetByOwner(_ string) ([]models.Loan, error) {
	return f.loans, nil
}

func (f *fakeLoanRepo) Delete(_ repositories.SQLExecutor, _, id string) error {
	for i, loan := range f.loans {
		if loan.ID == id {
			f.loans = append(f.loans[:i], f.loans[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func newLoanFixture(employees []models.Employee, loans []models.Loan) (LoanService, *fakeLoanRepo) {
	loanRepo := &fakeLoanRepo{loans: loans}
	employeeRepo := &fakeEmployeeRepo{employees: employees}
	return NewLoanService(loanRepo, employeeRepo, nil, realtime.NewHub()), loanRepo
}

func TestGetLoanHistorySortsNewestFirst(t *testing.T) {
	// Store order is unordered on purpose; the ledger view sorts by the
	// fixed-width ISO date strings after fetch.
	loans := []models.Loan{
		{ID: "l1", EmployeeID: "e1", Amount: 1000, Date: "2024-05-08"},
		{ID: "l2", EmployeeID: "e1", Amount: 2000, Date: "2024-06-01"},
		{ID: "l3", EmployeeID: "e1", Amount: 3000, Date: "2024-04-30"},
		{ID: "l4", EmployeeID: "e2", Amount: 9999, Date: "2024-05-01"},
	}
	svc, _ := newLoanFixture(nil, loans)

	history, err := svc.GetLoanHistory("owner", "e1")
	require.NoError(t, err)

	require.Len(t, history.Loans, 3)
	assert.Equal(t, "l2", history.Loans[0].ID)
	assert.Equal(t, "l1", history.Loans[1].ID)
	assert.Equal(t, "l3", history.Loans[2].ID)
	assert.Equal(t, 6000.0, history.TotalBorrowed, "total covers the loaded history, never other employees")
}

func TestGetLoanHistoryEmpty(t *testing.T) {
	svc, _ := newLoanFixture(nil, nil)

	history, err := svc.GetLoanHistory("owner", "e1")
	require.NoError(t, err)
	assert.Empty(t, history.Loans)
	assert.Equal(t, 0.0, history.TotalBorrowed)
}

func TestAddLoanSnapshotsEmployeeName(t *testing.T) {
	employees := []models.Employee{{ID: "e1", Name: "Asel", DailyWage: 10000}}
	svc, repo := newLoanFixture(employees, nil)

	created, err := svc.AddLoan("owner", AddLoanRequest{
		EmployeeID: "e1",
		Amount:     "15000",
		Date:       "2024-05-08",
		Note:       "  advance  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Asel", created.EmployeeName)
	assert.Equal(t, 15000.0, created.Amount)
	assert.Equal(t, "owner", created.OwnerID)
	require.NotNil(t, created.Note)
	assert.Equal(t, "advance", *created.Note)
	require.Len(t, repo.loans, 1)
}

func TestAddLoanCoercesBadAmounts(t *testing.T) {
	employees := []models.Employee{{ID: "e1", Name: "Asel"}}
	svc, _ := newLoanFixture(employees, nil)

	// Unparseable and negative amounts both record a 0 advance rather
	// than failing the add.
	for _, amount := range []string{"", "abc", "-500"} {
		created, err := svc.AddLoan("owner", AddLoanRequest{EmployeeID: "e1", Amount: amount, Date: "2024-05-08"})
		require.NoError(t, err)
		assert.Equal(t, 0.0, created.Amount)
		assert.Nil(t, created.Note, "blank note stays NULL")
	}
}

func TestAddLoanValidation(t *testing.T) {
	employees := []models.Employee{{ID: "e1", Name: "Asel"}}
	svc, _ := newLoanFixture(employees, nil)

	_, err := svc.AddLoan("owner", AddLoanRequest{EmployeeID: "e1", Amount: "100", Date: "08.05.2024"})
	assert.ErrorIs(t, err, ErrLoanDateFormat)

	_, err = svc.AddLoan("owner", AddLoanRequest{EmployeeID: "ghost", Amount: "100", Date: "2024-05-08"})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestDeleteLoan(t *testing.T) {
	loans := []models.Loan{{ID: "l1", EmployeeID: "e1", Amount: 1000, Date: "2024-05-08"}}
	svc, repo := newLoanFixture(nil, loans)

	require.NoError(t, svc.DeleteLoan("owner", "l1"))
	assert.Empty(t, repo.loans)

	assert.ErrorIs(t, svc.DeleteLoan("owner", "l1"), ErrLoanNotFound)
}
