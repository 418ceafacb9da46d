package employee_test

import (
	"context"
	"testing"

	"go-leave/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBalanceRepository_Remaining(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT remaining").
			WithArgs(employeeID, "ANNUAL").
			WillReturnRows(sqlmock.NewRows([]string{"remaining"}).AddRow(7))

		repo := employee.NewBalanceRepository(db)
		remaining, err := repo.Remaining(context.Background(), employeeID, "ANNUAL")
		assert.NoError(t, err)
		assert.Equal(t, 7, remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to sentinel", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT remaining").
			WithArgs(employeeID, "SICK").
			WillReturnRows(sqlmock.NewRows([]string{"remaining"}))

		repo := employee.NewBalanceRepository(db)
		_, err = repo.Remaining(context.Background(), employeeID, "SICK")
		assert.ErrorIs(t, err, employee.ErrBalanceNotFound)
	})
}

func TestBalanceRepository_Debit(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success updates balance and total taken", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE leave_balances").
			WithArgs(3, employeeID, "ANNUAL").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE employees").
			WithArgs(3, employeeID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := employee.NewBalanceRepository(db)
		err = repo.Debit(context.Background(), employeeID, "ANNUAL", 3)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conditional update matching no row means insufficient", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE leave_balances").
			WithArgs(12, employeeID, "ANNUAL").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := employee.NewBalanceRepository(db)
		err = repo.Debit(context.Background(), employeeID, "ANNUAL", 12)
		assert.ErrorIs(t, err, employee.ErrInsufficientRemaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBalanceRepository_Credit(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE leave_balances").
			WithArgs(3, employeeID, "ANNUAL").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE employees").
			WithArgs(3, employeeID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := employee.NewBalanceRepository(db)
		err = repo.Credit(context.Background(), employeeID, "ANNUAL", 3)
		assert.NoError(t, err)
	})

	t.Run("refund past the allocation is rejected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE leave_balances").
			WithArgs(5, employeeID, "ANNUAL").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := employee.NewBalanceRepository(db)
		err = repo.Credit(context.Background(), employeeID, "ANNUAL", 5)
		assert.ErrorIs(t, err, employee.ErrRefundExceedsTaken)
	})
}
