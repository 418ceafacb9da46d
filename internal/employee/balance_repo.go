package employee

import (
	"context"
	"database/sql"
	"errors"
)

// Sentinel errors for conditional ledger writes. The leave service decides
// how each one surfaces to the caller.
var (
	ErrInsufficientRemaining = errors.New("insufficient remaining balance")
	ErrRefundExceedsTaken    = errors.New("refund exceeds taken balance")
	ErrBalanceNotFound       = errors.New("leave balance not found")
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock

// BalanceRepository is the per-employee leave ledger. Debit and Credit are
// single conditional UPDATEs, so two concurrent approvals for the same
// employee can never both pass a stale sufficiency check; the losing write
// simply matches zero rows.
type BalanceRepository interface {
	WithTx(tx *sql.Tx) BalanceRepository
	Remaining(ctx context.Context, employeeID, leaveType string) (int, error)
	Debit(ctx context.Context, employeeID, leaveType string, days int) error
	Credit(ctx context.Context, employeeID, leaveType string, days int) error
}

type balanceRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewBalanceRepository(db *sql.DB) BalanceRepository {
	return &balanceRepository{db: db}
}

func (r *balanceRepository) WithTx(tx *sql.Tx) BalanceRepository {
	return &balanceRepository{db: r.db, tx: tx}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *balanceRepository) querier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *balanceRepository) Remaining(ctx context.Context, employeeID, leaveType string) (int, error) {
	query := `
SELECT remaining
FROM leave_balances
WHERE employee_id = $1 AND leave_type = $2
`
	var remaining int
	err := r.querier().QueryRowContext(ctx, query, employeeID, leaveType).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrBalanceNotFound
	}
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// Debit consumes days from the remaining balance and bumps the employee's
// total taken. The remaining >= days guard is part of the statement itself.
func (r *balanceRepository) Debit(ctx context.Context, employeeID, leaveType string, days int) error {
	q := r.querier()

	res, err := q.ExecContext(ctx, `
UPDATE leave_balances
SET remaining = remaining - $1, updated_at = NOW()
WHERE employee_id = $2 AND leave_type = $3 AND remaining >= $1
`, days, employeeID, leaveType)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInsufficientRemaining
	}

	_, err = q.ExecContext(ctx, `
UPDATE employees
SET total_leave_taken = total_leave_taken + $1, updated_at = NOW()
WHERE id = $2
`, days, employeeID)
	return err
}

// Credit reverses a prior Debit with the exact day count recorded at
// approval time. The remaining + days <= allocated guard keeps the
// conservation invariant when a refund is replayed by mistake.
func (r *balanceRepository) Credit(ctx context.Context, employeeID, leaveType string, days int) error {
	q := r.querier()

	res, err := q.ExecContext(ctx, `
UPDATE leave_balances
SET remaining = remaining + $1, updated_at = NOW()
WHERE employee_id = $2 AND leave_type = $3 AND remaining + $1 <= allocated
`, days, employeeID, leaveType)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRefundExceedsTaken
	}

	_, err = q.ExecContext(ctx, `
UPDATE employees
SET total_leave_taken = total_leave_taken - $1, updated_at = NOW()
WHERE id = $2 AND total_leave_taken >= $1
`, days, employeeID)
	return err
}
