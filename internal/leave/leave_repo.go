package leave

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock

// Repository mixes gorm for plain reads with raw SQL for everything that has
// to join the caller's transaction: record creation, the FOR UPDATE fetch
// that serializes concurrent transitions on one record, and the active-range
// scan behind overlap detection.
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Leave, error)
	FindAllByEmployee(ctx context.Context, employeeID, status string) ([]Leave, error)
	FindAllByDepartment(ctx context.Context, departmentID, status string) ([]Leave, error)
	FindAll(ctx context.Context, status string) ([]Leave, error)
	FindActiveByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	UpdateStatus(ctx context.Context, l *Leave) error
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *repository) querier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}

const leaveColumns = `
	id, employee_id, leave_type, start_date, end_date, total_days,
	reason, is_urgent, status, approver_id, manager_comment,
	applied_at, processed_at
`

func (r *repository) Create(ctx context.Context, l *Leave) error {
	query := `
INSERT INTO leaves (
	id, employee_id, leave_type, start_date, end_date, total_days,
	reason, is_urgent, status, applied_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
`
	_, err := r.querier().ExecContext(
		ctx, query,
		l.ID, l.EmployeeID, l.LeaveType, l.StartDate, l.EndDate, l.TotalDays,
		l.Reason, l.IsUrgent, l.Status, l.AppliedAt,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

// FindByIDForUpdate locks the record row for the rest of the transaction so
// two concurrent transitions on the same record serialize at the database.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Leave, error) {
	query := `SELECT ` + leaveColumns + `
FROM leaves
WHERE id = $1 AND deleted_at IS NULL
FOR UPDATE
`
	row := r.querier().QueryRowContext(ctx, query, id)
	return scanLeave(row)
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID, status string) ([]Leave, error) {
	q := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var leaves []Leave
	err := q.Order("start_date DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByDepartment(ctx context.Context, departmentID, status string) ([]Leave, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.id = leaves.employee_id").
		Where("employees.department_id = ?", departmentID)
	if status != "" {
		q = q.Where("leaves.status = ?", status)
	}
	var leaves []Leave
	err := q.Order("leaves.start_date DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAll(ctx context.Context, status string) ([]Leave, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var leaves []Leave
	err := q.Order("start_date DESC").Find(&leaves).Error
	return leaves, err
}

// FindActiveByEmployee returns the pending and approved requests that block
// a new application. Rejected and cancelled records never conflict.
func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	query := `SELECT ` + leaveColumns + `
FROM leaves
WHERE employee_id = $1
	AND status IN ($2, $3)
	AND deleted_at IS NULL
ORDER BY start_date ASC
`
	rows, err := r.querier().QueryContext(ctx, query, employeeID, StatusPending, StatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []Leave
	for rows.Next() {
		l, err := scanLeaveRows(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, *l)
	}
	return leaves, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, l *Leave) error {
	query := `
UPDATE leaves
SET status = $1, approver_id = $2, manager_comment = $3, processed_at = $4, updated_at = NOW()
WHERE id = $5
`
	res, err := r.querier().ExecContext(
		ctx, query,
		l.Status, l.ApproverID, l.ManagerComment, l.ProcessedAt, l.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLeave(row *sql.Row) (*Leave, error) {
	return scanLeaveRows(row)
}

func scanLeaveRows(row rowScanner) (*Leave, error) {
	var (
		l              Leave
		approverID     sql.NullString
		managerComment sql.NullString
		processedAt    sql.NullTime
	)
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.TotalDays,
		&l.Reason, &l.IsUrgent, &l.Status, &approverID, &managerComment,
		&l.AppliedAt, &processedAt,
	)
	if err != nil {
		return nil, err
	}
	if approverID.Valid {
		id, err := uuid.Parse(approverID.String)
		if err != nil {
			return nil, err
		}
		l.ApproverID = &id
	}
	if managerComment.Valid {
		l.ManagerComment = &managerComment.String
	}
	if processedAt.Valid {
		t := processedAt.Time
		l.ProcessedAt = &t
	}
	return &l, nil
}
