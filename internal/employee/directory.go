package employee

import (
	"context"
	"errors"
	"net/http"

	"go-leave/internal/department"
	"go-leave/internal/shared/apperror"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrEmployeeNotFound = apperror.New(
	apperror.CodeNotFound,
	"employee not found",
	http.StatusNotFound,
)

// Balance is one leave-type counter pair as seen by callers.
type Balance struct {
	Allocated int
	Remaining int
}

// Info is the normalized directory view of an employee. Every reference is a
// plain identifier; callers never see populated object shapes.
type Info struct {
	ID                 string
	FullName           string
	DepartmentID       string
	ManagerID          string
	Role               string
	TotalLeaveTaken    int
	MaxConsecutiveDays int
	Balances           map[string]Balance
}

//go:generate mockgen -source=directory.go -destination=mock/directory_mock.go -package=mock
type Directory interface {
	Lookup(ctx context.Context, employeeID string) (Info, error)
}

type directory struct {
	repo        Repository
	departments department.Repository
	logger      *zap.Logger
}

func NewDirectory(repo Repository, departments department.Repository, logger ...*zap.Logger) Directory {
	l := zap.L().Named("employee.directory")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.directory")
	}
	return &directory{repo: repo, departments: departments, logger: l}
}

func (d *directory) Lookup(ctx context.Context, employeeID string) (Info, error) {
	e, err := d.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Info{}, ErrEmployeeNotFound
		}
		d.logger.Error("directory lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return Info{}, err
	}

	balances, err := d.repo.FindBalances(ctx, employeeID)
	if err != nil {
		d.logger.Error("directory balances lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return Info{}, err
	}

	maxConsecutive := department.DefaultMaxConsecutiveDays
	if dept, err := d.departments.FindByID(ctx, e.DepartmentID.String()); err == nil && dept.MaxConsecutiveDays > 0 {
		maxConsecutive = dept.MaxConsecutiveDays
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		d.logger.Error("directory department lookup failed",
			zap.String("employee_id", employeeID),
			zap.String("department_id", e.DepartmentID.String()),
			zap.Error(err),
		)
		return Info{}, err
	}

	info := Info{
		ID:                 e.ID.String(),
		FullName:           e.FullName,
		DepartmentID:       e.DepartmentID.String(),
		Role:               e.Role,
		TotalLeaveTaken:    e.TotalLeaveTaken,
		MaxConsecutiveDays: maxConsecutive,
		Balances:           make(map[string]Balance, len(balances)),
	}
	if e.ManagerID != nil {
		info.ManagerID = e.ManagerID.String()
	}
	for _, b := range balances {
		info.Balances[b.LeaveType] = Balance{
			Allocated: b.Allocated,
			Remaining: b.Remaining,
		}
	}

	return info, nil
}
