package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName     string     `gorm:"type:varchar(120);not null"`
	Email        string     `gorm:"type:varchar(120);not null;uniqueIndex:uq_employees_email"`
	DepartmentID uuid.UUID  `gorm:"type:uuid;not null;index:idx_employees_department"`
	ManagerID    *uuid.UUID `gorm:"type:uuid"`
	Role         string     `gorm:"type:varchar(20);not null;default:'employee'"`

	// TotalLeaveTaken increases on approval and decreases on refund only.
	TotalLeaveTaken int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}

// LeaveBalance holds one employee/leave-type counter pair. The conservation
// invariant is allocated = remaining + taken, with remaining never negative.
type LeaveBalance struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveType  string    `gorm:"type:varchar(30);primaryKey"`
	Allocated  int       `gorm:"type:int;not null"`
	Remaining  int       `gorm:"type:int;not null;check:remaining >= 0"`

	UpdatedAt time.Time
}
