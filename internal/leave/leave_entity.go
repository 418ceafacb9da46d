package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"

	// StatusExpired is reserved for a scheduled sweep of stale requests past
	// their date range. No transition reaches it yet.
	StatusExpired = "EXPIRED"
)

const (
	TypeAnnual    = "ANNUAL"
	TypeSick      = "SICK"
	TypePersonal  = "PERSONAL"
	TypeMaternity = "MATERNITY"
	TypePaternity = "PATERNITY"
)

// Leave is one request. TotalDays is fixed at creation and never recomputed;
// a refund on cancellation credits back exactly this amount.
type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`
	IsUrgent  bool      `gorm:"not null;default:false"`

	Status         string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_status"`
	ApproverID     *uuid.UUID `gorm:"type:uuid"`
	ManagerComment *string    `gorm:"type:text"`

	AppliedAt   time.Time `gorm:"not null"`
	ProcessedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}

// durationExempt reports whether the leave type skips the consecutive-day
// cap; maternity and paternity are bounded by their allocation instead.
func durationExempt(leaveType string) bool {
	return leaveType == TypeMaternity || leaveType == TypePaternity
}
