package holiday

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypePublic   = "PUBLIC"
	TypeCompany  = "COMPANY"
	TypeOptional = "OPTIONAL"
)

// Holiday is a non-working calendar date. Recurring holidays repeat on the
// same month/day every year.
type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date        time.Time `gorm:"type:date;not null;index:idx_holidays_date"`
	Name        string    `gorm:"type:varchar(100);not null"`
	HolidayType string    `gorm:"type:varchar(20);not null;default:'PUBLIC'"`
	IsRecurring bool      `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
