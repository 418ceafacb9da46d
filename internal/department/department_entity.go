package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultMaxConsecutiveDays caps how many working days a single request may
// span unless the department configures its own limit.
const DefaultMaxConsecutiveDays = 15

type Department struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_departments_name"`

	MaxConsecutiveDays int `gorm:"type:int;not null;default:15"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_departments_deleted_at"`
}
