package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is written by the lifecycle consumer only; the leave core
// never touches this table.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	LeaveID     uuid.UUID `gorm:"type:uuid;not null"`
	EventType   string    `gorm:"type:varchar(40);not null"`
	Message     string    `gorm:"type:text;not null"`
	ReadAt      *time.Time
	CreatedAt   time.Time
}
