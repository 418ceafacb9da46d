package events

import "time"

// LeaveLifecycleTopic carries every leave state transition. Notification,
// audit and email systems consume it; delivery is best-effort and never part
// of the business transaction.
const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	TypeLeaveSubmitted = "leave.submitted"
	TypeLeaveApproved  = "leave.approved"
	TypeLeaveRejected  = "leave.rejected"
	TypeLeaveCancelled = "leave.cancelled"
)

type LeaveLifecycleEvent struct {
	EventType      string    `json:"event_type"`
	LeaveID        string    `json:"leave_id"`
	EmployeeID     string    `json:"employee_id"`
	ManagerID      string    `json:"manager_id,omitempty"`
	LeaveType      string    `json:"leave_type"`
	TotalDays      int       `json:"total_days"`
	Status         string    `json:"status"`
	ManagerComment string    `json:"manager_comment,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
