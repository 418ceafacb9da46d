package leave

type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=ANNUAL SICK PERSONAL MATERNITY PATERNITY"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
	IsUrgent  bool   `json:"is_urgent"`
}

type ApproveLeaveRequest struct {
	Comment string `json:"comment"`
}

type RejectLeaveRequest struct {
	Comment string `json:"comment" binding:"required"`
}

type LeaveResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	LeaveType      string  `json:"leave_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalDays      int     `json:"total_days"`
	Reason         string  `json:"reason"`
	IsUrgent       bool    `json:"is_urgent"`
	Status         string  `json:"status"`
	ApproverID     *string `json:"approver_id,omitempty"`
	ManagerComment *string `json:"manager_comment,omitempty"`
	AppliedAt      string  `json:"applied_at"`
	ProcessedAt    *string `json:"processed_at,omitempty"`
}

type BalanceEntry struct {
	Allocated int `json:"allocated"`
	Remaining int `json:"remaining"`
	Taken     int `json:"taken"`
}

type BalanceResponse struct {
	EmployeeID      string                  `json:"employee_id"`
	TotalLeaveTaken int                     `json:"total_leave_taken"`
	Balances        map[string]BalanceEntry `json:"balances"`
}
