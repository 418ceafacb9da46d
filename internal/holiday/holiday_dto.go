package holiday

type CreateHolidayRequest struct {
	Date        string `json:"date" binding:"required"`
	Name        string `json:"name" binding:"required"`
	HolidayType string `json:"holiday_type" binding:"omitempty,oneof=PUBLIC COMPANY OPTIONAL"`
	IsRecurring bool   `json:"is_recurring"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	HolidayType string `json:"holiday_type"`
	IsRecurring bool   `json:"is_recurring"`
}
