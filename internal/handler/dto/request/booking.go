package request

type CreateBookingRequest struct {
	RoomID          string `json:"room_id" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
}

// UpdateBookingRequest fields are all optional; omitted fields keep their
// stored values.
type UpdateBookingRequest struct {
	RoomID          *string `json:"room_id"`
	StartTime       *string `json:"start_time"`
	DurationMinutes *int    `json:"duration_minutes"`
}

type ListBookingsQuery struct {
	Date   string `form:"date"`
	RoomID string `form:"room"`
	Mine   bool   `form:"mine"`
}
