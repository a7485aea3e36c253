package response

import (
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	RoomID          string    `json:"room_id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	OwnerName       string    `json:"owner_name"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              view.ID,
		RoomID:          view.RoomID,
		OwnerID:         view.OwnerID,
		OwnerName:       view.OwnerName,
		StartTime:       view.StartTime.Format(booking.TimeFormat),
		EndTime:         view.EndTime.Format(booking.TimeFormat),
		DurationMinutes: view.DurationMinutes,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	result := make([]*BookingResponse, len(views))
	for i, view := range views {
		result[i] = FromBookingView(view)
	}
	return result
}
