//go:build unit || e2e

package builder

import (
	"time"

	"roombook/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingBuilder assembles domain bookings for tests. Defaults are a valid
// one-hour slot in EVEREST.
type BookingBuilder struct {
	RoomID          string
	OwnerID         uuid.UUID
	RawStart        string
	DurationMinutes int
	Now             time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		RoomID:          "EVEREST",
		OwnerID:         uuid.New(),
		RawStart:        "2026-03-14 10:00",
		DurationMinutes: 60,
		Now:             time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *BookingBuilder) WithRoom(roomID string) *BookingBuilder {
	b.RoomID = roomID
	return b
}

func (b *BookingBuilder) WithOwner(ownerID uuid.UUID) *BookingBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *BookingBuilder) WithStart(rawStart string) *BookingBuilder {
	b.RawStart = rawStart
	return b
}

func (b *BookingBuilder) WithDuration(minutes int) *BookingBuilder {
	b.DurationMinutes = minutes
	return b
}

func (b *BookingBuilder) BuildSlot() (booking.TimeSlot, error) {
	return booking.NewTimeSlot(b.RawStart, b.DurationMinutes)
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	slot, err := b.BuildSlot()
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.RoomID, b.OwnerID, slot, b.Now), nil
}
