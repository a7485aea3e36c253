//go:build unit

package booking_test

import (
	"testing"
	"time"

	"roombook/internal/domain/booking"
	"roombook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	owner := uuid.New()
	b, err := builder.NewBookingBuilder().WithOwner(owner).BuildDomain()
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.Equal(t, "EVEREST", b.RoomID())
	assert.Equal(t, owner, b.OwnerID())
	assert.Equal(t, b.CreatedAt(), b.UpdatedAt())
}

func TestBookingAuthorize(t *testing.T) {
	owner := uuid.New()
	b, err := builder.NewBookingBuilder().WithOwner(owner).BuildDomain()
	require.NoError(t, err)

	t.Run("owner may update and delete", func(t *testing.T) {
		assert.NoError(t, b.Authorize(owner, booking.ActionUpdate))
		assert.NoError(t, b.Authorize(owner, booking.ActionDelete))
	})

	t.Run("non-owner is rejected for every action", func(t *testing.T) {
		stranger := uuid.New()
		assert.ErrorIs(t, b.Authorize(stranger, booking.ActionUpdate), booking.ErrNotOwner)
		assert.ErrorIs(t, b.Authorize(stranger, booking.ActionDelete), booking.ErrNotOwner)
	})

	t.Run("nil principal is rejected", func(t *testing.T) {
		assert.ErrorIs(t, b.Authorize(uuid.Nil, booking.ActionDelete), booking.ErrNotOwner)
	})
}

func TestBookingReschedule(t *testing.T) {
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)

	newSlot, err := booking.NewTimeSlot("2026-03-15 09:00", 30)
	require.NoError(t, err)
	later := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	b.Reschedule("K2", newSlot, later)

	assert.Equal(t, "K2", b.RoomID())
	assert.Equal(t, newSlot, b.Slot())
	assert.Equal(t, later, b.UpdatedAt())
	assert.True(t, b.CreatedAt().Before(b.UpdatedAt()))
}
