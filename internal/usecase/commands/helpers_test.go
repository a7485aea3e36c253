//go:build unit

package commands_test

import (
	"context"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/user"
	"roombook/internal/infra"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

func newTestUser(name string) (*user.User, error) {
	username, err := user.NewUsername(name)
	if err != nil {
		return nil, err
	}
	return user.NewUser(username, "$2a$10$examplehashexamplehashexamplehashexampleha", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)), nil
}

// vanishingUow serves a booking from reads but reports it gone on writes,
// the shape a real database produces when another transaction deletes the
// row between our read and our write. The memstore cannot reproduce this
// because its mutex serializes whole transactions.
type vanishingUow struct {
	entity *booking.Booking
}

func (u *vanishingUow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u)
}

func (u *vanishingUow) Bookings() shared.BookingRepository { return (*vanishingBookings)(u) }
func (u *vanishingUow) Users() shared.UserRepository       { return nil }

type vanishingBookings vanishingUow

func (r *vanishingBookings) LockRoom(context.Context, string) error { return nil }

func (r *vanishingBookings) ListForRoom(context.Context, string) ([]*booking.Booking, error) {
	return []*booking.Booking{r.entity}, nil
}

func (r *vanishingBookings) FindByID(context.Context, uuid.UUID) (*booking.Booking, error) {
	return r.entity, nil
}

func (r *vanishingBookings) Insert(context.Context, *booking.Booking) error { return nil }

func (r *vanishingBookings) Replace(context.Context, *booking.Booking) error {
	return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (r *vanishingBookings) Delete(context.Context, uuid.UUID) error {
	return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}
