package shared

import (
	"context"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/user"

	"github.com/google/uuid"
)

// UnitOfWork brackets a validate → check-overlap → commit sequence so it is
// atomic with respect to other mutations. Implementations must guarantee
// that two transactions holding the same room lock (BookingRepository.LockRoom)
// cannot interleave between the overlap check and the commit.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Users() UserRepository
}

// BookingRepository is the durable ledger store. All methods participate in
// the enclosing transaction.
type BookingRepository interface {
	// LockRoom serializes mutations of one room's reservation set for the
	// remainder of the transaction. Other rooms are not blocked.
	LockRoom(ctx context.Context, roomID string) error
	ListForRoom(ctx context.Context, roomID string) ([]*booking.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Insert(ctx context.Context, b *booking.Booking) error
	Replace(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Insert(ctx context.Context, u *user.User) error
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}
