package commands

import (
	"context"
	"errors"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/room"
	"roombook/internal/infra"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"
	"roombook/internal/pkg/patch"
	"roombook/internal/usecase/queries"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUnknownRoom             = errs.New("unknown room")
	ErrInvalidTimeFormat       = errs.New("invalid start time format")
	ErrInvalidGranularity      = errs.New("invalid slot granularity")
	ErrBookingConflict         = errs.New("booking conflict")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrForbidden               = errs.New("forbidden")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingParams struct {
	RoomID          string
	RawStart        string
	DurationMinutes int
}

// UpdateBookingParams carries the target state of an update; nil fields keep
// the booking's current values.
type UpdateBookingParams struct {
	RoomID          *string
	RawStart        *string
	DurationMinutes *int
}

type BookingCommands interface {
	Create(ctx context.Context, ownerID uuid.UUID, params CreateBookingParams) (*queries.BookingView, error)
	Update(ctx context.Context, principalID, bookingID uuid.UUID, params UpdateBookingParams) (*queries.BookingView, error)
	Remove(ctx context.Context, principalID, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	registry *room.Registry
	queries  queries.BookingQueries
	clock    clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	registry *room.Registry,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		registry: registry,
		queries:  bookingQueries,
		clock:    clk,
	}
}

// Create validates the requested slot, checks it against the room's current
// reservations and commits, all inside one transaction holding the room lock.
// Two concurrent creates for overlapping slots resolve as one success and one
// ErrBookingConflict.
func (c *bookingCommandsImpl) Create(ctx context.Context, ownerID uuid.UUID, params CreateBookingParams) (*queries.BookingView, error) {
	if !c.registry.Exists(params.RoomID) {
		return nil, ErrUnknownRoom
	}

	slot, err := normalizeSlot(params.RawStart, params.DurationMinutes)
	if err != nil {
		return nil, err
	}

	entity := booking.NewBooking(params.RoomID, ownerID, slot, c.clock.Now())

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if lockErr := tx.Bookings().LockRoom(ctx, params.RoomID); lockErr != nil {
			return errs.Mark(lockErr, ErrDatabaseOperationFailed)
		}

		siblings, listErr := tx.Bookings().ListForRoom(ctx, params.RoomID)
		if listErr != nil {
			return errs.Mark(listErr, ErrDatabaseOperationFailed)
		}
		if conflict := booking.FindConflict(siblings, slot, uuid.Nil); conflict != nil {
			return ErrBookingConflict
		}

		if insertErr := tx.Bookings().Insert(ctx, entity); insertErr != nil {
			return errs.Mark(insertErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.queries.GetByID(ctx, entity.ID())
}

// Update recomputes the full target room and slot (absent fields default to
// the stored values), re-validates as in Create, and conflict-checks the
// target room with the booking's own record excluded. A room change behaves
// like delete-then-create for conflict purposes.
func (c *bookingCommandsImpl) Update(ctx context.Context, principalID, bookingID uuid.UUID, params UpdateBookingParams) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, findErr := tx.Bookings().FindByID(ctx, bookingID)
		if findErr != nil {
			if infra.IsKind(findErr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(findErr, ErrDatabaseOperationFailed)
		}

		if authErr := entity.Authorize(principalID, booking.ActionUpdate); authErr != nil {
			return ErrForbidden
		}

		roomID := patch.Coalesce(params.RoomID, entity.RoomID())
		rawStart := patch.Coalesce(params.RawStart, entity.Slot().Start().Format(booking.TimeFormat))
		duration := patch.Coalesce(params.DurationMinutes, entity.Slot().DurationMinutes())

		if !c.registry.Exists(roomID) {
			return ErrUnknownRoom
		}
		slot, slotErr := normalizeSlot(rawStart, duration)
		if slotErr != nil {
			return slotErr
		}

		if lockErr := tx.Bookings().LockRoom(ctx, roomID); lockErr != nil {
			return errs.Mark(lockErr, ErrDatabaseOperationFailed)
		}

		siblings, listErr := tx.Bookings().ListForRoom(ctx, roomID)
		if listErr != nil {
			return errs.Mark(listErr, ErrDatabaseOperationFailed)
		}
		if conflict := booking.FindConflict(siblings, slot, entity.ID()); conflict != nil {
			return ErrBookingConflict
		}

		entity.Reschedule(roomID, slot, c.clock.Now())
		if replaceErr := tx.Bookings().Replace(ctx, entity); replaceErr != nil {
			if infra.IsKind(replaceErr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(replaceErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.queries.GetByID(ctx, bookingID)
}

// Remove deletes a booking after the ownership check. Terminal: a removed
// booking cannot be revived, only re-created.
func (c *bookingCommandsImpl) Remove(ctx context.Context, principalID, bookingID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, findErr := tx.Bookings().FindByID(ctx, bookingID)
		if findErr != nil {
			if infra.IsKind(findErr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(findErr, ErrDatabaseOperationFailed)
		}

		if authErr := entity.Authorize(principalID, booking.ActionDelete); authErr != nil {
			return ErrForbidden
		}

		if delErr := tx.Bookings().Delete(ctx, bookingID); delErr != nil {
			if infra.IsKind(delErr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(delErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func normalizeSlot(rawStart string, durationMinutes int) (booking.TimeSlot, error) {
	slot, err := booking.NewTimeSlot(rawStart, durationMinutes)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidTimeFormat):
			return booking.TimeSlot{}, errs.Mark(err, ErrInvalidTimeFormat)
		case errors.Is(err, booking.ErrInvalidGranularity):
			return booking.TimeSlot{}, errs.Mark(err, ErrInvalidGranularity)
		default:
			return booking.TimeSlot{}, err
		}
	}
	return slot, nil
}
