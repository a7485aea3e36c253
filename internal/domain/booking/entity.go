package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotOwner = errors.New("principal does not own this booking")

// Action is a mutation a principal may attempt on an existing booking.
type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Booking reserves one room for one time slot on behalf of its owner.
// Ownership is by reference: only the owner id is stored, never principal
// data.
type Booking struct {
	id        uuid.UUID
	roomID    string
	ownerID   uuid.UUID
	slot      TimeSlot
	createdAt time.Time
	updatedAt time.Time
}

func NewBooking(roomID string, ownerID uuid.UUID, slot TimeSlot, now time.Time) *Booking {
	return &Booking{
		id:        uuid.New(),
		roomID:    roomID,
		ownerID:   ownerID,
		slot:      slot,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructBooking(id uuid.UUID, roomID string, ownerID uuid.UUID, slot TimeSlot, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		id:        id,
		roomID:    roomID,
		ownerID:   ownerID,
		slot:      slot,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Authorize is the ownership guard: only the owner may mutate a booking,
// whatever the action. The action parameter keeps the contract open for
// role-based rules without touching callers.
func (b *Booking) Authorize(principalID uuid.UUID, _ Action) error {
	if b.ownerID != principalID {
		return ErrNotOwner
	}
	return nil
}

// Reschedule moves the booking to a (possibly different) room and slot.
// Conflict checking against the target room is the ledger's job; the entity
// only records the transition.
func (b *Booking) Reschedule(roomID string, slot TimeSlot, now time.Time) {
	b.roomID = roomID
	b.slot = slot
	b.updatedAt = now
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) RoomID() string       { return b.roomID }
func (b *Booking) OwnerID() uuid.UUID   { return b.ownerID }
func (b *Booking) Slot() TimeSlot       { return b.slot }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
