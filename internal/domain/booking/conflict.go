package booking

import "github.com/google/uuid"

// FindConflict scans a room's bookings for one whose slot overlaps slot and
// returns it, or nil. Callers pass the bookings of a single room; bookings in
// other rooms never conflict. excludeID removes a booking's own prior record
// from the comparison set so an update does not conflict with itself; pass
// uuid.Nil to exclude nothing.
//
// Per-room sets stay small (low hundreds at most), so a linear scan is
// sufficient.
func FindConflict(siblings []*Booking, slot TimeSlot, excludeID uuid.UUID) *Booking {
	for _, existing := range siblings {
		if existing.ID() == excludeID {
			continue
		}
		if existing.Slot().Overlaps(slot) {
			return existing
		}
	}
	return nil
}
