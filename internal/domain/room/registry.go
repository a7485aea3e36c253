package room

import (
	"errors"
	"regexp"
)

var (
	ErrNoRooms         = errors.New("room registry needs at least one room")
	ErrInvalidRoomID   = errors.New("room identifier must be MACRO_CASE")
	ErrDuplicateRoomID = errors.New("duplicate room identifier")
)

// Room identifiers are MACRO_CASE: uppercase letters, digits and underscores.
var roomIDPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// Registry is the fixed set of rooms that can be booked. It is built once
// from configuration at startup and never mutated; provisioning rooms is an
// operational concern, not an API.
type Registry struct {
	ids    []string
	lookup map[string]struct{}
}

func NewRegistry(ids []string) (*Registry, error) {
	if len(ids) == 0 {
		return nil, ErrNoRooms
	}

	r := &Registry{
		ids:    make([]string, 0, len(ids)),
		lookup: make(map[string]struct{}, len(ids)),
	}
	for _, id := range ids {
		if !roomIDPattern.MatchString(id) {
			return nil, ErrInvalidRoomID
		}
		if _, dup := r.lookup[id]; dup {
			return nil, ErrDuplicateRoomID
		}
		r.ids = append(r.ids, id)
		r.lookup[id] = struct{}{}
	}
	return r, nil
}

func (r *Registry) Exists(id string) bool {
	_, ok := r.lookup[id]
	return ok
}

// Rooms returns the identifiers in configuration order.
func (r *Registry) Rooms() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}
