// Package memstore is an in-memory implementation of the persistence ports.
// A single mutex serializes transactions, which gives the same per-room
// exclusion the advisory lock provides in Postgres. Used by unit tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/user"
	"roombook/internal/infra"
	"roombook/internal/usecase/queries"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking
	users    map[uuid.UUID]*user.User
}

func NewStore() *Store {
	return &Store{
		bookings: make(map[uuid.UUID]*booking.Booking),
		users:    make(map[uuid.UUID]*user.User),
	}
}

// Within runs fn against a staged copy of the data and publishes the copy
// only when fn succeeds. Holding the mutex for the whole call makes the
// check-then-commit sequence atomic.
func (s *Store) Within(_ context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Entities are cloned into the stage so an in-place mutation (say a
	// reschedule that fails before commit) cannot leak into committed state.
	staged := &txn{
		bookings: make(map[uuid.UUID]*booking.Booking, len(s.bookings)),
		users:    make(map[uuid.UUID]*user.User, len(s.users)),
	}
	for id, b := range s.bookings {
		staged.bookings[id] = cloneBooking(b)
	}
	for id, u := range s.users {
		staged.users[id] = cloneUser(u)
	}

	if err := fn(context.Background(), staged); err != nil {
		return err
	}

	s.bookings = staged.bookings
	s.users = staged.users
	return nil
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.ReconstructBooking(b.ID(), b.RoomID(), b.OwnerID(), b.Slot(), b.CreatedAt(), b.UpdatedAt())
}

func cloneUser(u *user.User) *user.User {
	return user.ReconstructUser(u.ID(), u.Username(), u.PasswordHash(), u.CreatedAt())
}

type txn struct {
	bookings map[uuid.UUID]*booking.Booking
	users    map[uuid.UUID]*user.User
}

func (t *txn) Bookings() shared.BookingRepository { return (*bookingRepo)(t) }
func (t *txn) Users() shared.UserRepository       { return (*userRepo)(t) }

type bookingRepo txn

// LockRoom is a no-op: the store mutex already serializes transactions.
func (r *bookingRepo) LockRoom(context.Context, string) error { return nil }

func (r *bookingRepo) ListForRoom(_ context.Context, roomID string) ([]*booking.Booking, error) {
	var result []*booking.Booking
	for _, b := range r.bookings {
		if b.RoomID() == roomID {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Slot().Start().Before(result[j].Slot().Start())
	})
	return result, nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (r *bookingRepo) Insert(_ context.Context, b *booking.Booking) error {
	r.bookings[b.ID()] = b
	return nil
}

func (r *bookingRepo) Replace(_ context.Context, b *booking.Booking) error {
	if _, ok := r.bookings[b.ID()]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.bookings[b.ID()] = b
	return nil
}

func (r *bookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.bookings[id]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	delete(r.bookings, id)
	return nil
}

type userRepo txn

func (r *userRepo) Insert(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Username().Value() == u.Username().Value() {
			return infra.WrapRepoErr("username already exists", nil, infra.KindDuplicateKey)
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range r.users {
		if u.Username().Value() == username {
			return u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

// Read side. Queries see committed state only.

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return s.toView(b), nil
}

func (s *Store) List(_ context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := []*queries.BookingView{}
	for _, b := range s.bookings {
		if filter.Date != nil {
			dayStart := filter.Date.Truncate(24 * time.Hour)
			start := b.Slot().Start()
			if start.Before(dayStart) || !start.Before(dayStart.Add(24*time.Hour)) {
				continue
			}
		}
		if filter.RoomID != nil && b.RoomID() != *filter.RoomID {
			continue
		}
		if filter.OwnerID != nil && b.OwnerID() != *filter.OwnerID {
			continue
		}
		views = append(views, s.toView(b))
	}
	sort.Slice(views, func(i, j int) bool {
		if !views[i].StartTime.Equal(views[j].StartTime) {
			return views[i].StartTime.Before(views[j].StartTime)
		}
		return views[i].CreatedAt.Before(views[j].CreatedAt)
	})
	return views, nil
}

func (s *Store) UserReads() queries.UserReadStore { return (*userReads)(s) }

type userReads Store

func (s *userReads) FindByID(_ context.Context, id uuid.UUID) (*queries.UserView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return &queries.UserView{ID: u.ID(), Username: u.Username().Value(), CreatedAt: u.CreatedAt()}, nil
}

func (s *userReads) FindByUsername(_ context.Context, username string) (*queries.UserView, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username().Value() == username {
			view := &queries.UserView{ID: u.ID(), Username: u.Username().Value(), CreatedAt: u.CreatedAt()}
			return view, u.PasswordHash(), nil
		}
	}
	return nil, "", infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (s *Store) toView(b *booking.Booking) *queries.BookingView {
	ownerName := ""
	if owner, ok := s.users[b.OwnerID()]; ok {
		ownerName = owner.Username().Value()
	}
	return &queries.BookingView{
		ID:              b.ID(),
		RoomID:          b.RoomID(),
		OwnerID:         b.OwnerID(),
		OwnerName:       ownerName,
		StartTime:       b.Slot().Start(),
		EndTime:         b.Slot().End(),
		DurationMinutes: b.Slot().DurationMinutes(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
}
