package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a principal that can own bookings. Credentials live here; what a
// user may do to a booking is decided by the booking's own ownership guard.
type User struct {
	id           uuid.UUID
	username     Username
	passwordHash string
	createdAt    time.Time
}

func NewUser(username Username, passwordHash string, now time.Time) *User {
	return &User{
		id:           uuid.New(),
		username:     username,
		passwordHash: passwordHash,
		createdAt:    now,
	}
}

func ReconstructUser(id uuid.UUID, username Username, passwordHash string, createdAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() Username   { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
