//go:build unit || e2e

package builder

import (
	"time"

	"roombook/internal/domain/user"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	Username     string
	PasswordHash string
	Now          time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Username:     "alice",
		PasswordHash: "$2a$10$examplehashexamplehashexamplehashexampleha",
		Now:          time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *UserBuilder) BuildDomain() (*user.User, error) {
	username, err := user.NewUsername(b.Username)
	if err != nil {
		return nil, err
	}
	return user.NewUser(username, b.PasswordHash, b.Now), nil
}

func (b *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:        uuid.New(),
		Username:  b.Username,
		CreatedAt: b.Now,
	}
}
