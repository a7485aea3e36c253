package user

import (
	"errors"
	"strings"
)

var ErrInvalidUsername = errors.New("invalid username")

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
)

type Username struct {
	value string
}

func NewUsername(value string) (Username, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < MinUsernameLength || len(trimmed) > MaxUsernameLength {
		return Username{}, ErrInvalidUsername
	}
	return Username{value: trimmed}, nil
}

func (u Username) Value() string {
	return u.value
}
