package usecase

import (
	"roombook/internal/pkg/errs"
	"roombook/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrInvalidToken = errs.New("invalid token")

// TokenValidator resolves a bearer token to the authenticated user ID.
type TokenValidator interface {
	Validate(token string) (uuid.UUID, error)
}

type jwtTokenValidator struct {
	svc *jwt.Service
}

func NewTokenValidator(svc *jwt.Service) TokenValidator {
	return &jwtTokenValidator{svc: svc}
}

func (v *jwtTokenValidator) Validate(token string) (uuid.UUID, error) {
	claims, err := v.svc.ValidateToken(token)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidToken)
	}
	return claims.UserID, nil
}
