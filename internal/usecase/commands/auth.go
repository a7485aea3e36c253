package commands

import (
	"context"

	"roombook/internal/domain/user"
	"roombook/internal/infra"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"
	"roombook/internal/pkg/jwt"
	"roombook/internal/pkg/password"
	"roombook/internal/usecase/queries"
	"roombook/internal/usecase/shared"
)

var (
	ErrInvalidUsername    = errs.New("invalid username")
	ErrUsernameTaken      = errs.New("username already taken")
	ErrInvalidCredentials = errs.New("invalid credentials")
)

type RegisterParams struct {
	Username string
	Password string
}

type LoginParams struct {
	Username string
	Password string
}

type LoginResult struct {
	Token string
	User  queries.UserView
}

type AuthCommands interface {
	Register(ctx context.Context, params RegisterParams) (*queries.UserView, error)
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow       shared.UnitOfWork
	userStore queries.UserReadStore
	jwtSvc    *jwt.Service
	clock     clock.Clock
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	userStore queries.UserReadStore,
	jwtSvc *jwt.Service,
	clk clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		uow:       uow,
		userStore: userStore,
		jwtSvc:    jwtSvc,
		clock:     clk,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, params RegisterParams) (*queries.UserView, error) {
	username, err := user.NewUsername(params.Username)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidUsername)
	}

	hash, err := password.Hash(params.Password)
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	entity := user.NewUser(username, hash, a.clock.Now())

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if insertErr := tx.Users().Insert(ctx, entity); insertErr != nil {
			if infra.IsKind(insertErr, infra.KindDuplicateKey) {
				return ErrUsernameTaken
			}
			return errs.Mark(insertErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return a.userStore.FindByID(ctx, entity.ID())
}

// Login verifies credentials and issues an access token. Unknown username and
// wrong password produce the same error so accounts cannot be enumerated.
func (a *authCommandsImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	view, hash, err := a.userStore.FindByUsername(ctx, params.Username)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if compareErr := password.Compare(hash, params.Password); compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtSvc.GenerateToken(view.ID, view.Username)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{Token: token, User: *view}, nil
}
