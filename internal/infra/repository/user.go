package repository

import (
	"context"
	"errors"
	"time"

	"roombook/internal/domain/user"
	"roombook/internal/infra"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Insert(ctx context.Context, u *user.User) error {
	query, args, err := psql.
		Insert("users").
		Columns("id", "username", "password_hash", "created_at").
		Values(u.ID(), u.Username().Value(), u.PasswordHash(), u.CreatedAt()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build insert query", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return infra.WrapRepoErr("username already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert user", err)
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	query, args, err := psql.
		Select("id", "username", "password_hash", "created_at").
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build find query", err)
	}

	var (
		id           uuid.UUID
		name         string
		passwordHash string
		createdAt    time.Time
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(&id, &name, &passwordHash, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by username", err)
	}

	uname, err := user.NewUsername(name)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored username", err)
	}
	return user.ReconstructUser(id, uname, passwordHash, createdAt), nil
}
