package readstore

import (
	"context"
	"errors"

	"roombook/internal/infra"
	"roombook/internal/infra/repository"
	"roombook/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserReadStore struct {
	db repository.DBTX
}

func NewUserReadStore(db repository.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	query, args, err := psql.
		Select("id", "username", "created_at").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build find query", err)
	}

	var view queries.UserView
	err = s.db.QueryRow(ctx, query, args...).Scan(&view.ID, &view.Username, &view.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

func (s *UserReadStore) FindByUsername(ctx context.Context, username string) (*queries.UserView, string, error) {
	query, args, err := psql.
		Select("id", "username", "password_hash", "created_at").
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, "", infra.WrapRepoErr("failed to build find query", err)
	}

	var (
		view queries.UserView
		hash string
	)
	err = s.db.QueryRow(ctx, query, args...).Scan(&view.ID, &view.Username, &hash, &view.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by username", err)
	}
	return &view, hash, nil
}
