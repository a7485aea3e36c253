package readstore

import (
	"context"
	"errors"
	"time"

	"roombook/internal/infra"
	"roombook/internal/infra/repository"
	"roombook/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jinzhu/copier"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// bookingViewRow mirrors the SELECT column list; copier maps it onto the
// read model by field name.
type bookingViewRow struct {
	ID        uuid.UUID
	RoomID    string
	OwnerID   uuid.UUID
	OwnerName string
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BookingReadStore struct {
	db repository.DBTX
}

func NewBookingReadStore(db repository.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := bookingSelect().Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build find query", err)
	}

	var row bookingViewRow
	err = s.db.QueryRow(ctx, query, args...).Scan(
		&row.ID, &row.RoomID, &row.OwnerID, &row.OwnerName,
		&row.StartTime, &row.EndTime, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return toView(row)
}

func (s *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	builder := bookingSelect()

	if filter.Date != nil {
		dayStart := filter.Date.Truncate(24 * time.Hour)
		builder = builder.Where(sq.And{
			sq.GtOrEq{"b.start_time": dayStart},
			sq.Lt{"b.start_time": dayStart.Add(24 * time.Hour)},
		})
	}
	if filter.RoomID != nil {
		builder = builder.Where(sq.Eq{"b.room_id": *filter.RoomID})
	}
	if filter.OwnerID != nil {
		builder = builder.Where(sq.Eq{"b.owner_id": *filter.OwnerID})
	}

	query, args, err := builder.OrderBy("b.start_time ASC", "b.created_at ASC").ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build list query", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	views := []*queries.BookingView{}
	for rows.Next() {
		var row bookingViewRow
		if err := rows.Scan(
			&row.ID, &row.RoomID, &row.OwnerID, &row.OwnerName,
			&row.StartTime, &row.EndTime, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		view, err := toView(row)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return views, nil
}

func bookingSelect() sq.SelectBuilder {
	return psql.
		Select(
			"b.id", "b.room_id", "b.owner_id", "u.username AS owner_name",
			"b.start_time", "b.end_time", "b.created_at", "b.updated_at",
		).
		From("bookings b").
		Join("users u ON u.id = b.owner_id")
}

func toView(row bookingViewRow) (*queries.BookingView, error) {
	var view queries.BookingView
	if err := copier.Copy(&view, &row); err != nil {
		return nil, infra.WrapRepoErr("failed to map booking row", err)
	}
	view.DurationMinutes = int(row.EndTime.Sub(row.StartTime) / time.Minute)
	return &view, nil
}
