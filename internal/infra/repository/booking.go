package repository

import (
	"context"
	"errors"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type bookingRow struct {
	ID        uuid.UUID
	RoomID    string
	OwnerID   uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// LockRoom takes a transaction-scoped advisory lock keyed on the room ID.
// Advisory locks cover the empty-room case, where row locks have nothing to
// attach to.
func (r *BookingRepository) LockRoom(ctx context.Context, roomID string) error {
	if _, err := r.db.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", roomID); err != nil {
		return infra.WrapRepoErr("failed to lock room", err)
	}
	return nil
}

func (r *BookingRepository) ListForRoom(ctx context.Context, roomID string) ([]*booking.Booking, error) {
	query, args, err := psql.
		Select("id", "room_id", "owner_id", "start_time", "end_time", "created_at", "updated_at").
		From("bookings").
		Where(sq.Eq{"room_id": roomID}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings for room", err)
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		var row bookingRow
		if err := rows.Scan(&row.ID, &row.RoomID, &row.OwnerID, &row.StartTime, &row.EndTime, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, toEntity(row))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query, args, err := psql.
		Select("id", "room_id", "owner_id", "start_time", "end_time", "created_at", "updated_at").
		From("bookings").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build find query", err)
	}

	var row bookingRow
	err = r.db.QueryRow(ctx, query, args...).
		Scan(&row.ID, &row.RoomID, &row.OwnerID, &row.StartTime, &row.EndTime, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return toEntity(row), nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	query, args, err := psql.
		Insert("bookings").
		Columns("id", "room_id", "owner_id", "start_time", "end_time", "created_at", "updated_at").
		Values(b.ID(), b.RoomID(), b.OwnerID(), b.Slot().Start(), b.Slot().End(), b.CreatedAt(), b.UpdatedAt()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build insert query", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

func (r *BookingRepository) Replace(ctx context.Context, b *booking.Booking) error {
	query, args, err := psql.
		Update("bookings").
		Set("room_id", b.RoomID()).
		Set("start_time", b.Slot().Start()).
		Set("end_time", b.Slot().End()).
		Set("updated_at", b.UpdatedAt()).
		Where(sq.Eq{"id": b.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build update query", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.
		Delete("bookings").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build delete query", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func toEntity(row bookingRow) *booking.Booking {
	slot := booking.SlotFromRange(row.StartTime, row.EndTime)
	return booking.ReconstructBooking(row.ID, row.RoomID, row.OwnerID, slot, row.CreatedAt, row.UpdatedAt)
}
