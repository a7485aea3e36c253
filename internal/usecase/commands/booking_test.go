//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"roombook/internal/domain/room"
	"roombook/internal/infra/memstore"
	"roombook/internal/pkg/clock"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"
	"roombook/internal/usecase/shared"
	"roombook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	store    *memstore.Store
	clock    *clock.MockClock
	commands commands.BookingCommands
	queries  queries.BookingQueries
	ownerID  uuid.UUID
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.store = memstore.NewStore()
	s.clock = clock.NewMockClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	registry, err := room.NewRegistry([]string{"EVEREST", "K2", "KINABALU"})
	s.Require().NoError(err)

	s.queries = queries.NewBookingQueries(s.store)
	s.commands = commands.NewBookingCommands(s.store, registry, s.queries, s.clock)
	s.ownerID = s.seedUser("alice")
}

func (s *BookingCommandsTestSuite) seedUser(name string) uuid.UUID {
	var id uuid.UUID
	err := s.store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		u, err := newTestUser(name)
		if err != nil {
			return err
		}
		id = u.ID()
		return tx.Users().Insert(ctx, u)
	})
	s.Require().NoError(err)
	return id
}

func (s *BookingCommandsTestSuite) create(roomID, rawStart string, duration int) (*queries.BookingView, error) {
	return s.commands.Create(context.Background(), s.ownerID, commands.CreateBookingParams{
		RoomID:          roomID,
		RawStart:        rawStart,
		DurationMinutes: duration,
	})
}

func (s *BookingCommandsTestSuite) TestCreate() {
	s.Run("books a free slot", func() {
		view, err := s.create("EVEREST", "2026-03-14 14:00", 60)
		s.Require().NoError(err)

		s.Equal("EVEREST", view.RoomID)
		s.Equal(s.ownerID, view.OwnerID)
		s.Equal("alice", view.OwnerName)
		s.Equal(time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC), view.StartTime)
		s.Equal(time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC), view.EndTime)
		s.Equal(60, view.DurationMinutes)
	})

	s.Run("rejects unknown room", func() {
		_, err := s.create("FUJI", "2026-03-14 14:00", 60)
		s.Require().ErrorIs(err, commands.ErrUnknownRoom)
	})

	s.Run("rejects malformed start time", func() {
		_, err := s.create("EVEREST", "14:00 2026-03-14", 60)
		s.Require().ErrorIs(err, commands.ErrInvalidTimeFormat)
	})

	s.Run("rejects off-grid start time without rounding", func() {
		_, err := s.create("EVEREST", "2026-03-14 14:05", 60)
		s.Require().ErrorIs(err, commands.ErrInvalidGranularity)
	})

	s.Run("rejects off-grid duration", func() {
		_, err := s.create("EVEREST", "2026-03-14 14:00", 45)
		s.Require().ErrorIs(err, commands.ErrInvalidGranularity)
	})

	s.Run("rejects overlap in the same room", func() {
		_, err := s.create("EVEREST", "2026-03-10 14:00", 60)
		s.Require().NoError(err)

		_, err = s.create("EVEREST", "2026-03-10 14:30", 60)
		s.Require().ErrorIs(err, commands.ErrBookingConflict)
	})

	s.Run("allows the same slot in another room", func() {
		_, err := s.create("EVEREST", "2026-03-11 14:00", 60)
		s.Require().NoError(err)

		_, err = s.create("K2", "2026-03-11 14:00", 60)
		s.Require().NoError(err)
	})

	s.Run("allows back-to-back slots", func() {
		_, err := s.create("EVEREST", "2026-03-12 10:00", 60)
		s.Require().NoError(err)

		_, err = s.create("EVEREST", "2026-03-12 11:00", 60)
		s.Require().NoError(err)
	})

	s.Run("nothing is persisted when validation fails", func() {
		_, err := s.create("EVEREST", "2026-03-13 14:05", 60)
		s.Require().Error(err)

		views, err := s.queries.List(context.Background(), queries.BookingFilter{})
		s.Require().NoError(err)
		for _, v := range views {
			s.NotEqual(time.Date(2026, 3, 13, 14, 5, 0, 0, time.UTC), v.StartTime)
		}
	})
}

func (s *BookingCommandsTestSuite) TestConcurrentCreate() {
	// Two racing requests for overlapping slots must resolve as exactly one
	// success and one conflict.
	const attempts = 20

	for i := 0; i < attempts; i++ {
		s.SetupTest()

		var wg sync.WaitGroup
		errs := make([]error, 2)

		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errs[0] = s.create("EVEREST", "2026-03-14 14:00", 60)
		}()
		go func() {
			defer wg.Done()
			_, errs[1] = s.create("EVEREST", "2026-03-14 14:30", 60)
		}()
		wg.Wait()

		successes, conflicts := 0, 0
		for _, err := range errs {
			switch {
			case err == nil:
				successes++
			case errors.Is(err, commands.ErrBookingConflict):
				conflicts++
			default:
				s.FailNowf("unexpected error", "attempt %d: %v", i, err)
			}
		}
		s.Equal(1, successes, "attempt %d", i)
		s.Equal(1, conflicts, "attempt %d", i)
	}
}

func (s *BookingCommandsTestSuite) TestUpdate() {
	view, err := s.create("EVEREST", "2026-03-14 14:00", 60)
	s.Require().NoError(err)

	s.Run("partial update keeps omitted fields", func() {
		newStart := "2026-03-14 16:00"
		updated, err := s.commands.Update(context.Background(), s.ownerID, view.ID, commands.UpdateBookingParams{
			RawStart: &newStart,
		})
		s.Require().NoError(err)

		s.Equal("EVEREST", updated.RoomID)
		s.Equal(time.Date(2026, 3, 14, 16, 0, 0, 0, time.UTC), updated.StartTime)
		s.Equal(60, updated.DurationMinutes)
	})

	s.Run("update does not conflict with itself", func() {
		duration := 120
		updated, err := s.commands.Update(context.Background(), s.ownerID, view.ID, commands.UpdateBookingParams{
			DurationMinutes: &duration,
		})
		s.Require().NoError(err)
		s.Equal(120, updated.DurationMinutes)
	})

	s.Run("room change is checked against the target room", func() {
		_, err := s.create("K2", "2026-03-14 16:00", 60)
		s.Require().NoError(err)

		k2 := "K2"
		_, err = s.commands.Update(context.Background(), s.ownerID, view.ID, commands.UpdateBookingParams{
			RoomID: &k2,
		})
		s.Require().ErrorIs(err, commands.ErrBookingConflict)

		kinabalu := "KINABALU"
		updated, err := s.commands.Update(context.Background(), s.ownerID, view.ID, commands.UpdateBookingParams{
			RoomID: &kinabalu,
		})
		s.Require().NoError(err)
		s.Equal("KINABALU", updated.RoomID)
	})

	s.Run("rejects unknown target room", func() {
		fuji := "FUJI"
		_, err := s.commands.Update(context.Background(), s.ownerID, view.ID, commands.UpdateBookingParams{
			RoomID: &fuji,
		})
		s.Require().ErrorIs(err, commands.ErrUnknownRoom)
	})

	s.Run("rejects non-owner", func() {
		stranger := s.seedUser("mallory")
		duration := 30
		_, err := s.commands.Update(context.Background(), stranger, view.ID, commands.UpdateBookingParams{
			DurationMinutes: &duration,
		})
		s.Require().ErrorIs(err, commands.ErrForbidden)
	})

	s.Run("rejects missing booking", func() {
		duration := 30
		_, err := s.commands.Update(context.Background(), s.ownerID, uuid.New(), commands.UpdateBookingParams{
			DurationMinutes: &duration,
		})
		s.Require().ErrorIs(err, commands.ErrBookingNotFound)
	})

	s.Run("failed update leaves the booking unchanged", func() {
		before, err := s.queries.GetByID(context.Background(), view.ID)
		s.Require().NoError(err)

		bad := "2026-03-14 16:07"
		_, err = s.commands.Update(context.Background(), s.ownerID, view.ID, commands.UpdateBookingParams{
			RawStart: &bad,
		})
		s.Require().ErrorIs(err, commands.ErrInvalidGranularity)

		after, err := s.queries.GetByID(context.Background(), view.ID)
		s.Require().NoError(err)
		s.Equal(before, after)
	})
}

func (s *BookingCommandsTestSuite) TestRemove() {
	view, err := s.create("EVEREST", "2026-03-14 14:00", 60)
	s.Require().NoError(err)

	s.Run("rejects non-owner", func() {
		stranger := s.seedUser("mallory")
		err := s.commands.Remove(context.Background(), stranger, view.ID)
		s.Require().ErrorIs(err, commands.ErrForbidden)
	})

	s.Run("owner removes and the slot becomes free", func() {
		err := s.commands.Remove(context.Background(), s.ownerID, view.ID)
		s.Require().NoError(err)

		_, err = s.queries.GetByID(context.Background(), view.ID)
		s.Require().Error(err)

		_, err = s.create("EVEREST", "2026-03-14 14:00", 60)
		s.Require().NoError(err)
	})

	s.Run("removing twice reports not found", func() {
		err := s.commands.Remove(context.Background(), s.ownerID, view.ID)
		s.Require().ErrorIs(err, commands.ErrBookingNotFound)
	})
}

func (s *BookingCommandsTestSuite) TestBookingVanishesMidTransaction() {
	// A concurrent delete can remove the row after our read; the write then
	// reports not-found, which must surface as ErrBookingNotFound rather
	// than a storage failure.
	entity, err := builder.NewBookingBuilder().WithOwner(s.ownerID).BuildDomain()
	s.Require().NoError(err)

	registry, err := room.NewRegistry([]string{"EVEREST", "K2", "KINABALU"})
	s.Require().NoError(err)
	cmds := commands.NewBookingCommands(&vanishingUow{entity: entity}, registry, s.queries, s.clock)

	s.Run("update reports not found", func() {
		duration := 30
		_, err := cmds.Update(context.Background(), s.ownerID, entity.ID(), commands.UpdateBookingParams{
			DurationMinutes: &duration,
		})
		s.Require().ErrorIs(err, commands.ErrBookingNotFound)
	})

	s.Run("remove reports not found", func() {
		err := cmds.Remove(context.Background(), s.ownerID, entity.ID())
		s.Require().ErrorIs(err, commands.ErrBookingNotFound)
	})
}

func (s *BookingCommandsTestSuite) TestListFilters() {
	other := s.seedUser("bob")

	_, err := s.create("EVEREST", "2026-03-14 10:00", 60)
	s.Require().NoError(err)
	_, err = s.create("K2", "2026-03-14 12:00", 60)
	s.Require().NoError(err)
	_, err = s.commands.Create(context.Background(), other, commands.CreateBookingParams{
		RoomID:          "EVEREST",
		RawStart:        "2026-03-15 10:00",
		DurationMinutes: 30,
	})
	s.Require().NoError(err)

	s.Run("unfiltered list is ordered by start time", func() {
		views, err := s.queries.List(context.Background(), queries.BookingFilter{})
		s.Require().NoError(err)
		s.Require().Len(views, 3)
		s.True(views[0].StartTime.Before(views[1].StartTime))
		s.True(views[1].StartTime.Before(views[2].StartTime))
	})

	s.Run("date filter selects one calendar day", func() {
		day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
		views, err := s.queries.List(context.Background(), queries.BookingFilter{Date: &day})
		s.Require().NoError(err)
		s.Len(views, 2)
	})

	s.Run("room filter", func() {
		roomID := "K2"
		views, err := s.queries.List(context.Background(), queries.BookingFilter{RoomID: &roomID})
		s.Require().NoError(err)
		s.Require().Len(views, 1)
		s.Equal("K2", views[0].RoomID)
	})

	s.Run("owner filter", func() {
		views, err := s.queries.List(context.Background(), queries.BookingFilter{OwnerID: &other})
		s.Require().NoError(err)
		s.Require().Len(views, 1)
		s.Equal("bob", views[0].OwnerName)
	})

	s.Run("filters combine as a conjunction", func() {
		day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
		roomID := "EVEREST"
		views, err := s.queries.List(context.Background(), queries.BookingFilter{
			Date:    &day,
			RoomID:  &roomID,
			OwnerID: &s.ownerID,
		})
		s.Require().NoError(err)
		s.Len(views, 1)
	})
}
