//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"roombook/internal/handler/api"
	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"
	"roombook/tests/common/httptest"
	commandsmock "roombook/tests/mock/commands"
	queriesmock "roombook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	// Stand-in for the auth middleware
	authed := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user_id", s.userID)
			h(c)
		}
	}

	s.router.POST("/bookings", authed(s.handler.CreateBooking))
	s.router.GET("/bookings", authed(s.handler.ListBookings))
	s.router.GET("/bookings/:id", authed(s.handler.GetBooking))
	s.router.PUT("/bookings/:id", authed(s.handler.UpdateBooking))
	s.router.DELETE("/bookings/:id", authed(s.handler.DeleteBooking))
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) sampleView() *queries.BookingView {
	return &queries.BookingView{
		ID:              uuid.New(),
		RoomID:          "EVEREST",
		OwnerID:         s.userID,
		OwnerName:       "alice",
		StartTime:       time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		CreatedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	reqBody := map[string]any{
		"room_id":          "EVEREST",
		"start_time":       "2026-03-14 14:00",
		"duration_minutes": 60,
	}
	params := commands.CreateBookingParams{
		RoomID:          "EVEREST",
		RawStart:        "2026-03-14 14:00",
		DurationMinutes: 60,
	}

	s.Run("success: 201 Created with formatted slot", func() {
		view := s.sampleView()
		s.mockCommands.EXPECT().Create(gomock.Any(), s.userID, params).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal("2026-03-14 14:00", response.StartTime)
		s.Equal("2026-03-14 15:00", response.EndTime)
		s.Equal("alice", response.OwnerName)
	})

	s.Run("error: 400 on malformed body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"room_id": "EVEREST"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	commandErrors := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "unknown room is 400", err: commands.ErrUnknownRoom, expectCode: http.StatusBadRequest},
		{name: "bad time format is 400", err: commands.ErrInvalidTimeFormat, expectCode: http.StatusBadRequest},
		{name: "bad granularity is 400", err: commands.ErrInvalidGranularity, expectCode: http.StatusBadRequest},
		{name: "conflict is 409", err: commands.ErrBookingConflict, expectCode: http.StatusConflict},
		{name: "storage failure is 500", err: commands.ErrDatabaseOperationFailed, expectCode: http.StatusInternalServerError},
	}

	for _, tc := range commandErrors {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().Create(gomock.Any(), s.userID, params).Return(nil, tc.err).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	view := s.sampleView()

	s.Run("success: 200 OK", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
	})

	s.Run("error: 400 on malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("success: passes filters through", func() {
		day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
		roomID := "EVEREST"
		expected := queries.BookingFilter{Date: &day, RoomID: &roomID, OwnerID: &s.userID}

		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Eq(expected)).
			Return([]*queries.BookingView{s.sampleView()}, nil).Times(1)

		url := fmt.Sprintf("/bookings?date=%s&room=%s&mine=true", "2026-03-14", "EVEREST")
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("success: empty filter lists everything", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.BookingFilter{}).
			Return([]*queries.BookingView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "")

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})

	s.Run("error: 400 on malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?date=14-03-2026", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestUpdateBooking() {
	view := s.sampleView()
	url := "/bookings/" + view.ID.String()
	newStart := "2026-03-14 16:00"

	s.Run("success: 200 OK on partial update", func() {
		s.mockCommands.EXPECT().
			Update(gomock.Any(), s.userID, view.ID, commands.UpdateBookingParams{RawStart: &newStart}).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"start_time": newStart}, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	})

	commandErrors := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "not found is 404", err: commands.ErrBookingNotFound, expectCode: http.StatusNotFound},
		{name: "foreign booking is 403", err: commands.ErrForbidden, expectCode: http.StatusForbidden},
		{name: "conflict is 409", err: commands.ErrBookingConflict, expectCode: http.StatusConflict},
	}

	for _, tc := range commandErrors {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().
				Update(gomock.Any(), s.userID, view.ID, gomock.Any()).
				Return(nil, tc.err).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"start_time": newStart}, "")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}
}

func (s *BookingHandlerTestSuite) TestDeleteBooking() {
	id := uuid.New()
	url := "/bookings/" + id.String()

	s.Run("success: 204 No Content", func() {
		s.mockCommands.EXPECT().Remove(gomock.Any(), s.userID, id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("error: foreign booking is 403", func() {
		s.mockCommands.EXPECT().Remove(gomock.Any(), s.userID, id).Return(commands.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: missing booking is 404", func() {
		s.mockCommands.EXPECT().Remove(gomock.Any(), s.userID, id).Return(commands.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
