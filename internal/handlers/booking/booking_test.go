package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	roomModel "hotelier/internal/domains/room/model"
	bookingHandler "hotelier/internal/handlers/booking"
	"hotelier/transport/http/response"
)

// stubService returns canned results per method; the handler tests only care
// about status mapping and body shape.
type stubService struct {
	createErr error
	updateErr error
	deleteErr error
	getErr    error
}

func (s *stubService) Create(_ context.Context, roomID string, _ dto.CreateBookingRequest) (dto.BookingResponse, error) {
	if s.createErr != nil {
		return dto.BookingResponse{}, s.createErr
	}

	return dto.BookingResponse{ID: "b-1", RoomID: roomID}, nil
}

func (s *stubService) Update(_ context.Context, id string, _ dto.UpdateBookingRequest) (dto.BookingResponse, error) {
	if s.updateErr != nil {
		return dto.BookingResponse{}, s.updateErr
	}

	return dto.BookingResponse{ID: id}, nil
}

func (s *stubService) Delete(context.Context, string) error {
	return nil
}

func (s *stubService) Get(_ context.Context, id string) (dto.BookingResponse, error) {
	if s.getErr != nil {
		return dto.BookingResponse{}, s.getErr
	}

	return dto.BookingResponse{ID: id}, nil
}

func (s *stubService) GetAllByRoom(context.Context, string) (dto.GetBookingsResponse, error) {
	return dto.GetBookingsResponse{}, nil
}

func serve(t *testing.T, svc *stubService, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	mux := chi.NewRouter()
	mux.Route("/v1", bookingHandler.New(svc).Router)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.APIError {
	t.Helper()

	var body response.Base

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return *body.Error
}

const validBody = `{"start_date":"2030-01-10","end_date":"2030-01-12"}`

func TestBookingHandler_StatusMapping(t *testing.T) {
	testCases := []struct {
		name     string
		svc      *stubService
		expected int
	}{
		{name: "created", svc: &stubService{}, expected: http.StatusCreated},
		{name: "past date", svc: &stubService{createErr: model.ErrDateBeforeNow}, expected: http.StatusBadRequest},
		{name: "reversed dates", svc: &stubService{createErr: model.ErrEndBeforeStart}, expected: http.StatusBadRequest},
		{name: "conflict", svc: &stubService{createErr: model.ErrRoomBookedOut}, expected: http.StatusConflict},
		{name: "unknown room", svc: &stubService{createErr: roomModel.ErrRoomNotFound}, expected: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, tc.svc, http.MethodPost, "/v1/bookings/r-1", validBody)

			assert.Equal(t, tc.expected, rec.Code)

			if tc.expected >= http.StatusBadRequest {
				apiErr := decodeError(t, rec)
				assert.Equal(t, tc.expected, apiErr.Status)
				assert.Equal(t, "/v1/bookings/r-1", apiErr.Path)
				assert.NotEmpty(t, apiErr.Message)
				assert.NotEmpty(t, apiErr.Timestamp)
			}
		})
	}
}

func TestBookingHandler_Create_RejectsMalformedBody(t *testing.T) {
	rec := serve(t, &stubService{}, http.MethodPost, "/v1/bookings/r-1", `{"start_date":"10.01.2030","end_date":"2030-01-12"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingHandler_Create_RequiresBothDates(t *testing.T) {
	rec := serve(t, &stubService{}, http.MethodPost, "/v1/bookings/r-1", `{"start_date":"2030-01-10"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingHandler_Update_NotFound(t *testing.T) {
	rec := serve(t, &stubService{updateErr: model.ErrBookingNotFound}, http.MethodPut, "/v1/bookings/b-404", validBody)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingHandler_Delete_NoContent(t *testing.T) {
	rec := serve(t, &stubService{}, http.MethodDelete, "/v1/bookings/b-1", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBookingHandler_GetAllByRoom_RequiresRoomID(t *testing.T) {
	rec := serve(t, &stubService{}, http.MethodGet, "/v1/bookings", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
