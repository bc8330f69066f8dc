package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "hotelier/infras/otel/mocks"
	"hotelier/internal/domains/booking/availability"
	bookingMocks "hotelier/internal/domains/booking/mocks"
	"hotelier/internal/domains/booking/model"
	"hotelier/shared/timezone"
)

func day(d int) time.Time {
	return timezone.Date(2026, time.September, d)
}

func rng(start, end int) availability.DateRange {
	return availability.DateRange{Start: day(start), End: day(end)}
}

func booking(id, roomID string, start, end int) model.Booking {
	return model.Booking{
		ID:        id,
		RoomID:    roomID,
		StartDate: day(start),
		EndDate:   day(end),
	}
}

func TestDateRange_Overlaps(t *testing.T) {
	testCases := []struct {
		name     string
		a        availability.DateRange
		b        availability.DateRange
		expected bool
	}{
		{name: "identical intervals", a: rng(10, 12), b: rng(10, 12), expected: true},
		{name: "a ends the day b starts", a: rng(10, 12), b: rng(12, 14), expected: true},
		{name: "a starts the day b ends", a: rng(12, 14), b: rng(10, 12), expected: true},
		{name: "a inside b", a: rng(11, 12), b: rng(10, 14), expected: true},
		{name: "b inside a", a: rng(10, 14), b: rng(11, 12), expected: true},
		{name: "partial overlap at start", a: rng(10, 12), b: rng(11, 14), expected: true},
		{name: "partial overlap at end", a: rng(11, 14), b: rng(10, 12), expected: true},
		{name: "same single day", a: rng(10, 10), b: rng(10, 10), expected: true},
		{name: "single day inside interval", a: rng(11, 11), b: rng(10, 12), expected: true},
		{name: "a strictly before b", a: rng(10, 11), b: rng(12, 14), expected: false},
		{name: "a strictly after b", a: rng(12, 14), b: rng(10, 11), expected: false},
		{name: "adjacent single days", a: rng(10, 10), b: rng(11, 11), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.expected, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []model.Booking{
		booking("b-1", "r-1", 10, 12),
		booking("b-2", "r-1", 15, 17),
	}

	t.Run("no bookings means no conflict", func(t *testing.T) {
		assert.False(t, availability.HasConflict(nil, rng(10, 12), ""))
	})

	t.Run("overlapping booking conflicts", func(t *testing.T) {
		assert.True(t, availability.HasConflict(existing, rng(12, 14), ""))
	})

	t.Run("gap between bookings is free", func(t *testing.T) {
		assert.False(t, availability.HasConflict(existing, rng(13, 14), ""))
	})

	t.Run("excluded booking does not conflict with itself", func(t *testing.T) {
		assert.False(t, availability.HasConflict(existing, rng(11, 13), "b-1"))
	})

	t.Run("exclusion does not hide other bookings", func(t *testing.T) {
		assert.True(t, availability.HasConflict(existing, rng(11, 16), "b-1"))
	})
}

func TestEngine_UnavailableRoomIDs(t *testing.T) {
	t.Run("empty input yields empty output without store access", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := bookingMocks.NewMockBooking(ctrl)
		engine := availability.NewEngine(store, otelMocks.NewOtel())

		unavailable, err := engine.UnavailableRoomIDs(context.Background(), nil, rng(10, 12))

		require.NoError(t, err)
		assert.Empty(t, unavailable)
	})

	t.Run("rooms with overlapping bookings are reported once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := bookingMocks.NewMockBooking(ctrl)
		store.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{
				booking("b-1", "r-1", 10, 12),
				booking("b-2", "r-1", 11, 13),
				booking("b-3", "r-3", 12, 12),
			}, nil)

		engine := availability.NewEngine(store, otelMocks.NewOtel())

		unavailable, err := engine.UnavailableRoomIDs(context.Background(), []string{"r-1", "r-2", "r-3"}, rng(10, 12))

		require.NoError(t, err)
		assert.Len(t, unavailable, 2)
		assert.Contains(t, unavailable, "r-1")
		assert.Contains(t, unavailable, "r-3")
		assert.NotContains(t, unavailable, "r-2")
	})

	t.Run("store errors are propagated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := bookingMocks.NewMockBooking(ctrl)
		store.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection reset"))

		engine := availability.NewEngine(store, otelMocks.NewOtel())

		_, err := engine.UnavailableRoomIDs(context.Background(), []string{"r-1"}, rng(10, 12))

		require.Error(t, err)
	})
}
