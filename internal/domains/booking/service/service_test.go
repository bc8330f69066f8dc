package service_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	otelMocks "hotelier/infras/otel/mocks"
	bookingMocks "hotelier/internal/domains/booking/mocks"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/repository"
	"hotelier/internal/domains/booking/service"
	roomMocks "hotelier/internal/domains/room/mocks"
	roomModel "hotelier/internal/domains/room/model"
	"hotelier/internal/notification"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/lock"
	"hotelier/shared/timezone"
)

// quietCache satisfies the cache without remembering anything; reads always
// miss so every test exercises the repository path.
type quietCache struct{}

func (quietCache) Save(context.Context, string, any, int) error { return nil }
func (quietCache) Get(context.Context, string, any) error       { return cache.CacheNil }
func (quietCache) Delete(context.Context, string) error         { return nil }
func (quietCache) Clear(context.Context, string) error          { return nil }

type capturingNotifier struct {
	mu     sync.Mutex
	events []notification.BookingCreated
}

func (n *capturingNotifier) Notify(event notification.BookingCreated) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.events = append(n.events, event)
}

func (n *capturingNotifier) Shutdown() {}

func (n *capturingNotifier) captured() []notification.BookingCreated {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]notification.BookingCreated(nil), n.events...)
}

func futureDate(days int) string {
	return timezone.Format(timezone.Today().AddDate(0, 0, days), constant.DateOnlyFormat)
}

func futureBooking(id, roomID string, startDays, endDays int) model.Booking {
	return model.Booking{
		ID:        id,
		RoomID:    roomID,
		StartDate: timezone.Today().AddDate(0, 0, startDays),
		EndDate:   timezone.Today().AddDate(0, 0, endDays),
	}
}

type fixture struct {
	bookings *bookingMocks.MockBooking
	rooms    *roomMocks.MockRoom
	notifier *capturingNotifier
	service  service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	bookings := bookingMocks.NewMockBooking(ctrl)
	rooms := roomMocks.NewMockRoom(ctrl)
	notifier := &capturingNotifier{}

	svc := service.New(
		&config.Config{},
		bookings,
		rooms,
		quietCache{},
		lock.NewKeyed(),
		notifier,
		otelMocks.NewOtel(),
	)

	return fixture{
		bookings: bookings,
		rooms:    rooms,
		notifier: notifier,
		service:  svc,
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("books a free room and notifies", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.bookings.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		req := dto.CreateBookingRequest{StartDate: futureDate(1), EndDate: futureDate(3)}

		resp, err := f.service.Create(context.Background(), "r-1", req)

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "r-1", resp.RoomID)
		assert.Equal(t, futureDate(1), resp.StartDate)
		assert.Equal(t, futureDate(3), resp.EndDate)

		events := f.notifier.captured()
		require.Len(t, events, 1)
		assert.Equal(t, resp.ID, events[0].BookingID)
	})

	t.Run("rejects unknown room", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		req := dto.CreateBookingRequest{StartDate: futureDate(1), EndDate: futureDate(3)}

		_, err := f.service.Create(context.Background(), "missing", req)

		require.ErrorIs(t, err, roomModel.ErrRoomNotFound)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("rejects overlap with existing booking", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{futureBooking("b-1", "r-1", 2, 4)}, nil)

		req := dto.CreateBookingRequest{StartDate: futureDate(4), EndDate: futureDate(6)}

		_, err := f.service.Create(context.Background(), "r-1", req)

		require.ErrorIs(t, err, model.ErrRoomBookedOut)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Empty(t, f.notifier.captured())
	})

	t.Run("rejects past dates", func(t *testing.T) {
		f := newFixture(t)

		req := dto.CreateBookingRequest{StartDate: futureDate(-1), EndDate: futureDate(2)}

		_, err := f.service.Create(context.Background(), "r-1", req)

		require.ErrorIs(t, err, model.ErrDateBeforeNow)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("past date wins over reversed order", func(t *testing.T) {
		f := newFixture(t)

		req := dto.CreateBookingRequest{StartDate: futureDate(2), EndDate: futureDate(-1)}

		_, err := f.service.Create(context.Background(), "r-1", req)

		require.ErrorIs(t, err, model.ErrDateBeforeNow)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		f := newFixture(t)

		req := dto.CreateBookingRequest{StartDate: futureDate(5), EndDate: futureDate(3)}

		_, err := f.service.Create(context.Background(), "r-1", req)

		require.ErrorIs(t, err, model.ErrEndBeforeStart)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("allows single day booking", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.bookings.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		req := dto.CreateBookingRequest{StartDate: futureDate(1), EndDate: futureDate(1)}

		_, err := f.service.Create(context.Background(), "r-1", req)

		require.NoError(t, err)
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("reschedules within own span", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(futureBooking("b-1", "r-1", 1, 5), nil)
		f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{futureBooking("b-1", "r-1", 1, 5)}, nil)
		f.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		req := dto.UpdateBookingRequest{StartDate: futureDate(2), EndDate: futureDate(4)}

		resp, err := f.service.Update(context.Background(), "b-1", req)

		require.NoError(t, err)
		assert.Equal(t, futureDate(2), resp.StartDate)
		assert.Equal(t, futureDate(4), resp.EndDate)
	})

	t.Run("rejects overlap with another booking", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(futureBooking("b-1", "r-1", 1, 2), nil)
		f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{
				futureBooking("b-1", "r-1", 1, 2),
				futureBooking("b-2", "r-1", 4, 6),
			}, nil)

		req := dto.UpdateBookingRequest{StartDate: futureDate(1), EndDate: futureDate(4)}

		_, err := f.service.Update(context.Background(), "b-1", req)

		require.ErrorIs(t, err, model.ErrRoomBookedOut)
	})

	t.Run("rejects unknown booking", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		req := dto.UpdateBookingRequest{StartDate: futureDate(1), EndDate: futureDate(3)}

		_, err := f.service.Update(context.Background(), "missing", req)

		require.ErrorIs(t, err, model.ErrBookingNotFound)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown booking wins over illegal dates", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		req := dto.UpdateBookingRequest{StartDate: futureDate(-2), EndDate: futureDate(-4)}

		_, err := f.service.Update(context.Background(), "missing", req)

		require.ErrorIs(t, err, model.ErrBookingNotFound)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("rejects past dates for an existing booking", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(futureBooking("b-1", "r-1", 1, 3), nil)

		req := dto.UpdateBookingRequest{StartDate: futureDate(-2), EndDate: futureDate(2)}

		_, err := f.service.Update(context.Background(), "b-1", req)

		require.ErrorIs(t, err, model.ErrDateBeforeNow)
	})
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("cancels an existing booking", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(futureBooking("b-1", "r-1", 1, 3), nil)
		f.bookings.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.service.Delete(context.Background(), "b-1"))
	})

	t.Run("rejects unknown booking", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.service.Delete(context.Background(), "missing")

		require.ErrorIs(t, err, model.ErrBookingNotFound)
	})
}

// memoryBookingRepo is a store-shaped fake for the concurrency test; gomock
// cannot express "whatever was inserted so far".
type memoryBookingRepo struct {
	mu       sync.Mutex
	bookings []model.Booking
}

func (m *memoryBookingRepo) Insert(_ context.Context, booking model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Window in which the other goroutine could slip in were the room not
	// locked.
	time.Sleep(5 * time.Millisecond)

	m.bookings = append(m.bookings, booking)

	return nil
}

func (m *memoryBookingRepo) Get(context.Context, gDto.FilterGroup, ...string) (model.Booking, error) {
	return model.Booking{}, nil
}

func (m *memoryBookingRepo) GetAll(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]model.Booking(nil), m.bookings...), nil
}

func (m *memoryBookingRepo) Exist(context.Context, gDto.FilterGroup) (bool, error) {
	return true, nil
}

func (m *memoryBookingRepo) Count(context.Context, gDto.FilterGroup) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.bookings), nil
}

func (m *memoryBookingRepo) Update(context.Context, map[string]any, gDto.FilterGroup) error {
	return nil
}

func (m *memoryBookingRepo) Delete(context.Context, gDto.FilterGroup) error {
	return nil
}

var _ repository.Booking = (*memoryBookingRepo)(nil)

func TestBookingService_ConcurrentOverlap(t *testing.T) {
	ctrl := gomock.NewController(t)
	rooms := roomMocks.NewMockRoom(ctrl)
	rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

	repo := &memoryBookingRepo{}

	svc := service.New(
		&config.Config{},
		repo,
		rooms,
		quietCache{},
		lock.NewKeyed(),
		&capturingNotifier{},
		otelMocks.NewOtel(),
	)

	req := dto.CreateBookingRequest{StartDate: futureDate(1), EndDate: futureDate(3)}

	var wg sync.WaitGroup

	results := make(chan error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.Create(context.Background(), "r-1", req)
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	var successes, conflicts int

	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, model.ErrRoomBookedOut):
			conflicts++
		}
	}

	assert.Equal(t, 1, successes, "exactly one of two overlapping requests may succeed")
	assert.Equal(t, 1, conflicts, "the loser must observe a conflict")

	stored, err := repo.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
