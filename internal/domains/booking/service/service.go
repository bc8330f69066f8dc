package service

import (
	"context"
	"fmt"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/booking/availability"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/repository"
	roomModel "hotelier/internal/domains/room/model"
	roomRepository "hotelier/internal/domains/room/repository"
	"hotelier/internal/notification"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/lock"
	"hotelier/shared/timezone"
)

const cacheKeyPrefix = model.TableName

// Booking owns the full lifecycle of bookings: creation, rescheduling and
// cancellation, with the room's availability enforced on every write.
type Booking interface {
	Create(ctx context.Context, roomID string, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAllByRoom(ctx context.Context, roomID string) (dto.GetBookingsResponse, error)
}

type bookingServiceImpl struct {
	config   *config.Config
	repo     repository.Booking
	rooms    roomRepository.Room
	cache    cache.RedisCache
	locks    *lock.Keyed
	notifier notification.Notifier
	otel     otel.Otel
}

func New(
	conf *config.Config,
	repo repository.Booking,
	rooms roomRepository.Room,
	redisCache cache.RedisCache,
	locks *lock.Keyed,
	notifier notification.Notifier,
	otl otel.Otel,
) Booking {
	return &bookingServiceImpl{
		config:   conf,
		repo:     repo,
		rooms:    rooms,
		cache:    redisCache,
		locks:    locks,
		notifier: notifier,
		otel:     otl,
	}
}

// Create books the room over the requested interval. The room's lock is held
// across the conflict check and the insert, so of two concurrent overlapping
// requests exactly one succeeds and the other gets a conflict.
func (s *bookingServiceImpl) Create(ctx context.Context, roomID string, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()

	rng, err := req.ToRange()
	if err != nil {
		return dto.BookingResponse{}, failure.BadRequest(err)
	}

	if err = validateRange(rng); err != nil {
		return dto.BookingResponse{}, err
	}

	exists, err := s.rooms.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		scope.TraceError(err)

		return dto.BookingResponse{}, err
	}

	if !exists {
		return dto.BookingResponse{}, roomModel.ErrRoomNotFound
	}

	s.locks.Lock(roomID)
	defer s.locks.Unlock(roomID)

	existing, err := s.bookingsOfRoom(ctx, roomID)
	if err != nil {
		scope.TraceError(err)

		return dto.BookingResponse{}, err
	}

	if availability.HasConflict(existing, rng, constant.Empty) {
		return dto.BookingResponse{}, model.ErrRoomBookedOut
	}

	booking := req.ToModel(roomID, rng)
	if err = s.repo.Insert(ctx, booking); err != nil {
		scope.TraceError(err)

		return dto.BookingResponse{}, err
	}

	s.notifier.Notify(notification.BookingCreated{
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		StartDate: timezone.Format(booking.StartDate, constant.DateOnlyFormat),
		EndDate:   timezone.Format(booking.EndDate, constant.DateOnlyFormat),
	})

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheKeyPrefix)

	response := dto.BookingResponse{}
	response.FromModel(booking)

	return response, nil
}

// Update reschedules the booking. The booking's own interval is excluded
// from the conflict check, so shrinking or shifting within its current span
// always succeeds.
func (s *bookingServiceImpl) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (dto.BookingResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()

	booking, err := s.resolve(ctx, id)
	if err != nil {
		return dto.BookingResponse{}, err
	}

	rng, err := req.ToRange()
	if err != nil {
		return dto.BookingResponse{}, failure.BadRequest(err)
	}

	if err = validateRange(rng); err != nil {
		return dto.BookingResponse{}, err
	}

	s.locks.Lock(booking.RoomID)
	defer s.locks.Unlock(booking.RoomID)

	existing, err := s.bookingsOfRoom(ctx, booking.RoomID)
	if err != nil {
		scope.TraceError(err)

		return dto.BookingResponse{}, err
	}

	if availability.HasConflict(existing, rng, booking.ID) {
		return dto.BookingResponse{}, model.ErrRoomBookedOut
	}

	updatedFields := map[string]any{
		model.FieldStartDate:     rng.Start,
		model.FieldEndDate:       rng.End,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		scope.TraceError(err)

		return dto.BookingResponse{}, err
	}

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheKeyPrefix)

	booking.StartDate = rng.Start
	booking.EndDate = rng.End
	booking.ModifiedAt = timezone.Now()

	response := dto.BookingResponse{}
	response.FromModel(booking)

	return response, nil
}

// Delete cancels the booking. Cancellation frees the interval immediately.
func (s *bookingServiceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()

	if _, err := s.resolve(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		scope.TraceError(err)

		return err
	}

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheKeyPrefix)

	return nil
}

func (s *bookingServiceImpl) Get(ctx context.Context, id string) (dto.BookingResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()

	response := dto.BookingResponse{}

	cacheKey := shared.BuildCacheKey(cacheKeyPrefix, id)
	if err := s.cache.Get(ctx, cacheKey, &response); err == nil {
		return response, nil
	}

	booking, err := s.resolve(ctx, id)
	if err != nil {
		return dto.BookingResponse{}, err
	}

	response.FromModel(booking)

	go func() {
		_ = s.cache.Save(context.WithoutCancel(ctx), cacheKey, response, s.config.Cache.TTL)
	}()

	return response, nil
}

func (s *bookingServiceImpl) GetAllByRoom(ctx context.Context, roomID string) (dto.GetBookingsResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAllByRoom")
	defer scope.End()

	exists, err := s.rooms.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		scope.TraceError(err)

		return dto.GetBookingsResponse{}, err
	}

	if !exists {
		return dto.GetBookingsResponse{}, roomModel.ErrRoomNotFound
	}

	bookings, err := s.bookingsOfRoom(ctx, roomID)
	if err != nil {
		scope.TraceError(err)

		return dto.GetBookingsResponse{}, err
	}

	response := dto.GetBookingsResponse{}
	response.FromModels(bookings)

	return response, nil
}

// resolve loads the booking or returns the not-found failure.
func (s *bookingServiceImpl) resolve(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return model.Booking{}, err
	}

	if booking.ID == constant.Empty {
		return model.Booking{}, fmt.Errorf("%w: %s", model.ErrBookingNotFound, id)
	}

	return booking, nil
}

func (s *bookingServiceImpl) bookingsOfRoom(ctx context.Context, roomID string) ([]model.Booking, error) {
	filter := shared.FilterByID(roomID, model.FieldRoomID, model.TableName)

	return s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
}

// validateRange rejects intervals in the past before it rejects reversed
// intervals; a request that is both past and reversed reports the past date.
func validateRange(rng availability.DateRange) error {
	today := timezone.Today()

	if rng.Start.Before(today) || rng.End.Before(today) {
		return model.ErrDateBeforeNow
	}

	if rng.End.Before(rng.Start) {
		return model.ErrEndBeforeStart
	}

	return nil
}
