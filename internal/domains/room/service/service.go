package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/booking/availability"
	bookingModel "hotelier/internal/domains/booking/model"
	bookingDto "hotelier/internal/domains/booking/model/dto"
	bookingRepository "hotelier/internal/domains/booking/repository"
	"hotelier/internal/domains/room/model"
	"hotelier/internal/domains/room/model/dto"
	"hotelier/internal/domains/room/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
)

const cacheKeyPrefix = model.TableName

// Room manages the room inventory and answers filtered searches.
type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetRoomsResponse, error)
	GetFiltered(ctx context.Context, req dto.FilterRoomsRequest, params gDto.QueryParams) (dto.GetRoomsResponse, error)
	HousekeepingSweep(ctx context.Context) error
}

type roomServiceImpl struct {
	config   *config.Config
	repo     repository.Room
	bookings bookingRepository.Booking
	engine   *availability.Engine
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	conf *config.Config,
	repo repository.Room,
	bookings bookingRepository.Booking,
	engine *availability.Engine,
	redisCache cache.RedisCache,
	otl otel.Otel,
) Room {
	return &roomServiceImpl{
		config:   conf,
		repo:     repo,
		bookings: bookings,
		engine:   engine,
		cache:    redisCache,
		otel:     otl,
	}
}

func (s *roomServiceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()

	room := req.ToModel()
	if err := s.repo.Insert(ctx, room); err != nil {
		scope.TraceError(err)

		return dto.RoomResponse{}, err
	}

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheKeyPrefix)

	response := dto.RoomResponse{}
	response.FromModel(room)

	return response, nil
}

// Update applies a partial update; absent fields keep their stored values.
func (s *roomServiceImpl) Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (dto.RoomResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()

	if _, err := s.resolve(ctx, id); err != nil {
		return dto.RoomResponse{}, err
	}

	updatedFields := shared.TransformFields(req)
	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		scope.TraceError(err)

		return dto.RoomResponse{}, err
	}

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheKeyPrefix)

	room, err := s.resolve(ctx, id)
	if err != nil {
		return dto.RoomResponse{}, err
	}

	return s.toResponse(ctx, room)
}

// Delete removes the room together with all of its bookings.
func (s *roomServiceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()

	if _, err := s.resolve(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeleteWithBookings(ctx, id); err != nil {
		scope.TraceError(err)

		return err
	}

	go func() {
		detached := context.WithoutCancel(ctx)
		shared.InvalidateCaches(detached, s.cache, cacheKeyPrefix)
		shared.InvalidateCaches(detached, s.cache, bookingModel.TableName)
	}()

	return nil
}

func (s *roomServiceImpl) Get(ctx context.Context, id string) (dto.RoomResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()

	response := dto.RoomResponse{}

	cacheKey := shared.BuildCacheKey(cacheKeyPrefix, id)
	if err := s.cache.Get(ctx, cacheKey, &response); err == nil {
		return response, nil
	}

	room, err := s.resolve(ctx, id)
	if err != nil {
		return dto.RoomResponse{}, err
	}

	response, err = s.toResponse(ctx, room)
	if err != nil {
		return dto.RoomResponse{}, err
	}

	go func() {
		_ = s.cache.Save(context.WithoutCancel(ctx), cacheKey, response, s.config.Cache.TTL)
	}()

	return response, nil
}

func (s *roomServiceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetRoomsResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()

	response := dto.GetRoomsResponse{}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheKeyPrefix, params, gDto.FilterGroup{})
	if err := s.cache.Get(ctx, cacheKey, &response); err == nil {
		return response, nil
	}

	rooms, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)

		return dto.GetRoomsResponse{}, err
	}

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)

		return dto.GetRoomsResponse{}, err
	}

	response.FromModels(rooms, total, params.Limit)

	if err = s.embedBookings(ctx, response.Rooms); err != nil {
		return dto.GetRoomsResponse{}, err
	}

	go func() {
		_ = s.cache.Save(context.WithoutCancel(ctx), cacheKey, response, s.config.Cache.TTL)
	}()

	return response, nil
}

// GetFiltered returns the rooms matching every supplied criterion. When both
// dates are present, rooms with an overlapping booking are excluded; with
// either date missing the availability filter is skipped entirely.
func (s *roomServiceImpl) GetFiltered(ctx context.Context, req dto.FilterRoomsRequest, params gDto.QueryParams) (dto.GetRoomsResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetFiltered")
	defer scope.End()

	rng, filterByDates, err := req.DateRange()
	if err != nil {
		return dto.GetRoomsResponse{}, failure.BadRequest(err)
	}

	rooms, err := s.repo.GetAll(ctx, params, req.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)

		return dto.GetRoomsResponse{}, err
	}

	if filterByDates && len(rooms) > 0 {
		ids := make([]string, len(rooms))
		for i, room := range rooms {
			ids[i] = room.ID
		}

		unavailable, err := s.engine.UnavailableRoomIDs(ctx, ids, rng)
		if err != nil {
			scope.TraceError(err)

			return dto.GetRoomsResponse{}, err
		}

		available := rooms[:0]
		for _, room := range rooms {
			if _, blocked := unavailable[room.ID]; !blocked {
				available = append(available, room)
			}
		}

		rooms = available
	}

	response := dto.GetRoomsResponse{}
	response.FromModels(rooms, len(rooms), params.Limit)

	if err = s.embedBookings(ctx, response.Rooms); err != nil {
		return dto.GetRoomsResponse{}, err
	}

	return response, nil
}

// HousekeepingSweep reports the rooms due for cleaning: every room whose
// booking checks out today. Run daily by the housekeeping schedule.
func (s *roomServiceImpl) HousekeepingSweep(ctx context.Context) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".room.HousekeepingSweep")
	defer scope.End()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldEndDate,
				Value:    timezone.Today(),
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
		},
	}

	checkouts, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to list today's checkouts: %w", err)
	}

	for _, booking := range checkouts {
		log.Info().
			Str("room_id", booking.RoomID).
			Str("booking_id", booking.ID).
			Msg("Room checks out today, scheduling housekeeping")
	}

	log.Info().Int("rooms", len(checkouts)).Msg("Housekeeping sweep finished")

	return nil
}

func (s *roomServiceImpl) resolve(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return model.Room{}, err
	}

	if room.ID == constant.Empty {
		return model.Room{}, fmt.Errorf("%w: %s", model.ErrRoomNotFound, id)
	}

	return room, nil
}

func (s *roomServiceImpl) toResponse(ctx context.Context, room model.Room) (dto.RoomResponse, error) {
	response := dto.RoomResponse{}
	response.FromModel(room)

	responses := []dto.RoomResponse{response}
	if err := s.embedBookings(ctx, responses); err != nil {
		return dto.RoomResponse{}, err
	}

	return responses[0], nil
}

// embedBookings loads the bookings of all given rooms in one query and
// attaches them to their rooms.
func (s *roomServiceImpl) embedBookings(ctx context.Context, rooms []dto.RoomResponse) error {
	if len(rooms) == 0 {
		return nil
	}

	ids := make([]string, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldRoomID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    bookingModel.TableName,
			},
		},
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return fmt.Errorf("failed to load bookings of rooms: %w", err)
	}

	byRoom := map[string][]bookingModel.Booking{}
	for _, booking := range bookings {
		byRoom[booking.RoomID] = append(byRoom[booking.RoomID], booking)
	}

	for i := range rooms {
		for _, booking := range byRoom[rooms[i].ID] {
			item := bookingDto.BookingResponse{}
			item.FromModel(booking)

			rooms[i].Bookings = append(rooms[i].Bookings, item)
		}
	}

	return nil
}
