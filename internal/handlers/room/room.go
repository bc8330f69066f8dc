package room

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hotelier/internal/domains/room/model/dto"
	"hotelier/internal/domains/room/service"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"
)

type Handler struct {
	service service.Room
}

func New(service service.Room) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.GetAll)
		r.Get("/filter", h.GetFiltered)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create creates a new room.
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "room payload"
// @Success 201 {object} response.Base{data=dto.RoomResponse}
// @Router /v1/rooms [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRoomRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, r, err)

		return
	}

	room, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, room)
}

// Get returns a single room with its bookings.
// @Summary Get a room
// @Tags rooms
// @Produce json
// @Param id path string true "room id"
// @Success 200 {object} response.Base{data=dto.RoomResponse}
// @Router /v1/rooms/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, constant.RequestParamID)

	room, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// GetAll returns the room inventory, paginated.
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Success 200 {object} response.Base{data=dto.GetRoomsResponse}
// @Router /v1/rooms [get]
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	rooms, err := h.service.GetAll(r.Context(), params)
	if err != nil {
		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetFiltered returns rooms matching every supplied criterion; rooms booked
// over the requested dates are excluded when both dates are given.
// @Summary Filter rooms
// @Tags rooms
// @Produce json
// @Param ids query string false "comma-separated room ids"
// @Param name query string false "name substring"
// @Param description query string false "description substring"
// @Param startDate query string false "availability window start (YYYY-MM-DD)"
// @Param endDate query string false "availability window end (YYYY-MM-DD)"
// @Param hasMinibar query bool false "minibar presence"
// @Param roomSize query string false "SINGLE, DOUBLE or SUITE"
// @Success 200 {object} response.Base{data=dto.GetRoomsResponse}
// @Router /v1/rooms/filter [get]
func (h *Handler) GetFiltered(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := dto.FilterRoomsRequest{
		Name:        query.Get("name"),
		Description: query.Get("description"),
		StartDate:   query.Get("startDate"),
		EndDate:     query.Get("endDate"),
		HasMinibar:  shared.ConvertStringToBool(query.Get("hasMinibar")),
		RoomSize:    query.Get("roomSize"),
	}

	if ids := query.Get("ids"); ids != constant.Empty {
		req.IDs = strings.Split(ids, ",")
	}

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	rooms, err := h.service.GetFiltered(r.Context(), req, params)
	if err != nil {
		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// Update applies a partial update to a room.
// @Summary Update a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path string true "room id"
// @Param request body dto.UpdateRoomRequest true "fields to update"
// @Success 200 {object} response.Base{data=dto.RoomResponse}
// @Router /v1/rooms/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateRoomRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, r, err)

		return
	}

	room, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// Delete removes a room and all of its bookings.
// @Summary Delete a room
// @Tags rooms
// @Param id path string true "room id"
// @Success 204
// @Router /v1/rooms/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, constant.RequestParamID)

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.WithError(w, r, err)

		return
	}

	response.WithNoContent(w)
}
