package booking

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/service"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"
)

var errMissingRoomID = errors.New("roomId query parameter is required")

type Handler struct {
	service service.Booking
}

func New(service service.Booking) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/{roomId}", h.Create)
		r.Get("/", h.GetAllByRoom)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create books a room over the requested dates.
// @Summary Create a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param roomId path string true "room id"
// @Param request body dto.CreateBookingRequest true "booking dates"
// @Success 201 {object} response.Base{data=dto.BookingResponse}
// @Router /v1/bookings/{roomId} [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, constant.RequestParamRoomID)

	var req dto.CreateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, r, err)

		return
	}

	booking, err := h.service.Create(r.Context(), roomID, req)
	if err != nil {
		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, booking)
}

// Get returns a single booking.
// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Param id path string true "booking id"
// @Success 200 {object} response.Base{data=dto.BookingResponse}
// @Router /v1/bookings/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// GetAllByRoom lists the bookings of one room.
// @Summary List bookings of a room
// @Tags bookings
// @Produce json
// @Param roomId query string true "room id"
// @Success 200 {object} response.Base{data=dto.GetBookingsResponse}
// @Router /v1/bookings [get]
func (h *Handler) GetAllByRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get(constant.RequestParamRoomID)
	if roomID == constant.Empty {
		response.WithError(w, r, failure.BadRequest(errMissingRoomID))

		return
	}

	bookings, err := h.service.GetAllByRoom(r.Context(), roomID)
	if err != nil {
		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// Update reschedules a booking.
// @Summary Update a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "booking id"
// @Param request body dto.UpdateBookingRequest true "new dates"
// @Success 200 {object} response.Base{data=dto.BookingResponse}
// @Router /v1/bookings/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, r, err)

		return
	}

	booking, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		response.WithError(w, r, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// Delete cancels a booking.
// @Summary Delete a booking
// @Tags bookings
// @Param id path string true "booking id"
// @Success 204
// @Router /v1/bookings/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, constant.RequestParamID)

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.WithError(w, r, err)

		return
	}

	response.WithNoContent(w)
}
