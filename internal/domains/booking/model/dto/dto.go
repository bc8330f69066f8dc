package dto

import (
	"fmt"

	"github.com/google/uuid"

	"hotelier/internal/domains/booking/availability"
	"hotelier/internal/domains/booking/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

// Booking dates travel as date-only strings; both bounds are required on
// create and update, even when only one of them changes.
type CreateBookingRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

// ToRange parses the request dates into a closed interval in the
// application's location.
func (c *CreateBookingRequest) ToRange() (availability.DateRange, error) {
	start, err := timezone.ParseDate(c.StartDate, constant.DateOnlyFormat)
	if err != nil {
		return availability.DateRange{}, fmt.Errorf("invalid start date: %w", err)
	}

	end, err := timezone.ParseDate(c.EndDate, constant.DateOnlyFormat)
	if err != nil {
		return availability.DateRange{}, fmt.Errorf("invalid end date: %w", err)
	}

	return availability.DateRange{Start: start, End: end}, nil
}

func (c *CreateBookingRequest) ToModel(roomID string, rng availability.DateRange) model.Booking {
	return model.Booking{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		StartDate: rng.Start,
		EndDate:   rng.End,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type UpdateBookingRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

func (u *UpdateBookingRequest) ToRange() (availability.DateRange, error) {
	req := CreateBookingRequest{StartDate: u.StartDate, EndDate: u.EndDate}

	return req.ToRange()
}

// BookingResponse is the booking's public representation.
type BookingResponse struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(model model.Booking) {
	b.ID = model.ID
	b.RoomID = model.RoomID
	b.StartDate = timezone.Format(model.StartDate, constant.DateOnlyFormat)
	b.EndDate = timezone.Format(model.EndDate, constant.DateOnlyFormat)
	b.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking) {
	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}
