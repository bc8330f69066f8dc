package model

import (
	"time"

	"hotelier/shared/failure"
	"hotelier/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldRoomID    = "room_id"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
)

// Caller-facing booking failures. Services return these unwrapped or
// wrapped with %w so handlers can map them to status codes.
var (
	ErrDateBeforeNow   = failure.BadRequestFromString("start and/or end date is before today")
	ErrEndBeforeStart  = failure.BadRequestFromString("end date is before start date")
	ErrRoomBookedOut   = failure.Conflict("room is booked out for the requested dates")
	ErrBookingNotFound = failure.NotFound("booking not found")
)

// Booking is a reservation of one room over a closed interval of calendar
// days. StartDate == EndDate is a legal single-day booking. The room owns
// its bookings; deleting the room removes them.
type Booking struct {
	ID        string    `db:"id"`
	RoomID    string    `db:"room_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	model.Metadata
}
