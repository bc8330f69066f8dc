package dto

import (
	"fmt"

	"github.com/google/uuid"

	"hotelier/internal/domains/booking/availability"
	bookingDto "hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/room/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateRoomRequest struct {
	Name        string `json:"name"        validate:"required,alpha,min=4,max=20"`
	Description string `json:"description" validate:"omitempty"`
	RoomSize    string `json:"room_size"   validate:"required,oneof=SINGLE DOUBLE SUITE"`
	HasMinibar  *bool  `json:"has_minibar" validate:"required"`
}

func (c *CreateRoomRequest) ToModel() model.Room {
	return model.Room{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		RoomSize:    c.RoomSize,
		HasMinibar:  *c.HasMinibar,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

// UpdateRoomRequest carries a partial update; only supplied fields
// overwrite the stored room.
type UpdateRoomRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,alpha,min=4,max=20"`
	Description string `db:"description" json:"description" validate:"omitempty"`
	RoomSize    string `db:"room_size"   json:"room_size"   validate:"omitempty,oneof=SINGLE DOUBLE SUITE"`
	HasMinibar  *bool  `db:"has_minibar" json:"has_minibar" validate:"omitempty"`
}

// FilterRoomsRequest holds the optional filter criteria; nil/empty
// criteria do not narrow the result. Availability filtering applies only
// when both dates are present.
type FilterRoomsRequest struct {
	IDs         []string
	Name        string
	Description string
	StartDate   string
	EndDate     string
	HasMinibar  *bool
	RoomSize    string
}

// DateRange returns the availability window, or ok=false when either bound
// is missing (a one-sided range means no date filter).
func (f *FilterRoomsRequest) DateRange() (availability.DateRange, bool, error) {
	if f.StartDate == "" || f.EndDate == "" {
		return availability.DateRange{}, false, nil
	}

	start, err := timezone.ParseDate(f.StartDate, constant.DateOnlyFormat)
	if err != nil {
		return availability.DateRange{}, false, fmt.Errorf("invalid start date: %w", err)
	}

	end, err := timezone.ParseDate(f.EndDate, constant.DateOnlyFormat)
	if err != nil {
		return availability.DateRange{}, false, fmt.Errorf("invalid end date: %w", err)
	}

	return availability.DateRange{Start: start, End: end}, true, nil
}

// ToFilterGroup renders the store-level criteria; the date range is
// handled separately by the availability engine.
func (f *FilterRoomsRequest) ToFilterGroup() gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if len(f.IDs) > 0 {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldID,
			Value:    f.IDs,
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		})
	}

	if f.Name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Value:    f.Name,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if f.Description != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDescription,
			Value:    f.Description,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if f.HasMinibar != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldHasMinibar,
			Value:    *f.HasMinibar,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if f.RoomSize != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomSize,
			Value:    f.RoomSize,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return filterGroup
}

// RoomResponse is the room's public representation, bookings included.
type RoomResponse struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	RoomSize    string                       `json:"room_size"`
	HasMinibar  bool                         `json:"has_minibar"`
	Bookings    []bookingDto.BookingResponse `json:"bookings"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.RoomSize = model.RoomSize
	r.HasMinibar = model.HasMinibar
	r.Bookings = []bookingDto.BookingResponse{}
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
