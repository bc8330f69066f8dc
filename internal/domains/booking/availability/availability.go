package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotelier/infras/otel"
	"hotelier/internal/domains/booking/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
)

// DateRange is a closed interval of calendar days. Both bounds are
// midnight-truncated dates in the application's location.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two closed intervals share at least one day.
// Touching boundaries count: a booking ending on a day blocks another one
// starting that same day. Every conflict check in the system goes through
// this predicate.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// HasConflict reports whether any booking in existing overlaps candidate.
// A booking whose id equals excludeID is skipped; updates pass the id of
// the booking being modified so it does not conflict with itself.
// All bookings of the room must be passed in, in any order.
func HasConflict(existing []model.Booking, candidate DateRange, excludeID string) bool {
	for _, booking := range existing {
		if excludeID != "" && booking.ID == excludeID {
			continue
		}

		stored := DateRange{Start: booking.StartDate, End: booking.EndDate}
		if stored.Overlaps(candidate) {
			return true
		}
	}

	return false
}

// BookingStore is the slice of the booking repository the engine reads from.
type BookingStore interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
}

// Engine answers room availability questions against the booking store.
type Engine struct {
	store BookingStore
	otel  otel.Otel
}

func NewEngine(store BookingStore, otl otel.Otel) *Engine {
	return &Engine{
		store: store,
		otel:  otl,
	}
}

// UnavailableRoomIDs returns the distinct ids of the given rooms that have
// at least one booking overlapping rng. Rooms absent from the result are
// available. An empty roomIDs input yields an empty result without touching
// the store; an unconstrained query would report every booked room.
func (e *Engine) UnavailableRoomIDs(ctx context.Context, roomIDs []string, rng DateRange) (map[string]struct{}, error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UnavailableRoomIDs")
	defer scope.End()

	unavailable := map[string]struct{}{}

	if len(roomIDs) == 0 {
		return unavailable, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "range_end",
				Field:    model.FieldStartDate,
				Value:    rng.End,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "range_start",
				Field:    model.FieldEndDate,
				Value:    rng.Start,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
		},
	}

	bookings, err := e.store.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to query overlapping bookings")

		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}

	for _, booking := range bookings {
		unavailable[booking.RoomID] = struct{}{}
	}

	return unavailable, nil
}
