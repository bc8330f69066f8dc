package model

import (
	"hotelier/shared/failure"
	"hotelier/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldRoomSize    = "room_size"
	FieldHasMinibar  = "has_minibar"
)

// Room size labels are an external contract; they go over the wire as-is.
const (
	RoomSizeSingle = "SINGLE"
	RoomSizeDouble = "DOUBLE"
	RoomSizeSuite  = "SUITE"
)

var (
	ErrRoomNotFound = failure.NotFound("room not found")
)

type Room struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	RoomSize    string `db:"room_size"`
	HasMinibar  bool   `db:"has_minibar"`
	model.Metadata
}
