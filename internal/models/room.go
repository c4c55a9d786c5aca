package models

// Room kinds mirror subject kinds for placement preference.
const (
	RoomTypeClassroom = "classroom"
	RoomTypeLab       = "lab"
)

// Room represents a physical room with a seating capacity.
type Room struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
	RoomType string `json:"room_type" validate:"omitempty,oneof=classroom lab"`
}
