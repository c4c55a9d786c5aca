package models

// Teacher represents teaching staff and the subjects they are qualified for.
// AvailableSlots is informational; an empty list means unconstrained.
type Teacher struct {
	ID              string   `json:"id" validate:"required"`
	Name            string   `json:"name" validate:"required"`
	Subjects        []string `json:"subjects"`
	AvailableSlots  []string `json:"available_slots"`
	PreferredDayOff string   `json:"preferred_day_off,omitempty"`
}
