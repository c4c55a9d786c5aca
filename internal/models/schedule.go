package models

import "time"

// ScheduleEntry is a single placement: one subject taught to one class by one
// teacher in one room during one time slot. It is the atomic unit every
// solver component operates on.
type ScheduleEntry struct {
	TimeSlotID string `db:"time_slot_id" json:"time_slot_id" validate:"required"`
	TeacherID  string `db:"teacher_id" json:"teacher_id" validate:"required"`
	SubjectID  string `db:"subject_id" json:"subject_id" validate:"required"`
	ClassID    string `db:"class_id" json:"class_id" validate:"required"`
	RoomID     string `db:"room_id" json:"room_id" validate:"required"`
}

// Schedule is a scored timetable. Violations always lists hard violations
// first, then soft, in the order the checks ran. ID and CreatedAt are set
// when the schedule is persisted; freshly computed schedules leave them zero.
type Schedule struct {
	ID         string          `json:"id,omitempty"`
	Entries    []ScheduleEntry `json:"entries"`
	Score      float64         `json:"score"`
	Violations []string        `json:"violations"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
}

// ScheduleSummary is the listing projection of a stored schedule.
type ScheduleSummary struct {
	ID         string    `db:"id" json:"id"`
	Score      float64   `db:"score" json:"score"`
	EntryCount int       `db:"entry_count" json:"entry_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
