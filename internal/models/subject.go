package models

// Subject kinds determine which room kinds are preferred during placement.
const (
	SubjectTypeLecture = "lecture"
	SubjectTypeLab     = "lab"
)

// Subject represents a taught discipline and its weekly hour demand.
type Subject struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	HoursPerWeek int    `json:"hours_per_week" validate:"required,min=1"`
	SubjectType  string `json:"subject_type" validate:"omitempty,oneof=lecture lab"`
}
