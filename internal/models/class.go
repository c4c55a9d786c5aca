package models

// SchoolClass represents a student group and the subjects it must attend.
// RequiredSubjects is expected to hold one entry per subject id.
type SchoolClass struct {
	ID               string   `json:"id" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	NumStudents      int      `json:"num_students" validate:"required,min=1"`
	RequiredSubjects []string `json:"required_subjects"`
}
