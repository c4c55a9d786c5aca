package models

// ScheduleInput is the closed world for one scheduling run: every entity the
// solver may reference. Cross-references between entities are resolved by id
// lookup against these collections.
type ScheduleInput struct {
	Subjects  []Subject     `json:"subjects" validate:"dive"`
	Teachers  []Teacher     `json:"teachers" validate:"dive"`
	Rooms     []Room        `json:"rooms" validate:"dive"`
	Classes   []SchoolClass `json:"classes" validate:"dive"`
	TimeSlots []TimeSlot    `json:"time_slots" validate:"dive"`

	// HeavySubjects optionally lists subject ids for the morning-preference
	// check. Nil falls back to keyword matching on subject names; an empty
	// list disables the check.
	HeavySubjects []string `json:"heavy_subjects,omitempty"`
}

// Normalize fills the optional kind fields with their documented defaults.
// It is applied once at the ingestion boundary so the solver never has to
// special-case empty kinds.
func (in *ScheduleInput) Normalize() {
	for i := range in.Subjects {
		if in.Subjects[i].SubjectType == "" {
			in.Subjects[i].SubjectType = SubjectTypeLecture
		}
	}
	for i := range in.Rooms {
		if in.Rooms[i].RoomType == "" {
			in.Rooms[i].RoomType = RoomTypeClassroom
		}
	}
}
