package engine

import (
	"math/rand"

	"github.com/samber/lo"

	"github.com/maelin-io/timetable-api/internal/models"
)

// BuildBaseSchedule produces a first-pass assignment with a randomized greedy
// scan: classes in input order, each class's subjects in declared order, time
// slots freshly shuffled per subject. Placements never violate the hard
// double-booking or capacity rules because the booking sets gate every
// commit. The heuristic does not backtrack; when no slot fits, the subject
// ends the run with fewer sessions than its weekly requirement (see
// AuditSubjectHours for surfacing that shortfall).
func BuildBaseSchedule(rng *rand.Rand, input models.ScheduleInput) []models.ScheduleEntry {
	subjects := lo.KeyBy(input.Subjects, func(s models.Subject) string { return s.ID })

	teachersBySubject := make(map[string][]string)
	for _, t := range input.Teachers {
		for _, subjectID := range t.Subjects {
			teachersBySubject[subjectID] = append(teachersBySubject[subjectID], t.ID)
		}
	}

	teacherBooked := bookingSet{}
	classBooked := bookingSet{}
	roomBooked := bookingSet{}

	var entries []models.ScheduleEntry
	for _, class := range input.Classes {
		for _, subjectID := range class.RequiredSubjects {
			subject, ok := subjects[subjectID]
			if !ok {
				continue
			}
			hoursNeeded := subject.HoursPerWeek
			assigned := 0

			shuffled := make([]models.TimeSlot, len(input.TimeSlots))
			copy(shuffled, input.TimeSlots)
			rng.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})

			for _, slot := range shuffled {
				if assigned >= hoursNeeded {
					break
				}
				if classBooked.booked(class.ID, slot.ID) {
					continue
				}

				available := lo.Filter(teachersBySubject[subjectID], func(teacherID string, _ int) bool {
					return !teacherBooked.booked(teacherID, slot.ID)
				})
				if len(available) == 0 {
					continue
				}

				suitable := freeRooms(input.Rooms, class, slot.ID, roomBooked, subject.SubjectType)
				if len(suitable) == 0 {
					// Kind match is a preference, not a hard rule: fall back
					// to any free room that fits the class.
					suitable = freeRooms(input.Rooms, class, slot.ID, roomBooked, "")
				}
				if len(suitable) == 0 {
					continue
				}

				teacherID := available[rng.Intn(len(available))]
				room := suitable[rng.Intn(len(suitable))]

				entries = append(entries, models.ScheduleEntry{
					TimeSlotID: slot.ID,
					TeacherID:  teacherID,
					SubjectID:  subjectID,
					ClassID:    class.ID,
					RoomID:     room.ID,
				})
				teacherBooked.book(teacherID, slot.ID)
				classBooked.book(class.ID, slot.ID)
				roomBooked.book(room.ID, slot.ID)
				assigned++
			}
		}
	}
	return entries
}

// freeRooms lists rooms that fit the class and are free in the slot. A
// non-empty kind additionally requires a matching room kind.
func freeRooms(rooms []models.Room, class models.SchoolClass, slotID string, booked bookingSet, kind string) []models.Room {
	return lo.Filter(rooms, func(r models.Room, _ int) bool {
		if r.Capacity < class.NumStudents {
			return false
		}
		if kind != "" && r.RoomType != kind {
			return false
		}
		return !booked.booked(r.ID, slotID)
	})
}
