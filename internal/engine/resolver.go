package engine

import "github.com/maelin-io/timetable-api/internal/models"

// ConflictPair points at two entries (indices into the input sequence,
// First < Second) that collide in the same time slot.
type ConflictPair struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

// FindConflictingEntries reports every unordered pair of entries that share a
// time slot and a teacher, class or room. Pairs are ordered by first index,
// then second.
func FindConflictingEntries(entries []models.ScheduleEntry) []ConflictPair {
	var conflicts []ConflictPair
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if a.TimeSlotID != b.TimeSlotID {
				continue
			}
			if a.TeacherID == b.TeacherID || a.ClassID == b.ClassID || a.RoomID == b.RoomID {
				conflicts = append(conflicts, ConflictPair{First: i, Second: j})
			}
		}
	}
	return conflicts
}

// AutoFixConflicts attempts to repair an externally supplied entry list in a
// single pass. Conflict pairs are computed once up front; for each pair the
// second entry is moved to the first slot (in the input's slot order) where
// its teacher, class and room are all free. Entries with no free slot stay
// where they are and can still surface in a later hard-violation count. The
// input list is never mutated.
func AutoFixConflicts(entries []models.ScheduleEntry, input models.ScheduleInput) []models.ScheduleEntry {
	result := make([]models.ScheduleEntry, len(entries))
	copy(result, entries)

	teacherBooked := bookingSet{}
	classBooked := bookingSet{}
	roomBooked := bookingSet{}
	for _, e := range result {
		teacherBooked.book(e.TeacherID, e.TimeSlotID)
		classBooked.book(e.ClassID, e.TimeSlotID)
		roomBooked.book(e.RoomID, e.TimeSlotID)
	}

	conflicts := FindConflictingEntries(result)

	for _, pair := range conflicts {
		entry := result[pair.Second]
		for _, slot := range input.TimeSlots {
			if slot.ID == entry.TimeSlotID {
				continue
			}
			if teacherBooked.booked(entry.TeacherID, slot.ID) {
				continue
			}
			if classBooked.booked(entry.ClassID, slot.ID) {
				continue
			}
			if roomBooked.booked(entry.RoomID, slot.ID) {
				continue
			}

			teacherBooked.release(entry.TeacherID, entry.TimeSlotID)
			classBooked.release(entry.ClassID, entry.TimeSlotID)
			roomBooked.release(entry.RoomID, entry.TimeSlotID)

			entry.TimeSlotID = slot.ID
			result[pair.Second] = entry

			teacherBooked.book(entry.TeacherID, slot.ID)
			classBooked.book(entry.ClassID, slot.ID)
			roomBooked.book(entry.RoomID, slot.ID)
			break
		}
	}
	return result
}

// ResolveAndScore composes the single-pass repair with scoring.
func ResolveAndScore(entries []models.ScheduleEntry, input models.ScheduleInput) models.Schedule {
	fixed := AutoFixConflicts(entries, input)
	score, violations := ScoreSchedule(fixed, input)
	return models.Schedule{Entries: fixed, Score: score, Violations: violations}
}
