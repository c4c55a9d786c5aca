package engine

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/maelin-io/timetable-api/internal/models"
)

// maxWorkloadImbalance is the tolerated spread between a class's busiest and
// quietest day before the workload-balance soft check fires.
const maxWorkloadImbalance = 2

// defaultHeavyKeywords marks high-cognitive-load subjects by name when no
// explicit heavy-subject list is supplied.
var defaultHeavyKeywords = []string{"math", "science"}

// groupBySlot buckets entries by time slot id. Slot ids are returned in
// first-seen order so every check produces deterministic output.
func groupBySlot(entries []models.ScheduleEntry) ([]string, map[string][]models.ScheduleEntry) {
	order := make([]string, 0, len(entries))
	groups := make(map[string][]models.ScheduleEntry, len(entries))
	for _, e := range entries {
		if _, ok := groups[e.TimeSlotID]; !ok {
			order = append(order, e.TimeSlotID)
		}
		groups[e.TimeSlotID] = append(groups[e.TimeSlotID], e)
	}
	return order, groups
}

// CheckTeacherConflict flags every second and later booking of a teacher
// within one time slot.
func CheckTeacherConflict(entries []models.ScheduleEntry) []string {
	var violations []string
	order, bySlot := groupBySlot(entries)
	for _, slotID := range order {
		seen := make(map[string]bool)
		for _, e := range bySlot[slotID] {
			if seen[e.TeacherID] {
				violations = append(violations, fmt.Sprintf("Teacher %s double-booked in time slot %s", e.TeacherID, slotID))
			} else {
				seen[e.TeacherID] = true
			}
		}
	}
	return violations
}

// CheckClassConflict flags a class attending more than one subject in a slot.
func CheckClassConflict(entries []models.ScheduleEntry) []string {
	var violations []string
	order, bySlot := groupBySlot(entries)
	for _, slotID := range order {
		seen := make(map[string]bool)
		for _, e := range bySlot[slotID] {
			if seen[e.ClassID] {
				violations = append(violations, fmt.Sprintf("Class %s has multiple subjects in time slot %s", e.ClassID, slotID))
			} else {
				seen[e.ClassID] = true
			}
		}
	}
	return violations
}

// CheckRoomConflict flags a room hosting more than one entry in a slot.
func CheckRoomConflict(entries []models.ScheduleEntry) []string {
	var violations []string
	order, bySlot := groupBySlot(entries)
	for _, slotID := range order {
		seen := make(map[string]bool)
		for _, e := range bySlot[slotID] {
			if seen[e.RoomID] {
				violations = append(violations, fmt.Sprintf("Room %s double-booked in time slot %s", e.RoomID, slotID))
			} else {
				seen[e.RoomID] = true
			}
		}
	}
	return violations
}

// CheckRoomCapacity flags entries whose class does not fit the assigned room.
// Entries whose room or class id does not resolve are skipped.
func CheckRoomCapacity(entries []models.ScheduleEntry, input models.ScheduleInput) []string {
	rooms := lo.KeyBy(input.Rooms, func(r models.Room) string { return r.ID })
	classes := lo.KeyBy(input.Classes, func(c models.SchoolClass) string { return c.ID })

	var violations []string
	for _, e := range entries {
		room, roomOK := rooms[e.RoomID]
		class, classOK := classes[e.ClassID]
		if roomOK && classOK && class.NumStudents > room.Capacity {
			violations = append(violations, fmt.Sprintf(
				"Room %s (capacity %d) too small for class %s (%d students)",
				e.RoomID, room.Capacity, e.ClassID, class.NumStudents))
		}
	}
	return violations
}

// CheckAllHardConstraints runs every hard check in its fixed order and
// concatenates the violations. The order is part of the external contract.
func CheckAllHardConstraints(entries []models.ScheduleEntry, input models.ScheduleInput) []string {
	var violations []string
	violations = append(violations, CheckTeacherConflict(entries)...)
	violations = append(violations, CheckClassConflict(entries)...)
	violations = append(violations, CheckRoomConflict(entries)...)
	violations = append(violations, CheckRoomCapacity(entries, input)...)
	return violations
}

// CheckTeacherDayOff flags placements on a teacher's preferred day off.
// Teachers without a declared day off are never flagged.
func CheckTeacherDayOff(entries []models.ScheduleEntry, input models.ScheduleInput) []string {
	teachers := lo.KeyBy(input.Teachers, func(t models.Teacher) string { return t.ID })
	slots := lo.KeyBy(input.TimeSlots, func(ts models.TimeSlot) string { return ts.ID })

	var violations []string
	for _, e := range entries {
		teacher, teacherOK := teachers[e.TeacherID]
		slot, slotOK := slots[e.TimeSlotID]
		if !teacherOK || !slotOK || teacher.PreferredDayOff == "" {
			continue
		}
		if slot.Day == teacher.PreferredDayOff {
			violations = append(violations, fmt.Sprintf(
				"Teacher %s scheduled on preferred day off (%s)", e.TeacherID, slot.Day))
		}
	}
	return violations
}

// CheckMorningPreference flags heavy subjects placed after the third period.
// heavySubjects may list subject ids explicitly; when nil, heavy subjects are
// derived by keyword match on subject names.
func CheckMorningPreference(entries []models.ScheduleEntry, input models.ScheduleInput, heavySubjects []string) []string {
	subjects := lo.KeyBy(input.Subjects, func(s models.Subject) string { return s.ID })
	slots := lo.KeyBy(input.TimeSlots, func(ts models.TimeSlot) string { return ts.ID })

	if heavySubjects == nil {
		for _, s := range input.Subjects {
			name := strings.ToLower(s.Name)
			for _, kw := range defaultHeavyKeywords {
				if strings.Contains(name, kw) {
					heavySubjects = append(heavySubjects, s.ID)
					break
				}
			}
		}
	}
	heavy := lo.SliceToMap(heavySubjects, func(id string) (string, bool) { return id, true })

	var violations []string
	for _, e := range entries {
		if !heavy[e.SubjectID] {
			continue
		}
		slot, ok := slots[e.TimeSlotID]
		if !ok || slot.Period <= 3 {
			continue
		}
		name := e.SubjectID
		if subj, ok := subjects[e.SubjectID]; ok {
			name = subj.Name
		}
		violations = append(violations, fmt.Sprintf(
			"Heavy subject %s scheduled in period %d (after morning) on %s",
			name, slot.Period, slot.Day))
	}
	return violations
}

// CheckWorkloadBalance flags classes whose busiest day exceeds their quietest
// day by more than the tolerated imbalance.
func CheckWorkloadBalance(entries []models.ScheduleEntry, input models.ScheduleInput) []string {
	slots := lo.KeyBy(input.TimeSlots, func(ts models.TimeSlot) string { return ts.ID })

	classOrder := make([]string, 0)
	dayCounts := make(map[string]map[string]int)
	for _, e := range entries {
		slot, ok := slots[e.TimeSlotID]
		if !ok {
			continue
		}
		if dayCounts[e.ClassID] == nil {
			classOrder = append(classOrder, e.ClassID)
			dayCounts[e.ClassID] = make(map[string]int)
		}
		dayCounts[e.ClassID][slot.Day]++
	}

	var violations []string
	for _, classID := range classOrder {
		counts := lo.Values(dayCounts[classID])
		if len(counts) == 0 {
			continue
		}
		maxDaily := lo.Max(counts)
		minDaily := lo.Min(counts)
		if maxDaily-minDaily > maxWorkloadImbalance {
			violations = append(violations, fmt.Sprintf(
				"Class %s has unbalanced workload: max %d - min %d = %d (>%d)",
				classID, maxDaily, minDaily, maxDaily-minDaily, maxWorkloadImbalance))
		}
	}
	return violations
}

// CheckAllSoftConstraints runs every soft check in its fixed order and
// concatenates the violations.
func CheckAllSoftConstraints(entries []models.ScheduleEntry, input models.ScheduleInput) []string {
	var violations []string
	violations = append(violations, CheckTeacherDayOff(entries, input)...)
	violations = append(violations, CheckMorningPreference(entries, input, input.HeavySubjects)...)
	violations = append(violations, CheckWorkloadBalance(entries, input)...)
	return violations
}
