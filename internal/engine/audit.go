package engine

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/maelin-io/timetable-api/internal/models"
)

// CheckReferences lists every id cross-reference that does not resolve
// against the input collections. The constraint checks tolerate unresolved
// ids by skipping them, so this pre-flight pass is the only place a stale id
// becomes visible. The result is reported as warnings, never as a failure.
func CheckReferences(entries []models.ScheduleEntry, input models.ScheduleInput) []string {
	subjects := lo.KeyBy(input.Subjects, func(s models.Subject) string { return s.ID })
	teachers := lo.KeyBy(input.Teachers, func(t models.Teacher) string { return t.ID })
	rooms := lo.KeyBy(input.Rooms, func(r models.Room) string { return r.ID })
	classes := lo.KeyBy(input.Classes, func(c models.SchoolClass) string { return c.ID })
	slots := lo.KeyBy(input.TimeSlots, func(ts models.TimeSlot) string { return ts.ID })

	var warnings []string
	seen := make(map[string]bool)
	report := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		if !seen[msg] {
			seen[msg] = true
			warnings = append(warnings, msg)
		}
	}

	for _, t := range input.Teachers {
		for _, subjectID := range t.Subjects {
			if _, ok := subjects[subjectID]; !ok {
				report("teacher %s references unknown subject %s", t.ID, subjectID)
			}
		}
	}
	for _, c := range input.Classes {
		for _, subjectID := range c.RequiredSubjects {
			if _, ok := subjects[subjectID]; !ok {
				report("class %s requires unknown subject %s", c.ID, subjectID)
			}
		}
	}
	for _, e := range entries {
		if _, ok := slots[e.TimeSlotID]; !ok {
			report("entry references unknown time slot %s", e.TimeSlotID)
		}
		if _, ok := teachers[e.TeacherID]; !ok {
			report("entry references unknown teacher %s", e.TeacherID)
		}
		if _, ok := subjects[e.SubjectID]; !ok {
			report("entry references unknown subject %s", e.SubjectID)
		}
		if _, ok := classes[e.ClassID]; !ok {
			report("entry references unknown class %s", e.ClassID)
		}
		if _, ok := rooms[e.RoomID]; !ok {
			report("entry references unknown room %s", e.RoomID)
		}
	}
	return warnings
}

// AuditSubjectHours compares scheduled sessions against each class's weekly
// hour requirements. The builder fails silently when it cannot place enough
// sessions; this audit makes the shortfall visible to callers.
func AuditSubjectHours(entries []models.ScheduleEntry, input models.ScheduleInput) []string {
	subjects := lo.KeyBy(input.Subjects, func(s models.Subject) string { return s.ID })

	scheduled := make(map[string]map[string]int)
	for _, e := range entries {
		if scheduled[e.ClassID] == nil {
			scheduled[e.ClassID] = make(map[string]int)
		}
		scheduled[e.ClassID][e.SubjectID]++
	}

	var warnings []string
	for _, class := range input.Classes {
		for _, subjectID := range class.RequiredSubjects {
			subject, ok := subjects[subjectID]
			if !ok {
				continue
			}
			got := scheduled[class.ID][subjectID]
			if got < subject.HoursPerWeek {
				warnings = append(warnings, fmt.Sprintf(
					"class %s received %d of %d weekly hours for subject %s",
					class.ID, got, subject.HoursPerWeek, subjectID))
			}
		}
	}
	return warnings
}
