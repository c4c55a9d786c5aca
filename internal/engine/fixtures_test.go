package engine

import (
	"fmt"
	"strings"

	"github.com/maelin-io/timetable-api/internal/models"
)

func sampleInput() models.ScheduleInput {
	input := models.ScheduleInput{
		Subjects: []models.Subject{
			{ID: "math", Name: "Mathematics", HoursPerWeek: 3},
			{ID: "sci", Name: "Science", HoursPerWeek: 2},
			{ID: "eng", Name: "English", HoursPerWeek: 2, SubjectType: models.SubjectTypeLecture},
			{ID: "cs", Name: "Computer Science", HoursPerWeek: 1, SubjectType: models.SubjectTypeLab},
		},
		Teachers: []models.Teacher{
			{ID: "t1", Name: "Mr. Smith", Subjects: []string{"math", "sci"}},
			{ID: "t2", Name: "Ms. Johnson", Subjects: []string{"eng"}},
			{ID: "t3", Name: "Dr. Lee", Subjects: []string{"cs", "math"}, PreferredDayOff: "Friday"},
		},
		Rooms: []models.Room{
			{ID: "r1", Name: "Room 101", Capacity: 40},
			{ID: "r2", Name: "Room 102", Capacity: 35},
			{ID: "r3", Name: "Lab 1", Capacity: 30, RoomType: models.RoomTypeLab},
		},
		Classes: []models.SchoolClass{
			{ID: "c1", Name: "Grade 10-A", NumStudents: 30, RequiredSubjects: []string{"math", "eng"}},
			{ID: "c2", Name: "Grade 10-B", NumStudents: 28, RequiredSubjects: []string{"math", "sci"}},
		},
		TimeSlots: sampleTimeSlots(),
	}
	input.Normalize()
	return input
}

func sampleTimeSlots() []models.TimeSlot {
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	var slots []models.TimeSlot
	for _, day := range days {
		for period := 1; period <= 6; period++ {
			hour := 7 + period
			slots = append(slots, models.TimeSlot{
				ID:        fmt.Sprintf("%s_p%d", strings.ToLower(day[:3]), period),
				Day:       day,
				Period:    period,
				StartTime: fmt.Sprintf("%02d:00", hour),
				EndTime:   fmt.Sprintf("%02d:00", hour+1),
			})
		}
	}
	return slots
}

func entry(slot, teacher, subject, class, room string) models.ScheduleEntry {
	return models.ScheduleEntry{
		TimeSlotID: slot,
		TeacherID:  teacher,
		SubjectID:  subject,
		ClassID:    class,
		RoomID:     room,
	}
}
