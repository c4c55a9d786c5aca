package export

import (
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/maelin-io/timetable-api/internal/models"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

var timetableHeaders = []string{"Day", "Period", "Start", "End", "Class", "Subject", "Teacher", "Room"}

var dayRank = map[string]int{
	"Monday":    1,
	"Tuesday":   2,
	"Wednesday": 3,
	"Thursday":  4,
	"Friday":    5,
	"Saturday":  6,
	"Sunday":    7,
}

// TimetableDataset flattens schedule entries into sorted display rows. Ids
// that do not resolve against the input are rendered verbatim so a partially
// stale schedule still exports.
func TimetableDataset(entries []models.ScheduleEntry, input models.ScheduleInput) Dataset {
	subjects := lo.KeyBy(input.Subjects, func(s models.Subject) string { return s.ID })
	teachers := lo.KeyBy(input.Teachers, func(t models.Teacher) string { return t.ID })
	rooms := lo.KeyBy(input.Rooms, func(r models.Room) string { return r.ID })
	classes := lo.KeyBy(input.Classes, func(c models.SchoolClass) string { return c.ID })
	slots := lo.KeyBy(input.TimeSlots, func(ts models.TimeSlot) string { return ts.ID })

	type sortableRow struct {
		day    int
		period int
		class  string
		cells  map[string]string
	}

	sortable := make([]sortableRow, 0, len(entries))
	for _, e := range entries {
		slot, hasSlot := slots[e.TimeSlotID]

		day, period, start, end := e.TimeSlotID, "", "", ""
		if hasSlot {
			day = slot.Day
			period = strconv.Itoa(slot.Period)
			start = slot.StartTime
			end = slot.EndTime
		}

		className := e.ClassID
		if c, ok := classes[e.ClassID]; ok {
			className = c.Name
		}
		subjectName := e.SubjectID
		if s, ok := subjects[e.SubjectID]; ok {
			subjectName = s.Name
		}
		teacherName := e.TeacherID
		if t, ok := teachers[e.TeacherID]; ok {
			teacherName = t.Name
		}
		roomName := e.RoomID
		if r, ok := rooms[e.RoomID]; ok {
			roomName = r.Name
		}

		sortable = append(sortable, sortableRow{
			day:    dayRank[day],
			period: slot.Period,
			class:  className,
			cells: map[string]string{
				"Day":     day,
				"Period":  period,
				"Start":   start,
				"End":     end,
				"Class":   className,
				"Subject": subjectName,
				"Teacher": teacherName,
				"Room":    roomName,
			},
		})
	}

	sort.SliceStable(sortable, func(i, j int) bool {
		if sortable[i].day != sortable[j].day {
			return sortable[i].day < sortable[j].day
		}
		if sortable[i].period != sortable[j].period {
			return sortable[i].period < sortable[j].period
		}
		return sortable[i].class < sortable[j].class
	})

	rows := make([]map[string]string, len(sortable))
	for i, r := range sortable {
		rows[i] = r.cells
	}
	return Dataset{Headers: timetableHeaders, Rows: rows}
}
