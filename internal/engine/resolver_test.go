package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maelin-io/timetable-api/internal/models"
)

func TestFindConflictingEntriesNone(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p2", "t1", "math", "c1", "r1"),
	}
	assert.Empty(t, FindConflictingEntries(entries))
}

func TestFindConflictingEntriesTeacherClash(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p1", "t1", "sci", "c2", "r2"),
	}
	pairs := FindConflictingEntries(entries)
	require.Len(t, pairs, 1)
	assert.Equal(t, ConflictPair{First: 0, Second: 1}, pairs[0])
}

func TestFindConflictingEntriesPairReportedOnce(t *testing.T) {
	// Entries 0 and 1 clash on both teacher and room; still one pair.
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p1", "t1", "sci", "c2", "r1"),
	}
	assert.Len(t, FindConflictingEntries(entries), 1)
}

func TestFindConflictingEntriesOrdering(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p1", "t2", "eng", "c1", "r2"),
		entry("mon_p1", "t1", "sci", "c2", "r3"),
	}
	pairs := FindConflictingEntries(entries)
	require.Len(t, pairs, 2)
	assert.Equal(t, ConflictPair{First: 0, Second: 1}, pairs[0])
	assert.Equal(t, ConflictPair{First: 0, Second: 2}, pairs[1])
}

func TestFindConflictingEntriesDifferentSlots(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("tue_p1", "t1", "math", "c1", "r1"),
	}
	assert.Empty(t, FindConflictingEntries(entries))
}

func TestAutoFixConflictsRelocatesSecondEntry(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p1", "t1", "math", "c2", "r2"),
	}

	fixed := AutoFixConflicts(entries, input)
	require.Len(t, fixed, 2)
	assert.Equal(t, "mon_p1", fixed[0].TimeSlotID)
	// mon_p1 is taken by the teacher, so mon_p2 is the first free slot.
	assert.Equal(t, "mon_p2", fixed[1].TimeSlotID)
	assert.Empty(t, FindConflictingEntries(fixed))
}

func TestAutoFixConflictsDoesNotMutateInput(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p1", "t1", "math", "c2", "r2"),
	}

	_ = AutoFixConflicts(entries, input)
	assert.Equal(t, "mon_p1", entries[1].TimeSlotID)
}

func TestAutoFixConflictsIdempotentOnCleanSchedule(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p2", "t2", "eng", "c1", "r2"),
	}
	fixed := AutoFixConflicts(entries, input)
	assert.Equal(t, entries, fixed)
}

func TestAutoFixConflictsUnresolvableStaysPut(t *testing.T) {
	input := sampleInput()
	input.TimeSlots = input.TimeSlots[:1]
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p1", "t1", "math", "c2", "r2"),
	}

	fixed := AutoFixConflicts(entries, input)
	assert.Equal(t, "mon_p1", fixed[1].TimeSlotID)
	assert.Len(t, FindConflictingEntries(fixed), 1)
}

func TestResolveAndScore(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p1", "t1", "math", "c2", "r2"),
	}

	schedule := ResolveAndScore(entries, input)
	assert.Equal(t, BaseScore, schedule.Score)
	assert.Empty(t, schedule.Violations)
	assert.Empty(t, FindConflictingEntries(schedule.Entries))
}
