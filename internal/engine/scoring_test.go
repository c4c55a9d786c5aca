package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maelin-io/timetable-api/internal/models"
)

func TestScoreEmptySchedule(t *testing.T) {
	input := sampleInput()
	score, violations := ScoreSchedule(nil, input)
	assert.Equal(t, BaseScore, score)
	assert.Empty(t, violations)
}

func TestScoreCleanSchedule(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p2", "t2", "eng", "c1", "r2"),
	}
	score, violations := ScoreSchedule(entries, input)
	assert.Equal(t, BaseScore, score)
	assert.Empty(t, violations)
}

func TestScoreSingleHardViolation(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p1", "t1", "math", "c2", "r2"),
	}
	score, violations := ScoreSchedule(entries, input)
	assert.Equal(t, BaseScore-HardConstraintPenalty, score)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "t1")
}

func TestScoreSingleSoftViolation(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{entry("fri_p1", "t3", "cs", "c1", "r3")}
	score, violations := ScoreSchedule(entries, input)
	assert.Equal(t, BaseScore-SoftConstraintPenalty, score)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "preferred day off")
}

func TestScoreListsHardBeforeSoft(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{
		entry("fri_p1", "t3", "cs", "c1", "r3"),
		entry("fri_p1", "t3", "cs", "c2", "r3"),
	}
	score, violations := ScoreSchedule(entries, input)

	// teacher conflict + room conflict, then two day-off notes
	assert.Equal(t, BaseScore-2*HardConstraintPenalty-2*SoftConstraintPenalty, score)
	require.Len(t, violations, 4)
	assert.Contains(t, violations[0], "Teacher t3")
	assert.Contains(t, violations[1], "Room r3")
	assert.Contains(t, violations[2], "preferred day off")
	assert.Contains(t, violations[3], "preferred day off")
}

func TestScoreNeverNegative(t *testing.T) {
	input := sampleInput()
	var entries []models.ScheduleEntry
	for i := 0; i < 20; i++ {
		entries = append(entries, entry("mon_p1", "t1", "math", "c1", "r1"))
	}
	score, violations := ScoreSchedule(entries, input)
	assert.Equal(t, 0.0, score)
	assert.NotEmpty(t, violations)
}
