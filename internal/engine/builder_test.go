package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBaseScheduleProducesEntries(t *testing.T) {
	input := sampleInput()
	entries := BuildBaseSchedule(rand.New(rand.NewSource(1)), input)
	assert.NotEmpty(t, entries)
}

func TestBuildBaseScheduleSatisfiesHardConstraints(t *testing.T) {
	input := sampleInput()
	for seed := int64(0); seed < 5; seed++ {
		entries := BuildBaseSchedule(rand.New(rand.NewSource(seed)), input)
		assert.Empty(t, CheckAllHardConstraints(entries, input), "seed %d", seed)
	}
}

func TestBuildBaseScheduleCoversRequiredHours(t *testing.T) {
	input := sampleInput()
	entries := BuildBaseSchedule(rand.New(rand.NewSource(2)), input)

	// c1: math 3h + eng 2h, c2: math 3h + sci 2h
	perClassSubject := make(map[string]int)
	for _, e := range entries {
		perClassSubject[e.ClassID+"/"+e.SubjectID]++
	}
	assert.Equal(t, 3, perClassSubject["c1/math"])
	assert.Equal(t, 2, perClassSubject["c1/eng"])
	assert.Equal(t, 3, perClassSubject["c2/math"])
	assert.Equal(t, 2, perClassSubject["c2/sci"])
	assert.Empty(t, AuditSubjectHours(entries, input))
}

func TestBuildBaseScheduleOnlyQualifiedTeachers(t *testing.T) {
	input := sampleInput()
	qualified := map[string]map[string]bool{
		"t1": {"math": true, "sci": true},
		"t2": {"eng": true},
		"t3": {"cs": true, "math": true},
	}
	entries := BuildBaseSchedule(rand.New(rand.NewSource(3)), input)
	for _, e := range entries {
		assert.True(t, qualified[e.TeacherID][e.SubjectID],
			"teacher %s assigned to %s", e.TeacherID, e.SubjectID)
	}
}

func TestBuildBaseScheduleRespectsRoomCapacity(t *testing.T) {
	input := sampleInput()
	entries := BuildBaseSchedule(rand.New(rand.NewSource(4)), input)
	assert.Empty(t, CheckRoomCapacity(entries, input))
}

func TestBuildBaseScheduleDeterministicPerSeed(t *testing.T) {
	input := sampleInput()
	first := BuildBaseSchedule(rand.New(rand.NewSource(99)), input)
	second := BuildBaseSchedule(rand.New(rand.NewSource(99)), input)
	assert.Equal(t, first, second)
}

func TestBuildBaseScheduleSkipsUnknownSubjects(t *testing.T) {
	input := sampleInput()
	input.Classes[0].RequiredSubjects = []string{"math", "philosophy"}

	entries := BuildBaseSchedule(rand.New(rand.NewSource(5)), input)
	for _, e := range entries {
		assert.NotEqual(t, "philosophy", e.SubjectID)
	}
	assert.Empty(t, CheckAllHardConstraints(entries, input))
}

func TestBuildBaseScheduleNoTeacherAvailable(t *testing.T) {
	input := sampleInput()
	input.Teachers = nil

	entries := BuildBaseSchedule(rand.New(rand.NewSource(6)), input)
	assert.Empty(t, entries)
}

func TestBuildBaseScheduleFallsBackToAnyRoomKind(t *testing.T) {
	input := sampleInput()
	// cs is a lab subject; without lab rooms it must still land somewhere.
	input.Classes = append(input.Classes, sampleInput().Classes[0])
	input.Classes[2].ID = "c3"
	input.Classes[2].Name = "Grade 10-C"
	input.Classes[2].RequiredSubjects = []string{"cs"}
	input.Rooms = input.Rooms[:2]

	entries := BuildBaseSchedule(rand.New(rand.NewSource(7)), input)
	require.NotEmpty(t, entries)

	found := false
	for _, e := range entries {
		if e.SubjectID == "cs" {
			found = true
			assert.Contains(t, []string{"r1", "r2"}, e.RoomID)
		}
	}
	assert.True(t, found, "cs session was not placed")
}

func TestBuildBaseScheduleEmptyInput(t *testing.T) {
	var input = sampleInput()
	input.Classes = nil
	entries := BuildBaseSchedule(rand.New(rand.NewSource(8)), input)
	assert.Empty(t, entries)
}
