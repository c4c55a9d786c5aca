package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maelin-io/timetable-api/internal/models"
)

func TestDiagnoseValidSchedule(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p2", "t2", "eng", "c1", "r2"),
	}
	diag := Diagnose(entries, input)
	assert.True(t, diag.IsValid)
	assert.Empty(t, diag.HardViolations)
	assert.Empty(t, diag.SoftViolations)
}

func TestDiagnoseSoftOnlyStaysValid(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{entry("fri_p1", "t3", "cs", "c1", "r3")}
	diag := Diagnose(entries, input)
	assert.True(t, diag.IsValid)
	assert.Empty(t, diag.HardViolations)
	require.Len(t, diag.SoftViolations, 1)
	assert.Contains(t, diag.SoftViolations[0], "preferred day off")
}

func TestDiagnoseHardViolationInvalidates(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p1", "t1", "math", "c2", "r2"),
	}
	diag := Diagnose(entries, input)
	assert.False(t, diag.IsValid)
	assert.Len(t, diag.HardViolations, 1)
}

func TestGenerateScheduleWithoutOptimization(t *testing.T) {
	input := sampleInput()
	schedule := GenerateSchedule(rand.New(rand.NewSource(1)), input, false, DefaultOptimizerConfig())

	assert.NotEmpty(t, schedule.Entries)
	assert.Greater(t, schedule.Score, 0.0)
	assert.Empty(t, CheckAllHardConstraints(schedule.Entries, input))
}

func TestGenerateScheduleWithOptimization(t *testing.T) {
	input := sampleInput()
	cfg := DefaultOptimizerConfig()
	cfg.Generations = 10
	cfg.PopulationSize = 10

	schedule := GenerateSchedule(rand.New(rand.NewSource(2)), input, true, cfg)

	assert.NotEmpty(t, schedule.Entries)
	assert.Greater(t, schedule.Score, 0.0)
	assert.Len(t, schedule.Violations, len(CheckAllHardConstraints(schedule.Entries, input))+
		len(CheckAllSoftConstraints(schedule.Entries, input)))
}

func TestGenerateScheduleEmptyInput(t *testing.T) {
	schedule := GenerateSchedule(rand.New(rand.NewSource(3)), models.ScheduleInput{}, true, DefaultOptimizerConfig())
	assert.Empty(t, schedule.Entries)
	assert.Equal(t, BaseScore, schedule.Score)
	assert.Empty(t, schedule.Violations)
}

func TestCheckReferencesClean(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{entry("mon_p1", "t1", "math", "c1", "r1")}
	assert.Empty(t, CheckReferences(entries, input))
}

func TestCheckReferencesUnknownIDs(t *testing.T) {
	input := sampleInput()
	input.Teachers[0].Subjects = append(input.Teachers[0].Subjects, "latin")
	input.Classes[0].RequiredSubjects = append(input.Classes[0].RequiredSubjects, "latin")
	entries := []models.ScheduleEntry{
		entry("mon_p1", "ghost", "math", "c1", "r1"),
		entry("mon_p2", "ghost", "math", "c1", "r1"),
	}

	warnings := CheckReferences(entries, input)
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "teacher t1 references unknown subject latin")
	assert.Contains(t, warnings[1], "class c1 requires unknown subject latin")
	assert.Contains(t, warnings[2], "unknown teacher ghost")
}

func TestAuditSubjectHoursComplete(t *testing.T) {
	input := sampleInput()
	entries := BuildBaseSchedule(rand.New(rand.NewSource(4)), input)
	assert.Empty(t, AuditSubjectHours(entries, input))
}

func TestAuditSubjectHoursShortfall(t *testing.T) {
	input := sampleInput()
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
	}

	warnings := AuditSubjectHours(entries, input)
	require.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "class c1 received 1 of 3 weekly hours for subject math")
	assert.Contains(t, warnings[1], "class c1 received 0 of 2 weekly hours for subject eng")
	assert.Contains(t, warnings[2], "class c2 received 0 of 3 weekly hours for subject math")
	assert.Contains(t, warnings[3], "class c2 received 0 of 2 weekly hours for subject sci")
}
