package engine

import (
	"math/rand"

	"github.com/maelin-io/timetable-api/internal/models"
)

// Diagnosis splits a candidate's violations by severity. A schedule is valid
// when it carries no hard violations; soft violations only lower its score.
type Diagnosis struct {
	HardViolations []string `json:"hard_violations"`
	SoftViolations []string `json:"soft_violations"`
	IsValid        bool     `json:"is_valid"`
}

// Diagnose runs every hard and soft check against the entries.
func Diagnose(entries []models.ScheduleEntry, input models.ScheduleInput) Diagnosis {
	hard := CheckAllHardConstraints(entries, input)
	soft := CheckAllSoftConstraints(entries, input)
	return Diagnosis{
		HardViolations: hard,
		SoftViolations: soft,
		IsValid:        len(hard) == 0,
	}
}

// GenerateSchedule builds a base assignment, optionally evolves its slot
// layout, and returns the scored result. The conflict resolver is not part
// of this path; the builder's bookkeeping already keeps its output free of
// hard double-booking violations.
func GenerateSchedule(rng *rand.Rand, input models.ScheduleInput, optimize bool, cfg OptimizerConfig) models.Schedule {
	entries := BuildBaseSchedule(rng, input)

	if optimize && len(entries) > 0 {
		entries = OptimizeSchedule(rng, entries, input, cfg)
	}

	score, violations := ScoreSchedule(entries, input)
	return models.Schedule{Entries: entries, Score: score, Violations: violations}
}
