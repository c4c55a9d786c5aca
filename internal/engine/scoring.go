package engine

import "github.com/maelin-io/timetable-api/internal/models"

// Scoring starts every schedule at BaseScore and subtracts a fixed penalty
// per violation, clamped at zero. Hard violations dominate so any infeasible
// schedule scores below an equally sized feasible one.
const (
	BaseScore             = 1000.0
	HardConstraintPenalty = 100.0
	SoftConstraintPenalty = 10.0
)

// ScoreSchedule reduces a candidate's violations to a single fitness value.
// The returned violations are the hard list followed by the soft list. The
// function is stateless and safe for concurrent use on independent inputs.
func ScoreSchedule(entries []models.ScheduleEntry, input models.ScheduleInput) (float64, []string) {
	score := BaseScore

	hard := CheckAllHardConstraints(entries, input)
	score -= HardConstraintPenalty * float64(len(hard))

	soft := CheckAllSoftConstraints(entries, input)
	score -= SoftConstraintPenalty * float64(len(soft))

	if score < 0 {
		score = 0
	}
	return score, append(hard, soft...)
}
