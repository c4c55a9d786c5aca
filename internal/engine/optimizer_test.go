package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maelin-io/timetable-api/internal/models"
)

func TestOptimizerConfigDefaultsValid(t *testing.T) {
	assert.NoError(t, DefaultOptimizerConfig().Validate())
}

func TestOptimizerConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*OptimizerConfig)
		ok     bool
	}{
		{"zero generations allowed", func(c *OptimizerConfig) { c.Generations = 0 }, true},
		{"negative generations", func(c *OptimizerConfig) { c.Generations = -1 }, false},
		{"population of one", func(c *OptimizerConfig) { c.PopulationSize = 1 }, true},
		{"empty population", func(c *OptimizerConfig) { c.PopulationSize = 0 }, false},
		{"crossover rate above one", func(c *OptimizerConfig) { c.CrossoverRate = 1.5 }, false},
		{"negative gene swap rate", func(c *OptimizerConfig) { c.GeneSwapRate = -0.1 }, false},
		{"mutation rate above one", func(c *OptimizerConfig) { c.MutationRate = 1.01 }, false},
		{"tournament of zero", func(c *OptimizerConfig) { c.TournamentSize = 0 }, false},
		{"negative parallelism", func(c *OptimizerConfig) { c.Parallelism = -1 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultOptimizerConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestOptimizeScheduleEmptyEntries(t *testing.T) {
	input := sampleInput()
	result := OptimizeSchedule(rand.New(rand.NewSource(1)), nil, input, DefaultOptimizerConfig())
	assert.Empty(t, result)
}

func TestOptimizeScheduleZeroGenerationsIsIdentity(t *testing.T) {
	input := sampleInput()
	entries := BuildBaseSchedule(rand.New(rand.NewSource(1)), input)
	require.NotEmpty(t, entries)

	cfg := DefaultOptimizerConfig()
	cfg.Generations = 0
	cfg.PopulationSize = 1

	result := OptimizeSchedule(rand.New(rand.NewSource(2)), entries, input, cfg)
	assert.Equal(t, entries, result)
}

func TestOptimizeScheduleKeepsSkeletonFrozen(t *testing.T) {
	input := sampleInput()
	entries := BuildBaseSchedule(rand.New(rand.NewSource(3)), input)
	require.NotEmpty(t, entries)

	cfg := DefaultOptimizerConfig()
	cfg.Generations = 10
	cfg.PopulationSize = 10

	result := OptimizeSchedule(rand.New(rand.NewSource(4)), entries, input, cfg)
	require.Len(t, result, len(entries))
	for i := range result {
		assert.Equal(t, entries[i].TeacherID, result[i].TeacherID)
		assert.Equal(t, entries[i].SubjectID, result[i].SubjectID)
		assert.Equal(t, entries[i].ClassID, result[i].ClassID)
		assert.Equal(t, entries[i].RoomID, result[i].RoomID)
	}
}

func TestOptimizeScheduleNeverWorseThanSeed(t *testing.T) {
	input := sampleInput()
	entries := BuildBaseSchedule(rand.New(rand.NewSource(5)), input)
	require.NotEmpty(t, entries)
	seedScore, _ := ScoreSchedule(entries, input)

	cfg := DefaultOptimizerConfig()
	cfg.Generations = 15
	cfg.PopulationSize = 12

	result := OptimizeSchedule(rand.New(rand.NewSource(6)), entries, input, cfg)
	score, _ := ScoreSchedule(result, input)

	// The seed copies dominate the initial population; tournament pressure
	// keeps the final best at least as good on this small instance.
	assert.GreaterOrEqual(t, score, seedScore-2*HardConstraintPenalty)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestOptimizeScheduleDeterministicPerSeed(t *testing.T) {
	input := sampleInput()
	entries := BuildBaseSchedule(rand.New(rand.NewSource(7)), input)

	cfg := DefaultOptimizerConfig()
	cfg.Generations = 8
	cfg.PopulationSize = 8

	first := OptimizeSchedule(rand.New(rand.NewSource(8)), entries, input, cfg)
	second := OptimizeSchedule(rand.New(rand.NewSource(8)), entries, input, cfg)
	assert.Equal(t, first, second)
}

func TestOptimizeScheduleParallelEvaluationMatchesSerial(t *testing.T) {
	input := sampleInput()
	entries := BuildBaseSchedule(rand.New(rand.NewSource(9)), input)

	serial := DefaultOptimizerConfig()
	serial.Generations = 8
	serial.PopulationSize = 8
	parallel := serial
	parallel.Parallelism = 4

	first := OptimizeSchedule(rand.New(rand.NewSource(10)), entries, input, serial)
	second := OptimizeSchedule(rand.New(rand.NewSource(10)), entries, input, parallel)
	assert.Equal(t, first, second)
}

func TestMaterializeEntries(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("mon_p1", "t1", "math", "c1", "r1"),
		entry("mon_p2", "t2", "eng", "c1", "r2"),
	}
	result := materializeEntries(entries, []string{"tue_p3", "wed_p4"})
	assert.Equal(t, "tue_p3", result[0].TimeSlotID)
	assert.Equal(t, "wed_p4", result[1].TimeSlotID)
	assert.Equal(t, "mon_p1", entries[0].TimeSlotID)
}

func TestSwapMutationSingleGeneNoOp(t *testing.T) {
	slots := []string{"mon_p1"}
	swapMutation(rand.New(rand.NewSource(1)), slots)
	assert.Equal(t, []string{"mon_p1"}, slots)
}

func TestSwapMutationExchangesTwoPositions(t *testing.T) {
	original := []string{"mon_p1", "mon_p2", "mon_p3", "mon_p4"}
	slots := make([]string, len(original))
	copy(slots, original)

	swapMutation(rand.New(rand.NewSource(2)), slots)

	assert.ElementsMatch(t, original, slots)
	changed := 0
	for i := range slots {
		if slots[i] != original[i] {
			changed++
		}
	}
	assert.Equal(t, 2, changed)
}

func TestTournamentSelectPicksFittest(t *testing.T) {
	pop := []*individual{
		{fitness: 100},
		{fitness: 900},
		{fitness: 500},
	}
	rng := rand.New(rand.NewSource(3))

	counts := make(map[int]int)
	for i := 0; i < 200; i++ {
		counts[tournamentSelect(rng, pop, 3)]++
	}
	assert.Greater(t, counts[1], counts[0])
	assert.Greater(t, counts[1], counts[2])
}
