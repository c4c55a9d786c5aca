package engine

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/maelin-io/timetable-api/internal/models"
)

// OptimizerConfig carries every knob of the genetic search as an explicit
// value type; there is no process-wide registry. Construct it once via
// DefaultOptimizerConfig, override what you need, and pass it through.
type OptimizerConfig struct {
	Generations    int
	PopulationSize int
	CrossoverRate  float64 // probability a selected pair is crossed
	GeneSwapRate   float64 // per-gene swap probability within a crossover
	MutationRate   float64 // probability an individual receives a swap mutation
	TournamentSize int
	Parallelism    int // concurrent fitness evaluations per generation
}

// DefaultOptimizerConfig returns the tuned defaults.
func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		Generations:    50,
		PopulationSize: 30,
		CrossoverRate:  0.7,
		GeneSwapRate:   0.3,
		MutationRate:   0.2,
		TournamentSize: 3,
		Parallelism:    1,
	}
}

// Validate rejects configurations the search loop cannot run with.
// Generations may be zero: the seed population is then returned unchanged.
func (c OptimizerConfig) Validate() error {
	if c.Generations < 0 {
		return fmt.Errorf("generations must be >= 0 (got %d)", c.Generations)
	}
	if c.PopulationSize < 1 {
		return fmt.Errorf("population size must be >= 1 (got %d)", c.PopulationSize)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be within [0,1] (got %f)", c.CrossoverRate)
	}
	if c.GeneSwapRate < 0 || c.GeneSwapRate > 1 {
		return fmt.Errorf("gene swap rate must be within [0,1] (got %f)", c.GeneSwapRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be within [0,1] (got %f)", c.MutationRate)
	}
	if c.TournamentSize < 1 {
		return fmt.Errorf("tournament size must be >= 1 (got %d)", c.TournamentSize)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must be >= 0 (got %d)", c.Parallelism)
	}
	return nil
}

// individual is one candidate solution: a time-slot id per entry position.
// The teacher/subject/class/room skeleton stays frozen; only slots evolve.
type individual struct {
	slots   []string
	fitness float64
	valid   bool
}

func (ind *individual) clone() *individual {
	slots := make([]string, len(ind.slots))
	copy(slots, ind.slots)
	return &individual{slots: slots, fitness: ind.fitness, valid: ind.valid}
}

// OptimizeSchedule evolves the time-slot assignment of the given entries and
// returns the best materialized entry list found. The population is seeded
// with exact copies of the input slot sequence; diversity comes from
// crossover and mutation alone. An empty entry list is returned unchanged.
func OptimizeSchedule(rng *rand.Rand, entries []models.ScheduleEntry, input models.ScheduleInput, cfg OptimizerConfig) []models.ScheduleEntry {
	if len(entries) == 0 {
		return entries
	}
	if cfg.PopulationSize < 1 {
		cfg.PopulationSize = 1
	}
	if cfg.TournamentSize < 1 {
		cfg.TournamentSize = 1
	}

	seed := make([]string, len(entries))
	for i, e := range entries {
		seed[i] = e.TimeSlotID
	}

	pop := make([]*individual, cfg.PopulationSize)
	for i := range pop {
		slots := make([]string, len(seed))
		copy(slots, seed)
		pop[i] = &individual{slots: slots}
	}

	evaluate := func(ind *individual) {
		score, _ := ScoreSchedule(materializeEntries(entries, ind.slots), input)
		ind.fitness = score
		ind.valid = true
	}
	evaluatePending(pop, evaluate, cfg.Parallelism)

	for gen := 0; gen < cfg.Generations; gen++ {
		offspring := make([]*individual, len(pop))
		for i := range offspring {
			offspring[i] = pop[tournamentSelect(rng, pop, cfg.TournamentSize)].clone()
		}

		for i := 0; i+1 < len(offspring); i += 2 {
			if rng.Float64() < cfg.CrossoverRate {
				uniformCrossover(rng, offspring[i].slots, offspring[i+1].slots, cfg.GeneSwapRate)
				offspring[i].valid = false
				offspring[i+1].valid = false
			}
		}

		for _, ind := range offspring {
			if rng.Float64() < cfg.MutationRate {
				swapMutation(rng, ind.slots)
				ind.valid = false
			}
		}

		// Replacement happens only after the whole generation is scored.
		evaluatePending(offspring, evaluate, cfg.Parallelism)
		pop = offspring
	}

	best := pop[0]
	for _, ind := range pop[1:] {
		if ind.fitness > best.fitness {
			best = ind
		}
	}
	return materializeEntries(entries, best.slots)
}

// materializeEntries swaps the individual's slot ids into the frozen entry
// skeleton, position by position.
func materializeEntries(entries []models.ScheduleEntry, slots []string) []models.ScheduleEntry {
	result := make([]models.ScheduleEntry, len(entries))
	copy(result, entries)
	for i := range result {
		result[i].TimeSlotID = slots[i]
	}
	return result
}

// tournamentSelect draws tournamentSize contenders with replacement and
// returns the index of the fittest; ties keep the first seen.
func tournamentSelect(rng *rand.Rand, pop []*individual, tournamentSize int) int {
	best := rng.Intn(len(pop))
	for i := 1; i < tournamentSize; i++ {
		cand := rng.Intn(len(pop))
		if pop[cand].fitness > pop[best].fitness {
			best = cand
		}
	}
	return best
}

// uniformCrossover swaps genes between the two children with the given
// per-gene probability.
func uniformCrossover(rng *rand.Rand, a, b []string, swapRate float64) {
	for i := range a {
		if rng.Float64() < swapRate {
			a[i], b[i] = b[i], a[i]
		}
	}
}

// swapMutation exchanges the slot ids of two distinct random positions.
// Sequences shorter than two genes are left as they are.
func swapMutation(rng *rand.Rand, slots []string) {
	if len(slots) < 2 {
		return
	}
	i := rng.Intn(len(slots))
	j := rng.Intn(len(slots) - 1)
	if j >= i {
		j++
	}
	slots[i], slots[j] = slots[j], slots[i]
}

// evaluatePending scores every individual with an invalidated fitness.
// Fitness evaluation is pure, so individuals of one generation may be scored
// concurrently without affecting the search's random sequence.
func evaluatePending(pop []*individual, evaluate func(*individual), parallelism int) {
	var pending []*individual
	for _, ind := range pop {
		if !ind.valid {
			pending = append(pending, ind)
		}
	}
	if parallelism <= 1 || len(pending) < 2 {
		for _, ind := range pending {
			evaluate(ind)
		}
		return
	}

	work := make(chan *individual)
	var wg sync.WaitGroup
	for w := 0; w < parallelism; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ind := range work {
				evaluate(ind)
			}
		}()
	}
	for _, ind := range pending {
		work <- ind
	}
	close(work)
	wg.Wait()
}
