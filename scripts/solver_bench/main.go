package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/maelin-io/timetable-api/internal/engine"
	"github.com/maelin-io/timetable-api/internal/models"
)

type run struct {
	Seed       int64
	Entries    int
	Score      float64
	Hard       int
	Soft       int
	Duration   time.Duration
	Optimized  bool
	Violations []string
}

func main() {
	var (
		inputPath   string
		seeds       int
		optimize    bool
		generations int
		population  int
		verbose     bool
	)

	flag.StringVar(&inputPath, "input", "", "Path to a JSON schedule input file")
	flag.IntVar(&seeds, "seeds", 5, "Number of seeds to run")
	flag.BoolVar(&optimize, "optimize", true, "Refine with the genetic optimizer")
	flag.IntVar(&generations, "generations", 0, "Generations override (0 keeps the default)")
	flag.IntVar(&population, "population", 0, "Population size override (0 keeps the default)")
	flag.BoolVar(&verbose, "verbose", false, "Print individual violations")
	flag.Parse()

	if inputPath == "" {
		log.Fatal("missing -input")
	}
	input, err := loadInput(inputPath)
	if err != nil {
		log.Fatalf("failed to load input: %v", err)
	}

	cfg := engine.DefaultOptimizerConfig()
	if generations > 0 {
		cfg.Generations = generations
	}
	if population > 0 {
		cfg.PopulationSize = population
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid optimizer config: %v", err)
	}

	var (
		runs     []run
		hardSeen bool
	)
	for seed := int64(0); seed < int64(seeds); seed++ {
		rng := rand.New(rand.NewSource(seed))
		start := time.Now()
		schedule := engine.GenerateSchedule(rng, *input, optimize, cfg)
		elapsed := time.Since(start)

		diag := engine.Diagnose(schedule.Entries, *input)
		if len(diag.HardViolations) > 0 {
			hardSeen = true
		}
		runs = append(runs, run{
			Seed:       seed,
			Entries:    len(schedule.Entries),
			Score:      schedule.Score,
			Hard:       len(diag.HardViolations),
			Soft:       len(diag.SoftViolations),
			Duration:   elapsed,
			Optimized:  optimize,
			Violations: append(diag.HardViolations, diag.SoftViolations...),
		})
	}

	printReport(runs, verbose)
	if hardSeen {
		os.Exit(1)
	}
}

func loadInput(path string) (*models.ScheduleInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var input models.ScheduleInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, err
	}
	input.Normalize()
	if len(input.Classes) == 0 || len(input.TimeSlots) == 0 {
		return nil, fmt.Errorf("input %s has no classes or no time slots", path)
	}
	return &input, nil
}

func printReport(runs []run, verbose bool) {
	fmt.Println("Solver Benchmark Report")
	fmt.Println("=======================")
	var best, worst, total float64
	for i, res := range runs {
		mode := "greedy"
		if res.Optimized {
			mode = "genetic"
		}
		fmt.Printf("seed %d [%s]: score %.0f, %d entries, %d hard, %d soft (%s)\n",
			res.Seed, mode, res.Score, res.Entries, res.Hard, res.Soft, res.Duration)
		if verbose {
			for _, v := range res.Violations {
				fmt.Printf("  - %s\n", v)
			}
		}
		if i == 0 || res.Score > best {
			best = res.Score
		}
		if i == 0 || res.Score < worst {
			worst = res.Score
		}
		total += res.Score
	}
	if len(runs) > 0 {
		fmt.Printf("best %.0f, worst %.0f, mean %.1f over %d seeds\n",
			best, worst, total/float64(len(runs)), len(runs))
	}
}
