package service

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/maelin-io/timetable-api/internal/dto"
	"github.com/maelin-io/timetable-api/internal/engine"
	"github.com/maelin-io/timetable-api/internal/models"
	"github.com/maelin-io/timetable-api/pkg/config"
	appErrors "github.com/maelin-io/timetable-api/pkg/errors"
	"github.com/maelin-io/timetable-api/pkg/export"
)

// ScheduleStore persists generated schedules.
type ScheduleStore interface {
	Create(ctx context.Context, schedule *models.Schedule) error
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
	List(ctx context.Context, page, pageSize int) ([]models.ScheduleSummary, int, error)
	Delete(ctx context.Context, id string) error
}

// ScheduleCache is a read-through cache keyed by schedule id.
type ScheduleCache interface {
	Get(ctx context.Context, id string) (*models.Schedule, error)
	Set(ctx context.Context, schedule *models.Schedule) error
	Invalidate(ctx context.Context, id string) error
}

// ScheduleService orchestrates the solver pipeline and, when configured,
// persistence and caching. Store and cache may both be nil; generation then
// runs fully in memory.
type ScheduleService struct {
	store     ScheduleStore
	cache     ScheduleCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	solver    config.SolverConfig
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// NewScheduleService constructs the service.
func NewScheduleService(store ScheduleStore, cache ScheduleCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, solver config.SolverConfig) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ScheduleService{
		store:     store,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		solver:    solver,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

func (s *ScheduleService) optimizerConfig(req dto.GenerateScheduleRequest) engine.OptimizerConfig {
	cfg := engine.DefaultOptimizerConfig()
	if s.solver.Generations > 0 {
		cfg.Generations = s.solver.Generations
	}
	if s.solver.PopulationSize > 0 {
		cfg.PopulationSize = s.solver.PopulationSize
	}
	if s.solver.CrossoverRate > 0 {
		cfg.CrossoverRate = s.solver.CrossoverRate
	}
	if s.solver.GeneSwapRate > 0 {
		cfg.GeneSwapRate = s.solver.GeneSwapRate
	}
	if s.solver.MutationRate > 0 {
		cfg.MutationRate = s.solver.MutationRate
	}
	if s.solver.TournamentSize > 0 {
		cfg.TournamentSize = s.solver.TournamentSize
	}
	if s.solver.Parallelism > 0 {
		cfg.Parallelism = s.solver.Parallelism
	}
	if req.Generations > 0 {
		cfg.Generations = req.Generations
	}
	if req.PopulationSize > 0 {
		cfg.PopulationSize = req.PopulationSize
	}
	return cfg
}

// prepareInput normalizes the input and applies the configured heavy-subject
// default when the request does not carry its own list.
func (s *ScheduleService) prepareInput(input *models.ScheduleInput) {
	input.Normalize()
	if input.HeavySubjects == nil && len(s.solver.HeavySubjects) > 0 {
		input.HeavySubjects = s.solver.HeavySubjects
	}
}

func newRNG(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Generate runs the full pipeline: build, optionally optimize, score. When
// req.Save is set and a store is configured, the result is persisted.
func (s *ScheduleService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}
	s.prepareInput(&req.Input)

	if len(req.Input.Classes) > 0 &&
		(len(req.Input.TimeSlots) == 0 || len(req.Input.Teachers) == 0 || len(req.Input.Rooms) == 0) {
		return nil, appErrors.Clone(appErrors.ErrInfeasible, "input has classes to place but no time slots, teachers or rooms")
	}

	cfg := s.optimizerConfig(req)
	if err := cfg.Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid solver configuration")
	}

	// An omitted optimize flag means optimize.
	optimize := req.Optimize == nil || *req.Optimize
	mode := "greedy"
	if optimize {
		mode = "genetic"
	}

	start := time.Now()
	schedule := engine.GenerateSchedule(newRNG(req.Seed), req.Input, optimize, cfg)
	s.metrics.ObserveSolverRun(mode, time.Since(start), schedule.Score)

	warnings := engine.CheckReferences(schedule.Entries, req.Input)
	warnings = append(warnings, engine.AuditSubjectHours(schedule.Entries, req.Input)...)

	s.logger.Info("schedule generated",
		zap.String("mode", mode),
		zap.Int("entries", len(schedule.Entries)),
		zap.Float64("score", schedule.Score),
		zap.Int("violations", len(schedule.Violations)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("elapsed", time.Since(start)))

	if req.Save {
		if s.store == nil {
			warnings = append(warnings, "storage is disabled; schedule was not saved")
		} else {
			if err := s.store.Create(ctx, &schedule); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist schedule")
			}
			if s.cache != nil {
				if err := s.cache.Set(ctx, &schedule); err != nil {
					s.logger.Warn("failed to warm schedule cache", zap.Error(err))
				}
			}
		}
	}

	return &dto.GenerateScheduleResponse{Schedule: schedule, Warnings: warnings}, nil
}

// Validate diagnoses an externally supplied schedule without modifying it.
func (s *ScheduleService) Validate(req dto.ValidateScheduleRequest) (*dto.ValidationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid validation payload")
	}
	s.prepareInput(&req.Input)

	diag := engine.Diagnose(req.Entries, req.Input)
	score, _ := engine.ScoreSchedule(req.Entries, req.Input)
	return &dto.ValidationResult{
		IsValid:        diag.IsValid,
		HardViolations: diag.HardViolations,
		SoftViolations: diag.SoftViolations,
		Score:          score,
	}, nil
}

// Resolve repairs double-booking conflicts in a single pass and re-scores.
func (s *ScheduleService) Resolve(req dto.ResolveScheduleRequest) (*dto.ResolveScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resolve payload")
	}
	s.prepareInput(&req.Input)

	found := len(engine.FindConflictingEntries(req.Entries))
	schedule := engine.ResolveAndScore(req.Entries, req.Input)
	remaining := len(engine.FindConflictingEntries(schedule.Entries))

	s.logger.Info("schedule conflicts resolved",
		zap.Int("found", found),
		zap.Int("remaining", remaining),
		zap.Float64("score", schedule.Score))

	return &dto.ResolveScheduleResponse{
		Schedule:  schedule,
		Conflicts: found,
		Remaining: remaining,
	}, nil
}

// Get loads a stored schedule, serving from cache when possible.
func (s *ScheduleService) Get(ctx context.Context, id string) (*models.Schedule, error) {
	if s.store == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule storage is disabled")
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn("schedule cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheOperation(cached != nil)
		if cached != nil {
			return cached, nil
		}
	}

	schedule, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, schedule); err != nil {
			s.logger.Warn("failed to warm schedule cache", zap.Error(err))
		}
	}
	return schedule, nil
}

// List returns stored schedule summaries.
func (s *ScheduleService) List(ctx context.Context, q dto.ListQuery) ([]models.ScheduleSummary, *models.Pagination, error) {
	if s.store == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "schedule storage is disabled")
	}
	if err := s.validator.Struct(q); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid list query")
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}

	summaries, total, err := s.store.List(ctx, q.Page, q.PageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return summaries, &models.Pagination{Page: q.Page, PageSize: q.PageSize, TotalCount: total}, nil
}

// Delete removes a stored schedule and drops its cache entry.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "schedule storage is disabled")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate schedule cache", zap.Error(err))
		}
	}
	return nil
}

// Export renders a schedule as CSV or PDF and returns content plus MIME type.
func (s *ScheduleService) Export(req dto.ExportScheduleRequest, format string) ([]byte, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	req.Input.Normalize()

	dataset := export.TimetableDataset(req.Entries, req.Input)
	title := req.Title
	if title == "" {
		title = "Weekly Timetable"
	}

	switch format {
	case "pdf":
		raw, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return raw, "application/pdf", nil
	default:
		raw, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return raw, "text/csv", nil
	}
}
