package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maelin-io/timetable-api/internal/dto"
	"github.com/maelin-io/timetable-api/pkg/config"
	appErrors "github.com/maelin-io/timetable-api/pkg/errors"
	"github.com/maelin-io/timetable-api/pkg/jobs"
)

type jobRecord struct {
	response  dto.JobStatusResponse
	expiresAt time.Time
}

// JobService runs schedule generation on a background worker pool. Results
// are held in memory for the configured TTL; the API is single-node, so no
// external broker is involved.
type JobService struct {
	schedules *ScheduleService
	logger    *zap.Logger
	ttl       time.Duration

	queue *jobs.Queue

	mu      sync.RWMutex
	records map[string]*jobRecord

	stopCleanup context.CancelFunc
}

// NewJobService constructs the service and its queue. Call Start before
// submitting jobs.
func NewJobService(schedules *ScheduleService, logger *zap.Logger, cfg config.JobsConfig) *JobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &JobService{
		schedules: schedules,
		logger:    logger,
		ttl:       cfg.ResultTTL,
		records:   make(map[string]*jobRecord),
	}
	s.queue = jobs.NewQueue("schedule-generation", s.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.QueueSize,
		Logger:     logger,
	})
	return s
}

// Start launches the workers and the expiry sweeper.
func (s *JobService) Start(ctx context.Context) {
	s.queue.Start(ctx)

	cleanupCtx, cancel := context.WithCancel(ctx)
	s.stopCleanup = cancel
	go s.sweepExpired(cleanupCtx)
}

// Stop drains the workers.
func (s *JobService) Stop() {
	if s.stopCleanup != nil {
		s.stopCleanup()
	}
	s.queue.Stop()
}

// Submit enqueues a generation request and returns the job id immediately.
func (s *JobService) Submit(req dto.GenerateScheduleRequest) (*dto.JobStatusResponse, error) {
	jobID := uuid.NewString()
	now := time.Now().UTC()

	record := &jobRecord{
		response: dto.JobStatusResponse{
			JobID:     jobID,
			Status:    dto.JobStatusPending,
			CreatedAt: now,
		},
		expiresAt: now.Add(s.ttl),
	}
	s.mu.Lock()
	s.records[jobID] = record
	s.mu.Unlock()

	err := s.queue.Enqueue(jobs.Job{ID: jobID, Type: "generate", Payload: req})
	if err != nil {
		s.mu.Lock()
		delete(s.records, jobID)
		s.mu.Unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "job queue unavailable")
	}

	resp := record.response
	return &resp, nil
}

// Status reports the job state; finished jobs include the schedule.
func (s *JobService) Status(jobID string) (*dto.JobStatusResponse, error) {
	s.mu.RLock()
	record, ok := s.records[jobID]
	s.mu.RUnlock()
	if !ok || time.Now().UTC().After(record.expiresAt) {
		return nil, appErrors.Clone(appErrors.ErrJobNotFound, "")
	}

	s.mu.RLock()
	resp := record.response
	s.mu.RUnlock()
	return &resp, nil
}

func (s *JobService) handle(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(dto.GenerateScheduleRequest)
	if !ok {
		s.fail(job.ID, "malformed job payload")
		return nil
	}

	s.transition(job.ID, func(r *dto.JobStatusResponse) {
		r.Status = dto.JobStatusRunning
	})

	result, err := s.schedules.Generate(ctx, req)
	if err != nil {
		s.fail(job.ID, err.Error())
		return err
	}

	s.transition(job.ID, func(r *dto.JobStatusResponse) {
		r.Status = dto.JobStatusDone
		r.Schedule = &result.Schedule
		r.Warnings = result.Warnings
	})
	return nil
}

func (s *JobService) fail(jobID, message string) {
	s.transition(jobID, func(r *dto.JobStatusResponse) {
		r.Status = dto.JobStatusFailed
		r.Error = message
	})
}

func (s *JobService) transition(jobID string, apply func(*dto.JobStatusResponse)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.records[jobID]; ok {
		apply(&record.response)
	}
}

func (s *JobService) sweepExpired(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().UTC()
			s.mu.Lock()
			for id, record := range s.records {
				if now.After(record.expiresAt) {
					delete(s.records, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
