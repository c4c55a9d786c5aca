package dto

import (
	"time"

	"github.com/maelin-io/timetable-api/internal/models"
)

// GenerateScheduleRequest carries the school data plus solver overrides.
// Zero-valued overrides fall back to the configured solver defaults.
// Optimize is a pointer so an omitted field keeps its default of true.
// Generations and PopulationSize have no upper bound; callers size them to
// their input.
type GenerateScheduleRequest struct {
	Input          models.ScheduleInput `json:"input" validate:"required"`
	Optimize       *bool                `json:"optimize"`
	Generations    int                  `json:"generations" validate:"omitempty,min=0"`
	PopulationSize int                  `json:"population_size" validate:"omitempty,min=1"`
	Seed           *int64               `json:"seed"`
	Save           bool                 `json:"save"`
}

// GenerateScheduleResponse returns the built timetable.
type GenerateScheduleResponse struct {
	Schedule models.Schedule `json:"schedule"`
	Warnings []string        `json:"warnings,omitempty"`
}

// ValidateScheduleRequest asks for a diagnosis of an external schedule.
type ValidateScheduleRequest struct {
	Input   models.ScheduleInput   `json:"input" validate:"required"`
	Entries []models.ScheduleEntry `json:"entries" validate:"required,dive"`
}

// ValidationResult reports violations split by severity.
type ValidationResult struct {
	IsValid        bool     `json:"is_valid"`
	HardViolations []string `json:"hard_violations"`
	SoftViolations []string `json:"soft_violations"`
	Score          float64  `json:"score"`
}

// ResolveScheduleRequest asks for a single-pass conflict repair.
type ResolveScheduleRequest struct {
	Input   models.ScheduleInput   `json:"input" validate:"required"`
	Entries []models.ScheduleEntry `json:"entries" validate:"required,dive"`
}

// ResolveScheduleResponse returns the repaired, re-scored schedule together
// with the conflicts that were detected up front.
type ResolveScheduleResponse struct {
	Schedule  models.Schedule `json:"schedule"`
	Conflicts int             `json:"conflicts_found"`
	Remaining int             `json:"conflicts_remaining"`
}

// ExportScheduleRequest renders a schedule into a downloadable document.
type ExportScheduleRequest struct {
	Input   models.ScheduleInput   `json:"input" validate:"required"`
	Entries []models.ScheduleEntry `json:"entries" validate:"required,dive"`
	Title   string                 `json:"title"`
}

// ExportQuery selects the export format.
type ExportQuery struct {
	Format string `form:"format" validate:"omitempty,oneof=csv pdf"`
}

// ListQuery pages through stored schedule summaries.
type ListQuery struct {
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// Job lifecycle states for asynchronous generation.
const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// JobStatusResponse reports the state of an asynchronous generation job.
type JobStatusResponse struct {
	JobID     string           `json:"job_id"`
	Status    string           `json:"status"`
	Schedule  *models.Schedule `json:"schedule,omitempty"`
	Warnings  []string         `json:"warnings,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
