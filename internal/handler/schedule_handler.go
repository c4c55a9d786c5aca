package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maelin-io/timetable-api/internal/dto"
	"github.com/maelin-io/timetable-api/internal/models"
	"github.com/maelin-io/timetable-api/internal/service"
	appErrors "github.com/maelin-io/timetable-api/pkg/errors"
	"github.com/maelin-io/timetable-api/pkg/response"
)

type scheduleProvider interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	Validate(req dto.ValidateScheduleRequest) (*dto.ValidationResult, error)
	Resolve(req dto.ResolveScheduleRequest) (*dto.ResolveScheduleResponse, error)
	Get(ctx context.Context, id string) (*models.Schedule, error)
	List(ctx context.Context, q dto.ListQuery) ([]models.ScheduleSummary, *models.Pagination, error)
	Delete(ctx context.Context, id string) error
	Export(req dto.ExportScheduleRequest, format string) ([]byte, string, error)
}

type jobRunner interface {
	Submit(req dto.GenerateScheduleRequest) (*dto.JobStatusResponse, error)
	Status(jobID string) (*dto.JobStatusResponse, error)
}

// ScheduleHandler exposes the timetable endpoints.
type ScheduleHandler struct {
	service scheduleProvider
	jobs    jobRunner
}

// NewScheduleHandler constructs the handler. Jobs may be nil when async
// generation is disabled.
func NewScheduleHandler(svc *service.ScheduleService, jobs *service.JobService) *ScheduleHandler {
	h := &ScheduleHandler{service: svc}
	if jobs != nil {
		h.jobs = jobs
	}
	return h
}

// Generate godoc
// @Summary Generate a timetable
// @Description Builds a base schedule with the randomized greedy heuristic and optionally refines it with the genetic optimizer.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	var meta map[string]interface{}
	if len(result.Warnings) > 0 {
		meta = map[string]interface{}{"warnings": result.Warnings}
	}
	response.JSON(c, http.StatusOK, result.Schedule, nil, meta)
}

// GenerateAsync godoc
// @Summary Generate a timetable asynchronously
// @Description Enqueues the generation and returns a job id to poll.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generation payload"
// @Success 202 {object} response.Envelope
// @Router /schedules/generate/async [post]
func (h *ScheduleHandler) GenerateAsync(c *gin.Context) {
	if h.jobs == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "async generation is disabled"))
		return
	}
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	status, err := h.jobs.Submit(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, status)
}

// JobStatus godoc
// @Summary Poll an asynchronous generation job
// @Tags Schedules
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/jobs/{id} [get]
func (h *ScheduleHandler) JobStatus(c *gin.Context) {
	if h.jobs == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "async generation is disabled"))
		return
	}
	status, err := h.jobs.Status(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Validate godoc
// @Summary Validate an external schedule
// @Description Runs every hard and soft check and reports violations split by severity.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.ValidateScheduleRequest true "Validation payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/validate [post]
func (h *ScheduleHandler) Validate(c *gin.Context) {
	var req dto.ValidateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid validation payload"))
		return
	}
	result, err := h.service.Validate(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Resolve godoc
// @Summary Repair double-booking conflicts
// @Description Relocates conflicting entries to free slots in a single pass and re-scores the schedule.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.ResolveScheduleRequest true "Resolve payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/resolve [post]
func (h *ScheduleHandler) Resolve(c *gin.Context) {
	var req dto.ResolveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid resolve payload"))
		return
	}
	result, err := h.service.Resolve(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List stored schedules
// @Tags Schedules
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list query"))
		return
	}
	summaries, pagination, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, pagination)
}

// Get godoc
// @Summary Get a stored schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	schedule, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Delete godoc
// @Summary Delete a stored schedule
// @Tags Schedules
// @Param id path string true "Schedule ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export a schedule as CSV or PDF
// @Tags Schedules
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param payload body dto.ExportScheduleRequest true "Export payload"
// @Success 200 {file} byte
// @Router /schedules/export [post]
func (h *ScheduleHandler) Export(c *gin.Context) {
	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	format := q.Format
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}

	var req dto.ExportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	raw, contentType, err := h.service.Export(req, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("timetable-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, raw)
}
