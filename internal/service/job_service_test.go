package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maelin-io/timetable-api/internal/dto"
	"github.com/maelin-io/timetable-api/pkg/config"
	appErrors "github.com/maelin-io/timetable-api/pkg/errors"
)

func newTestJobService() *JobService {
	return NewJobService(newTestService(nil), nil, config.JobsConfig{
		Workers:   1,
		QueueSize: 4,
		ResultTTL: time.Minute,
	})
}

func TestJobServiceSubmitAndComplete(t *testing.T) {
	svc := newTestJobService()
	svc.Start(context.Background())
	defer svc.Stop()

	submitted, err := svc.Submit(dto.GenerateScheduleRequest{
		Input: testInput(),
		Seed:  seedPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, dto.JobStatusPending, submitted.Status)

	require.Eventually(t, func() bool {
		status, err := svc.Status(submitted.JobID)
		return err == nil && status.Status == dto.JobStatusDone
	}, 5*time.Second, 10*time.Millisecond)

	status, err := svc.Status(submitted.JobID)
	require.NoError(t, err)
	require.NotNil(t, status.Schedule)
	assert.Len(t, status.Schedule.Entries, 5)
}

func TestJobServiceFailedGeneration(t *testing.T) {
	svc := newTestJobService()
	svc.Start(context.Background())
	defer svc.Stop()

	// empty input fails request validation inside the worker
	submitted, err := svc.Submit(dto.GenerateScheduleRequest{})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		status, err := svc.Status(submitted.JobID)
		return err == nil && status.Status == dto.JobStatusFailed
	}, 5*time.Second, 10*time.Millisecond)

	status, err := svc.Status(submitted.JobID)
	require.NoError(t, err)
	assert.NotEmpty(t, status.Error)
}

func TestJobServiceStatusUnknownJob(t *testing.T) {
	svc := newTestJobService()
	svc.Start(context.Background())
	defer svc.Stop()

	_, err := svc.Status("missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrJobNotFound.Code, appErrors.FromError(err).Code)
}

func TestJobServiceSubmitBeforeStart(t *testing.T) {
	svc := newTestJobService()

	_, err := svc.Submit(dto.GenerateScheduleRequest{Input: testInput()})
	assert.Error(t, err)
}
