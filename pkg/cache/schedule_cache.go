package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maelin-io/timetable-api/internal/models"
)

// ScheduleCache keeps recently served schedules in Redis so repeated reads
// skip the database. Misses and marshalling failures are non-fatal; callers
// fall through to the store.
type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScheduleCache(client *redis.Client, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{client: client, ttl: ttl}
}

func scheduleKey(id string) string {
	return fmt.Sprintf("schedule:%s", id)
}

// Get returns the cached schedule, or (nil, nil) on a miss.
func (c *ScheduleCache) Get(ctx context.Context, id string) (*models.Schedule, error) {
	raw, err := c.client.Get(ctx, scheduleKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var schedule models.Schedule
	if err := json.Unmarshal(raw, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Set stores the schedule under its id for the configured TTL.
func (c *ScheduleCache) Set(ctx context.Context, schedule *models.Schedule) error {
	raw, err := json.Marshal(schedule)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, scheduleKey(schedule.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached entry for the given id.
func (c *ScheduleCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, scheduleKey(id)).Err()
}
