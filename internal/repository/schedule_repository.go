package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/maelin-io/timetable-api/internal/models"
)

// ScheduleRepository persists scored timetables. Entries live in their own
// table keyed by schedule id and are written inside the same transaction as
// the parent row.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create inserts the schedule and its entries atomically. A missing id is
// generated; CreatedAt is stamped on the way in.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	if schedule == nil {
		return fmt.Errorf("schedule payload is nil")
	}
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertSchedule = `
INSERT INTO schedules (id, score, violations, created_at)
VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, insertSchedule,
		schedule.ID, schedule.Score, pq.Array(schedule.Violations), schedule.CreatedAt); err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}

	const insertEntry = `
INSERT INTO schedule_entries (schedule_id, position, time_slot_id, teacher_id, subject_id, class_id, room_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, e := range schedule.Entries {
		if _, err := tx.ExecContext(ctx, insertEntry,
			schedule.ID, i, e.TimeSlotID, e.TeacherID, e.SubjectID, e.ClassID, e.RoomID); err != nil {
			return fmt.Errorf("insert schedule entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule insert: %w", err)
	}
	return nil
}

// FindByID loads a schedule and its entries in stored order.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	const scheduleQuery = `SELECT id, score, violations, created_at FROM schedules WHERE id = $1`
	row := r.db.QueryRowxContext(ctx, scheduleQuery, id)

	var schedule models.Schedule
	var violations pq.StringArray
	if err := row.Scan(&schedule.ID, &schedule.Score, &violations, &schedule.CreatedAt); err != nil {
		return nil, err
	}
	schedule.Violations = violations

	const entriesQuery = `
SELECT time_slot_id, teacher_id, subject_id, class_id, room_id
FROM schedule_entries WHERE schedule_id = $1 ORDER BY position ASC`
	if err := r.db.SelectContext(ctx, &schedule.Entries, entriesQuery, id); err != nil {
		return nil, fmt.Errorf("load schedule entries: %w", err)
	}
	return &schedule, nil
}

// List returns stored schedule summaries, newest first.
func (r *ScheduleRepository) List(ctx context.Context, page, pageSize int) ([]models.ScheduleSummary, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM schedules`); err != nil {
		return nil, 0, fmt.Errorf("count schedules: %w", err)
	}

	const query = `
SELECT s.id, s.score, s.created_at, COUNT(e.schedule_id) AS entry_count
FROM schedules s
LEFT JOIN schedule_entries e ON e.schedule_id = s.id
GROUP BY s.id, s.score, s.created_at
ORDER BY s.created_at DESC
LIMIT $1 OFFSET $2`
	var summaries []models.ScheduleSummary
	if err := r.db.SelectContext(ctx, &summaries, query, pageSize, (page-1)*pageSize); err != nil {
		return nil, 0, fmt.Errorf("list schedules: %w", err)
	}
	return summaries, total, nil
}

// Delete removes a stored schedule; entries cascade via the foreign key.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM schedules WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("schedule rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
