package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskboard/internal/model"
)

const taskColumns = `
        id, project_id, task_code, title,
        task_type_id, priority_level_id, complexity_level_id,
        status, queue_position, start_time, eta, details, created_at
`

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

func (r *TaskRepository) Insert(ctx context.Context, t *model.Task) (int, error) {
	r.logger.Debug("Inserting task",
		zap.Int("project_id", t.ProjectID),
		zap.String("task_code", t.TaskCode),
		zap.String("status", t.Status),
	)
	query := `
        INSERT INTO tasks (project_id, task_code, title, task_type_id,
                           priority_level_id, complexity_level_id, status, details)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		t.ProjectID,
		t.TaskCode,
		t.Title,
		t.TaskTypeID,
		t.PriorityLevelID,
		t.ComplexityLevelID,
		t.Status,
		t.Details,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.Error(err),
			zap.Int("project_id", t.ProjectID),
			zap.String("task_code", t.TaskCode),
		)
		return 0, err
	}
	r.logger.Info("Task inserted successfully",
		zap.Int("task_id", t.ID),
		zap.Int("project_id", t.ProjectID),
	)
	return t.ID, nil
}

// Get returns a task by id, or (nil, nil) when it does not exist.
func (r *TaskRepository) Get(ctx context.Context, taskID int) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	var t model.Task
	err := r.db.QueryRow(ctx, query, taskID).Scan(
		&t.ID, &t.ProjectID, &t.TaskCode, &t.Title,
		&t.TaskTypeID, &t.PriorityLevelID, &t.ComplexityLevelID,
		&t.Status, &t.QueuePosition, &t.StartTime, &t.ETA, &t.Details, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Debug("Task not found", zap.Int("task_id", taskID))
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to query task", zap.Error(err), zap.Int("task_id", taskID))
		return nil, err
	}
	return &t, nil
}

// ListQueued returns a project's queued tasks ordered by queue position,
// with position-less tasks last.
func (r *TaskRepository) ListQueued(ctx context.Context, projectID int) ([]model.Task, error) {
	query := `
        SELECT ` + taskColumns + `
        FROM tasks
        WHERE project_id = $1 AND status = $2
        ORDER BY queue_position ASC NULLS LAST, created_at ASC
    `
	return r.list(ctx, query, projectID, model.StatusQueued)
}

// ListActive returns a project's tasks in capacity-occupying statuses,
// oldest first.
func (r *TaskRepository) ListActive(ctx context.Context, projectID int) ([]model.Task, error) {
	query := `
        SELECT ` + taskColumns + `
        FROM tasks
        WHERE project_id = $1 AND status = ANY($2)
        ORDER BY created_at ASC
    `
	return r.list(ctx, query, projectID, model.ActiveStatuses)
}

// CountActive returns the number of tasks in capacity-occupying statuses.
func (r *TaskRepository) CountActive(ctx context.Context, projectID int) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM tasks
        WHERE project_id = $1 AND status = ANY($2)
    `
	var count int
	if err := r.db.QueryRow(ctx, query, projectID, model.ActiveStatuses).Scan(&count); err != nil {
		r.logger.Error("Failed to count active tasks",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return 0, err
	}
	return count, nil
}

// UpdateQueuePosition writes a single task's authoritative queue position.
// Queue repair is the only caller.
func (r *TaskRepository) UpdateQueuePosition(ctx context.Context, taskID, position int) error {
	query := `
        UPDATE tasks
        SET queue_position = $2
        WHERE id = $1
    `
	result, err := r.db.Exec(ctx, query, taskID, position)
	if err != nil {
		r.logger.Error("Failed to update queue position",
			zap.Error(err),
			zap.Int("task_id", taskID),
			zap.Int("position", position),
		)
		return err
	}
	if result.RowsAffected() == 0 {
		r.logger.Warn("Queue position update matched no task",
			zap.Int("task_id", taskID),
			zap.Int("position", position),
		)
		return pgx.ErrNoRows
	}
	r.logger.Debug("Queue position updated",
		zap.Int("task_id", taskID),
		zap.Int("position", position),
	)
	return nil
}

// UpdateSchedule persists a computed start time and ETA for a task.
func (r *TaskRepository) UpdateSchedule(ctx context.Context, taskID int, startTime, eta time.Time) error {
	query := `
        UPDATE tasks
        SET start_time = $2, eta = $3
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, taskID, startTime, eta); err != nil {
		r.logger.Error("Failed to update task schedule",
			zap.Error(err),
			zap.Int("task_id", taskID),
		)
		return err
	}
	r.logger.Info("Task schedule updated",
		zap.Int("task_id", taskID),
		zap.Time("start_time", startTime),
		zap.Time("eta", eta),
	)
	return nil
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query tasks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.TaskCode, &t.Title,
			&t.TaskTypeID, &t.PriorityLevelID, &t.ComplexityLevelID,
			&t.Status, &t.QueuePosition, &t.StartTime, &t.ETA, &t.Details, &t.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan task row", zap.Error(err))
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
