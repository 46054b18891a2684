package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskboard/internal/model"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{db: db, logger: logger}
}

// TimelineState returns a project's scheduling context, or (nil, nil) when
// the project has no timeline configured yet.
func (r *ProjectRepository) TimelineState(ctx context.Context, projectID int) (*model.ProjectTimelineState, error) {
	query := `
        SELECT project_id, base_time, gap_time, active_task_count, max_concurrent_tasks
        FROM project_timeline_state
        WHERE project_id = $1
    `
	var s model.ProjectTimelineState
	err := r.db.QueryRow(ctx, query, projectID).Scan(
		&s.ProjectID,
		&s.BaseTime,
		&s.GapTime,
		&s.ActiveTaskCount,
		&s.MaxConcurrentTasks,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Debug("No timeline state for project", zap.Int("project_id", projectID))
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to query timeline state",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return nil, err
	}
	return &s, nil
}
