package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskboard/internal/model"
)

// ReferenceRepository reads the scheduling reference tables. A missing row
// is a normal "not configured yet" state, so lookups return (nil, nil)
// instead of surfacing pgx.ErrNoRows.
type ReferenceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReferenceRepository(db *pgxpool.Pool, logger *zap.Logger) *ReferenceRepository {
	return &ReferenceRepository{db: db, logger: logger}
}

func (r *ReferenceRepository) TaskType(ctx context.Context, id int) (*model.TaskType, error) {
	query := `
        SELECT id, name, base_duration
        FROM task_types
        WHERE id = $1
    `
	var t model.TaskType
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.BaseDuration)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Debug("Task type not found", zap.Int("task_type_id", id))
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to query task type", zap.Error(err), zap.Int("task_type_id", id))
		return nil, err
	}
	return &t, nil
}

func (r *ReferenceRepository) PriorityLevel(ctx context.Context, id int) (*model.PriorityLevel, error) {
	query := `
        SELECT id, name, time_to_start, multiplier, color
        FROM priority_levels
        WHERE id = $1
    `
	var p model.PriorityLevel
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.TimeToStart, &p.Multiplier, &p.Color)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Debug("Priority level not found", zap.Int("priority_level_id", id))
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to query priority level", zap.Error(err), zap.Int("priority_level_id", id))
		return nil, err
	}
	return &p, nil
}

func (r *ReferenceRepository) ComplexityLevel(ctx context.Context, id int) (*model.ComplexityLevel, error) {
	query := `
        SELECT id, name, multiplier
        FROM complexity_levels
        WHERE id = $1
    `
	var c model.ComplexityLevel
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Multiplier)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Debug("Complexity level not found", zap.Int("complexity_level_id", id))
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to query complexity level", zap.Error(err), zap.Int("complexity_level_id", id))
		return nil, err
	}
	return &c, nil
}
