package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskboard/internal/model"
	"taskboard/internal/schedule"
	"taskboard/pkg/metrics"
)

// ReferenceStore reads the scheduling reference tables. A nil result with a
// nil error means the row does not exist.
type ReferenceStore interface {
	TaskType(ctx context.Context, id int) (*model.TaskType, error)
	PriorityLevel(ctx context.Context, id int) (*model.PriorityLevel, error)
	ComplexityLevel(ctx context.Context, id int) (*model.ComplexityLevel, error)
}

// ProjectStore reads project timeline state.
type ProjectStore interface {
	TimelineState(ctx context.Context, projectID int) (*model.ProjectTimelineState, error)
}

// TaskStore reads and writes task rows. UpdateQueuePosition is the only
// bulk-mutation entry point and only queue repair uses it.
type TaskStore interface {
	Insert(ctx context.Context, t *model.Task) (int, error)
	Get(ctx context.Context, taskID int) (*model.Task, error)
	ListQueued(ctx context.Context, projectID int) ([]model.Task, error)
	ListActive(ctx context.Context, projectID int) ([]model.Task, error)
	CountActive(ctx context.Context, projectID int) (int, error)
	UpdateQueuePosition(ctx context.Context, taskID, position int) error
	UpdateSchedule(ctx context.Context, taskID int, startTime, eta time.Time) error
}

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// Service is the scheduling engine's orchestration layer: it loads
// reference rows (through a Redis cache when one is configured), computes
// estimates, persists schedules, and runs queue validation and repair.
type Service struct {
	refs      ReferenceStore
	projects  ProjectStore
	tasks     TaskStore
	publisher EventPublisher
	rdb       *redis.Client
	cacheTTL  time.Duration
	rules     schedule.Rules
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	refs ReferenceStore,
	projects ProjectStore,
	tasks TaskStore,
	publisher EventPublisher,
	rdb *redis.Client,
	rules schedule.Rules,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		refs:      refs,
		projects:  projects,
		tasks:     tasks,
		publisher: publisher,
		rdb:       rdb,
		cacheTTL:  cacheTTL,
		rules:     rules,
		logger:    logger,
		now:       time.Now,
	}
}

// EstimateFor computes a schedule estimate for the given reference IDs and
// project. Missing reference rows or timeline state produce an empty
// estimate, not an error: the task is simply not schedulable yet.
func (s *Service) EstimateFor(ctx context.Context, projectID, taskTypeID, priorityID, complexityID int) (model.ScheduleEstimate, error) {
	taskType, err := s.cachedTaskType(ctx, taskTypeID)
	if err != nil {
		return model.ScheduleEstimate{}, fmt.Errorf("load task type: %w", err)
	}
	priority, err := s.cachedPriorityLevel(ctx, priorityID)
	if err != nil {
		return model.ScheduleEstimate{}, fmt.Errorf("load priority level: %w", err)
	}
	complexity, err := s.cachedComplexityLevel(ctx, complexityID)
	if err != nil {
		return model.ScheduleEstimate{}, fmt.Errorf("load complexity level: %w", err)
	}
	timeline, err := s.projects.TimelineState(ctx, projectID)
	if err != nil {
		return model.ScheduleEstimate{}, fmt.Errorf("load timeline state: %w", err)
	}

	est := schedule.Estimate(s.now(), taskType, priority, complexity, timeline, s.rules)
	if est.Empty() {
		s.logger.Debug("Estimate has insufficient inputs",
			zap.Int("project_id", projectID),
			zap.Int("task_type_id", taskTypeID),
			zap.Int("priority_level_id", priorityID),
			zap.Int("complexity_level_id", complexityID),
		)
		metrics.RecordScheduleEstimate("empty")
	} else {
		metrics.RecordScheduleEstimate("ok")
	}
	return est, nil
}

// DisplayQueuePosition returns the "Nth in queue" number shown at task
// creation: the count of capacity-occupying tasks plus one. It is a display
// estimate only and intentionally distinct from the authoritative
// queue_position written by repair; the two are never reconciled.
func (s *Service) DisplayQueuePosition(ctx context.Context, projectID int) (int, error) {
	count, err := s.tasks.CountActive(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("count active tasks: %w", err)
	}
	return count + 1, nil
}

type CreateTaskInput struct {
	ProjectID         int    `json:"project_id"`
	TaskCode          string `json:"task_code"`
	Title             string `json:"title"`
	TaskTypeID        int    `json:"task_type_id"`
	PriorityLevelID   int    `json:"priority_level_id"`
	ComplexityLevelID int    `json:"complexity_level_id"`
	Details           string `json:"details"`
}

// CreateTask inserts a queued task, computes its display position and
// estimate, persists the schedule when one could be computed, and announces
// the task on the bus. Publish failures are logged, not returned: the task
// exists either way.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*model.Task, model.ScheduleEstimate, int, error) {
	task := &model.Task{
		ProjectID:         in.ProjectID,
		TaskCode:          in.TaskCode,
		Title:             in.Title,
		TaskTypeID:        in.TaskTypeID,
		PriorityLevelID:   in.PriorityLevelID,
		ComplexityLevelID: in.ComplexityLevelID,
		Status:            model.StatusQueued,
		Details:           in.Details,
	}

	displayPos, err := s.DisplayQueuePosition(ctx, in.ProjectID)
	if err != nil {
		return nil, model.ScheduleEstimate{}, 0, err
	}

	if _, err := s.tasks.Insert(ctx, task); err != nil {
		return nil, model.ScheduleEstimate{}, 0, fmt.Errorf("insert task: %w", err)
	}

	est, err := s.EstimateFor(ctx, in.ProjectID, in.TaskTypeID, in.PriorityLevelID, in.ComplexityLevelID)
	if err != nil {
		return nil, model.ScheduleEstimate{}, 0, err
	}
	if !est.Empty() {
		if err := s.tasks.UpdateSchedule(ctx, task.ID, *est.StartTime, *est.ETA); err != nil {
			return nil, model.ScheduleEstimate{}, 0, fmt.Errorf("persist schedule: %w", err)
		}
		task.StartTime = est.StartTime
		task.ETA = est.ETA
	}

	s.publish("task.created", map[string]any{
		"task_id":    task.ID,
		"project_id": task.ProjectID,
	})

	s.logger.Info("Task created",
		zap.Int("task_id", task.ID),
		zap.Int("project_id", task.ProjectID),
		zap.Int("display_position", displayPos),
		zap.Bool("scheduled", !est.Empty()),
	)
	return task, est, displayPos, nil
}

// ScheduleTask recomputes and persists the schedule for an existing task.
// The task.created consumer calls this for tasks created by other surfaces.
// A vanished task or insufficient reference data is not an error, so the
// message is not redelivered for a state that cannot improve by retrying.
func (s *Service) ScheduleTask(ctx context.Context, taskID int) error {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}
	if task == nil {
		s.logger.Warn("ScheduleTask: task not found", zap.Int("task_id", taskID))
		return nil
	}

	est, err := s.EstimateFor(ctx, task.ProjectID, task.TaskTypeID, task.PriorityLevelID, task.ComplexityLevelID)
	if err != nil {
		return err
	}
	if est.Empty() {
		s.logger.Info("ScheduleTask: insufficient data to schedule",
			zap.Int("task_id", taskID),
			zap.Int("project_id", task.ProjectID),
		)
		return nil
	}

	if err := s.tasks.UpdateSchedule(ctx, task.ID, *est.StartTime, *est.ETA); err != nil {
		return fmt.Errorf("persist schedule: %w", err)
	}

	s.publish("task.scheduled", map[string]any{
		"task_id":    task.ID,
		"project_id": task.ProjectID,
		"start_time": est.StartTime,
		"eta":        est.ETA,
	})
	return nil
}

// Lanes returns the lane allocation for a project's active and queued
// tasks. Lane count comes from the project's concurrency limit; a project
// without timeline state gets a single lane.
func (s *Service) Lanes(ctx context.Context, projectID int) ([][]model.Task, error) {
	timeline, err := s.projects.TimelineState(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load timeline state: %w", err)
	}
	laneCount := 1
	if timeline != nil {
		laneCount = timeline.MaxConcurrentTasks
	}

	active, err := s.tasks.ListActive(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list active tasks: %w", err)
	}
	queued, err := s.tasks.ListQueued(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list queued tasks: %w", err)
	}

	return schedule.AllocateLanes(active, queued, laneCount), nil
}

// SetNow overrides the clock. Tests use this; production code leaves the
// default.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

func (s *Service) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
