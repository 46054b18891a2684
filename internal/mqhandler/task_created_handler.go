package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

type taskScheduler interface {
	ScheduleTask(ctx context.Context, taskID int) error
}

type TaskCreatedEvent struct {
	TaskID    int `json:"task_id"`
	ProjectID int `json:"project_id"`
}

// TaskCreatedHandler consumes task.created events and computes and
// persists the new task's schedule.
type TaskCreatedHandler struct {
	scheduler taskScheduler
	logger    *zap.Logger
}

func NewTaskCreatedHandler(scheduler taskScheduler, logger *zap.Logger) *TaskCreatedHandler {
	return &TaskCreatedHandler{scheduler: scheduler, logger: logger}
}

func (h *TaskCreatedHandler) Handle(ctx context.Context, data json.RawMessage) error {
	var event TaskCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		// Malformed payloads never become valid on redelivery.
		h.logger.Error("Failed to decode task.created event", zap.Error(err))
		return nil
	}

	h.logger.Info("Processing task.created event",
		zap.Int("task_id", event.TaskID),
		zap.Int("project_id", event.ProjectID),
	)

	if err := h.scheduler.ScheduleTask(ctx, event.TaskID); err != nil {
		return fmt.Errorf("schedule task %d: %w", event.TaskID, err)
	}
	return nil
}
