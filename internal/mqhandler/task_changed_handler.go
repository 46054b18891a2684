package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

type queueValidator interface {
	ValidateQueue(ctx context.Context, projectID int) ([]string, error)
}

type TaskChangedEvent struct {
	ProjectID int `json:"project_id"`
}

// TaskChangedHandler consumes task.changed events — the store's
// "something changed" signal — and re-runs queue validation for the
// affected project. Validation is pure, so reprocessing a redelivered
// event is harmless.
type TaskChangedHandler struct {
	validator queueValidator
	logger    *zap.Logger
}

func NewTaskChangedHandler(validator queueValidator, logger *zap.Logger) *TaskChangedHandler {
	return &TaskChangedHandler{validator: validator, logger: logger}
}

func (h *TaskChangedHandler) Handle(ctx context.Context, data json.RawMessage) error {
	var event TaskChangedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("Failed to decode task.changed event", zap.Error(err))
		return nil
	}

	issues, err := h.validator.ValidateQueue(ctx, event.ProjectID)
	if err != nil {
		return fmt.Errorf("validate queue for project %d: %w", event.ProjectID, err)
	}

	if len(issues) == 0 {
		h.logger.Debug("Queue consistent after change",
			zap.Int("project_id", event.ProjectID),
		)
	}
	return nil
}
