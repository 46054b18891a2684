package scheduling

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taskboard/internal/queue"
	"taskboard/pkg/metrics"
)

// RepairFailure names one task whose position update failed.
type RepairFailure struct {
	TaskCode string `json:"task_code"`
	Error    string `json:"error"`
}

// RepairResult reports what a repair run actually did. A partially failed
// run lists both sides so the operator can retry only the failed subset.
// IssuesAfter is the validator's verdict on the queue re-read after the
// writes; non-empty means a concurrent mutation slipped in and the repair
// should be re-run.
type RepairResult struct {
	Updated     []string        `json:"updated"`
	Failed      []RepairFailure `json:"failed"`
	IssuesAfter []string        `json:"issues_after"`
}

// ValidateQueue runs the integrity validator over a project's queued tasks
// and returns the advisory issue list. An empty list means the queue is
// consistent.
func (s *Service) ValidateQueue(ctx context.Context, projectID int) ([]string, error) {
	queued, err := s.tasks.ListQueued(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list queued tasks: %w", err)
	}

	issues := queue.Validate(queued)
	metrics.RecordQueueValidation(len(issues))
	if len(issues) > 0 {
		s.logger.Warn("Queue integrity issues found",
			zap.Int("project_id", projectID),
			zap.Int("issue_count", len(issues)),
			zap.Strings("issues", issues),
		)
	}
	return issues, nil
}

// RepairQueue recomputes canonical queue positions for a project and writes
// them one task at a time, collecting per-task failures rather than
// stopping at the first one. The writes are deliberately not a single
// transaction: the contract is a partial-failure report, and the known
// concurrent-mutation race is handled by the post-repair re-validation
// baked into the result.
func (s *Service) RepairQueue(ctx context.Context, projectID int) (RepairResult, error) {
	queued, err := s.tasks.ListQueued(ctx, projectID)
	if err != nil {
		return RepairResult{}, fmt.Errorf("list queued tasks: %w", err)
	}

	plan := queue.PlanRepair(queued)
	result := RepairResult{Updated: []string{}, Failed: []RepairFailure{}}
	for _, a := range plan {
		if err := s.tasks.UpdateQueuePosition(ctx, a.TaskID, a.Position); err != nil {
			metrics.RecordQueueRepairTask("failed")
			result.Failed = append(result.Failed, RepairFailure{
				TaskCode: a.TaskCode,
				Error:    err.Error(),
			})
			continue
		}
		metrics.RecordQueueRepairTask("updated")
		result.Updated = append(result.Updated, a.TaskCode)
	}

	issuesAfter, err := s.ValidateQueue(ctx, projectID)
	if err != nil {
		return result, fmt.Errorf("re-validate after repair: %w", err)
	}
	result.IssuesAfter = issuesAfter

	s.logger.Info("Queue repair finished",
		zap.Int("project_id", projectID),
		zap.Int("updated", len(result.Updated)),
		zap.Int("failed", len(result.Failed)),
		zap.Int("issues_after", len(result.IssuesAfter)),
	)
	return result, nil
}
