package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/model"
)

func repairTask(id int, code string, priority int, createdAt time.Time, position *int) model.Task {
	t := queuedTask(code, priority, position)
	t.ID = id
	t.CreatedAt = createdAt
	return t
}

func TestPlanRepair_OrdersByPriorityThenCreation(t *testing.T) {
	base := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		repairTask(1, "TSK-1", 3, base, pos(1)),
		repairTask(2, "TSK-2", 1, base.Add(2*time.Hour), nil),
		repairTask(3, "TSK-3", 1, base.Add(time.Hour), pos(7)),
		repairTask(4, "TSK-4", 2, base, pos(2)),
	}

	plan := PlanRepair(tasks)

	require.Len(t, plan, 4)
	assert.Equal(t, []Assignment{
		{TaskID: 3, TaskCode: "TSK-3", Position: 1},
		{TaskID: 2, TaskCode: "TSK-2", Position: 2},
		{TaskID: 4, TaskCode: "TSK-4", Position: 3},
		{TaskID: 1, TaskCode: "TSK-1", Position: 4},
	}, plan)
}

func TestPlanRepair_StableForEqualKeys(t *testing.T) {
	base := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		repairTask(1, "TSK-1", 2, base, nil),
		repairTask(2, "TSK-2", 2, base, nil),
		repairTask(3, "TSK-3", 2, base, nil),
	}

	plan := PlanRepair(tasks)

	assert.Equal(t, "TSK-1", plan[0].TaskCode)
	assert.Equal(t, "TSK-2", plan[1].TaskCode)
	assert.Equal(t, "TSK-3", plan[2].TaskCode)
}

func TestPlanRepair_Idempotent(t *testing.T) {
	base := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		repairTask(1, "TSK-1", 5, base, pos(3)),
		repairTask(2, "TSK-2", 1, base.Add(time.Minute), pos(3)),
		repairTask(3, "TSK-3", 2, base, nil),
	}

	first := PlanRepair(tasks)

	// Apply the plan and run it again on the corrected queue.
	applied := applyPlan(tasks, first)
	second := PlanRepair(applied)

	assert.Equal(t, first, second)
}

func TestPlanRepair_ResultValidatesClean(t *testing.T) {
	base := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		repairTask(1, "TSK-1", 4, base, pos(9)),
		repairTask(2, "TSK-2", 1, base, nil),
		repairTask(3, "TSK-3", 3, base.Add(time.Hour), pos(9)),
		repairTask(4, "TSK-4", 3, base, nil),
	}
	require.NotEmpty(t, Validate(tasks))

	plan := PlanRepair(tasks)
	repaired := applyPlan(tasks, plan)

	assert.Empty(t, Validate(repaired))
}

func TestPlanRepair_EmptyQueue(t *testing.T) {
	assert.Empty(t, PlanRepair(nil))
}

// applyPlan returns the tasks reordered and renumbered per the plan, the
// way the queue reads back after a successful repair.
func applyPlan(tasks []model.Task, plan []Assignment) []model.Task {
	byID := make(map[int]model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	out := make([]model.Task, len(plan))
	for i, a := range plan {
		task := byID[a.TaskID]
		p := a.Position
		task.QueuePosition = &p
		out[i] = task
	}
	return out
}
