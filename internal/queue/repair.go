package queue

import (
	"sort"

	"taskboard/internal/model"
)

// Assignment is one task's corrected queue position.
type Assignment struct {
	TaskID   int    `json:"task_id"`
	TaskCode string `json:"task_code"`
	Position int    `json:"position"`
}

// PlanRepair computes the canonical queue order for a project's queued
// tasks: stable-sorted by priority ascending then creation time ascending,
// with positions reassigned 1..n. The plan is deterministic for a given
// task set, so applying it twice in a row is a no-op the second time.
func PlanRepair(tasks []model.Task) []Assignment {
	ordered := make([]model.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].PriorityLevelID != ordered[j].PriorityLevelID {
			return ordered[i].PriorityLevelID < ordered[j].PriorityLevelID
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	plan := make([]Assignment, len(ordered))
	for i, t := range ordered {
		plan[i] = Assignment{TaskID: t.ID, TaskCode: t.TaskCode, Position: i + 1}
	}
	return plan
}
