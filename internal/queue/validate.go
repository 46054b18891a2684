package queue

import (
	"fmt"
	"sort"
	"strings"

	"taskboard/internal/model"
)

// Validate inspects a project's queued tasks, assumed ordered by queue
// position, and returns one human-readable issue per defect found. It
// never mutates anything and never errors: the result is advisory data for
// the operator UI and the trigger condition for Repair. A clean queue
// yields an empty list.
//
// Checks, in reporting order: missing and duplicate positions, adjacent
// priority inversions (a lower priority ID is more urgent), and position
// contiguity (the sequence must run 1..n).
func Validate(tasks []model.Task) []string {
	var issues []string

	seen := make(map[int]string)
	var missing []string
	for _, t := range tasks {
		if t.QueuePosition == nil {
			missing = append(missing, t.TaskCode)
			continue
		}
		pos := *t.QueuePosition
		if prev, ok := seen[pos]; ok {
			issues = append(issues, fmt.Sprintf(
				"duplicate queue position %d: %s and %s", pos, prev, t.TaskCode))
			continue
		}
		seen[pos] = t.TaskCode
	}
	if len(missing) > 0 {
		issues = append(issues, fmt.Sprintf(
			"%d task(s) with no queue position: %s",
			len(missing), strings.Join(missing, ", ")))
	}

	for i := 0; i+1 < len(tasks); i++ {
		a, b := tasks[i], tasks[i+1]
		if a.QueuePosition == nil || b.QueuePosition == nil {
			continue
		}
		if a.PriorityLevelID > b.PriorityLevelID {
			issues = append(issues, fmt.Sprintf(
				"priority inversion: %s (priority %d) is queued ahead of %s (priority %d)",
				a.TaskCode, a.PriorityLevelID, b.TaskCode, b.PriorityLevelID))
		}
	}

	positions := make([]int, 0, len(seen))
	for pos := range seen {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	if len(positions) > 0 {
		if positions[0] != 1 {
			issues = append(issues, fmt.Sprintf(
				"queue does not start at position 1 (first position is %d)", positions[0]))
		}
		if positions[len(positions)-1] != len(positions) {
			issues = append(issues, "gaps in queue positions")
		}
	}

	return issues
}
