package schedule

import "taskboard/internal/model"

// AllocateLanes distributes tasks across display lanes, one lane per unit
// of concurrent capacity. Active tasks fill round-robin by index. Queued
// tasks, which the caller supplies in priority order, are laid out in a
// back-and-forth snake: the fill walks to the last lane, turns, and walks
// back, so each pass drops exactly one task per lane and lane lengths stay
// balanced for priority-grouped display.
func AllocateLanes(active, queued []model.Task, laneCount int) [][]model.Task {
	if laneCount < 1 {
		laneCount = 1
	}
	lanes := make([][]model.Task, laneCount)

	for i, t := range active {
		lanes[i%laneCount] = append(lanes[i%laneCount], t)
	}

	lane, dir := 0, 1
	for _, t := range queued {
		lanes[lane] = append(lanes[lane], t)
		next := lane + dir
		if next < 0 || next >= laneCount {
			dir = -dir
			next = lane // turn: the edge lane takes the next task too
		}
		lane = next
	}
	return lanes
}
