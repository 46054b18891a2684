package schedule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/model"
)

func makeTasks(prefix string, n int) []model.Task {
	tasks := make([]model.Task, n)
	for i := range tasks {
		tasks[i] = model.Task{ID: i + 1, TaskCode: fmt.Sprintf("%s-%d", prefix, i+1)}
	}
	return tasks
}

func TestAllocateLanes_ActiveRoundRobin(t *testing.T) {
	lanes := AllocateLanes(makeTasks("ACT", 5), nil, 3)

	require.Len(t, lanes, 3)
	assert.Equal(t, []string{"ACT-1", "ACT-4"}, codes(lanes[0]))
	assert.Equal(t, []string{"ACT-2", "ACT-5"}, codes(lanes[1]))
	assert.Equal(t, []string{"ACT-3"}, codes(lanes[2]))
}

func TestAllocateLanes_QueuedSnakeFill(t *testing.T) {
	lanes := AllocateLanes(nil, makeTasks("Q", 7), 3)

	require.Len(t, lanes, 3)
	// Fill order 0,1,2 then turn: 2,1,0 then turn: 0.
	assert.Equal(t, []string{"Q-1", "Q-6", "Q-7"}, codes(lanes[0]))
	assert.Equal(t, []string{"Q-2", "Q-5"}, codes(lanes[1]))
	assert.Equal(t, []string{"Q-3", "Q-4"}, codes(lanes[2]))
}

func TestAllocateLanes_BalanceInvariant(t *testing.T) {
	for _, laneCount := range []int{1, 2, 3, 4, 7} {
		for queued := 0; queued <= 25; queued++ {
			lanes := AllocateLanes(nil, makeTasks("Q", queued), laneCount)
			minLen, maxLen := len(lanes[0]), len(lanes[0])
			total := 0
			for _, lane := range lanes {
				if len(lane) < minLen {
					minLen = len(lane)
				}
				if len(lane) > maxLen {
					maxLen = len(lane)
				}
				total += len(lane)
			}
			assert.Equal(t, queued, total)
			assert.LessOrEqual(t, maxLen-minLen, 1,
				"laneCount=%d queued=%d", laneCount, queued)
		}
	}
}

func TestAllocateLanes_SingleLane(t *testing.T) {
	lanes := AllocateLanes(makeTasks("ACT", 2), makeTasks("Q", 3), 1)

	require.Len(t, lanes, 1)
	assert.Len(t, lanes[0], 5)
}

func TestAllocateLanes_GuardsBadLaneCount(t *testing.T) {
	lanes := AllocateLanes(nil, makeTasks("Q", 2), 0)
	require.Len(t, lanes, 1)
	assert.Len(t, lanes[0], 2)
}

func TestAllocateLanes_Empty(t *testing.T) {
	lanes := AllocateLanes(nil, nil, 4)
	require.Len(t, lanes, 4)
	for _, lane := range lanes {
		assert.Empty(t, lane)
	}
}

func codes(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.TaskCode
	}
	return out
}
